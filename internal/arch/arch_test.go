// internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

const module = "primerscore/"

// allowed lists, per package prefix, the only module packages it may import.
// Prefixes absent here are unrestricted apart from bans.
var allowed = map[string][]string{
	"primerscore/core/oligo":  {},
	"primerscore/core/params": {"primerscore/core/oligo"},
	"primerscore/core/memo":   {},
	"primerscore/pkg/api":     {},
}

var bans = map[string][]string{
	"primerscore/core/": {"primerscore/internal/", "primerscore/cmd/", "primerscore/pkg/"},
	"primerscore/internal/report": {
		"primerscore/internal/cli", "primerscore/internal/config", "primerscore/cmd/",
	},
	"primerscore/internal/config": {
		"primerscore/internal/cli", "primerscore/internal/report", "primerscore/cmd/",
	},
	"primerscore/internal/logging": {"primerscore/"},
	"primerscore/internal/primer":  {"primerscore/"},
}

func listPackages(t *testing.T) []pkg {
	t.Helper()
	cmd := exec.Command("go", "list", "-json", "../../...")
	var out bytes.Buffer
	cmd.Stdout = &out
	require.NoError(t, cmd.Run(), "go list")

	var pkgs []pkg
	dec := json.NewDecoder(&out)
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if strings.HasPrefix(p.ImportPath, module) {
			pkgs = append(pkgs, p)
		}
	}
	return pkgs
}

func TestImportBoundaries(t *testing.T) {
	var violations []string
	for _, p := range listPackages(t) {
		imp := p.ImportPath
		for _, dep := range p.Imports {
			if !strings.HasPrefix(dep, module) {
				continue
			}
			for prefix, forbidden := range bans {
				if !strings.HasPrefix(imp, prefix) {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
			if ok, restricted := allowedDep(imp, dep); restricted && !ok {
				violations = append(violations, imp+" → "+dep+" (not allowed)")
			}
		}
	}
	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}

// allowedDep reports whether imp may import dep, and whether imp is
// restricted at all.
func allowedDep(imp, dep string) (ok, restricted bool) {
	list, restricted := allowed[imp]
	if !restricted {
		return true, false
	}
	for _, a := range list {
		if dep == a {
			return true, true
		}
	}
	return false, true
}
