// internal/primer/loader.go
// Package primer reads primer lists for batch evaluation.
package primer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Entry is one primer to evaluate, optionally with the partner it is paired
// with in the reaction.
type Entry struct {
	ID      string
	Primer  string // 5'→3'
	Partner string // 5'→3', may be empty
	Line    int
}

// LoadTSV reads a whitespace-separated file with
// id primer [partner]
// A line holding only a sequence gets the ID "line<N>". Blank lines and
// lines starting with '#' are skipped. "-" reads stdin.
func LoadTSV(path string) ([]Entry, error) {
	if path == "-" {
		return Read(os.Stdin, "stdin")
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Read(fh, path)
}

// Read parses the LoadTSV format from r; name labels errors.
func Read(r io.Reader, name string) ([]Entry, error) {
	var list []Entry
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		e := Entry{Line: ln}
		switch len(f) {
		case 1:
			e.ID, e.Primer = "line"+strconv.Itoa(ln), f[0]
		case 2:
			e.ID, e.Primer = f[0], f[1]
		case 3:
			e.ID, e.Primer, e.Partner = f[0], f[1], f[2]
		default:
			return nil, fmt.Errorf("%s:%d bad field count %d (want: id primer [partner])", name, ln, len(f))
		}
		e.Primer = strings.ToUpper(e.Primer)
		e.Partner = strings.ToUpper(e.Partner)
		list = append(list, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
