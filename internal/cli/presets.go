// internal/cli/presets.go
package cli

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"primerscore/core/score"
	"primerscore/internal/report"
)

// presetInfo is one weight preset as listed.
type presetInfo struct {
	Name    string             `json:"name"`
	Source  string             `json:"source"` // "builtin" | "file"
	Weights map[string]float64 `json:"weights"`
}

// allPresets merges builtins with file presets; file entries win.
func (a *app) allPresets() map[string]score.Weights {
	all := score.BuiltinPresets()
	for n, w := range a.cfg.Presets {
		all[n] = w
	}
	return all
}

func (a *app) presetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List or export scoring weight presets",
		Args:  argsRange(0, 0),
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List presets and their weights",
		Args:  argsRange(0, 0),
		RunE: func(_ *cobra.Command, _ []string) error {
			all := a.allPresets()
			names := make([]string, 0, len(all))
			for n := range all {
				names = append(names, n)
			}
			sort.Strings(names)
			out := make([]presetInfo, 0, len(names))
			for _, n := range names {
				src := "builtin"
				if _, ok := a.cfg.Presets[n]; ok {
					src = "file"
				}
				out = append(out, presetInfo{Name: n, Source: src, Weights: all[n].Raw()})
			}
			return emitList(a, out, presetTable)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Write every preset as YAML (loadable with --presets-file)",
		Args:  argsRange(0, 0),
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := score.ExportPresets(a.out, a.allPresets()); err != nil {
				return outputError{err}
			}
			return nil
		},
	})
	return cmd
}

func presetTable(w io.Writer, ps []presetInfo) error {
	rows := make([][2]string, 0, len(ps))
	for _, p := range ps {
		keys := make([]string, 0, len(p.Weights))
		for k := range p.Weights {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+strconv.FormatFloat(p.Weights[k], 'g', 3, 64))
		}
		rows = append(rows, [2]string{p.Name + " (" + p.Source + ")", strings.Join(parts, " ")})
	}
	return report.KeyValueTable(w, [2]string{"Preset", "Weights"}, rows)
}
