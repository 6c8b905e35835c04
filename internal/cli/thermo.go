// internal/cli/thermo.go
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"primerscore/core/dimer"
	"primerscore/core/mutagen"
	"primerscore/core/oligo"
	"primerscore/core/params"
	"primerscore/core/thermo"
	"primerscore/internal/report"
	"primerscore/pkg/api"
)

func (a *app) tmCmd() *cobra.Command {
	var bottom string
	cmd := &cobra.Command{
		Use:   "tm SEQ...",
		Short: "Melting temperature against the perfect complement (or --bottom)",
		Example: `  primerscore tm ATGCGTACGTAGCTAGCTAGC
  primerscore tm --params revised --mg 1.5mM ACGTACGTAC
  primerscore tm CGTTGA --bottom GCAACT`,
		Args: argsRange(1, -1),
		RunE: func(_ *cobra.Command, args []string) error {
			if bottom != "" && len(args) != 1 {
				return usageError{fmt.Errorf("--bottom takes exactly one top strand")}
			}
			cond := a.cfg.Conditions
			out := make([]api.TmV1, 0, len(args))
			for _, s := range args {
				seq := oligo.Normalize(s)
				var (
					r   thermo.Result
					err error
				)
				if bottom != "" {
					r, err = a.thermo.DuplexTm(seq, oligo.Normalize(bottom), cond)
				} else {
					r, err = a.thermo.Tm(seq, cond)
				}
				if err != nil {
					return fmt.Errorf("%s: %w", s, err)
				}
				gc, err := a.thermo.GC(strings.ReplaceAll(seq, string(thermo.Gap), ""))
				if err != nil {
					return err
				}
				out = append(out, report.ToTmV1(seq, r, gc, cond.TempC))
			}
			return emitList(a, out, report.TmTable)
		},
	}
	cmd.Flags().StringVar(&bottom, "bottom", "", "Bottom strand 3'→5' aligned to SEQ ('-' marks a bulge)")
	return cmd
}

func (a *app) foldCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "fold SEQ...",
		Short:   "Minimum-free-energy hairpin of each sequence",
		Example: "  primerscore fold GGGGCCCCAAAAGGGGCCCC",
		Args:    argsRange(1, -1),
		RunE: func(_ *cobra.Command, args []string) error {
			out := make([]api.FoldV1, 0, len(args))
			for _, s := range args {
				seq := oligo.Normalize(s)
				r, err := a.fold.Hairpin(seq, a.cfg.Conditions)
				if err != nil {
					return fmt.Errorf("%s: %w", s, err)
				}
				out = append(out, report.ToFoldV1(seq, "", r, nil))
			}
			return emitList(a, out, report.FoldTable)
		},
	}
}

func (a *app) dimerCmd() *cobra.Command {
	var end bool
	cmd := &cobra.Command{
		Use:   "dimer A [B]",
		Short: "Homodimer of A, or heterodimer of A and B",
		Example: `  primerscore dimer GCGCGCGC
  primerscore dimer --end ATGCGTACGTAGCTAGCTAGC GCTAGCTAGCTACGTACGCAT`,
		Args: argsRange(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			x := oligo.Normalize(args[0])
			y := x
			if len(args) == 2 {
				y = oligo.Normalize(args[1])
			}
			ev := dimer.NewEvaluator(a.fold)
			var (
				r   dimer.Report
				err error
			)
			switch {
			case end:
				r, err = ev.EndDimer(x, y, a.cfg.Conditions)
			case len(args) == 1:
				r, err = ev.Homodimer(x, a.cfg.Conditions)
			default:
				r, err = ev.Heterodimer(x, y, a.cfg.Conditions)
			}
			if err != nil {
				return err
			}
			return emitList(a, []api.FoldV1{report.ToDimerV1(x, y, r)}, report.FoldTable)
		},
	}
	cmd.Flags().BoolVar(&end, "end", false, "Only duplexes that pair the 3'-terminal base of A")
	return cmd
}

func (a *app) gquadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gquad SEQ...",
		Short: "G-quadruplex risk of each sequence",
		Args:  argsRange(1, -1),
		RunE: func(_ *cobra.Command, args []string) error {
			out := make([]api.GQuadV1, 0, len(args))
			for _, s := range args {
				seq := oligo.Normalize(s)
				out = append(out, report.ToGQuadV1(seq, mutagen.GQuadruplexRisk(seq)))
			}
			return emitList(a, out, report.GQuadTable)
		},
	}
}

// paramInfo describes one registered parameter set.
type paramInfo struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Citation string `json:"citation"`
	Active   bool   `json:"active"`
}

func (a *app) paramsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "List parameter sets",
		Args:  argsRange(0, 0),
		RunE: func(_ *cobra.Command, _ []string) error {
			active := a.thermo.Params().ID()
			var out []paramInfo
			for _, n := range params.Names() {
				s, err := params.ByName(n)
				if err != nil {
					return err
				}
				out = append(out, paramInfo{Name: n, ID: s.ID(), Citation: s.Citation(), Active: s.ID() == active})
			}
			return emitList(a, out, func(w io.Writer, ps []paramInfo) error {
				rows := make([][2]string, 0, len(ps))
				for _, p := range ps {
					id := p.ID
					if p.Active {
						id += " *"
					}
					rows = append(rows, [2]string{id, p.Citation})
				}
				return report.KeyValueTable(w, [2]string{"Set", "Citation"}, rows)
			})
		},
	}
}
