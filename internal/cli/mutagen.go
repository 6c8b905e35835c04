// internal/cli/mutagen.go
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"primerscore/core/mutagen"
	"primerscore/core/oligo"
	"primerscore/internal/report"
	"primerscore/pkg/api"
)

func (a *app) mutagenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mutagen TEMPLATE ALTERATION...",
		Short: "Mismatch-aware Tm, hairpin and G4 risk of altered primers",
		Long: `Alterations use 1-based positions on TEMPLATE:
  11A>C   substitute (reference base optional: 11>C)
  5insTT  insert after position 5
  3_5del  delete positions 3 through 5`,
		Example: "  primerscore mutagen ATGCGTACGTAGCTAGCTAGC 11A>C 5insTT 3_5del",
		Args:    argsRange(2, -1),
		RunE: func(_ *cobra.Command, args []string) error {
			tpl, err := oligo.Validate(args[0])
			if err != nil {
				return err
			}
			out := make([]api.MutationV1, 0, len(args)-1)
			for _, s := range args[1:] {
				alt, err := mutagen.ParseFor(tpl, s)
				if err != nil {
					return err
				}
				ev, err := mutagen.Evaluate(a.fold, tpl, alt, a.cfg.Conditions)
				if err != nil {
					return fmt.Errorf("%s: %w", s, err)
				}
				out = append(out, report.ToMutationV1(tpl, ev))
			}
			return emitList(a, out, report.MutationTable)
		},
	}
}

func (a *app) codonCmd() *cobra.Command {
	var host string
	cmd := &cobra.Command{
		Use:   "codon TEMPLATE POSITION AMINO-ACID",
		Short: "Rank synonymous codons for an amino-acid change at a 1-based codon start",
		Example: `  primerscore codon ATGCGTACGTAGCTAGCTAGC 7 A
  primerscore codon --host none ATGCGTACGTAGCTAGCTAGC 7 L`,
		Args: argsRange(3, 3),
		RunE: func(_ *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 1 {
				return usageError{fmt.Errorf("bad position %q", args[1])}
			}
			if len(args[2]) != 1 {
				return usageError{fmt.Errorf("amino acid must be one letter, got %q", args[2])}
			}
			var usage mutagen.CodonUsage
			h := strings.ToLower(host)
			if h != "none" && h != "" {
				if usage, err = mutagen.Usage(h); err != nil {
					return err
				}
			} else {
				h = ""
			}
			aa := strings.ToUpper(args[2])[0]
			ch, err := mutagen.SelectCodon(a.thermo, oligo.Normalize(args[0]), pos-1, aa, usage, a.cfg.Conditions)
			if err != nil {
				return err
			}
			return emitOne(a, report.ToCodonChoiceV1(pos-1, aa, h, ch), report.CodonTable)
		},
	}
	cmd.Flags().StringVar(&host, "host", "ecoli", "Codon usage table: "+strings.Join(mutagen.UsageNames(), ", ")+" or none")
	return cmd
}
