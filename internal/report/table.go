// internal/report/table.go
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"primerscore/pkg/api"
)

// Color variables for console output.
var (
	goodColor    = color.New(color.FgGreen, color.Bold)
	okColor      = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
	dangerColor  = color.New(color.FgRed, color.Bold)
	neutralColor = color.New(color.FgHiBlack)
)

// Label colors a classification, dimer severity or G4 risk. Unknown labels
// pass through.
func Label(s string) string {
	switch s {
	case "excellent":
		return goodColor.Sprint(s)
	case "good", "none":
		return okColor.Sprint(s)
	case "acceptable", "mild", "moderate":
		return warnColor.Sprint(s)
	case "poor", "severe", "high":
		return dangerColor.Sprint(s)
	case "":
		return ""
	default:
		return neutralColor.Sprint(s)
	}
}

func f2(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
func f3(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }

// render writes a right-aligned table.
func render(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// TmTable prints melting temperatures.
func TmTable(w io.Writer, rs []api.TmV1) error {
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, []string{r.Seq, strconv.Itoa(r.Length), f2(r.Tm), f2(r.GC), f2(r.DH), f2(r.DSSalt), f2(r.DG), r.ParamID})
	}
	return render(w, []string{"Sequence", "Len", "Tm °C", "GC %", "ΔH", "ΔS salt", "ΔG", "Params"}, rows)
}

// FoldTable prints folds; dimers carry their severity.
func FoldTable(w io.Writer, rs []api.FoldV1) error {
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, []string{r.Mode, r.Seq, r.Partner, f2(r.DG), strconv.Itoa(r.Pairs), Label(r.Severity), r.Notation})
	}
	return render(w, []string{"Mode", "Sequence", "Partner", "ΔG", "Pairs", "Severity", "Structure"}, rows)
}

// ScoreTable prints one line per scored primer.
func ScoreTable(w io.Writer, rs []api.ScoreV1) error {
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		if r.Error != "" {
			rows = append(rows, []string{r.ID, r.Seq, "-", Label("error"), r.Error})
			continue
		}
		rows = append(rows, []string{r.ID, r.Seq, f3(r.Score), Label(r.Class), r.Preset})
	}
	return render(w, []string{"ID", "Sequence", "Score", "Class", "Preset"}, rows)
}

// BreakdownTable prints the per-metric contributions of one score.
func BreakdownTable(w io.Writer, r api.ScoreV1) error {
	rows := make([][]string, 0, len(r.Breakdown)+1)
	for _, p := range r.Breakdown {
		rows = append(rows, []string{p.Metric, f2(p.Value), f3(p.Sub), f3(p.Weight), f3(p.Contribution)})
	}
	rows = append(rows, []string{"total", "", "", "", f3(r.Score)})
	if err := render(w, []string{"Metric", "Value", "Sub", "Weight", "Contribution"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %s (%s)\n", r.Seq, Label(r.Class), r.Preset)
	return err
}

// OffTargetTable prints hits followed by the penalty.
func OffTargetTable(w io.Writer, r api.OffTargetV1) error {
	rows := make([][]string, 0, len(r.Hits))
	for _, h := range r.Hits {
		rows = append(rows, []string{h.Target, strconv.Itoa(h.Position), h.Strand, strconv.Itoa(h.Mismatches), f3(h.Weight)})
	}
	if err := render(w, []string{"Target", "Position", "Strand", "Mismatches", "Weight"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "penalty %s over %d unintended hits (%d intended, %d ignored)\n",
		f3(r.Penalty), r.Counted, r.Intended, r.Ignored)
	return err
}

// MutationTable prints altered-primer evaluations.
func MutationTable(w io.Writer, rs []api.MutationV1) error {
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, []string{r.Alteration, r.Primer, f2(r.Tm), f2(r.DeltaTm), f2(r.HairpinDG), Label(r.GQuad.Risk)})
	}
	return render(w, []string{"Alteration", "Primer", "Tm °C", "ΔTm", "Hairpin ΔG", "G4"}, rows)
}

// GQuadTable prints G-quadruplex risk per sequence.
func GQuadTable(w io.Writer, rs []api.GQuadV1) error {
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		span := "-"
		if r.Start >= 0 {
			span = fmt.Sprintf("%d-%d", r.Start, r.End)
		}
		rows = append(rows, []string{r.Seq, Label(r.Risk), strconv.Itoa(r.Tracts), span})
	}
	return render(w, []string{"Sequence", "Risk", "G-tracts", "Motif"}, rows)
}

// CodonTable prints ranked codon candidates, best first.
func CodonTable(w io.Writer, r api.CodonChoiceV1) error {
	rows := make([][]string, 0, len(r.Candidates))
	for i, c := range r.Candidates {
		tm := f2(c.Tm)
		if c.Error != "" {
			tm = "n/a"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), c.Codon, strconv.Itoa(c.Changes), tm, f2(c.Usage)})
	}
	return render(w, []string{"Rank", "Codon", "Changes", "Tm °C", "Usage ‰"}, rows)
}

// KeyValueTable prints two-column name/value rows.
func KeyValueTable(w io.Writer, headers [2]string, rows [][2]string) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r[0], r[1]})
	}
	return render(w, headers[:], out)
}
