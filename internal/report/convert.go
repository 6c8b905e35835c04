// internal/report/convert.go
package report

import (
	"math"

	"primerscore/core/dimer"
	"primerscore/core/fold"
	"primerscore/core/mutagen"
	"primerscore/core/score"
	"primerscore/core/thermo"
	"primerscore/pkg/api"
)

// num maps values JSON cannot carry (NaN, ±Inf) to 0.
func num(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// ToTmV1 converts a Tm result; dgTempC is the temperature ΔG is reported at.
func ToTmV1(seq string, r thermo.Result, gc, dgTempC float64) api.TmV1 {
	return api.TmV1{
		Seq:               seq,
		Length:            len(seq),
		Tm:                num(r.Tm),
		DH:                num(r.DH),
		DS:                num(r.DS),
		DSSalt:            num(r.DSSalt),
		DG:                num(r.DeltaG(dgTempC)),
		GC:                num(gc),
		SelfComplementary: r.SelfComplementary,
		Mismatches:        r.Mismatches,
		ParamID:           r.ParamID,
	}
}

// ToFoldV1 converts a fold; sev is set for dimers.
func ToFoldV1(seq, partner string, r fold.Result, sev *dimer.Severity) api.FoldV1 {
	out := api.FoldV1{
		Mode:     string(r.Mode),
		Seq:      seq,
		Partner:  partner,
		DG:       num(r.DG),
		Exists:   r.Exists,
		Notation: r.Structure.Notation,
		Pairs:    r.PairCount(),
		ParamID:  r.ParamID,
	}
	for _, g := range r.Structure.Regions {
		out.Regions = append(out.Regions, api.RegionV1{Kind: string(g.Kind), Start: g.Start, End: g.End, Len: g.Len})
	}
	if sev != nil {
		out.Severity = sev.String()
	}
	return out
}

// ToDimerV1 converts a dimer report.
func ToDimerV1(a, b string, r dimer.Report) api.FoldV1 {
	return ToFoldV1(a, b, r.Fold, &r.Severity)
}

// ToScoreV1 converts a composite score.
func ToScoreV1(id, seq, partner, preset string, c score.Composite) api.ScoreV1 {
	out := api.ScoreV1{
		ID:        id,
		Seq:       seq,
		Partner:   partner,
		Preset:    preset,
		Score:     num(c.Score),
		Class:     string(c.Class),
		Breakdown: make([]api.ComponentV1, 0, len(c.Breakdown)),
	}
	for _, p := range c.Breakdown {
		out.Breakdown = append(out.Breakdown, api.ComponentV1{
			Metric:       string(p.Metric),
			Value:        num(p.Value),
			Sub:          num(p.Sub),
			Weight:       num(p.Weight),
			Contribution: num(p.Contribution),
		})
	}
	return out
}

// ToOffTargetV1 converts a search and its specificity summary.
func ToOffTargetV1(seq string, hits []dimer.Hit, res dimer.SpecificityResult) api.OffTargetV1 {
	out := api.OffTargetV1{
		Seq:        seq,
		Penalty:    num(res.Penalty),
		Counted:    res.Counted,
		Intended:   res.Intended,
		Ignored:    res.Ignored,
		ByMismatch: append([]int(nil), res.ByMismatch[:]...),
		Hits:       make([]api.HitV1, 0, len(hits)),
	}
	for _, h := range hits {
		out.Hits = append(out.Hits, api.HitV1{
			Target:     h.Target,
			Position:   h.Position,
			Strand:     string(h.Strand),
			Mismatches: h.Mismatches,
			Weight:     dimer.Weight(h.Mismatches),
		})
	}
	return out
}

// ToGQuadV1 converts the G-quadruplex heuristic.
func ToGQuadV1(seq string, g mutagen.GQuad) api.GQuadV1 {
	return api.GQuadV1{Seq: seq, Risk: g.Risk.String(), Tracts: g.Tracts, Start: g.Start, End: g.End}
}

// ToMutationV1 converts an altered-primer evaluation.
func ToMutationV1(template string, ev mutagen.Evaluation) api.MutationV1 {
	return api.MutationV1{
		Template:   template,
		Alteration: ev.Alteration.String(),
		Primer:     ev.Primer,
		Tm:         num(ev.Tm.Tm),
		MatchedTm:  num(ev.MatchedTm),
		DeltaTm:    num(ev.Tm.Tm - ev.MatchedTm),
		Mismatches: ev.Tm.Mismatches,
		HairpinDG:  num(ev.Hairpin.DG),
		Hairpin:    ev.Hairpin.Structure.Notation,
		GQuad:      ToGQuadV1("", ev.GQuad),
		ParamID:    ev.Tm.ParamID,
	}
}

func toCodonV1(c mutagen.Candidate) api.CodonV1 {
	out := api.CodonV1{Codon: c.Codon, Changes: c.Changes, Tm: num(c.Tm), Usage: num(c.Usage)}
	if c.Err != nil {
		out.Error = c.Err.Error()
	}
	return out
}

// ToCodonChoiceV1 converts a codon ranking; pos is 0-based.
func ToCodonChoiceV1(pos int, aa byte, host string, ch mutagen.Choice) api.CodonChoiceV1 {
	out := api.CodonChoiceV1{
		Position:   pos,
		AminoAcid:  string(aa),
		Host:       host,
		Best:       toCodonV1(ch.Best),
		Candidates: make([]api.CodonV1, 0, len(ch.Candidates)),
	}
	for _, c := range ch.Candidates {
		out.Candidates = append(out.Candidates, toCodonV1(c))
	}
	return out
}
