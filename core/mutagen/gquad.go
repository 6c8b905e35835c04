// core/mutagen/gquad.go
package mutagen

import (
	"regexp"

	"primerscore/core/oligo"
)

// Risk grades G-quadruplex propensity.
type Risk int

const (
	RiskNone Risk = iota
	RiskModerate
	RiskHigh
)

func (r Risk) String() string {
	switch r {
	case RiskModerate:
		return "moderate"
	case RiskHigh:
		return "high"
	}
	return "none"
}

var (
	gTract = regexp.MustCompile(`G{3,}`)
	// four G-tracts joined by loops of 1–7 nt
	gQuadMotif = regexp.MustCompile(`(?:G{3,}[ACGT]{1,7}){3,}G{3,}`)
)

// GQuad is the G-quadruplex assessment of a sequence. Start/End locate the
// first full motif (End exclusive), -1 when there is none.
type GQuad struct {
	Risk   Risk
	Tracts int
	Start  int
	End    int
}

// GQuadruplexRisk flags G-rich repeats: a full four-tract motif is high risk,
// three or more G-tracts without one is moderate. Input is normalized; it is
// not otherwise validated.
func GQuadruplexRisk(seq string) GQuad {
	s := oligo.Normalize(seq)
	g := GQuad{Tracts: len(gTract.FindAllStringIndex(s, -1)), Start: -1, End: -1}
	if loc := gQuadMotif.FindStringIndex(s); loc != nil {
		g.Risk, g.Start, g.End = RiskHigh, loc[0], loc[1]
		return g
	}
	if g.Tracts >= 3 {
		g.Risk = RiskModerate
	}
	return g
}
