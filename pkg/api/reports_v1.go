// pkg/api/reports_v1.go
// Package api holds the stable JSON/JSONL schema primerscore writes.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
package api

// TmV1 is one melting-temperature evaluation.
type TmV1 struct {
	Seq               string  `json:"seq"`
	Length            int     `json:"length"`
	Tm                float64 `json:"tm"`
	DH                float64 `json:"dh"`      // kcal/mol
	DS                float64 `json:"ds"`      // cal/K·mol at 1 M Na+
	DSSalt            float64 `json:"ds_salt"` // salt corrected
	DG                float64 `json:"dg"`      // at the requested temperature
	GC                float64 `json:"gc"`
	SelfComplementary bool    `json:"self_complementary,omitempty"`
	Mismatches        int     `json:"mismatches,omitempty"`
	ParamID           string  `json:"param_id"`
}

// RegionV1 is one structural element of a fold.
type RegionV1 struct {
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Len   int    `json:"len"`
}

// FoldV1 is a hairpin or dimer prediction.
type FoldV1 struct {
	Mode     string     `json:"mode"` // "hairpin" | "dimer" | "end-dimer"
	Seq      string     `json:"seq"`
	Partner  string     `json:"partner,omitempty"`
	DG       float64    `json:"dg"`
	Exists   bool       `json:"exists"`
	Notation string     `json:"notation"`
	Pairs    int        `json:"pairs"`
	Regions  []RegionV1 `json:"regions,omitempty"`
	Severity string     `json:"severity,omitempty"` // dimers only
	ParamID  string     `json:"param_id"`
}

// ComponentV1 is one metric's share of a composite score.
type ComponentV1 struct {
	Metric       string  `json:"metric"`
	Value        float64 `json:"value"`
	Sub          float64 `json:"sub"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// ScoreV1 is a composite score with the metric bundle behind it.
type ScoreV1 struct {
	ID        string        `json:"id,omitempty"`
	Seq       string        `json:"seq"`
	Partner   string        `json:"partner,omitempty"`
	Preset    string        `json:"preset"`
	Score     float64       `json:"score"`
	Class     string        `json:"class"`
	Breakdown []ComponentV1 `json:"breakdown"`
	Error     string        `json:"error,omitempty"` // batch rows that failed
}

// HitV1 is one off-target binding site.
type HitV1 struct {
	Target     string  `json:"target"`
	Position   int     `json:"position"`
	Strand     string  `json:"strand"`
	Mismatches int     `json:"mismatches"`
	Weight     float64 `json:"weight"`
}

// OffTargetV1 summarizes a primer's off-target search.
type OffTargetV1 struct {
	Seq        string  `json:"seq"`
	Penalty    float64 `json:"penalty"`
	Counted    int     `json:"counted"`
	Intended   int     `json:"intended"`
	Ignored    int     `json:"ignored"`
	ByMismatch []int   `json:"by_mismatch"`
	Hits       []HitV1 `json:"hits"`
}

// MutationV1 is a mismatch-aware evaluation of an altered primer.
type MutationV1 struct {
	Template   string  `json:"template"`
	Alteration string  `json:"alteration"`
	Primer     string  `json:"primer"`
	Tm         float64 `json:"tm"`
	MatchedTm  float64 `json:"matched_tm"`
	DeltaTm    float64 `json:"delta_tm"`
	Mismatches int     `json:"mismatches"`
	HairpinDG  float64 `json:"hairpin_dg"`
	Hairpin    string  `json:"hairpin"`
	GQuad      GQuadV1 `json:"gquad"`
	ParamID    string  `json:"param_id"`
}

// GQuadV1 is the G-quadruplex heuristic for one sequence.
type GQuadV1 struct {
	Seq    string `json:"seq,omitempty"`
	Risk   string `json:"risk"`
	Tracts int    `json:"tracts"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// CodonV1 is one synonymous codon candidate.
type CodonV1 struct {
	Codon   string  `json:"codon"`
	Changes int     `json:"changes"`
	Tm      float64 `json:"tm"`
	Usage   float64 `json:"usage"`
	Error   string  `json:"error,omitempty"`
}

// CodonChoiceV1 ranks synonymous codons for one amino-acid change.
type CodonChoiceV1 struct {
	Position   int       `json:"position"`
	AminoAcid  string    `json:"amino_acid"`
	Host       string    `json:"host,omitempty"`
	Best       CodonV1   `json:"best"`
	Candidates []CodonV1 `json:"candidates"`
}
