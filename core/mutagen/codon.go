// core/mutagen/codon.go
package mutagen

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"primerscore/core/oligo"
	"primerscore/core/params"
	"primerscore/core/thermo"
)

// standardCode maps DNA codons to one-letter amino acids; '*' is stop.
var standardCode = map[string]byte{}

func init() {
	const bases = "TCAG"
	const aas = "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"
	i := 0
	for _, a := range bases {
		for _, b := range bases {
			for _, c := range bases {
				standardCode[string([]rune{a, b, c})] = aas[i]
				i++
			}
		}
	}
}

// Translate returns the amino acid of codon, or 0 when it is not a codon.
func Translate(codon string) byte { return standardCode[strings.ToUpper(codon)] }

// Synonyms lists the codons of aa (one-letter, '*' for stop), sorted.
func Synonyms(aa byte) []string {
	if aa >= 'a' && aa <= 'z' {
		aa -= 'a' - 'A'
	}
	var out []string
	for c, a := range standardCode {
		if a == aa {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// CodonUsage is codon frequency per thousand codons in a host.
type CodonUsage map[string]float64

// RareCodon is the usage (per thousand) below which a codon is avoided when
// an alternative with the same number of changes exists.
const RareCodon = 5.0

// Usage returns a built-in host table: "ecoli", "human" or "yeast".
func Usage(host string) (CodonUsage, error) {
	u, ok := usageTables[strings.ToLower(host)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown codon usage %q (known: %v)", params.ErrInvalidConfiguration, host, UsageNames())
	}
	return u, nil
}

// UsageNames lists the built-in hosts.
func UsageNames() []string {
	out := make([]string, 0, len(usageTables))
	for k := range usageTables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Candidate is one synonymous codon considered by SelectCodon.
type Candidate struct {
	Codon   string
	Changes int     // bases differing from the template codon
	Tm      float64 // mismatch-aware Tm of the primer carrying the codon; NaN if unsupported
	Usage   float64
	Err     error
}

// Choice is the outcome of SelectCodon; Best is Candidates[0].
type Choice struct {
	Best       Candidate
	Candidates []Candidate
}

// SelectCodon picks the codon for aa at template[pos:pos+3] that least
// destabilizes the primer: fewest changed bases, then avoiding rare codons,
// then highest mismatch-aware Tm, then highest host usage. usage may be nil.
func SelectCodon(ctx *thermo.Context, template string, pos int, aa byte, usage CodonUsage, cond thermo.Conditions) (Choice, error) {
	if ctx == nil {
		ctx = thermo.Default()
	}
	t, err := oligo.Validate(template)
	if err != nil {
		return Choice{}, err
	}
	if pos < 0 || pos+3 > len(t) {
		return Choice{}, fmt.Errorf("%w: codon at %d outside a %d nt template", oligo.ErrInvalidSequence, pos+1, len(t))
	}
	syn := Synonyms(aa)
	if len(syn) == 0 {
		return Choice{}, fmt.Errorf("%w: unknown amino acid %q", params.ErrInvalidConfiguration, aa)
	}
	orig := t[pos : pos+3]

	cands := make([]Candidate, 0, len(syn))
	for _, c := range syn {
		cand := Candidate{Codon: c, Changes: hamming(orig, c), Usage: usage[c], Tm: math.NaN()}
		res, err := Tm(ctx, t, Sub(pos, c), cond)
		if err != nil {
			cand.Err = err
		} else {
			cand.Tm = res.Tm
		}
		cands = append(cands, cand)
	}
	sort.SliceStable(cands, func(i, j int) bool { return rank(cands[i], cands[j], usage != nil) })
	if cands[0].Err != nil {
		return Choice{Candidates: cands}, cands[0].Err
	}
	return Choice{Best: cands[0], Candidates: cands}, nil
}

// rank orders candidates best first; failed candidates go last.
func rank(a, b Candidate, haveUsage bool) bool {
	if (a.Err == nil) != (b.Err == nil) {
		return a.Err == nil
	}
	if a.Changes != b.Changes {
		return a.Changes < b.Changes
	}
	if haveUsage {
		ra, rb := a.Usage < RareCodon, b.Usage < RareCodon
		if ra != rb {
			return !ra
		}
	}
	if a.Err == nil && math.Abs(a.Tm-b.Tm) > 1e-9 {
		return a.Tm > b.Tm
	}
	if a.Usage != b.Usage {
		return a.Usage > b.Usage
	}
	return a.Codon < b.Codon
}

func hamming(a, b string) int {
	n := 0
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}
