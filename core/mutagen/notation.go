// core/mutagen/notation.go
package mutagen

import (
	"fmt"
	"regexp"
	"strconv"

	"primerscore/core/oligo"
)

var (
	subRe = regexp.MustCompile(`^(\d+)([ACGT]*)>([ACGT]+)$`)
	insRe = regexp.MustCompile(`^(\d+)INS([ACGT]+)$`)
	delRe = regexp.MustCompile(`^(\d+)(?:_(\d+))?DEL$`)
)

// Parse reads a compact 1-based notation (case-insensitive):
//
//	12>G, 12A>G, 12>GCT   substitution at 12
//	12insTT               insertion before base 12
//	12del, 12_14del       deletion of base 12, of bases 12..14
//
// When the reference bases are given (12A>G) they are not checked here; see
// ParseFor.
func Parse(s string) (Alteration, error) {
	s = oligo.Normalize(s)
	bad := func() (Alteration, error) {
		return Alteration{}, fmt.Errorf("%w: cannot parse alteration %q", oligo.ErrInvalidSequence, s)
	}
	if m := subRe.FindStringSubmatch(s); m != nil {
		pos, err := position(m[1])
		if err != nil || (m[2] != "" && len(m[2]) != len(m[3])) {
			return bad()
		}
		return Sub(pos, m[3]), nil
	}
	if m := insRe.FindStringSubmatch(s); m != nil {
		pos, err := position(m[1])
		if err != nil {
			return bad()
		}
		return Ins(pos, m[2]), nil
	}
	if m := delRe.FindStringSubmatch(s); m != nil {
		pos, err := position(m[1])
		if err != nil {
			return bad()
		}
		n := 1
		if m[2] != "" {
			end, err := position(m[2])
			if err != nil || end < pos {
				return bad()
			}
			n = end - pos + 1
		}
		return Del(pos, n), nil
	}
	return bad()
}

// ParseFor is Parse plus a check that any stated reference bases match the
// template.
func ParseFor(template, s string) (Alteration, error) {
	a, err := Parse(s)
	if err != nil {
		return a, err
	}
	t, err := oligo.Validate(template)
	if err != nil {
		return a, err
	}
	if m := subRe.FindStringSubmatch(oligo.Normalize(s)); m != nil && m[2] != "" {
		end := a.Pos + len(m[2])
		if end > len(t) || t[a.Pos:end] != m[2] {
			return a, fmt.Errorf("%w: template has no %s at %d", oligo.ErrInvalidSequence, m[2], a.Pos+1)
		}
	}
	if _, err := a.check(t); err != nil {
		return a, err
	}
	return a, nil
}

func position(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("bad position %q", s)
	}
	return n - 1, nil
}
