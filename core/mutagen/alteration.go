// core/mutagen/alteration.go
// Package mutagen evaluates primers that carry a deliberate change relative
// to their template: a substitution, an insertion or a deletion.
package mutagen

import (
	"fmt"
	"strings"

	"primerscore/core/oligo"
	"primerscore/core/thermo"
)

// Kind of alteration.
type Kind string

const (
	Substitution Kind = "substitution"
	Insertion    Kind = "insertion"
	Deletion     Kind = "deletion"
)

// Alteration is a change to the template, positions 0-based on the template.
//
//	Substitution: Bases replace len(Bases) template bases starting at Pos.
//	Insertion:    Bases are inserted before template[Pos].
//	Deletion:     Len template bases starting at Pos are removed.
type Alteration struct {
	Kind  Kind
	Pos   int
	Bases string
	Len   int
}

// Sub, Ins and Del build alterations.
func Sub(pos int, bases string) Alteration { return Alteration{Kind: Substitution, Pos: pos, Bases: bases} }
func Ins(pos int, bases string) Alteration { return Alteration{Kind: Insertion, Pos: pos, Bases: bases} }
func Del(pos, n int) Alteration            { return Alteration{Kind: Deletion, Pos: pos, Len: n} }

func (a Alteration) String() string {
	switch a.Kind {
	case Substitution:
		return fmt.Sprintf("%d>%s", a.Pos+1, a.Bases)
	case Insertion:
		return fmt.Sprintf("%dins%s", a.Pos+1, a.Bases)
	case Deletion:
		if a.Len > 1 {
			return fmt.Sprintf("%d_%ddel", a.Pos+1, a.Pos+a.Len)
		}
		return fmt.Sprintf("%ddel", a.Pos+1)
	}
	return string(a.Kind)
}

// span is the number of template bases the alteration touches.
func (a Alteration) span() int {
	switch a.Kind {
	case Substitution:
		return len(a.Bases)
	case Deletion:
		return a.Len
	}
	return 0
}

// check validates a against template t (already normalized).
func (a Alteration) check(t string) (Alteration, error) {
	a.Bases = oligo.Normalize(a.Bases)
	for i := 0; i < len(a.Bases); i++ {
		if !oligo.IsBase(a.Bases[i]) {
			return a, fmt.Errorf("%w: alteration base %q", oligo.ErrInvalidSequence, a.Bases[i])
		}
	}
	switch a.Kind {
	case Substitution, Insertion:
		if a.Bases == "" {
			return a, fmt.Errorf("%w: %s without bases", oligo.ErrInvalidSequence, a.Kind)
		}
	case Deletion:
		if a.Len <= 0 {
			return a, fmt.Errorf("%w: deletion length %d", oligo.ErrInvalidSequence, a.Len)
		}
	default:
		return a, fmt.Errorf("%w: unknown alteration kind %q", oligo.ErrInvalidSequence, a.Kind)
	}
	limit := len(t) - a.span()
	if a.Kind == Insertion {
		limit = len(t)
	}
	if a.Pos < 0 || a.Pos > limit {
		return a, fmt.Errorf("%w: %s at %d outside a %d nt template", oligo.ErrInvalidSequence, a.Kind, a.Pos+1, len(t))
	}
	return a, nil
}

// Apply returns the altered primer (5'→3').
func Apply(template string, a Alteration) (string, error) {
	t, err := oligo.Validate(template)
	if err != nil {
		return "", err
	}
	if a, err = a.check(t); err != nil {
		return "", err
	}
	switch a.Kind {
	case Substitution:
		return t[:a.Pos] + a.Bases + t[a.Pos+len(a.Bases):], nil
	case Insertion:
		return t[:a.Pos] + a.Bases + t[a.Pos:], nil
	default:
		return t[:a.Pos] + t[a.Pos+a.Len:], nil
	}
}

// Alignment returns the altered primer (top, 5'→3') over the template's
// complementary strand (bottom, 3'→5'), with thermo.Gap opposite inserted or
// deleted bases, ready for thermo.Context.DuplexTm.
func Alignment(template string, a Alteration) (top, bottom string, err error) {
	t, err := oligo.Validate(template)
	if err != nil {
		return "", "", err
	}
	if a, err = a.check(t); err != nil {
		return "", "", err
	}
	comp := oligo.Complement(t)
	switch a.Kind {
	case Substitution:
		top = t[:a.Pos] + a.Bases + t[a.Pos+len(a.Bases):]
		return top, comp, nil
	case Insertion:
		gap := strings.Repeat(string(thermo.Gap), len(a.Bases))
		return t[:a.Pos] + a.Bases + t[a.Pos:], comp[:a.Pos] + gap + comp[a.Pos:], nil
	default:
		gap := strings.Repeat(string(thermo.Gap), a.Len)
		return t[:a.Pos] + gap + t[a.Pos+a.Len:], comp, nil
	}
}
