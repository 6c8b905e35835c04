// core/oligo/validate.go
package oligo

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrInvalidSequence reports an empty sequence, a symbol outside {A,C,G,T},
// or a sequence too short for the requested operation.
var ErrInvalidSequence = errors.New("invalid sequence")

// Normalize removes spaces/quotes and uppercases bases.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

// Validate returns a normalized sequence or an error if any char is not A/C/G/T.
// Ambiguity codes (N, R, Y, ...) are rejected rather than treated as any-base.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return s, fmt.Errorf("%w: empty oligo", ErrInvalidSequence)
	}
	for i := 0; i < len(s); i++ {
		if !IsBase(s[i]) {
			return "", fmt.Errorf("%w: invalid base %q at %d; allowed: A C G T", ErrInvalidSequence, s[i], i+1)
		}
	}
	return s, nil
}

// ValidateMin is Validate plus a minimum length check.
func ValidateMin(raw string, minLen int) (string, error) {
	s, err := Validate(raw)
	if err != nil {
		return "", err
	}
	if len(s) < minLen {
		return "", fmt.Errorf("%w: length %d below minimum %d", ErrInvalidSequence, len(s), minLen)
	}
	return s, nil
}

// IsBase reports whether b is one of the canonical uppercase bases.
func IsBase(b byte) bool { return b == 'A' || b == 'C' || b == 'G' || b == 'T' }
