// core/oligo/seq.go
package oligo

import (
	"strings"

	"github.com/TimothyStiles/poly/transform"
)

// ReverseComplement of an A/C/G/T string.
func ReverseComplement(s string) string {
	return transform.ReverseComplement(s)
}

// Complement returns the per-position Watson–Crick complement (no reverse),
// i.e. the partner strand written 3'→5' under s.
func Complement(s string) string {
	return Reverse(ReverseComplement(s))
}

// Reverse returns s reversed.
func Reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// CompBase returns the Watson–Crick partner of b, or 'N'.
func CompBase(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	default:
		return 'N'
	}
}

// WC reports whether a and b form a Watson–Crick pair.
func WC(a, b byte) bool {
	return IsBase(a) && CompBase(a) == b
}

// IsPalindromic reports whether s equals its own reverse complement.
func IsPalindromic(s string) bool {
	return s != "" && s == ReverseComplement(s)
}

// GC returns the fraction of G/C symbols in s (0 for empty input).
func GC(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	n := strings.Count(s, "G") + strings.Count(s, "C")
	return float64(n) / float64(len(s))
}

// MaxRun returns the length of the longest single-base run in s.
func MaxRun(s string) int {
	best, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if i > 0 && s[i] == s[i-1] {
			cur++
		} else {
			cur = 1
		}
		if cur > best {
			best = cur
		}
	}
	return best
}

// ThreePrimeGC counts G/C among the last n bases of s.
func ThreePrimeGC(s string, n int) int {
	if n > len(s) {
		n = len(s)
	}
	c := 0
	for _, b := range []byte(s[len(s)-n:]) {
		if b == 'G' || b == 'C' {
			c++
		}
	}
	return c
}

// HasGCClamp reports whether the 3' terminal base is G or C.
func HasGCClamp(s string) bool {
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	return last == 'G' || last == 'C'
}
