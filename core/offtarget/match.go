// core/offtarget/match.go
package offtarget

import "bytes"

// match is one placement of a pattern on a sequence.
type match struct {
	pos        int
	mismatches int
}

// baseMatch reports whether reference base g equals pattern base p. Anything
// outside A/C/G/T on the reference (N blocks, soft gaps) is a mismatch.
func baseMatch(g, p byte) bool {
	switch g {
	case 'A', 'C', 'G', 'T':
		return g == p
	}
	return false
}

// findMatches scans seq for pat with at most maxMM mismatches. Mismatches in
// the protected window are rejected outright: the last `window` pattern
// bases when protectEnd is true, else the first `window` (the primer's 3'
// end read on the minus strand). capHits == 0 means unlimited.
func findMatches(seq, pat []byte, maxMM, capHits, window int, protectEnd bool) []match {
	pl := len(pat)
	if pl == 0 || len(seq) < pl {
		return nil
	}

	if maxMM == 0 {
		var out []match
		for i := 0; ; {
			j := bytes.Index(seq[i:], pat)
			if j < 0 {
				break
			}
			out = append(out, match{pos: i + j})
			if capHits > 0 && len(out) >= capHits {
				break
			}
			i += j + 1
		}
		return out
	}

	protected := func(j int) bool {
		if window <= 0 {
			return false
		}
		if protectEnd {
			return j >= pl-window
		}
		return j < window
	}

	var out []match
window:
	for pos := 0; pos+pl <= len(seq); pos++ {
		mm := 0
		for j := 0; j < pl; j++ {
			if baseMatch(seq[pos+j], pat[j]) {
				continue
			}
			if protected(j) {
				continue window
			}
			mm++
			if mm > maxMM {
				continue window
			}
		}
		out = append(out, match{pos: pos, mismatches: mm})
		if capHits > 0 && len(out) >= capHits {
			break
		}
	}
	return out
}
