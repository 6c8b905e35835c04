// core/thermo/duplex.go
package thermo

import (
	"fmt"

	"primerscore/core/oligo"
	"primerscore/core/params"
)

// Gap marks a column where one strand has no base (bulge).
const Gap = '-'

// duplex is the 1 M Na+ nearest-neighbor sum of an aligned duplex.
type duplex struct {
	th         params.Thermo
	pairs      int  // columns with a base on both strands, inside the core
	symmetric  bool // self-complementary, no alterations
	mismatches int
	bulged     int // unpaired bases in bulges/internal loops
	maxRun     int // longest run of adjacent mismatched columns
}

// evalDuplex sums stacks over top (5'→3') aligned to bot (3'→5').
//
// The core is the span between the first and last Watson–Crick column; columns
// outside it are frayed ends and contribute only terminal-proximity penalties.
// Inside the core, a column with a base on both strands stacks with its
// neighbor (WC, single-mismatch or tabulated tandem-mismatch parameters);
// gap columns form bulges (one strand) or internal loops (both strands).
func evalDuplex(set *params.Set, top, bot string) (duplex, error) {
	var d duplex
	if len(top) != len(bot) {
		return d, fmt.Errorf("%w: strands differ in length (%d vs %d)", oligo.ErrInvalidSequence, len(top), len(bot))
	}
	for i := 0; i < len(top); i++ {
		a, b := top[i], bot[i]
		if a == Gap && b == Gap {
			return d, fmt.Errorf("%w: empty column at %d", oligo.ErrInvalidSequence, i+1)
		}
		if (a != Gap && !oligo.IsBase(a)) || (b != Gap && !oligo.IsBase(b)) {
			return d, fmt.Errorf("%w: invalid symbol at column %d (%c/%c)", oligo.ErrInvalidSequence, i+1, a, b)
		}
	}
	lo, hi := -1, -1
	for i := 0; i < len(top); i++ {
		if oligo.WC(top[i], bot[i]) {
			if lo < 0 {
				lo = i
			}
			hi = i
		}
	}
	if lo < 0 || hi == lo {
		return d, fmt.Errorf("%w: fewer than two Watson–Crick pairs", oligo.ErrInvalidSequence)
	}
	c := set.Constants()

	th := set.Initiation(top[lo], bot[lo], top[hi], bot[hi])
	d.pairs = 1
	prev := lo
	run := 0
	for j := lo + 1; j <= hi; j++ {
		if top[j] == Gap || bot[j] == Gap {
			continue
		}
		d.pairs++
		if oligo.WC(top[j], bot[j]) {
			run = 0
		} else {
			d.mismatches++
			run++
			if run > d.maxRun {
				d.maxRun = run
			}
		}
		if j == prev+1 {
			st, err := stack(set, top[prev:j+1], bot[prev:j+1])
			if err != nil {
				return d, err
			}
			th = th.Add(st)
			prev = j
			continue
		}
		n1, n2 := 0, 0
		for k := prev + 1; k < j; k++ {
			if top[k] != Gap {
				n1++
			} else {
				n2++
			}
		}
		d.bulged += n1 + n2
		loop, err := loopThermo(set, top[prev], bot[prev], top[j], bot[j], n1, n2)
		if err != nil {
			return d, err
		}
		th = th.Add(loop)
		prev = j
	}
	if d.maxRun > c.MaxMismatchRun {
		return d, fmt.Errorf("%w: %d adjacent mismatches exceed the supported run of %d",
			params.ErrUnsupportedParameters, d.maxRun, c.MaxMismatchRun)
	}

	th = th.Add(consecutivePenalty(top[lo:hi+1], bot[lo:hi+1], c))
	th = th.Add(proximityPenalty(top, bot, c))

	d.symmetric = lo == 0 && hi == len(top)-1 && d.mismatches == 0 && d.bulged == 0 &&
		oligo.IsPalindromic(top)
	if d.symmetric {
		th = th.Add(c.Symmetry)
	}
	d.th = th
	return d, nil
}

// stack returns the parameters of two adjacent base-bearing columns. Two
// mismatched pairs only stack where the set tabulates the tandem; otherwise
// they contribute nothing here and pay the consecutive-mismatch penalty.
func stack(set *params.Set, top2, bot2 string) (params.Thermo, error) {
	if !oligo.WC(top2[0], bot2[0]) && !oligo.WC(top2[1], bot2[1]) {
		if v, err := set.Mismatch(top2, bot2); err == nil {
			return v, nil
		}
		return params.Thermo{}, nil
	}
	return set.Stack(top2, bot2)
}

// loopThermo prices n1 unpaired top bases and n2 unpaired bottom bases closed
// by pairs (a5,b5) and (a3,b3). A single-base bulge keeps the flanking stack.
func loopThermo(set *params.Set, a5, b5, a3, b3 byte, n1, n2 int) (params.Thermo, error) {
	if n1 == 0 || n2 == 0 {
		n := n1 + n2
		if n == 1 {
			st, err := stack(set, string([]byte{a5, a3}), string([]byte{b5, b3}))
			if err != nil {
				return params.Thermo{}, err
			}
			return st.Add(params.Entropic(set.BulgeLoop(1))), nil
		}
		return params.Entropic(set.BulgeLoop(n)).Add(set.ClosingAT(a5, b5)).Add(set.ClosingAT(a3, b3)), nil
	}
	return params.Entropic(set.InternalLoop(n1, n2)).Add(set.ClosingAT(a5, b5)).Add(set.ClosingAT(a3, b3)), nil
}

// consecutivePenalty charges every mismatch that directly follows another.
func consecutivePenalty(top, bot string, c params.Constants) params.Thermo {
	extra := 0
	for i := 1; i < len(top); i++ {
		if isMismatch(top[i], bot[i]) && isMismatch(top[i-1], bot[i-1]) {
			extra++
		}
	}
	if extra == 0 {
		return params.Thermo{}
	}
	return params.Entropic(c.ConsecutiveMismatch * float64(extra))
}

// proximityPenalty charges alterations (mismatch or gap columns) within
// TerminalWindow columns of either end.
func proximityPenalty(top, bot string, c params.Constants) params.Thermo {
	var dg float64
	n := len(top)
	for i := 0; i < n; i++ {
		if oligo.WC(top[i], bot[i]) {
			continue
		}
		if i < c.TerminalWindow {
			dg += c.TerminalProximity5
		}
		if n-1-i < c.TerminalWindow {
			dg += c.TerminalProximity3
		}
	}
	if dg == 0 {
		return params.Thermo{}
	}
	return params.Entropic(dg)
}

func isMismatch(a, b byte) bool {
	return a != Gap && b != Gap && !oligo.WC(a, b)
}
