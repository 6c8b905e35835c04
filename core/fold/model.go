// core/fold/model.go
package fold

import (
	"math"

	"primerscore/core/oligo"
	"primerscore/core/params"
	"primerscore/core/thermo"
)

var inf = math.Inf(1)

// model evaluates energy terms (kcal/mol) at one temperature and salt.
type model struct {
	set  *params.Set
	c    params.Constants
	tK   float64
	salt float64 // ΔS correction per Watson–Crick stack, cal/(K·mol)
}

func newModel(set *params.Set, cond thermo.Conditions) *model {
	return &model{
		set:  set,
		c:    set.Constants(),
		tK:   cond.TempC + 273.15,
		salt: set.SaltEntropy(1, cond.NaM, cond.MgM, cond.DNTPM),
	}
}

func (m *model) dg(t params.Thermo) float64 { return t.DH - m.tK*t.DS/1000.0 }

// scaled converts a ΔG37 loop penalty to the model temperature.
func (m *model) scaled(dg37 float64) float64 { return dg37 * m.tK / params.T37 }

// stack is the free energy of top2 (5'→3') over bot2 (3'→5'). Matched stacks
// are salt corrected; stacks with a mismatched pair use the mismatch table.
// Untabulated combinations are impossible (+Inf).
func (m *model) stack(t0, t1, b0, b1 byte) float64 {
	top, bot := string([]byte{t0, t1}), string([]byte{b0, b1})
	if oligo.WC(t0, b0) && oligo.WC(t1, b1) {
		v, err := m.set.NN(top, bot)
		if err != nil {
			return inf
		}
		v.DS += m.salt
		return m.dg(v)
	}
	v, err := m.set.Stack(top, bot)
	if err != nil {
		return inf
	}
	return m.dg(v)
}

func (m *model) closingAT(a, b byte) float64 { return m.dg(m.set.ClosingAT(a, b)) }

// interior prices the loop between outer pair (a5,b5) and inner pair
// (a3,b3) with n1 unpaired top and n2 unpaired bottom bases. The x1/y1
// bases are the top/bottom neighbors just inside the outer pair and x2/y2
// just inside the inner pair, used by 1×1 loops.
func (m *model) interior(a5, b5, a3, b3, x1, y1, x2, y2 byte, n1, n2 int) float64 {
	switch {
	case n1 == 0 || n2 == 0:
		n := n1 + n2
		if n == 1 {
			return m.stack(a5, a3, b5, b3) + m.scaled(m.set.BulgeLoop(1))
		}
		return m.scaled(m.set.BulgeLoop(n)) + m.closingAT(a5, b5) + m.closingAT(a3, b3)
	case n1 == 1 && n2 == 1:
		if oligo.WC(x1, y1) {
			// a matched "loop" is a stack, priced elsewhere
			return inf
		}
		g := m.stack(a5, x1, b5, y1) + m.stack(x2, a3, y2, b3)
		if !math.IsInf(g, 1) {
			return g
		}
		fallthrough
	default:
		return m.scaled(m.set.InternalLoop(n1, n2)) + m.closingAT(a5, b5) + m.closingAT(a3, b3)
	}
}

func (m *model) hairpinLoop(a, b byte, n int) float64 {
	if n < MinLoop {
		return inf
	}
	return m.scaled(m.set.HairpinLoop(n)) + m.closingAT(a, b)
}

func (m *model) multiClosing() float64 { return m.scaled(m.c.MultiA + m.c.MultiB) }
func (m *model) multiBranch() float64  { return m.scaled(m.c.MultiB) }
func (m *model) multiUnpaired() float64 {
	return m.scaled(m.c.MultiC)
}

// dangle returns the dangling-end free energy, or 0 when the set has none
// for the key.
func (m *model) dangle(top, bot string) float64 {
	if !m.set.HasDangles() {
		return 0
	}
	v, err := m.set.Dangle(top, bot)
	if err != nil {
		return 0
	}
	return m.dg(v)
}

// cell is one DP entry: best free energy, paired-base count and the move
// that produced it.
type cell struct {
	dg    float64
	pairs int
	op    op
	k, l  int
}

type op uint8

const (
	opNone op = iota
	opHairpin
	opStack
	opInterior
	opMulti
	opBranch
	opSkipLeft
	opSkipRight
	opSplit
	opStart
	opPair
)

var empty = cell{dg: inf}

// better reports whether c beats o: lower ΔG, or equal ΔG within TieEpsilon
// and fewer paired bases.
func (c cell) better(o cell) bool {
	if math.IsInf(c.dg, 1) {
		return false
	}
	if c.dg < o.dg-TieEpsilon {
		return true
	}
	return math.Abs(c.dg-o.dg) <= TieEpsilon && c.pairs < o.pairs
}

func (c cell) ok() bool { return !math.IsInf(c.dg, 1) }
