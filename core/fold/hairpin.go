// core/fold/hairpin.go
package fold

import "primerscore/core/oligo"

// hairpinTables are the Zuker-style tables over substrings [i, j]:
// v holds the best structure closed by pair (i, j), wm the best multiloop
// interior with at least one branch, and f[j] the best exterior structure of
// the prefix of length j.
type hairpinTables struct {
	n  int
	v  []cell
	wm []cell
	f  []cell
}

func (t *hairpinTables) at(i, j int) int { return i*t.n + j }

// foldHairpin fills the tables bottom-up by span length and traces back the
// minimum-free-energy structure. An unfolded strand has ΔG 0.
func foldHairpin(m *model, s string) (float64, Structure) {
	n := len(s)
	t := &hairpinTables{n: n, v: make([]cell, n*n), wm: make([]cell, n*n), f: make([]cell, n+1)}
	for x := range t.v {
		t.v[x] = empty
		t.wm[x] = empty
	}
	for d := MinLoop + 1; d < n; d++ {
		for i := 0; i+d < n; i++ {
			j := i + d
			t.v[t.at(i, j)] = closedBy(m, t, s, i, j)
			t.wm[t.at(i, j)] = multiInterior(m, t, s, i, j)
		}
	}

	t.f[0] = cell{op: opNone}
	for j := 0; j < n; j++ {
		best := t.f[j]
		best.op = opSkipRight
		for i := 0; i+MinLoop < j; i++ {
			v := t.v[t.at(i, j)]
			if !v.ok() {
				continue
			}
			c := cell{dg: t.f[i].dg + v.dg + m.closingAT(s[i], s[j]), pairs: t.f[i].pairs + v.pairs, op: opPair, k: i}
			if c.better(best) {
				best = c
			}
		}
		t.f[j+1] = best
	}

	tr := &hairpinTrace{t: t, s: s}
	for j := n; j > 0; {
		c := t.f[j]
		if c.op == opPair {
			tr.v(c.k, j-1)
			j = c.k
			continue
		}
		j--
	}
	return t.f[n].dg, hairpinStructure(n, tr.pairs, tr.loops)
}

// closedBy computes v(i, j).
func closedBy(m *model, t *hairpinTables, s string, i, j int) cell {
	if !oligo.WC(s[i], s[j]) {
		return empty
	}
	best := cell{dg: m.hairpinLoop(s[i], s[j], j-i-1), pairs: 1, op: opHairpin}

	if in := t.v[t.at(i+1, j-1)]; in.ok() {
		c := cell{dg: m.stack(s[i], s[i+1], s[j], s[j-1]) + in.dg, pairs: in.pairs + 1, op: opStack}
		if c.better(best) {
			best = c
		}
	}

	for k := i + 1; k < j; k++ {
		n1 := k - i - 1
		if n1 > MaxLoop {
			break
		}
		for l := j - 1; l > k; l-- {
			n2 := j - l - 1
			if n1+n2 == 0 {
				continue
			}
			if n1+n2 > MaxLoop {
				break
			}
			in := t.v[t.at(k, l)]
			if !in.ok() {
				continue
			}
			g := m.interior(s[i], s[j], s[k], s[l], s[i+1], s[j-1], s[k-1], s[l+1], n1, n2)
			c := cell{dg: g + in.dg, pairs: in.pairs + 1, op: opInterior, k: k, l: l}
			if c.better(best) {
				best = c
			}
		}
	}

	for k := i + 2; k < j-1; k++ {
		left, right := t.wm[t.at(i+1, k)], t.wm[t.at(k+1, j-1)]
		if !left.ok() || !right.ok() {
			continue
		}
		c := cell{
			dg:    left.dg + right.dg + m.multiClosing() + m.closingAT(s[i], s[j]),
			pairs: left.pairs + right.pairs + 1,
			op:    opMulti,
			k:     k,
		}
		if c.better(best) {
			best = c
		}
	}
	return best
}

// multiInterior computes wm(i, j).
func multiInterior(m *model, t *hairpinTables, s string, i, j int) cell {
	best := empty
	if v := t.v[t.at(i, j)]; v.ok() {
		best = cell{dg: v.dg + m.multiBranch() + m.closingAT(s[i], s[j]), pairs: v.pairs, op: opBranch}
	}
	if w := t.wm[t.at(i+1, j)]; w.ok() {
		c := cell{dg: w.dg + m.multiUnpaired(), pairs: w.pairs, op: opSkipLeft}
		if c.better(best) {
			best = c
		}
	}
	if w := t.wm[t.at(i, j-1)]; w.ok() {
		c := cell{dg: w.dg + m.multiUnpaired(), pairs: w.pairs, op: opSkipRight}
		if c.better(best) {
			best = c
		}
	}
	for k := i + 1; k < j; k++ {
		left, right := t.wm[t.at(i, k)], t.wm[t.at(k+1, j)]
		if !left.ok() || !right.ok() {
			continue
		}
		c := cell{dg: left.dg + right.dg, pairs: left.pairs + right.pairs, op: opSplit, k: k}
		if c.better(best) {
			best = c
		}
	}
	return best
}

type hairpinTrace struct {
	t     *hairpinTables
	s     string
	pairs []Pair
	loops []Region
}

func (tr *hairpinTrace) loop(kind RegionKind, start, end int) {
	if r, ok := span(kind, start, end); ok {
		tr.loops = append(tr.loops, r)
	}
}

func (tr *hairpinTrace) v(i, j int) {
	tr.pairs = append(tr.pairs, Pair{I: i, J: j})
	c := tr.t.v[tr.t.at(i, j)]
	switch c.op {
	case opHairpin:
		tr.loop(RegionHairpinLoop, i+1, j-1)
	case opStack:
		tr.v(i+1, j-1)
	case opInterior:
		kind := RegionInternalLoop
		if c.k == i+1 || c.l == j-1 {
			kind = RegionBulge
		}
		tr.loop(kind, i+1, c.k-1)
		tr.loop(kind, c.l+1, j-1)
		tr.v(c.k, c.l)
	case opMulti:
		tr.loops = append(tr.loops, Region{Kind: RegionMultiLoop, Start: i, End: j, Len: j - i + 1})
		tr.wm(i+1, c.k)
		tr.wm(c.k+1, j-1)
	}
}

func (tr *hairpinTrace) wm(i, j int) {
	c := tr.t.wm[tr.t.at(i, j)]
	switch c.op {
	case opBranch:
		tr.v(i, j)
	case opSkipLeft:
		tr.wm(i+1, j)
	case opSkipRight:
		tr.wm(i, j-1)
	case opSplit:
		tr.wm(i, c.k)
		tr.wm(c.k+1, j)
	}
}
