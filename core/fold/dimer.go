// core/fold/dimer.go
package fold

import "primerscore/core/oligo"

// foldDimer aligns a (5'→3') against b read 3'→5'. d[i][j] holds the best
// duplex whose 3'-most pair (on a) is a[i]·br[j], where br is b reversed; it
// either starts a helix at (i, j) or extends an earlier pair by a stack, a
// bulge or an internal loop. When anchored, only duplexes that pair the
// 3'-terminal base of a are eligible.
func foldDimer(m *model, a, b string, anchored bool) (float64, Structure) {
	br := oligo.Reverse(b)
	na, nb := len(a), len(br)
	d := make([]cell, na*nb)
	at := func(i, j int) int { return i*nb + j }

	sym := 0.0
	if a == b {
		sym = m.dg(m.c.Symmetry)
	}

	for i := 0; i < na; i++ {
		for j := 0; j < nb; j++ {
			if !oligo.WC(a[i], br[j]) {
				d[at(i, j)] = empty
				continue
			}
			start := m.dg(m.c.Init.Add(m.set.EndInitiation(a[i], br[j])))
			best := cell{dg: start + sym + leadingDangles(m, a, br, i, j), pairs: 1, op: opStart}

			if i > 0 && j > 0 {
				if prev := d[at(i-1, j-1)]; prev.ok() {
					c := cell{dg: prev.dg + m.stack(a[i-1], a[i], br[j-1], br[j]), pairs: prev.pairs + 1, op: opStack, k: i - 1, l: j - 1}
					if c.better(best) {
						best = c
					}
				}
			}

			for k := i - 1; k >= 0; k-- {
				n1 := i - k - 1
				if n1 > MaxLoop {
					break
				}
				for l := j - 1; l >= 0; l-- {
					n2 := j - l - 1
					if n1+n2 == 0 {
						continue
					}
					if n1+n2 > MaxLoop {
						break
					}
					prev := d[at(k, l)]
					if !prev.ok() {
						continue
					}
					g := m.interior(a[k], br[l], a[i], br[j], a[k+1], br[l+1], a[i-1], br[j-1], n1, n2)
					c := cell{dg: prev.dg + g, pairs: prev.pairs + 1, op: opInterior, k: k, l: l}
					if c.better(best) {
						best = c
					}
				}
			}
			d[at(i, j)] = best
		}
	}

	best := cell{dg: 0, op: opNone}
	bi, bj := -1, -1
	for i := 0; i < na; i++ {
		if anchored && i != na-1 {
			continue
		}
		for j := 0; j < nb; j++ {
			c := d[at(i, j)]
			if !c.ok() {
				continue
			}
			c.dg += m.dg(m.set.EndInitiation(a[i], br[j])) + trailingDangles(m, a, br, i, j)
			if c.better(best) {
				best = c
				bi, bj = i, j
			}
		}
	}

	var pairs []Pair
	var loops []Region
	off := na + 1
	for i, j := bi, bj; i >= 0; {
		pairs = append(pairs, Pair{I: i, J: nb - 1 - j})
		c := d[at(i, j)]
		switch c.op {
		case opStack:
			i, j = c.k, c.l
		case opInterior:
			kind := RegionInternalLoop
			if c.k == i-1 || c.l == j-1 {
				kind = RegionBulge
			}
			if r, ok := span(kind, c.k+1, i-1); ok {
				loops = append(loops, r)
			}
			// br[l+1..j-1] is b[nb-j .. nb-2-l]
			if r, ok := span(kind, off+nb-j, off+nb-2-c.l); ok {
				loops = append(loops, r)
			}
			i, j = c.k, c.l
		default:
			i = -1
		}
	}
	return best.dg, dimerStructure(na, nb, pairs, loops)
}

// leadingDangles adds the unpaired neighbors on the 5' side of a helix that
// starts at a[i]·br[j].
func leadingDangles(m *model, a, br string, i, j int) float64 {
	g := 0.0
	if i > 0 {
		g += m.dangle(a[i-1:i+1], "."+br[j:j+1])
	}
	if j > 0 {
		g += m.dangle("."+a[i:i+1], br[j-1:j+1])
	}
	return g
}

// trailingDangles adds the unpaired neighbors on the 3' side of a helix that
// ends at a[i]·br[j].
func trailingDangles(m *model, a, br string, i, j int) float64 {
	g := 0.0
	if i+1 < len(a) {
		g += m.dangle(a[i:i+2], br[j:j+1]+".")
	}
	if j+1 < len(br) {
		g += m.dangle(a[i:i+1]+".", br[j:j+2])
	}
	return g
}
