// core/fold/structure.go
package fold

import (
	"sort"
	"strings"
)

// RegionKind names a structural element.
type RegionKind string

const (
	RegionStem         RegionKind = "stem"
	RegionHairpinLoop  RegionKind = "hairpin-loop"
	RegionBulge        RegionKind = "bulge"
	RegionInternalLoop RegionKind = "internal-loop"
	RegionMultiLoop    RegionKind = "multiloop"
)

// Pair is one base pair. For hairpins I < J index the same strand; for
// dimers I indexes the first strand and J the second, both 5'→3'.
type Pair struct {
	I, J int
}

// Region locates an element in Structure.Notation (0-based, inclusive).
// Stems span their outermost pair and Len counts stacked pairs; loops span
// their unpaired bases and Len counts them. Multiloops span the closing pair.
type Region struct {
	Kind  RegionKind
	Start int
	End   int
	Len   int
}

// Structure describes a fold in dot-bracket notation: '(' and ')' mark
// paired bases, '.' unpaired ones. Dimers join the strands with '&', the
// first strand carrying the '(' of every pair.
type Structure struct {
	Notation string
	Pairs    []Pair
	Regions  []Region
}

// String returns the dot-bracket notation.
func (s Structure) String() string { return s.Notation }

// hairpinStructure assembles the descriptor of a single-strand fold.
func hairpinStructure(n int, pairs []Pair, loops []Region) Structure {
	b := []byte(strings.Repeat(".", n))
	for _, p := range pairs {
		b[p.I], b[p.J] = '(', ')'
	}
	return assemble(string(b), pairs, loops, 0)
}

// dimerStructure assembles the descriptor of a two-strand fold; offset is the
// notation position of the second strand's first base.
func dimerStructure(na, nb int, pairs []Pair, loops []Region) Structure {
	a := []byte(strings.Repeat(".", na))
	b := []byte(strings.Repeat(".", nb))
	for _, p := range pairs {
		a[p.I], b[p.J] = '(', ')'
	}
	return assemble(string(a)+"&"+string(b), pairs, loops, na+1)
}

func assemble(notation string, pairs []Pair, loops []Region, offset int) Structure {
	sort.Slice(pairs, func(x, y int) bool { return pairs[x].I < pairs[y].I })
	regions := append([]Region(nil), loops...)
	for x := 0; x < len(pairs); {
		y := x + 1
		for y < len(pairs) && pairs[y].I == pairs[y-1].I+1 && pairs[y].J == pairs[y-1].J-1 {
			y++
		}
		regions = append(regions, Region{
			Kind:  RegionStem,
			Start: pairs[x].I,
			End:   pairs[x].J + offset,
			Len:   y - x,
		})
		x = y
	}
	sort.SliceStable(regions, func(x, y int) bool { return regions[x].Start < regions[y].Start })
	return Structure{Notation: notation, Pairs: pairs, Regions: regions}
}

// span returns a loop region over [start, end], or false when empty.
func span(kind RegionKind, start, end int) (Region, bool) {
	if end < start {
		return Region{}, false
	}
	return Region{Kind: kind, Start: start, End: end, Len: end - start + 1}, true
}
