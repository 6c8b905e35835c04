// core/offtarget/offtarget.go
// Package offtarget finds approximate primer binding sites in reference
// sequences and reports them as dimer.Hit records.
package offtarget

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"primerscore/core/dimer"
	"primerscore/core/fasta"
	"primerscore/core/oligo"
	"primerscore/core/params"
)

// Options tune a Searcher.
type Options struct {
	MaxMismatches  int // per site; at most dimer.MaxMismatches-1 carry weight
	TerminalWindow int // 3'-end bases that must match exactly
	MaxHits        int // per scan unit and strand; 0 = unlimited
	ChunkSize      int // bases per parallel scan unit; <= 0 scans whole records
	Workers        int // <= 0 uses one per chunk
}

// DefaultOptions: up to 3 mismatches, 3' terminal 3 bases exact, 1 Mb chunks.
func DefaultOptions() Options {
	return Options{MaxMismatches: dimer.MaxMismatches - 1, TerminalWindow: 3, ChunkSize: 1 << 20, Workers: 8}
}

// Searcher scans an in-memory reference. It implements dimer.HitSource.
type Searcher struct {
	refs []fasta.Record
	opt  Options
}

var _ dimer.HitSource = (*Searcher)(nil)

// New returns a Searcher over refs.
func New(refs []fasta.Record, opt Options) (*Searcher, error) {
	if opt.MaxMismatches < 0 || opt.TerminalWindow < 0 || opt.MaxHits < 0 {
		return nil, fmt.Errorf("%w: negative search option %+v", params.ErrInvalidConfiguration, opt)
	}
	return &Searcher{refs: refs, opt: opt}, nil
}

// Load reads a FASTA path ("-" for stdin, gzip allowed) into a Searcher.
func Load(ctx context.Context, path string, opt Options) (*Searcher, error) {
	recs, err := fasta.ReadPath(ctx, path)
	if err != nil {
		return nil, err
	}
	return New(recs, opt)
}

// Hits returns every site where primer (plus strand) or its reverse
// complement (minus strand) binds within the mismatch budget, sorted by
// target, position and strand.
func (s *Searcher) Hits(ctx context.Context, primer string) ([]dimer.Hit, error) {
	p, err := oligo.Validate(primer)
	if err != nil {
		return nil, err
	}
	fwd, rev := []byte(p), []byte(oligo.ReverseComplement(p))

	var (
		mu   sync.Mutex
		seen = make(map[dimer.Site]int)
		hits []dimer.Hit
	)
	add := func(h dimer.Hit) {
		mu.Lock()
		defer mu.Unlock()
		k := dimer.Site{Target: h.Target, Position: h.Position, Strand: h.Strand}
		if i, ok := seen[k]; ok {
			if h.Mismatches < hits[i].Mismatches {
				hits[i] = h
			}
			return
		}
		seen[k] = len(hits)
		hits = append(hits, h)
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.opt.Workers > 0 {
		g.SetLimit(s.opt.Workers)
	}
	for _, rec := range s.refs {
		for _, ch := range fasta.Chunks(rec, s.opt.ChunkSize, len(p)-1) {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				for _, m := range findMatches(ch.Seq, fwd, s.opt.MaxMismatches, s.opt.MaxHits, s.opt.TerminalWindow, true) {
					add(dimer.Hit{Target: ch.ID, Position: ch.Offset + m.pos, Strand: dimer.Plus, Mismatches: m.mismatches})
				}
				if p == string(rev) {
					return nil
				}
				for _, m := range findMatches(ch.Seq, rev, s.opt.MaxMismatches, s.opt.MaxHits, s.opt.TerminalWindow, false) {
					add(dimer.Hit{Target: ch.ID, Position: ch.Offset + m.pos, Strand: dimer.Minus, Mismatches: m.mismatches})
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.Strand < b.Strand
	})
	if s.opt.MaxHits > 0 && len(hits) > 2*s.opt.MaxHits {
		hits = hits[:2*s.opt.MaxHits]
	}
	return hits, nil
}
