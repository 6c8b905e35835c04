// internal/cli/score.go
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"primerscore/core/dimer"
	"primerscore/core/offtarget"
	"primerscore/core/oligo"
	"primerscore/core/score"
	"primerscore/internal/logging"
	"primerscore/internal/primer"
	"primerscore/internal/report"
	"primerscore/pkg/api"
)

// searchFlags configures the optional off-target search.
type searchFlags struct {
	ref      string
	intended []string
	opt      offtarget.Options
}

func (f *searchFlags) register(cmd *cobra.Command) {
	d := offtarget.DefaultOptions()
	cmd.Flags().StringVar(&f.ref, "ref", "", "FASTA reference to search for off-target sites (gzip and - allowed)")
	cmd.Flags().StringSliceVar(&f.intended, "intended", nil, "Intended site(s) as target:position[:strand], excluded from the penalty")
	cmd.Flags().IntVar(&f.opt.MaxMismatches, "max-mismatches", d.MaxMismatches, "Mismatches allowed per off-target site")
	cmd.Flags().IntVar(&f.opt.TerminalWindow, "window", d.TerminalWindow, "3'-terminal bases that must match exactly")
	cmd.Flags().IntVar(&f.opt.MaxHits, "max-hits", d.MaxHits, "Cap hits per scan unit and strand (0 = unlimited)")
	f.opt.ChunkSize = d.ChunkSize
}

// searcher loads the reference, or returns nil when none was given.
func (f *searchFlags) searcher(ctx context.Context, workers int) (*offtarget.Searcher, []dimer.Site, error) {
	sites, err := parseSites(f.intended)
	if err != nil {
		return nil, nil, err
	}
	if f.ref == "" {
		if len(sites) > 0 {
			return nil, nil, usageError{fmt.Errorf("--intended needs --ref")}
		}
		return nil, nil, nil
	}
	opt := f.opt
	opt.Workers = workers
	s, err := offtarget.Load(ctx, f.ref, opt)
	if err != nil {
		return nil, nil, err
	}
	logging.Logger.Debug("reference loaded", "path", f.ref)
	return s, sites, nil
}

// parseSites reads target:position[:strand] specs; strand defaults to +.
func parseSites(specs []string) ([]dimer.Site, error) {
	out := make([]dimer.Site, 0, len(specs))
	for _, spec := range specs {
		f := strings.Split(spec, ":")
		if len(f) < 2 || len(f) > 3 || f[0] == "" {
			return nil, usageError{fmt.Errorf("bad site %q (want target:position[:strand])", spec)}
		}
		pos, err := strconv.Atoi(f[1])
		if err != nil || pos < 0 {
			return nil, usageError{fmt.Errorf("bad site position in %q", spec)}
		}
		st := dimer.Plus
		if len(f) == 3 {
			switch dimer.Strand(f[2]) {
			case dimer.Plus:
			case dimer.Minus:
				st = dimer.Minus
			default:
				return nil, usageError{fmt.Errorf("bad site strand in %q (+ or -)", spec)}
			}
		}
		out = append(out, dimer.Site{Target: f[0], Position: pos, Strand: st})
	}
	return out, nil
}

// evaluate builds the metric bundle of one primer and scores it.
func (a *app) evaluate(ctx context.Context, id, seq, partner string, src dimer.HitSource, sites []dimer.Site) (api.ScoreV1, error) {
	in := score.Input{Primer: seq, Partner: partner, Intended: sites}
	if src != nil {
		hits, err := src.Hits(ctx, seq)
		if err != nil {
			return api.ScoreV1{}, err
		}
		if hits == nil {
			hits = []dimer.Hit{}
		}
		in.Hits = hits
	}
	m, err := score.MetricsFor(a.thermo, a.cfg.Conditions, in)
	if err != nil {
		return api.ScoreV1{}, err
	}
	c := score.Score(m, a.cfg.Weights)
	return report.ToScoreV1(id, seq, partner, a.cfg.PresetName, c), nil
}

func (a *app) scoreCmd() *cobra.Command {
	var (
		partner string
		sf      searchFlags
	)
	cmd := &cobra.Command{
		Use:   "score PRIMER",
		Short: "Composite quality score with per-metric breakdown",
		Example: `  primerscore score ATGCGTACGTAGCTAGCTAGC
  primerscore score --preset qpcr --partner GCTAGCTAGCTACGTACGCAT ATGCGTACGTAGCTAGCTAGC
  primerscore score --ref genome.fa.gz --intended chr1:1200 ATGCGTACGTAGCTAGCTAGC`,
		Args: argsRange(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, sites, err := sf.searcher(cmd.Context(), a.cfg.Workers)
			if err != nil {
				return err
			}
			var hs dimer.HitSource
			if src != nil {
				hs = src
			}
			r, err := a.evaluate(cmd.Context(), "", oligo.Normalize(args[0]), oligo.Normalize(partner), hs, sites)
			if err != nil {
				return err
			}
			return emitOne(a, r, report.BreakdownTable)
		},
	}
	cmd.Flags().StringVar(&partner, "partner", "", "Partner primer for Tm difference and heterodimer")
	sf.register(cmd)
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	var (
		minClass string
		sf       searchFlags
	)
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Score every primer in a list (id primer [partner] per line; - for stdin)",
		Args:  argsRange(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			floor := score.Class(strings.ToLower(minClass))
			switch floor {
			case "", score.Excellent, score.Good, score.Acceptable, score.Poor:
			default:
				return usageError{fmt.Errorf("unknown class %q", minClass)}
			}
			entries, err := primer.LoadTSV(args[0])
			if err != nil {
				return usageError{err}
			}
			src, sites, err := sf.searcher(cmd.Context(), 1)
			if err != nil {
				return err
			}
			var hs dimer.HitSource
			if src != nil {
				hs = src
			}

			results, err := a.scoreAll(cmd.Context(), entries, hs, sites)
			if err != nil {
				return err
			}
			kept := results[:0]
			for _, r := range results {
				if floor == "" || r.Error != "" || score.Class(r.Class).AtLeast(floor) {
					kept = append(kept, r)
				}
			}
			return emitList(a, kept, report.ScoreTable)
		},
	}
	cmd.Flags().StringVar(&minClass, "min-class", "", "Only report primers at or above this class")
	sf.register(cmd)
	return cmd
}

// scoreAll scores entries on a bounded worker group, keeping input order.
// Per-primer failures are reported in the row, not returned.
func (a *app) scoreAll(ctx context.Context, entries []primer.Entry, src dimer.HitSource, sites []dimer.Site) ([]api.ScoreV1, error) {
	results := make([]api.ScoreV1, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := a.evaluate(gctx, e.ID, e.Primer, e.Partner, src, sites)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logging.Warnf(a.cfg.Quiet, "%s (line %d): %v", e.ID, e.Line, err)
				r = api.ScoreV1{ID: e.ID, Seq: e.Primer, Partner: e.Partner, Preset: a.cfg.PresetName, Error: err.Error()}
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *app) offtargetCmd() *cobra.Command {
	var sf searchFlags
	cmd := &cobra.Command{
		Use:   "offtarget PRIMER --ref FASTA",
		Short: "Search a reference for off-target binding sites",
		Args:  argsRange(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sf.ref == "" {
				return usageError{fmt.Errorf("--ref is required")}
			}
			src, sites, err := sf.searcher(cmd.Context(), a.cfg.Workers)
			if err != nil {
				return err
			}
			seq := oligo.Normalize(args[0])
			hits, err := src.Hits(cmd.Context(), seq)
			if err != nil {
				return err
			}
			res, err := dimer.Specificity(hits, len(seq), sites...)
			if err != nil {
				return err
			}
			return emitOne(a, report.ToOffTargetV1(seq, hits, res), report.OffTargetTable)
		},
	}
	sf.register(cmd)
	return cmd
}
