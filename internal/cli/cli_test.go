package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primerscore/core/dimer"
	"primerscore/core/oligo"
	"primerscore/core/params"
	"primerscore/pkg/api"
)

const scenarioPrimer = "ATGCGTACGTAGCTAGCTAGC"

// run executes the CLI in an isolated directory with no config file.
func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PRIMERSCORE_LOG_LEVEL", "")
	var out, errb bytes.Buffer
	code := Run(context.Background(), append([]string{"--color", "no"}, args...), &out, &errb)
	return code, out.String(), errb.String()
}

func decode[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}

func TestTm_JSON(t *testing.T) {
	code, out, _ := run(t, "-o", "json", "tm", strings.ToLower(scenarioPrimer))
	require.Equal(t, ExitOK, code)
	rs := decode[[]api.TmV1](t, out)
	require.Len(t, rs, 1)
	assert.Equal(t, scenarioPrimer, rs[0].Seq)
	assert.InDelta(t, 57.96, rs[0].Tm, 0.05)
	assert.InDelta(t, 52.38, rs[0].GC, 0.01)
	assert.Equal(t, params.Legacy().ID(), rs[0].ParamID)
}

func TestTm_RevisedSet(t *testing.T) {
	code, out, _ := run(t, "-o", "json", "--params", "revised", "tm", scenarioPrimer)
	require.Equal(t, ExitOK, code)
	rs := decode[[]api.TmV1](t, out)
	assert.InDelta(t, 57.89, rs[0].Tm, 0.05)
	assert.Equal(t, params.Revised().ID(), rs[0].ParamID)
}

func TestTm_Table(t *testing.T) {
	code, out, _ := run(t, "tm", scenarioPrimer, "ACGTACGTAC")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, scenarioPrimer)
	assert.Contains(t, out, "ACGTACGTAC")
	assert.Contains(t, out, "57.96")
}

func TestTm_DuplexWithMismatch(t *testing.T) {
	bottom := []byte(oligo.Complement(scenarioPrimer))
	bottom[10] = 'G' // A·G mismatch
	code, out, _ := run(t, "-o", "json", "tm", scenarioPrimer, "--bottom", string(bottom))
	require.Equal(t, ExitOK, code)
	rs := decode[[]api.TmV1](t, out)
	assert.Equal(t, 1, rs[0].Mismatches)
	assert.Less(t, rs[0].Tm, 57.96)

	code, _, _ = run(t, "tm", "AAAAAAA", "CCCCCCC", "--bottom", "TTTTTTT")
	assert.Equal(t, ExitUsage, code)
}

func TestTm_InvalidSequenceIsUsageError(t *testing.T) {
	code, _, stderr := run(t, "tm", "ACGNACGT")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "primerscore:")
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"tm"},
		{"dimer", "A", "B", "C"},
		{"tm", "--no-such-flag", "ACGT"},
		{"--params", "turner", "tm", scenarioPrimer},
		{"--output", "xml", "tm", scenarioPrimer},
		{"--na", "0", "--mg", "2mM", "dimer", "GCGCGCGC"},
	} {
		code, _, _ := run(t, args...)
		assert.Equal(t, ExitUsage, code, "%v", args)
	}
}

func TestRootHelp(t *testing.T) {
	code, out, _ := run(t)
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "primerscore")
	assert.Contains(t, out, "batch")

	code, out, _ = run(t, "--version")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, version)
}

func TestFold(t *testing.T) {
	code, out, _ := run(t, "-o", "json", "fold", "GGGGCCCCAAAAGGGGCCCC", scenarioPrimer)
	require.Equal(t, ExitOK, code)
	rs := decode[[]api.FoldV1](t, out)
	require.Len(t, rs, 2)
	assert.Equal(t, "((((((((....))))))))", rs[0].Notation)
	assert.InDelta(t, -7.31, rs[0].DG, 0.02)
	assert.True(t, rs[0].Exists)
	assert.False(t, rs[1].Exists)
}

func TestDimer(t *testing.T) {
	code, out, _ := run(t, "-o", "json", "dimer", "GCGCGCGC")
	require.Equal(t, ExitOK, code)
	rs := decode[[]api.FoldV1](t, out)
	assert.Equal(t, "severe", rs[0].Severity)
	assert.Equal(t, "dimer", rs[0].Mode)

	code, out, _ = run(t, "-o", "json", "dimer", "--end", "GGGGCCCCAAAAAA", "GGGGCCCCAAAAAA")
	require.Equal(t, ExitOK, code)
	rs = decode[[]api.FoldV1](t, out)
	assert.Equal(t, "end-dimer", rs[0].Mode)
	assert.Equal(t, "none", rs[0].Severity)

	code, out, _ = run(t, "-o", "json", "--params", "revised", "--na", "0", "--mg", "2mM", "dimer", "GCGCGCGC")
	require.Equal(t, ExitOK, code)
	rs = decode[[]api.FoldV1](t, out)
	assert.Equal(t, "severe", rs[0].Severity)

	code, out, _ = run(t, "dimer", scenarioPrimer)
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "moderate")
}

func TestScore(t *testing.T) {
	code, out, _ := run(t, "-o", "json", "score", scenarioPrimer)
	require.Equal(t, ExitOK, code)
	r := decode[api.ScoreV1](t, out)
	assert.Equal(t, "good", r.Class)
	assert.InDelta(t, 0.822, r.Score, 0.01)
	assert.Equal(t, "default", r.Preset)

	code, out, _ = run(t, "score", "--preset", "qpcr", "--partner", "GCTAGCTAGCTACGTACGCAT", scenarioPrimer)
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "heterodimer")
	assert.Contains(t, out, "total")
	assert.Contains(t, out, "(qpcr)")
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestBatch(t *testing.T) {
	list := writeFile(t, "primers.tsv", fmt.Sprintf("# id primer partner\nfwd %s GCTAGCTAGCTACGTACGCAT\nbad ACGNNN\npoly AAAAAAAAAAAAAAAAAAAA\n", scenarioPrimer))

	code, out, stderr := run(t, "-o", "json", "--workers", "2", "batch", list)
	require.Equal(t, ExitOK, code)
	rs := decode[[]api.ScoreV1](t, out)
	require.Len(t, rs, 3)
	assert.Equal(t, []string{"fwd", "bad", "poly"}, []string{rs[0].ID, rs[1].ID, rs[2].ID})
	assert.Empty(t, rs[0].Error)
	assert.NotEmpty(t, rs[1].Error)
	assert.Equal(t, "poor", rs[2].Class)
	assert.Contains(t, stderr, "bad (line 3)")

	code, _, stderr = run(t, "-q", "batch", list)
	require.Equal(t, ExitOK, code)
	assert.NotContains(t, stderr, "bad (line 3)")

	code, out, _ = run(t, "-o", "jsonl", "-q", "batch", "--min-class", "acceptable", list)
	require.Equal(t, ExitOK, code)
	var ids []string
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		ids = append(ids, decode[api.ScoreV1](t, sc.Text()).ID)
	}
	assert.Equal(t, []string{"fwd", "bad"}, ids)

	code, _, _ = run(t, "batch", "--min-class", "superb", list)
	assert.Equal(t, ExitUsage, code)
	code, _, _ = run(t, "batch", filepath.Join(t.TempDir(), "missing.tsv"))
	assert.Equal(t, ExitUsage, code)
}

func TestOffTarget(t *testing.T) {
	pad := strings.Repeat("A", 30)
	ref := writeFile(t, "ref.fa", ">chr1 test\n"+pad+scenarioPrimer+pad+"\n")

	code, out, _ := run(t, "-o", "json", "offtarget", "--ref", ref, scenarioPrimer)
	require.Equal(t, ExitOK, code)
	r := decode[api.OffTargetV1](t, out)
	require.NotEmpty(t, r.Hits)
	assert.Contains(t, r.Hits, api.HitV1{Target: "chr1", Position: 30, Strand: "+", Mismatches: 0, Weight: 1})
	assert.GreaterOrEqual(t, r.Penalty, 1.0)

	code, out, _ = run(t, "-o", "json", "offtarget", "--ref", ref, "--intended", "chr1:30:+", scenarioPrimer)
	require.Equal(t, ExitOK, code)
	r = decode[api.OffTargetV1](t, out)
	assert.Equal(t, 1, r.Intended)

	code, out, _ = run(t, "-o", "json", "score", "--ref", ref, "--intended", "chr1:30", scenarioPrimer)
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, `"metric": "offtarget"`)

	code, _, _ = run(t, "offtarget", scenarioPrimer)
	assert.Equal(t, ExitUsage, code)
	code, _, _ = run(t, "score", "--intended", "chr1:30", scenarioPrimer)
	assert.Equal(t, ExitUsage, code)
}

func TestParseSites(t *testing.T) {
	got, err := parseSites([]string{"chr1:10", "chr2:5:-"})
	require.NoError(t, err)
	assert.Equal(t, []dimer.Site{
		{Target: "chr1", Position: 10, Strand: dimer.Plus},
		{Target: "chr2", Position: 5, Strand: dimer.Minus},
	}, got)
	for _, bad := range []string{"chr1", ":4", "chr1:x", "chr1:-3", "chr1:4:*", "a:1:+:2"} {
		_, err := parseSites([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestMutagen(t *testing.T) {
	code, out, _ := run(t, "-o", "json", "mutagen", scenarioPrimer, "11A>C", "11insT", "9_11del")
	require.Equal(t, ExitOK, code)
	rs := decode[[]api.MutationV1](t, out)
	require.Len(t, rs, 3)
	assert.Equal(t, "11>C", rs[0].Alteration)
	assert.InDelta(t, 52.64, rs[0].Tm, 0.05)
	for _, r := range rs {
		assert.Less(t, r.DeltaTm, 0.0, r.Alteration)
	}

	code, _, _ = run(t, "mutagen", scenarioPrimer, "11G>C")
	assert.Equal(t, ExitUsage, code)
}

func TestCodon(t *testing.T) {
	code, out, _ := run(t, "-o", "json", "codon", scenarioPrimer, "7", "a")
	require.Equal(t, ExitOK, code)
	r := decode[api.CodonChoiceV1](t, out)
	assert.Equal(t, "GCG", r.Best.Codon)
	assert.Equal(t, 6, r.Position)
	assert.Equal(t, "ecoli", r.Host)
	assert.Len(t, r.Candidates, 4)

	code, out, _ = run(t, "codon", "--host", "none", scenarioPrimer, "7", "L")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Codon")

	for _, args := range [][]string{
		{"codon", scenarioPrimer, "0", "A"},
		{"codon", scenarioPrimer, "7", "AL"},
		{"codon", "--host", "martian", scenarioPrimer, "7", "A"},
		{"codon", scenarioPrimer, "7", "J"},
	} {
		code, _, _ := run(t, args...)
		assert.Equal(t, ExitUsage, code, "%v", args)
	}
}

func TestGQuad(t *testing.T) {
	code, out, _ := run(t, "-o", "jsonl", "gquad", "GGGTTGGGTTGGGTTGGG", scenarioPrimer)
	require.Equal(t, ExitOK, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "high", decode[api.GQuadV1](t, lines[0]).Risk)
	assert.Equal(t, "none", decode[api.GQuadV1](t, lines[1]).Risk)
}

func TestPresets(t *testing.T) {
	file := writeFile(t, "p.yaml", "presets:\n  strict:\n    tm: 0.6\n    hairpin: 0.4\n")

	code, out, _ := run(t, "-o", "json", "--presets-file", file, "presets", "list")
	require.Equal(t, ExitOK, code)
	ps := decode[[]presetInfo](t, out)
	require.Len(t, ps, 6)
	byName := map[string]presetInfo{}
	for _, p := range ps {
		byName[p.Name] = p
	}
	assert.Equal(t, "file", byName["strict"].Source)
	assert.Equal(t, "builtin", byName["pcr"].Source)

	code, out, _ = run(t, "--presets-file", file, "presets", "export")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "presets:")
	assert.Contains(t, out, "strict:")
	assert.Contains(t, out, "qpcr:")

	code, out, _ = run(t, "-o", "json", "--presets-file", file, "--preset", "strict", "score", scenarioPrimer)
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "strict", decode[api.ScoreV1](t, out).Preset)
}

func TestParams(t *testing.T) {
	code, out, _ := run(t, "-o", "json", "--params", "revised", "params")
	require.Equal(t, ExitOK, code)
	ps := decode[[]paramInfo](t, out)
	require.Len(t, ps, 2)
	for _, p := range ps {
		assert.Equal(t, p.Name == "revised", p.Active, p.Name)
		assert.NotEmpty(t, p.Citation)
	}
}

func TestConfigFileAndEnv(t *testing.T) {
	cfg := writeFile(t, "cfg.yaml", "params: revised\noutput: json\n")
	code, out, _ := run(t, "--config", cfg, "tm", scenarioPrimer)
	require.Equal(t, ExitOK, code)
	assert.Equal(t, params.Revised().ID(), decode[[]api.TmV1](t, out)[0].ParamID)

	// flags beat the file
	code, out, _ = run(t, "--config", cfg, "--params", "legacy", "tm", scenarioPrimer)
	require.Equal(t, ExitOK, code)
	assert.Equal(t, params.Legacy().ID(), decode[[]api.TmV1](t, out)[0].ParamID)

	t.Setenv("PRIMERSCORE_OUTPUT", "json")
	code, out, _ = run(t, "gquad", "ACGT")
	require.Equal(t, ExitOK, code)
	assert.Len(t, decode[[]api.GQuadV1](t, out), 1)
}

func TestCacheStats(t *testing.T) {
	code, _, stderr := run(t, "--cache-stats", "--cache-size", "16", "tm", scenarioPrimer, scenarioPrimer)
	require.Equal(t, ExitOK, code)
	assert.Contains(t, stderr, "name=thermo")
	assert.Contains(t, stderr, "hits=")
}

type pipeWriter struct{}

func (pipeWriter) Write([]byte) (int, error) { return 0, syscall.EPIPE }

func TestBrokenPipeExitsCleanly(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	var errb bytes.Buffer
	code := Run(context.Background(), []string{"tm", scenarioPrimer}, pipeWriter{}, &errb)
	assert.Equal(t, ExitOK, code)
	assert.Empty(t, errb.String())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitUsage, ExitCode(fmt.Errorf("x: %w", oligo.ErrInvalidSequence)))
	assert.Equal(t, ExitUsage, ExitCode(params.ErrInvalidConfiguration))
	assert.Equal(t, ExitUsage, ExitCode(usageError{errors.New("arity")}))
	assert.Equal(t, ExitOutput, ExitCode(outputError{errors.New("disk full")}))
	assert.Equal(t, ExitOK, ExitCode(outputError{syscall.EPIPE}))
	assert.Equal(t, ExitInterrupted, ExitCode(context.Canceled))
	assert.Equal(t, ExitError, ExitCode(errors.New("boom")))
}

func TestCanceledContext(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	list := writeFile(t, "p.tsv", strings.Repeat(scenarioPrimer+"\n", 20))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errb bytes.Buffer
	code := Run(ctx, []string{"batch", list}, &out, &errb)
	assert.Equal(t, ExitInterrupted, code)
}

func init() { color.NoColor = true }

func TestIsTerminal_NonFileWriters(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}
