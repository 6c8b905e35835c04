package mutagen

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primerscore/core/fold"
	"primerscore/core/oligo"
	"primerscore/core/params"
	"primerscore/core/thermo"
)

const template = "ATGCGTACGTAGCTAGCTAGC"

func TestApplyAndAlignment(t *testing.T) {
	cases := []struct {
		name     string
		alt      Alteration
		primer   string
		top, bot string
	}{
		{
			name:   "substitution",
			alt:    Sub(10, "C"),
			primer: "ATGCGTACGTCGCTAGCTAGC",
			top:    "ATGCGTACGTCGCTAGCTAGC",
			bot:    oligo.Complement(template),
		},
		{
			name:   "insertion",
			alt:    Ins(10, "T"),
			primer: "ATGCGTACGTTAGCTAGCTAGC",
			top:    "ATGCGTACGTTAGCTAGCTAGC",
			bot:    oligo.Complement(template)[:10] + "-" + oligo.Complement(template)[10:],
		},
		{
			name:   "deletion",
			alt:    Del(10, 2),
			primer: "ATGCGTACGTCTAGCTAGC",
			top:    "ATGCGTACGT--CTAGCTAGC",
			bot:    oligo.Complement(template),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := Apply(template, c.alt)
			require.NoError(t, err)
			assert.Equal(t, c.primer, p)

			top, bot, err := Alignment(template, c.alt)
			require.NoError(t, err)
			assert.Equal(t, c.top, top)
			assert.Equal(t, c.bot, bot)
			assert.Equal(t, len(top), len(bot))
		})
	}
}

func TestApply_RejectsBadAlterations(t *testing.T) {
	bad := []Alteration{
		Sub(-1, "A"),
		Sub(20, "AA"),
		Sub(3, "N"),
		Sub(3, ""),
		Ins(22, "A"),
		Del(20, 2),
		Del(3, 0),
		{Kind: "inversion", Pos: 1},
	}
	for _, a := range bad {
		_, err := Apply(template, a)
		assert.ErrorIs(t, err, oligo.ErrInvalidSequence, a.String())
	}
	p, err := Apply(template, Ins(21, "GG"))
	require.NoError(t, err)
	assert.Equal(t, template+"GG", p)
}

func TestParse(t *testing.T) {
	cases := map[string]Alteration{
		"11A>C":   Sub(10, "C"),
		"11>c":    Sub(10, "C"),
		"4>GCT":   Sub(3, "GCT"),
		"5insTT":  Ins(4, "TT"),
		"5INStt":  Ins(4, "TT"),
		"3del":    Del(2, 1),
		"3_5del":  Del(2, 3),
		" 7 del ": Del(6, 1),
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "x", "0del", "5_3del", "10AG>C", "10>N", "ins5A"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, oligo.ErrInvalidSequence, in)
	}
}

func TestParseFor_ChecksReference(t *testing.T) {
	a, err := ParseFor(template, "11A>C")
	require.NoError(t, err)
	assert.Equal(t, Sub(10, "C"), a)

	_, err = ParseFor(template, "11G>C")
	assert.ErrorIs(t, err, oligo.ErrInvalidSequence)
	_, err = ParseFor(template, "30del")
	assert.ErrorIs(t, err, oligo.ErrInvalidSequence)
}

func TestAlterationString(t *testing.T) {
	assert.Equal(t, "11>C", Sub(10, "C").String())
	assert.Equal(t, "5insTT", Ins(4, "TT").String())
	assert.Equal(t, "3del", Del(2, 1).String())
	assert.Equal(t, "3_5del", Del(2, 3).String())
}

func TestTm_CentralSubstitutionIsLower(t *testing.T) {
	ctx := thermo.NewContext()
	cond := thermo.DefaultConditions()
	matched, err := ctx.Tm(template, cond)
	require.NoError(t, err)

	res, err := Tm(ctx, template, Sub(10, "C"), cond)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, 1, res.Mismatches)
	assert.InDelta(t, 52.64, res.Tm, 0.05)
	assert.Less(t, res.Tm, matched.Tm)
}

func TestTm_IndelsAreLower(t *testing.T) {
	ctx := thermo.NewContext()
	cond := thermo.DefaultConditions()
	matched, err := ctx.Tm(template, cond)
	require.NoError(t, err)
	for _, a := range []Alteration{Ins(10, "T"), Ins(10, "GGG"), Del(10, 1), Del(8, 3)} {
		res, err := Tm(ctx, template, a, cond)
		require.NoError(t, err, a.String())
		assert.Less(t, res.Tm, matched.Tm, a.String())
	}
}

func TestTm_TerminalAlterationCostsMore(t *testing.T) {
	ctx := thermo.NewContext()
	cond := thermo.DefaultConditions()
	central, err := Tm(ctx, template, Sub(10, "C"), cond)
	require.NoError(t, err)
	// one base from the 3' end
	end, err := Tm(ctx, template, Sub(19, "C"), cond)
	require.NoError(t, err)
	assert.Less(t, end.Tm, central.Tm)
}

func TestTm_LongMismatchRunUnsupported(t *testing.T) {
	res, err := Tm(thermo.NewContext(), template, Sub(9, "GTCG"), thermo.DefaultConditions())
	assert.ErrorIs(t, err, params.ErrUnsupportedParameters)
	assert.False(t, res.Valid)
}

func TestFoldAndEvaluate(t *testing.T) {
	e := fold.New(thermo.NewContext())
	cond := thermo.DefaultConditions()
	hp, err := Fold(e, template, Sub(10, "C"), cond)
	require.NoError(t, err)
	assert.Equal(t, fold.ModeHairpin, hp.Mode)

	ev, err := Evaluate(e, template, Sub(10, "C"), cond)
	require.NoError(t, err)
	assert.Equal(t, "ATGCGTACGTCGCTAGCTAGC", ev.Primer)
	assert.Less(t, ev.Tm.Tm, ev.MatchedTm)
	assert.Equal(t, hp, ev.Hairpin)
	assert.Equal(t, RiskNone, ev.GQuad.Risk)

	_, err = Evaluate(e, template, Sub(40, "C"), cond)
	assert.Error(t, err)
}

func TestGQuadruplexRisk(t *testing.T) {
	g := GQuadruplexRisk("GGGTTGGGTTGGGTTGGG")
	assert.Equal(t, RiskHigh, g.Risk)
	assert.Equal(t, 4, g.Tracts)
	assert.Equal(t, 0, g.Start)
	assert.Equal(t, 18, g.End)

	g = GQuadruplexRisk("ACGGGATGGGAAAAAAAAAAAAGGGT")
	assert.Equal(t, RiskModerate, g.Risk)
	assert.Equal(t, 3, g.Tracts)
	assert.Equal(t, -1, g.Start)

	g = GQuadruplexRisk(template)
	assert.Equal(t, RiskNone, g.Risk)
	assert.Zero(t, g.Tracts)

	assert.Equal(t, "high", RiskHigh.String())
	assert.Equal(t, "moderate", RiskModerate.String())
	assert.Equal(t, "none", RiskNone.String())
}

func TestStandardCode(t *testing.T) {
	assert.Len(t, standardCode, 64)
	assert.Equal(t, byte('M'), Translate("ATG"))
	assert.Equal(t, byte('*'), Translate("tga"))
	assert.Equal(t, byte('W'), Translate("TGG"))
	assert.Zero(t, Translate("AT"))

	assert.Equal(t, []string{"GCA", "GCC", "GCG", "GCT"}, Synonyms('A'))
	assert.Len(t, Synonyms('L'), 6)
	assert.Len(t, Synonyms('s'), 6)
	assert.Equal(t, []string{"ATG"}, Synonyms('M'))
	assert.Empty(t, Synonyms('J'))

	total := 0
	for _, aa := range "ACDEFGHIKLMNPQRSTVWY*" {
		total += len(Synonyms(byte(aa)))
	}
	assert.Equal(t, 64, total)
}

func TestUsageTables(t *testing.T) {
	assert.Equal(t, []string{"ecoli", "human", "yeast"}, UsageNames())
	for _, n := range UsageNames() {
		u, err := Usage(n)
		require.NoError(t, err)
		assert.Len(t, u, 64, n)
		sum := 0.0
		for c, v := range u {
			assert.NotZero(t, Translate(c), c)
			sum += v
		}
		assert.InDelta(t, 1000, sum, 15, n)
	}
	_, err := Usage("martian")
	assert.ErrorIs(t, err, params.ErrInvalidConfiguration)
}

func TestSelectCodon(t *testing.T) {
	ctx := thermo.NewContext()
	cond := thermo.DefaultConditions()
	ecoli, err := Usage("ecoli")
	require.NoError(t, err)
	require.Equal(t, "ACG", template[6:9])

	// Ala: GCG differs from ACG at one base
	ch, err := SelectCodon(ctx, template, 6, 'A', ecoli, cond)
	require.NoError(t, err)
	assert.Equal(t, "GCG", ch.Best.Codon)
	assert.Equal(t, 1, ch.Best.Changes)
	assert.Len(t, ch.Candidates, 4)
	assert.Equal(t, ch.Best, ch.Candidates[0])

	// Thr: the template codon already encodes it
	ch, err = SelectCodon(ctx, template, 6, 't', nil, cond)
	require.NoError(t, err)
	assert.Equal(t, "ACG", ch.Best.Codon)
	assert.Zero(t, ch.Best.Changes)
	matched, err := ctx.Tm(template, cond)
	require.NoError(t, err)
	assert.InDelta(t, matched.Tm, ch.Best.Tm, 1e-9)

	// Leu: two codons need two changes; Tm decides between them
	ch, err = SelectCodon(ctx, template, 6, 'L', ecoli, cond)
	require.NoError(t, err)
	assert.Equal(t, 2, ch.Best.Changes)
	assert.Contains(t, []string{"CTG", "TTG"}, ch.Best.Codon)
	for _, c := range ch.Candidates[1:] {
		if c.Changes == 2 && c.Err == nil {
			assert.GreaterOrEqual(t, ch.Best.Tm, c.Tm)
		}
	}
	for i := 1; i < len(ch.Candidates); i++ {
		assert.LessOrEqual(t, ch.Candidates[i-1].Changes, ch.Candidates[i].Changes)
	}
}

func TestSelectCodon_Errors(t *testing.T) {
	ctx := thermo.NewContext()
	cond := thermo.DefaultConditions()
	_, err := SelectCodon(ctx, template, 19, 'A', nil, cond)
	assert.ErrorIs(t, err, oligo.ErrInvalidSequence)
	_, err = SelectCodon(ctx, template, 6, 'J', nil, cond)
	assert.ErrorIs(t, err, params.ErrInvalidConfiguration)
	_, err = SelectCodon(ctx, strings.Repeat("N", 21), 6, 'A', nil, cond)
	assert.ErrorIs(t, err, oligo.ErrInvalidSequence)
}

func TestRank_FailedCandidatesLast(t *testing.T) {
	ok := Candidate{Codon: "AAA", Changes: 3, Tm: 40}
	failed := Candidate{Codon: "AAG", Changes: 0, Tm: math.NaN(), Err: params.ErrUnsupportedParameters}
	assert.True(t, rank(ok, failed, false))
	assert.False(t, rank(failed, ok, false))

	common := Candidate{Codon: "CTG", Changes: 1, Tm: 50, Usage: 52.8}
	rare := Candidate{Codon: "CTA", Changes: 1, Tm: 55, Usage: 3.9}
	assert.True(t, rank(common, rare, true))
	assert.False(t, rank(common, rare, false))
}
