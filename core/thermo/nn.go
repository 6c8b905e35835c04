// core/thermo/nn.go
// Nearest-neighbor melting temperatures for DNA duplexes.
// Units: ΔH in kcal/mol, ΔS in cal/(K·mol), Tm in °C.
//
// Steps:
//  1. Sum initiation + per-stack ΔH/ΔS + terminal corrections + symmetry
//     from the active parameter set (1 M Na+).
//  2. Salt correction to ΔS: ΔS += 0.368·(N−1)·ln[Na_eq], where Na_eq folds
//     free Mg2+ into a Na+ equivalent when the set supports it.
//  3. Two-state Tm (K): Tm = ΔH·1000 / (ΔS_salt + R·ln(Ct/x)) − 273.15,
//     x = 4 for self-complementary duplexes, 1 otherwise.
//
// This package has no app/output deps; fold and score import it cleanly.
package thermo

import (
	"fmt"
	"math"

	"primerscore/core/memo"
	"primerscore/core/oligo"
	"primerscore/core/params"
)

// MinTmLength is the shortest sequence with a meaningful Tm. Shorter inputs
// yield an invalid Result.
const MinTmLength = 3

// DefaultEndLength is the 3' window EndStability uses when n <= 0.
const DefaultEndLength = 5

// Result reports ΔH/ΔS (1 M and salt-corrected) and Tm. Tm is meaningful
// only when Valid; otherwise Err says why.
type Result struct {
	DH                float64 // total ΔH (kcal/mol)
	DS                float64 // total ΔS at 1 M Na+ (cal/K·mol)
	DSSalt            float64 // ΔS corrected for the solution (cal/K·mol)
	Tm                float64 // melting temperature (°C)
	SelfComplementary bool
	Mismatches        int
	ParamID           string
	Valid             bool
	Err               error
}

// DeltaG returns the salt-corrected ΔG (kcal/mol) at tempC.
func (r Result) DeltaG(tempC float64) float64 {
	return r.DH - (tempC+273.15)*r.DSSalt/1000.0
}

func invalid(err error) (Result, error) {
	return Result{Err: err}, err
}

// Tm computes the melting temperature of seq (5'→3') against its perfect
// complement. Sequences shorter than MinTmLength or with symbols outside
// A/C/G/T return an invalid Result and a wrapped oligo.ErrInvalidSequence.
func (c *Context) Tm(seq string, cond Conditions) (Result, error) {
	s, err := oligo.ValidateMin(seq, MinTmLength)
	if err != nil {
		return invalid(err)
	}
	set := c.Params()
	if err := cond.ValidateFor(set); err != nil {
		return invalid(err)
	}
	k := memo.NewKey(memo.KindTm, set.ID(), cond.saltKey(), s)
	res, err := memo.Get(c.thermo, k, func() (Result, error) {
		return melt(set, s, oligo.Complement(s), cond)
	})
	if err != nil {
		return invalid(err)
	}
	return res, nil
}

// DuplexTm computes Tm for an aligned duplex: top written 5'→3', bottom
// written 3'→5' beneath it. Columns may pair, mismatch, or carry Gap on one
// strand (bulge). Mismatched stacks use the set's mismatch parameters;
// adjacent mismatches and alterations near either end are penalized.
func (c *Context) DuplexTm(top5to3, bottom3to5 string, cond Conditions) (Result, error) {
	top := oligo.Normalize(top5to3)
	bot := oligo.Normalize(bottom3to5)
	if len(top) < MinTmLength || len(bot) < MinTmLength {
		return invalid(fmt.Errorf("%w: duplex shorter than %d columns", oligo.ErrInvalidSequence, MinTmLength))
	}
	set := c.Params()
	if err := cond.ValidateFor(set); err != nil {
		return invalid(err)
	}
	k := memo.NewKey(memo.KindDuplex, set.ID(), cond.saltKey(), top, bot)
	res, err := memo.Get(c.thermo, k, func() (Result, error) {
		return melt(set, top, bot, cond)
	})
	if err != nil {
		return invalid(err)
	}
	return res, nil
}

// melt is the uncached Tm of an aligned duplex.
func melt(set *params.Set, top, bot string, cond Conditions) (Result, error) {
	d, err := evalDuplex(set, top, bot)
	if err != nil {
		return Result{}, err
	}
	if d.th.DH >= 0 {
		return Result{}, fmt.Errorf("%w: duplex has no favorable enthalpy (ΔH %.2f kcal/mol)", oligo.ErrInvalidSequence, d.th.DH)
	}
	x := 1.0
	if d.symmetric {
		x = 4.0
	}
	dsSalt := d.th.DS + set.SaltEntropy(d.pairs-1, cond.NaM, cond.MgM, cond.DNTPM)
	den := dsSalt + params.Rcal*math.Log(cond.OligoM/x)
	return Result{
		DH:                d.th.DH,
		DS:                d.th.DS,
		DSSalt:            dsSalt,
		Tm:                d.th.DH*1000.0/den - 273.15,
		SelfComplementary: d.symmetric,
		Mismatches:        d.mismatches,
		ParamID:           set.ID(),
		Valid:             true,
	}, nil
}

// GC returns the G/C fraction of seq. It is independent of the parameter set
// and cached by sequence alone.
func (c *Context) GC(seq string) (float64, error) {
	s, err := oligo.Validate(seq)
	if err != nil {
		return 0, err
	}
	return memo.Get(c.thermo, memo.NewKey(memo.KindGC, "", "", s), func() (float64, error) {
		return oligo.GC(s), nil
	})
}

// EndStability returns the ΔG (kcal/mol, at cond.TempC) of the duplex formed
// by the last n 3' bases of seq. More negative means a stickier 3' end.
func (c *Context) EndStability(seq string, n int, cond Conditions) (float64, error) {
	s, err := oligo.ValidateMin(seq, 2)
	if err != nil {
		return 0, err
	}
	set := c.Params()
	if err := cond.ValidateFor(set); err != nil {
		return 0, err
	}
	if n <= 0 {
		n = DefaultEndLength
	}
	if n > len(s) {
		n = len(s)
	}
	if n < 2 {
		n = 2
	}
	end := s[len(s)-n:]
	k := memo.NewKey(memo.KindEnd, set.ID(), cond.Key(), end)
	return memo.Get(c.thermo, k, func() (float64, error) {
		d, err := evalDuplex(set, end, oligo.Complement(end))
		if err != nil {
			return 0, err
		}
		ds := d.th.DS + set.SaltEntropy(d.pairs-1, cond.NaM, cond.MgM, cond.DNTPM)
		return d.th.DH - (cond.TempC+273.15)*ds/1000.0, nil
	})
}
