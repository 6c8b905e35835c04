// core/params/tables.go
package params

// Watson–Crick propagation parameters (1 M Na+).
// SantaLucia (1998) PNAS 95:1460, unified set.
var stacks1998 = map[string]Thermo{
	"AA/TT": {-7.9, -22.2},
	"AT/TA": {-7.2, -20.4},
	"TA/AT": {-7.2, -21.3},
	"CA/GT": {-8.5, -22.7},
	"GT/CA": {-8.4, -22.4},
	"CT/GA": {-7.8, -21.0},
	"GA/CT": {-8.2, -22.2},
	"CG/GC": {-10.6, -27.2},
	"GC/CG": {-9.8, -24.4},
	"GG/CC": {-8.0, -19.9},
}

// SantaLucia & Hicks (2004) Annu Rev Biophys 33:415, Table 1.
var stacks2004 = map[string]Thermo{
	"AA/TT": {-7.6, -21.3},
	"AT/TA": {-7.2, -20.4},
	"TA/AT": {-7.2, -21.3},
	"CA/GT": {-8.5, -22.7},
	"GT/CA": {-8.4, -22.4},
	"CT/GA": {-7.8, -21.0},
	"GA/CT": {-8.2, -22.2},
	"CG/GC": {-10.6, -27.2},
	"GC/CG": {-9.8, -24.4},
	"GG/CC": {-8.0, -19.9},
}

// Internal single-mismatch stacks (1 M Na+).
// Allawi & SantaLucia (1997) Biochemistry 36:10581 (G·T);
// (1998) Biochemistry 37:2170 (G·A), 37:9435 (C·T), NAR 26:2694 (A·C);
// Peyret et al. (1999) Biochemistry 38:3468 (A·A, C·C, G·G, T·T).
var mismatches = map[string]Thermo{
	// G·T
	"AG/TT": {1.0, 0.9}, "AT/TG": {-2.5, -8.3}, "CG/GT": {-4.1, -11.7},
	"CT/GG": {-2.8, -8.0}, "GG/CT": {3.3, 10.4}, "GT/CG": {-4.4, -12.3},
	"TG/AT": {-0.1, -1.7}, "TT/AG": {-1.3, -5.3},
	// tandem G·T
	"GG/TT": {5.8, 16.3}, "GT/TG": {4.1, 9.5}, "TG/GG": {-1.4, -6.2},
	// G·A
	"AA/TG": {-0.6, -2.3}, "AG/TA": {-0.7, -2.3}, "CA/GG": {-0.7, -2.3},
	"CG/GA": {-4.0, -13.2}, "GA/CG": {-0.6, -1.0}, "GG/CA": {0.5, 3.2},
	"TA/AG": {0.7, 0.7}, "TG/AA": {3.0, 7.4},
	// C·T
	"AC/TT": {0.7, 0.2}, "AT/TC": {-1.2, -6.2}, "CC/GT": {-0.8, -4.5},
	"CT/GC": {-1.5, -6.1}, "GC/CT": {2.3, 5.4}, "GT/CC": {5.2, 13.5},
	"TC/AT": {1.2, 0.7}, "TT/AC": {1.0, 0.7},
	// A·C
	"AA/TC": {2.3, 4.6}, "AC/TA": {5.3, 14.6}, "CA/GC": {1.9, 3.7},
	"CC/GA": {0.6, -0.6}, "GA/CC": {5.2, 14.2}, "GC/CA": {-0.7, -3.8},
	"TA/AC": {3.4, 8.0}, "TC/AA": {7.6, 20.2},
	// A·A, C·C, G·G, T·T
	"AA/TA": {1.2, 1.7}, "CA/GA": {-0.9, -4.2}, "GA/CA": {-2.9, -9.8},
	"TA/AA": {4.7, 12.9}, "AC/TC": {0.0, -4.4}, "CC/GC": {-1.5, -7.2},
	"GC/CC": {3.6, 8.9}, "TC/AC": {6.1, 16.4}, "AG/TG": {-3.1, -9.5},
	"CG/GG": {-4.9, -15.3}, "GG/CG": {-6.0, -15.8}, "TG/AG": {1.6, 3.6},
	"AT/TT": {-2.7, -10.8}, "CT/GT": {-5.0, -15.8}, "GT/CT": {-2.2, -8.4},
	"TT/AT": {0.2, -1.5},
}

// Dangling ends, Bommarito et al. (2000) NAR 28:1929.
var dangles2000 = map[string]Thermo{
	// 5' dangling on the top strand
	"AA/.T": {0.2, 2.3}, "AC/.G": {-6.3, -17.1}, "AG/.C": {-3.7, -10.0},
	"AT/.A": {-2.9, -7.6}, "CA/.T": {0.6, 3.3}, "CC/.G": {-4.4, -12.6},
	"CG/.C": {-4.0, -11.9}, "CT/.A": {-4.1, -13.0}, "GA/.T": {-1.1, -1.6},
	"GC/.G": {-5.1, -14.0}, "GG/.C": {-3.9, -10.9}, "GT/.A": {-4.2, -15.0},
	"TA/.T": {-6.9, -20.0}, "TC/.G": {-4.0, -10.9}, "TG/.C": {-4.9, -13.8},
	"TT/.A": {-0.2, -0.5},
	// 3' dangling on the bottom strand
	".A/AT": {-0.7, -0.8}, ".C/AG": {-2.1, -3.9}, ".G/AC": {-5.9, -16.5},
	".T/AA": {-0.5, -1.1}, ".A/CT": {4.4, 14.9}, ".C/CG": {-0.2, -0.1},
	".G/CC": {-2.6, -7.4}, ".T/CA": {4.7, 14.2}, ".A/GT": {-1.6, -3.6},
	".C/GG": {-3.9, -11.2}, ".G/GC": {-3.2, -10.4}, ".T/GA": {-4.1, -13.1},
	".A/TT": {2.9, 10.4}, ".C/TG": {-4.4, -13.1}, ".G/TC": {-5.2, -15.0},
	".T/TA": {-3.8, -12.6},
}

// Legacy returns the 1998-style set: SantaLucia (1998) unified stacks with
// per-end initiation, monovalent-only salt correction, no dangling ends.
func Legacy() *Set {
	return &Set{
		name:       "legacy",
		version:    "1998",
		cite:       "SantaLucia 1998; Allawi & SantaLucia 1997-98; Peyret 1999",
		stacks:     stacks1998,
		mismatches: mismatches,
		hairpin:    hairpinLoops,
		bulge:      bulgeLoops,
		internal:   internalLoops,
		c: Constants{
			InitGC:              Thermo{0.1, -2.8},
			InitAT:              Thermo{2.3, 4.1},
			Symmetry:            Thermo{0, -1.4},
			SaltMono:            0.368,
			Divalent:            0,
			MultiA:              3.4,
			MultiB:              0.4,
			MultiC:              0,
			Asymmetry:           0.3,
			ConsecutiveMismatch: 0.5,
			TerminalProximity5:  0.3,
			TerminalProximity3:  0.6,
			TerminalWindow:      3,
			MaxMismatchRun:      3,
		},
	}
}

// Revised returns the 2024-style set: SantaLucia & Hicks (2004) stacks with a
// single initiation plus terminal A·T penalty, Mg2+-aware salt correction
// (von Ahsen 2001 Na-equivalence) and Bommarito (2000) dangling ends.
func Revised() *Set {
	return &Set{
		name:       "revised",
		version:    "2024",
		cite:       "SantaLucia & Hicks 2004; Bommarito 2000; von Ahsen 2001; Allawi & SantaLucia 1997-98",
		stacks:     stacks2004,
		mismatches: mismatches,
		dangles:    dangles2000,
		hairpin:    hairpinLoops,
		bulge:      bulgeLoops,
		internal:   internalLoops,
		c: Constants{
			Init:                Thermo{0.2, -5.7},
			TerminalAT:          Thermo{2.2, 6.9},
			Symmetry:            Thermo{0, -1.4},
			SaltMono:            0.368,
			Divalent:            3.8,
			MultiA:              3.4,
			MultiB:              0.4,
			MultiC:              0,
			Asymmetry:           0.3,
			ConsecutiveMismatch: 0.6,
			TerminalProximity5:  0.3,
			TerminalProximity3:  0.6,
			TerminalWindow:      3,
			MaxMismatchRun:      3,
		},
	}
}
