// core/mutagen/usage.go
package mutagen

// Codon usage per thousand (Kazusa codon usage database: E. coli K-12,
// Homo sapiens, S. cerevisiae).
var usageTables = map[string]CodonUsage{
	"ecoli": {
		"TTT": 22.1, "TTC": 16.0, "TTA": 13.9, "TTG": 13.7,
		"CTT": 11.0, "CTC": 11.0, "CTA": 3.9, "CTG": 52.8,
		"ATT": 30.3, "ATC": 25.0, "ATA": 4.4, "ATG": 27.8,
		"GTT": 18.3, "GTC": 15.3, "GTA": 10.9, "GTG": 26.4,
		"TCT": 8.5, "TCC": 8.6, "TCA": 7.2, "TCG": 8.9,
		"CCT": 7.0, "CCC": 5.5, "CCA": 8.4, "CCG": 23.2,
		"ACT": 8.9, "ACC": 23.4, "ACA": 7.1, "ACG": 14.4,
		"GCT": 15.3, "GCC": 25.5, "GCA": 20.3, "GCG": 33.6,
		"TAT": 16.2, "TAC": 12.2, "TAA": 2.0, "TAG": 0.2,
		"CAT": 12.9, "CAC": 9.7, "CAA": 15.4, "CAG": 28.8,
		"AAT": 17.7, "AAC": 21.6, "AAA": 33.6, "AAG": 10.3,
		"GAT": 32.1, "GAC": 19.1, "GAA": 39.6, "GAG": 17.8,
		"TGT": 5.2, "TGC": 6.5, "TGA": 1.0, "TGG": 15.2,
		"CGT": 20.9, "CGC": 22.0, "CGA": 3.6, "CGG": 5.4,
		"AGT": 8.8, "AGC": 16.1, "AGA": 2.1, "AGG": 1.2,
		"GGT": 24.7, "GGC": 29.6, "GGA": 8.0, "GGG": 11.1,
	},
	"human": {
		"TTT": 17.6, "TTC": 20.3, "TTA": 7.7, "TTG": 12.9,
		"CTT": 13.2, "CTC": 19.6, "CTA": 7.2, "CTG": 39.6,
		"ATT": 16.0, "ATC": 20.8, "ATA": 7.5, "ATG": 22.0,
		"GTT": 11.0, "GTC": 14.5, "GTA": 7.1, "GTG": 28.1,
		"TCT": 15.2, "TCC": 17.7, "TCA": 12.2, "TCG": 4.4,
		"CCT": 17.5, "CCC": 19.8, "CCA": 16.9, "CCG": 6.9,
		"ACT": 13.1, "ACC": 18.9, "ACA": 15.1, "ACG": 6.1,
		"GCT": 18.4, "GCC": 27.7, "GCA": 15.8, "GCG": 7.4,
		"TAT": 12.2, "TAC": 15.3, "TAA": 1.0, "TAG": 0.8,
		"CAT": 10.9, "CAC": 15.1, "CAA": 12.3, "CAG": 34.2,
		"AAT": 17.0, "AAC": 19.1, "AAA": 24.4, "AAG": 31.9,
		"GAT": 21.8, "GAC": 25.1, "GAA": 29.0, "GAG": 39.6,
		"TGT": 10.6, "TGC": 12.6, "TGA": 1.6, "TGG": 13.2,
		"CGT": 4.5, "CGC": 10.4, "CGA": 6.2, "CGG": 11.4,
		"AGT": 12.1, "AGC": 19.5, "AGA": 12.2, "AGG": 12.0,
		"GGT": 10.8, "GGC": 22.2, "GGA": 16.5, "GGG": 16.5,
	},
	"yeast": {
		"TTT": 26.1, "TTC": 18.4, "TTA": 26.2, "TTG": 27.2,
		"CTT": 12.3, "CTC": 5.4, "CTA": 13.4, "CTG": 10.5,
		"ATT": 30.1, "ATC": 17.2, "ATA": 17.8, "ATG": 20.9,
		"GTT": 22.1, "GTC": 11.8, "GTA": 11.8, "GTG": 10.8,
		"TCT": 23.5, "TCC": 14.2, "TCA": 18.7, "TCG": 8.6,
		"CCT": 13.5, "CCC": 6.8, "CCA": 18.3, "CCG": 5.3,
		"ACT": 20.3, "ACC": 12.7, "ACA": 17.8, "ACG": 8.0,
		"GCT": 21.2, "GCC": 12.6, "GCA": 16.2, "GCG": 6.2,
		"TAT": 18.8, "TAC": 14.8, "TAA": 1.1, "TAG": 0.5,
		"CAT": 13.6, "CAC": 7.8, "CAA": 27.3, "CAG": 12.1,
		"AAT": 35.7, "AAC": 24.8, "AAA": 41.9, "AAG": 30.8,
		"GAT": 37.6, "GAC": 20.2, "GAA": 45.6, "GAG": 19.2,
		"TGT": 8.1, "TGC": 4.8, "TGA": 0.7, "TGG": 10.4,
		"CGT": 6.4, "CGC": 2.6, "CGA": 3.0, "CGG": 1.7,
		"AGT": 14.2, "AGC": 9.8, "AGA": 21.3, "AGG": 9.2,
		"GGT": 23.9, "GGC": 9.8, "GGA": 10.9, "GGG": 6.0,
	},
}
