// core/thermo/nn.go
package thermo

import (
	"math"
	"strings"
)

// Rcal is the gas constant in cal/(K·mol).
const Rcal = 1.9872

// Unified nearest-neighbour stacks (SantaLucia & Hicks 2004, 1 M Na+), keyed
// by the top strand dinucleotide read 5'->3'. A stack and its reading from the
// other strand (CA and TG) share one entry.
var unified = map[string][2]float64{ // kcal/mol, cal/(K·mol)
	"AA": {-7.6, -21.3}, "TT": {-7.6, -21.3},
	"AT": {-7.2, -20.4},
	"TA": {-7.2, -21.3},
	"CA": {-8.5, -22.7}, "TG": {-8.5, -22.7},
	"GT": {-8.4, -22.4}, "AC": {-8.4, -22.4},
	"CT": {-7.8, -21.0}, "AG": {-7.8, -21.0},
	"GA": {-8.2, -22.2}, "TC": {-8.2, -22.2},
	"CG": {-10.6, -27.2},
	"GC": {-9.8, -24.4},
	"GG": {-8.0, -19.9}, "CC": {-8.0, -19.9},
}

const (
	initDH, initDS     = 0.2, -5.7
	termATDH, termATDS = 2.2, 6.9 // per terminal A·T pair
	symmDS             = -1.4     // self-complementary duplexes
)

// SantaLucia is the unified nearest-neighbour Tm of seq annealed to its
// perfect complement, with the SantaLucia 1998 entropy salt correction.
// Self-complementary oligos use CT instead of CT/4.
func SantaLucia(seq string, primerNM, saltMM float64) float64 {
	s := strings.ReplaceAll(strings.ToUpper(seq), "U", "T")
	n := len(s)
	if n < 2 || primerNM <= 0 || saltMM <= 0 {
		return math.NaN()
	}
	dH, dS := initDH, initDS
	for i := 0; i+1 < n; i++ {
		p, ok := unified[s[i:i+2]]
		if !ok {
			return math.NaN()
		}
		dH += p[0]
		dS += p[1]
	}
	for _, end := range []byte{s[0], s[n-1]} {
		if end == 'A' || end == 'T' {
			dH += termATDH
			dS += termATDS
		}
	}
	x := 4.0
	if s == revComp(s) {
		dS += symmDS
		x = 1
	}
	dS += 0.368 * float64(n-1) * math.Log(saltMM/1000)
	return dH*1000/(dS+Rcal*math.Log(primerNM*1e-9/x)) - 273.15
}

func revComp(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		var c byte
		switch s[i] {
		case 'A':
			c = 'T'
		case 'C':
			c = 'G'
		case 'G':
			c = 'C'
		case 'T':
			c = 'A'
		default:
			c = 'N'
		}
		out[len(s)-1-i] = c
	}
	return string(out)
}
