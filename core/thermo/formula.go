// core/thermo/formula.go
package thermo

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Formula returns the melting temperature (°C) of a primer at the given
// primer (nM) and monovalent salt (mM) concentrations. A formula that cannot
// score seq returns NaN.
type Formula func(seq string, primerNM, saltMM float64) float64

// Concentrations a formula assumes when the caller has none of its own.
const (
	DefaultPrimerNM = 500.0
	DefaultSaltMM   = 50.0
)

var ErrUnknownFormula = errors.New("unknown Tm formula")

// Default is the formula used when none is configured.
const Default = "bresluc"

var formulas = map[string]Formula{
	"bresluc":     Bresluc,
	"breslauer86": Breslauer86,
	"basic":       Basic,
	"santalucia":  SantaLucia,
}

// Lookup resolves a formula by name; the empty name selects Default.
func Lookup(name string) (Formula, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		n = Default
	}
	f, ok := formulas[n]
	if !ok {
		return nil, fmt.Errorf("%w %q (have: %s)", ErrUnknownFormula, name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the registered formulas in sorted order.
func Names() []string {
	out := make([]string, 0, len(formulas))
	for k := range formulas {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Breslauer 1986 stacks, cal/mol and cal/(K·mol).
var (
	bresDH = map[string]float64{
		"aa": -9100, "tt": -9100, "at": -8600, "ta": -6000,
		"ca": -5800, "tg": -5800, "gt": -6500, "ac": -6500,
		"ct": -7800, "ag": -7800, "ga": -5600, "tc": -5600,
		"cg": -11900, "gc": -11100, "gg": -11000, "cc": -11000,
	}
	bresDS = map[string]float64{
		"aa": -24.0, "tt": -24.0, "at": -23.9, "ta": -16.9,
		"ca": -12.9, "tg": -12.9, "gt": -17.3, "ac": -17.3,
		"ct": -20.8, "ag": -20.8, "ga": -13.5, "tc": -13.5,
		"cg": -27.8, "gc": -26.7, "gg": -26.6, "cc": -26.6,
	}
)

const (
	bresInitDH = -3400.0
	bresInitDS = -12.4
)

// stacks sums the Breslauer stacks of s; ok is false on a base outside ACGT.
func stacks(s string) (dH, dS float64, ok bool) {
	for i := 0; i+1 < len(s); i++ {
		h, okH := bresDH[s[i:i+2]]
		e, okS := bresDS[s[i:i+2]]
		if !okH || !okS {
			return 0, 0, false
		}
		dH += h
		dS += e
	}
	return dH, dS, true
}

// Breslauer86 is the plain Breslauer 1986 nearest-neighbour Tm (no
// initiation term) with the 16.6·log10[Na+] salt correction.
func Breslauer86(seq string, primerNM, saltMM float64) float64 {
	s := strings.ReplaceAll(strings.ToLower(seq), "u", "t")
	if len(s) < 2 || primerNM <= 0 || saltMM <= 0 {
		return math.NaN()
	}
	dH, dS, ok := stacks(s)
	if !ok {
		return math.NaN()
	}
	return dH/(dS+Rcal*math.Log(primerNM*1e-9/4)) - 273.15 + 16.6*math.Log10(saltMM/1000)
}

// Bresluc is the Breslauer nearest-neighbour Tm adjusted for polymerases
// with a DNA binding domain (Phusion and friends).
func Bresluc(seq string, primerNM, saltMM float64) float64 {
	s := strings.ReplaceAll(strings.ToLower(seq), "u", "t")
	if len(s) < 2 || primerNM <= 0 || saltMM <= 0 {
		return math.NaN()
	}
	dH, dS, ok := stacks(s)
	if !ok {
		return math.NaN()
	}
	dH += bresInitDH
	dS += bresInitDS
	pri := primerNM / 1e8
	salt := saltMM / 1000
	return dH/(Rcal*math.Log(pri/1600)+dS) + 16.6*math.Log10(salt) - 273.15
}

// Basic is the Wallace rule, 2 °C per A/T and 4 °C per G/C. Concentrations
// are ignored.
func Basic(seq string, _, _ float64) float64 {
	var at, gc int
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'a', 'T', 't', 'U', 'u':
			at++
		case 'G', 'g', 'C', 'c':
			gc++
		}
	}
	return float64(2*at + 4*gc)
}
