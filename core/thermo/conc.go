// core/thermo/conc.go
package thermo

import (
	"fmt"
	"strconv"
	"strings"
)

var concUnits = map[string]float64{
	"":   1,
	"m":  1,
	"mm": 1e-3,
	"um": 1e-6,
	"µm": 1e-6,
	"μm": 1e-6,
	"nm": 1e-9,
}

// ParseConc parses "50mM", "250nM", "3uM" → mol/L.
func ParseConc(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	i := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' && r != 'e'
	})
	num, unit := s, ""
	if i >= 0 {
		num, unit = s[:i], strings.TrimSpace(s[i:])
	}
	val, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid conc %q: %w", s, err)
	}
	mult, ok := concUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q in %q", unit, s)
	}
	if val < 0 {
		return 0, fmt.Errorf("negative conc %q", s)
	}
	return val * mult, nil
}

// ParseNM parses a primer concentration. A bare number is already nM.
func ParseNM(s string) (float64, error) { return parseIn(s, 1e-9) }

// ParseMM parses a salt concentration. A bare number is already mM.
func ParseMM(s string) (float64, error) { return parseIn(s, 1e-3) }

func parseIn(s string, unit float64) (float64, error) {
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		if v < 0 {
			return 0, fmt.Errorf("negative conc %q", s)
		}
		return v, nil
	}
	m, err := ParseConc(s)
	if err != nil {
		return 0, err
	}
	return m / unit, nil
}
