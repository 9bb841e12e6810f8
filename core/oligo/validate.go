// core/oligo/validate.go
package oligo

import (
	"fmt"
	"unicode"
)

// Allowed IUPAC DNA codes and their base sets.
var iupac = map[rune]string{
	'A': "A",
	'C': "C",
	'G': "G",
	'T': "T",
	'U': "T",
	'R': "AG",
	'Y': "CT",
	'S': "CG",
	'W': "AT",
	'K': "GT",
	'M': "AC",
	'B': "CGT",
	'D': "AGT",
	'H': "ACT",
	'V': "ACG",
	'N': "ACGT",
}

// Clean removes whitespace, quotes and digits (GenBank ORIGIN numbering).
// Case is kept: design output echoes template case back to the user.
func Clean(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsDigit(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// Validate returns the cleaned sequence or an error if any char is non-IUPAC.
func Validate(raw string) (string, error) {
	s := Clean(raw)
	if s == "" {
		return s, fmt.Errorf("empty oligo")
	}
	for i, r := range s {
		if _, ok := iupac[unicode.ToUpper(r)]; !ok {
			return "", fmt.Errorf("invalid base %q at %d; allowed: A C G T U R Y S W K M B D H V N", r, i+1)
		}
	}
	return s, nil
}
