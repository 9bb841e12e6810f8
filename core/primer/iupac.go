// core/primer/iupac.go
package primer

var iupacMask [256]byte // bit0=A bit1=C bit2=G bit3=T

func init() {
	set := func(c byte, bits byte) {
		iupacMask[c] = bits
		iupacMask[c+'a'-'A'] = bits
	}
	set('A', 1)
	set('C', 2)
	set('G', 4)
	set('T', 8)
	set('U', 8)
	set('R', 1|4)     // A/G
	set('Y', 2|8)     // C/T
	set('S', 2|4)     // C/G
	set('W', 1|8)     // A/T
	set('K', 4|8)     // G/T
	set('M', 1|2)     // A/C
	set('B', 2|4|8)   // C/G/T
	set('D', 1|4|8)   // A/G/T
	set('H', 1|2|8)   // A/C/T
	set('V', 1|2|4)   // A/C/G
	set('N', 1|2|4|8) // any (primer side only)
}

// BaseMatch reports whether primer base p can pair with template base g.
// Both sides are case-insensitive. A template base outside A/C/G/T (N, gaps)
// is always a mismatch so N-blocks cannot attract primers.
func BaseMatch(g, p byte) bool {
	m := iupacMask[g]
	if m != 1 && m != 2 && m != 4 && m != 8 {
		return false
	}
	return iupacMask[p]&m != 0
}
