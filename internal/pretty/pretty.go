// internal/pretty/pretty.go
package pretty

import (
	"fmt"
	"strings"

	"primertail-core/anneal"
	"primertail-core/seq"
)

// TmFunc scores a primer footprint at the given primer concentration (nM).
type TmFunc func(footprint string, primerNM float64) float64

// Options control the amplicon figure.
type Options struct {
	// Tm labels each footprint with "tm X"; AltTm adds "(AltLabel) Y".
	Tm       TmFunc
	AltTm    TmFunc
	AltLabel string

	// Prefix is written at the start of every line, e.g. "# ".
	Prefix string

	// Glyphs
	ExactGlyph   string // default "|"
	PartialGlyph string // default "¦"
	Ellipsis     string // default "..."
}

// DefaultOptions draws the figure without Tm labels.
var DefaultOptions = Options{
	ExactGlyph:   "|",
	PartialGlyph: "¦",
	Ellipsis:     "...",
}

func (o Options) exactGlyph() string   { return or(o.ExactGlyph, DefaultOptions.ExactGlyph) }
func (o Options) partialGlyph() string { return or(o.PartialGlyph, DefaultOptions.PartialGlyph) }
func (o Options) ellipsis() string     { return or(o.Ellipsis, DefaultOptions.Ellipsis) }

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func reverseString(s string) string {
	rs := []rune(s)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return string(rs)
}

// complementString complements s base by base, keeping case.
func complementString(s string) string { return reverseString(seq.RevCompString(s)) }

func isACGT(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T', 'a', 'c', 'g', 't':
		return true
	}
	return false
}

// bars draws one glyph per footprint base; ambiguity codes get the partial glyph.
func bars(footprint string, opt Options) string {
	var b strings.Builder
	for i := 0; i < len(footprint); i++ {
		if isACGT(footprint[i]) {
			b.WriteString(opt.exactGlyph())
		} else {
			b.WriteString(opt.partialGlyph())
		}
	}
	return b.String()
}

func tmLabel(footprint string, nM float64, opt Options) string {
	if opt.Tm == nil {
		return ""
	}
	s := fmt.Sprintf(" tm %.1f", opt.Tm(footprint, nM))
	if opt.AltTm != nil {
		s += fmt.Sprintf(" (%s) %.1f", opt.AltLabel, opt.AltTm(footprint, nM))
	}
	return s
}

// Figure draws both primers annealed to the amplicon template:
//
//	5atgactgctaacccttcc...tcgttcgaaacttacgatg3
//	                      |||||||||||||||||||
//	                     3agcaagctttgaatgctac5
//	5atgactgctaacccttcc3
//	 ||||||||||||||||||
//	3tactgacgattgggaagg...agcaagctttgaatgctac5
//
// The upper block is the reverse primer on the top strand, the lower block
// the forward primer on the bottom strand. Tails hang off the template.
func Figure(a anneal.Amplicon, opt Options) string {
	ff, rf := a.FwdFootprint, a.RevFootprint
	if ff == "" || rf == "" || len(a.Seq) == 0 {
		return opt.Prefix + "(figure not available: footprints missing)\n"
	}
	ft, rt := a.FwdTail(), a.RevTail()
	core := a.Seq[len(ft) : len(a.Seq)-len(rt)]
	left := core[:min(len(ff), len(core))]
	right := core[len(core)-min(len(rf), len(core)):]

	ind := strings.Repeat(" ", len(ft))
	gap := opt.ellipsis()

	var b strings.Builder
	line := func(format string, args ...any) {
		b.WriteString(opt.Prefix)
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	// Reverse primer under the top strand.
	revCol := len(ind) + 1 + len(left) + len(gap)
	line("%s5%s%s%s3", ind, left, gap, right)
	line("%s%s%s", strings.Repeat(" ", revCol), bars(rf, opt), tmLabel(rf, a.Reverse.Concentration, opt))
	line("%s3%s5", strings.Repeat(" ", revCol-1), reverseString(a.Reverse.Seq))

	// Forward primer over the bottom strand.
	line("5%s3", a.Forward.Seq)
	line("%s%s%s", strings.Repeat(" ", 1+len(ft)), bars(ff, opt), tmLabel(ff, a.Forward.Concentration, opt))
	line("%s3%s%s%s5", ind, complementString(left), gap, complementString(right))

	return b.String()
}
