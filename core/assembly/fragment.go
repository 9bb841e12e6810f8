// core/assembly/fragment.go
package assembly

import (
	"primertail-core/anneal"
	"primertail-core/primer"
	"primertail-core/seq"
)

// Fragment is one piece of an assembly: either an Amplifiable PCR product
// whose primers can take tails, or a Fixed sequence that cannot.
type Fragment interface {
	Len() int
	Record() seq.Record
	fragment()
}

// Amplifiable is a PCR product; it can be re-made with longer primers.
type Amplifiable struct {
	Amplicon anneal.Amplicon
}

func (a Amplifiable) Len() int               { return a.Amplicon.Len() }
func (a Amplifiable) Record() seq.Record     { return a.Amplicon.Record() }
func (a Amplifiable) Template() seq.Record   { return a.Amplicon.Template }
func (a Amplifiable) Forward() primer.Primer { return a.Amplicon.Forward }
func (a Amplifiable) Reverse() primer.Primer { return a.Amplicon.Reverse }
func (Amplifiable) fragment()                {}

// Fixed is a sequence available only as is (synthetic DNA, a vector
// backbone, a short linker).
type Fixed struct {
	Seq seq.Record
}

func (f Fixed) Len() int           { return f.Seq.Len() }
func (f Fixed) Record() seq.Record { return f.Seq }
func (Fixed) fragment()            {}

// Amplifier makes a PCR product from a primer pair and a template.
type Amplifier interface {
	Amplify(fwd, rev primer.Primer, template seq.Record) (anneal.Amplicon, error)
}

// PCR is the Amplifier backed by anneal.Amplify.
type PCR struct {
	MinLength int
}

func (p PCR) Amplify(fwd, rev primer.Primer, template seq.Record) (anneal.Amplicon, error) {
	return anneal.Amplify(fwd, rev, template, p.MinLength)
}
