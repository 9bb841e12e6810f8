// internal/output/convert.go
package output

import (
	"fmt"
	"math"

	"primertail-core/anneal"
	"primertail-core/assembly"
	"primertail-core/primer"
	"primertail-core/thermo"
	"primertail/internal/pretty"
	"primertail/pkg/api"
)

// ToAPIPrimer converts a primer annealed with footprint to the v1 schema.
func ToAPIPrimer(p primer.Primer, footprint string, tm pretty.TmFunc) api.PrimerV1 {
	v := api.PrimerV1{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Seq:             p.Seq,
		Length:          p.Len(),
		ConcentrationNM: p.Concentration,
		Footprint:       footprint,
	}
	if n := len(p.Seq) - len(footprint); footprint != "" && n > 0 {
		v.Tail = p.Seq[:n]
	}
	if tm != nil && footprint != "" {
		v.Tm = round2(tm(footprint, p.Concentration))
	}
	return v
}

// ToAPIAmplicon converts a PCR product to the v1 schema.
func ToAPIAmplicon(a anneal.Amplicon, tm pretty.TmFunc) api.AmpliconV1 {
	v := api.AmpliconV1{
		TemplateID: a.Template.ID,
		Start:      a.Start,
		End:        a.End,
		Length:     a.Len(),
		Forward:    ToAPIPrimer(a.Forward, a.FwdFootprint, tm),
		Reverse:    ToAPIPrimer(a.Reverse, a.RevFootprint, tm),
		Seq:        a.Seq,

		PrimerDimer: round2(thermo.Dimer(a.Forward.Seq, a.Reverse.Seq)),
	}
	if a.Template.Accession != "" {
		v.TemplateAccession = a.Template.Accession
	}
	return v
}

// ToAPIFragment converts one element of a tailed assembly. idx names
// fragments whose record has no id.
func ToAPIFragment(f assembly.Fragment, idx int, tm pretty.TmFunc) api.FragmentV1 {
	rec := f.Record()
	v := api.FragmentV1{Name: fragmentName(rec.ID, idx), Length: f.Len(), Seq: rec.Seq}
	switch x := f.(type) {
	case assembly.Amplifiable:
		v.Kind = "amplicon"
		fp := ToAPIPrimer(x.Forward(), x.Amplicon.FwdFootprint, tm)
		rp := ToAPIPrimer(x.Reverse(), x.Amplicon.RevFootprint, tm)
		v.Forward, v.Reverse = &fp, &rp
	default:
		v.Kind = "fixed"
	}
	return v
}

// ToAPIFragments converts a whole assembly.
func ToAPIFragments(frags []assembly.Fragment, tm pretty.TmFunc) []api.FragmentV1 {
	out := make([]api.FragmentV1, 0, len(frags))
	for i, f := range frags {
		out = append(out, ToAPIFragment(f, i, tm))
	}
	return out
}

func toAPIAmplicons(list []anneal.Amplicon, tm pretty.TmFunc) []api.AmpliconV1 {
	out := make([]api.AmpliconV1, 0, len(list))
	for _, a := range list {
		out = append(out, ToAPIAmplicon(a, tm))
	}
	return out
}

func fragmentName(id string, idx int) string {
	if id == "" {
		return fmt.Sprintf("fragment%d", idx+1)
	}
	return id
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
