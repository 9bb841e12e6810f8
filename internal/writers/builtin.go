// internal/writers/builtin.go
package writers

import (
	"io"

	"primertail-core/anneal"
	"primertail-core/primer"
	"primertail/internal/output"
	"primertail/pkg/api"
)

func init() {
	Amplicons.Register(output.FormatText, output.WriteAmpliconsText)
	Amplicons.Register(output.FormatJSON, output.WriteAmpliconsJSON)
	Amplicons.Register(output.FormatJSONL, func(w io.Writer, list []anneal.Amplicon, opt output.Options) error {
		in, done := StartAmpliconJSONLWriter(w, len(list), opt.Tm)
		return feed(list, in, done)
	})
	Amplicons.Register(output.FormatFASTA, func(w io.Writer, list []anneal.Amplicon, _ output.Options) error {
		return output.WriteAmpliconsFASTA(w, list)
	})
	Amplicons.Register(output.FormatPrimers, func(w io.Writer, list []anneal.Amplicon, _ output.Options) error {
		return output.WritePrimersFASTA(w, output.AmpliconPrimers(list))
	})

	Fragments.Register(output.FormatText, func(w io.Writer, fs FragmentSet, opt output.Options) error {
		return output.WriteFragmentsText(w, fs.Fragments, opt)
	})
	Fragments.Register(output.FormatJSON, func(w io.Writer, fs FragmentSet, opt output.Options) error {
		return output.WriteFragmentsJSON(w, fs.Fragments, fs.Circular, opt)
	})
	Fragments.Register(output.FormatJSONL, func(w io.Writer, fs FragmentSet, opt output.Options) error {
		list := output.ToAPIFragments(fs.Fragments, opt.Tm)
		in, done := StartFragmentJSONLWriter(w, len(list))
		return feed(list, in, done)
	})
	Fragments.Register(output.FormatFASTA, func(w io.Writer, fs FragmentSet, _ output.Options) error {
		return output.WriteFragmentsFASTA(w, fs.Fragments)
	})
	Fragments.Register(output.FormatPrimers, func(w io.Writer, fs FragmentSet, _ output.Options) error {
		return output.WritePrimersFASTA(w, output.FragmentPrimers(fs.Fragments))
	})

	Tms.Register(output.FormatText, output.WriteTmText)
	Tms.Register(output.FormatJSON, func(w io.Writer, list []api.TmV1, _ output.Options) error {
		return output.WriteTmJSON(w, list)
	})
	Tms.Register(output.FormatJSONL, func(w io.Writer, list []api.TmV1, _ output.Options) error {
		in, done := StartTmJSONLWriter(w, len(list))
		return feed(list, in, done)
	})

	Library.Register(output.FormatText, output.WritePrimersText)
	Library.Register(output.FormatJSON, func(w io.Writer, list []primer.Primer, _ output.Options) error {
		return output.WritePrimersJSON(w, list)
	})
	Library.Register(output.FormatFASTA, func(w io.Writer, list []primer.Primer, _ output.Options) error {
		return output.WritePrimersFASTA(w, list)
	})
}
