// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"primertail-core/anneal"
	"primertail-core/assembly"
	"primertail/internal/pretty"
	"primertail/pkg/api"
)

// WriteAmpliconsText prints one TSV row per amplicon, optionally followed by
// its figure.
func WriteAmpliconsText(w io.Writer, list []anneal.Amplicon, opt Options) error {
	if opt.Header {
		if _, err := fmt.Fprintln(w, AmpliconHeader); err != nil {
			return err
		}
	}
	for _, a := range list {
		v := ToAPIAmplicon(a, opt.Tm)
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
			orDash(a.Template.AccessionOrID()), v.Start, v.End, v.Length,
			v.Forward.Seq, tmCell(v.Forward, opt), v.Reverse.Seq, tmCell(v.Reverse, opt),
		); err != nil {
			return err
		}
		if opt.Figure {
			if _, err := io.WriteString(w, pretty.Figure(a, opt.FigureOptions)); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteFragmentsText prints one TSV row per fragment. Fixed fragments have no
// primers.
func WriteFragmentsText(w io.Writer, frags []assembly.Fragment, opt Options) error {
	if opt.Header {
		if _, err := fmt.Fprintln(w, FragmentHeader); err != nil {
			return err
		}
	}
	for i, f := range frags {
		v := ToAPIFragment(f, i, opt.Tm)
		fwd, rev := "-", "-"
		if v.Forward != nil {
			fwd, rev = v.Forward.Seq, v.Reverse.Seq
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", v.Name, v.Kind, v.Length, fwd, rev); err != nil {
			return err
		}
		if a, ok := f.(assembly.Amplifiable); ok && opt.Figure {
			if _, err := io.WriteString(w, pretty.Figure(a.Amplicon, opt.FigureOptions)); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteTmText prints one TSV row per melting temperature.
func WriteTmText(w io.Writer, list []api.TmV1, opt Options) error {
	if opt.Header {
		if _, err := fmt.Fprintln(w, TmHeader); err != nil {
			return err
		}
	}
	for _, t := range list {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%.2f\t%.1f\n", t.Seq, t.Formula, t.Tm, t.Hairpin); err != nil {
			return err
		}
	}
	return nil
}

func tmCell(p api.PrimerV1, opt Options) string {
	if opt.Tm == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", p.Tm)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
