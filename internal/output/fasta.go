// internal/output/fasta.go
package output

import (
	"fmt"
	"io"

	"primertail-core/anneal"
	"primertail-core/assembly"
	"primertail-core/primer"
)

// WriteAmpliconsFASTA writes each product sequence as a FASTA record.
func WriteAmpliconsFASTA(w io.Writer, list []anneal.Amplicon) error {
	for i, a := range list {
		if a.Seq == "" {
			continue
		}
		id := a.Template.AccessionOrID()
		if id == "" {
			id = "amplicon"
		}
		if _, err := fmt.Fprintf(w, ">%s_%d start=%d end=%d len=%d fwd=%s rev=%s\n%s\n",
			id, i+1, a.Start, a.End, a.Len(), a.Forward.ID, a.Reverse.ID, a.Seq,
		); err != nil {
			return err
		}
	}
	return nil
}

// WriteFragmentsFASTA writes each tailed fragment as a FASTA record.
func WriteFragmentsFASTA(w io.Writer, frags []assembly.Fragment) error {
	for i, f := range frags {
		v := ToAPIFragment(f, i, nil)
		if _, err := fmt.Fprintf(w, ">%s len=%d kind=%s\n%s\n", v.Name, v.Length, v.Kind, v.Seq); err != nil {
			return err
		}
	}
	return nil
}

// WritePrimersFASTA writes every distinct primer once, in order of first use.
func WritePrimersFASTA(w io.Writer, list []primer.Primer) error {
	seen := make(map[string]struct{}, len(list))
	for _, p := range list {
		key := p.ID + "\x00" + p.Seq
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		hdr := p.ID
		if p.Description != "" && p.Description != p.ID {
			hdr += " " + p.Description
		}
		if _, err := fmt.Fprintf(w, ">%s\n%s\n", hdr, p.Seq); err != nil {
			return err
		}
	}
	return nil
}

// AmpliconPrimers lists forward then reverse primer of every amplicon.
func AmpliconPrimers(list []anneal.Amplicon) []primer.Primer {
	out := make([]primer.Primer, 0, 2*len(list))
	for _, a := range list {
		out = append(out, a.Forward, a.Reverse)
	}
	return out
}

// FragmentPrimers lists the primers of every amplifiable fragment.
func FragmentPrimers(frags []assembly.Fragment) []primer.Primer {
	var out []primer.Primer
	for _, f := range frags {
		if a, ok := f.(assembly.Amplifiable); ok {
			out = append(out, a.Forward(), a.Reverse())
		}
	}
	return out
}
