// internal/output/primers.go
package output

import (
	"fmt"
	"io"

	"primertail-core/primer"
	"primertail/pkg/api"
)

// WritePrimersText prints one TSV row per library primer.
func WritePrimersText(w io.Writer, list []primer.Primer, opt Options) error {
	if opt.Header {
		if _, err := fmt.Fprintln(w, PrimerHeader); err != nil {
			return err
		}
	}
	for _, p := range list {
		conc := "-"
		if p.Concentration > 0 {
			conc = fmt.Sprintf("%g", p.Concentration)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", p.ID, p.Seq, p.Len(), conc, orDash(p.Description)); err != nil {
			return err
		}
	}
	return nil
}

// WritePrimersJSON writes a JSON array of v1 primers.
func WritePrimersJSON(w io.Writer, list []primer.Primer) error {
	out := make([]api.PrimerV1, 0, len(list))
	for _, p := range list {
		out = append(out, ToAPIPrimer(p, "", nil))
	}
	return encodePretty(w, out)
}
