// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"primertail-core/anneal"
	"primertail-core/assembly"
	"primertail/pkg/api"
)

// WriteAmpliconsJSON writes a single JSON array of v1 amplicons (pretty-indented).
func WriteAmpliconsJSON(w io.Writer, list []anneal.Amplicon, opt Options) error {
	return encodePretty(w, toAPIAmplicons(list, opt.Tm))
}

// WriteFragmentsJSON writes the tailed assembly as one v1 document.
func WriteFragmentsJSON(w io.Writer, frags []assembly.Fragment, circular bool, opt Options) error {
	return encodePretty(w, api.TailResponseV1{Fragments: ToAPIFragments(frags, opt.Tm), Circular: circular})
}

// WriteTmJSON writes a JSON array of v1 Tm results.
func WriteTmJSON(w io.Writer, list []api.TmV1) error {
	return encodePretty(w, list)
}

// encodePretty writes v as indented JSON to w.
func encodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
