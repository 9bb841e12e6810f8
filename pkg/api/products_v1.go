// pkg/api/products_v1.go
package api

// PrimerV1 is the stable JSON schema for one primer.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type PrimerV1 struct {
	ID              string  `json:"id"`
	Name            string  `json:"name,omitempty"`
	Description     string  `json:"description,omitempty"`
	Seq             string  `json:"seq"`
	Length          int     `json:"length"`
	ConcentrationNM float64 `json:"concentration_nm,omitempty"`
	Footprint       string  `json:"footprint,omitempty"` // 3' part annealing to the template
	Tail            string  `json:"tail,omitempty"`      // 5' part outside the template
	Tm              float64 `json:"tm,omitempty"`        // of the footprint, °C
}

// AmpliconV1 is the stable schema for a PCR product and its primers.
type AmpliconV1 struct {
	TemplateID        string   `json:"template_id"`
	TemplateAccession string   `json:"template_accession,omitempty"`
	Start             int      `json:"start"` // amplified template region [start, end), 0-based
	End               int      `json:"end"`
	Length            int      `json:"length"`
	Forward           PrimerV1 `json:"forward"`
	Reverse           PrimerV1 `json:"reverse"`
	Seq               string   `json:"seq,omitempty"`
	PrimerDimer       float64  `json:"primer_dimer,omitempty"` // 3' complementarity score, 0 is none
}

// FragmentV1 is one element of a tailed assembly.
type FragmentV1 struct {
	Name    string    `json:"name"`
	Kind    string    `json:"kind"` // "amplicon" | "fixed"
	Length  int       `json:"length"`
	Forward *PrimerV1 `json:"forward,omitempty"`
	Reverse *PrimerV1 `json:"reverse,omitempty"`
	Seq     string    `json:"seq,omitempty"`
}

// TmV1 is one melting temperature result.
type TmV1 struct {
	Seq      string  `json:"seq"`
	Formula  string  `json:"formula"`
	Tm       float64 `json:"tm"`
	PrimerNM float64 `json:"primer_nm"`
	SaltMM   float64 `json:"salt_mm"`
	Hairpin  float64 `json:"hairpin,omitempty"` // stem score, 0 is none
}
