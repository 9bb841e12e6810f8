// pkg/api/requests_v1.go
package api

// DesignRequestV1 asks for primers amplifying Template. At most one of
// Forward and Reverse may be set. Zero numbers take server defaults.
type DesignRequestV1 struct {
	Template   string  `json:"template"`
	TemplateID string  `json:"template_id,omitempty"`
	Forward    string  `json:"forward,omitempty"`
	Reverse    string  `json:"reverse,omitempty"`
	TargetTm   float64 `json:"target_tm,omitempty"`
	FwdConc    string  `json:"fwd_conc,omitempty"` // "1000nM", "1uM"; bare numbers are nM
	RevConc    string  `json:"rev_conc,omitempty"`
	SaltConc   string  `json:"salt_conc,omitempty"` // bare numbers are mM
	MinLength  int     `json:"min_length,omitempty"`
	Formula    string  `json:"formula,omitempty"`
}

// FragmentSpecV1 is one input fragment of a tail request. A fragment with
// Template is designed and becomes an amplicon; one with only Sequence is
// used as is.
type FragmentSpecV1 struct {
	Name     string  `json:"name"`
	Template string  `json:"template,omitempty"`
	Forward  string  `json:"forward,omitempty"`
	Reverse  string  `json:"reverse,omitempty"`
	TargetTm float64 `json:"target_tm,omitempty"`
	Sequence string  `json:"sequence,omitempty"`
}

// TailRequestV1 asks for tailed primers joining Fragments in order.
type TailRequestV1 struct {
	Fragments []FragmentSpecV1 `json:"fragments"`
	Overlap   int              `json:"overlap,omitempty"`
	MaxLink   int              `json:"max_link,omitempty"`
	Circular  bool             `json:"circular,omitempty"`
}

// TailResponseV1 lists the tailed fragments in assembly order.
type TailResponseV1 struct {
	Fragments []FragmentV1 `json:"fragments"`
	Circular  bool         `json:"circular,omitempty"`
}

// TmRequestV1 asks for melting temperatures of Seqs.
type TmRequestV1 struct {
	Seqs       []string `json:"seqs"`
	Formula    string   `json:"formula,omitempty"`
	PrimerConc string   `json:"primer_conc,omitempty"`
	SaltConc   string   `json:"salt_conc,omitempty"`
}

// ErrorV1 is the body of every non-2xx response.
type ErrorV1 struct {
	Error string `json:"error"`
}
