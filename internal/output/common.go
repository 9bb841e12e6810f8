// internal/output/common.go
package output

import "primertail/internal/pretty"

// Output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatJSONL   = "jsonl"
	FormatFASTA   = "fasta"
	FormatPrimers = "primers" // FASTA of the primers to order
)

// Header rows for text output. Keep these as the single source of truth.
const (
	AmpliconHeader = "template\tstart\tend\tlength\tforward\tforward_tm\treverse\treverse_tm"
	FragmentHeader = "fragment\tkind\tlength\tforward\treverse"
	TmHeader       = "seq\tformula\ttm\thairpin"
	PrimerHeader   = "id\tseq\tlength\tconc_nm\tdescription"
)

// Options tune text rendering and the Tm annotation of primers.
type Options struct {
	Header bool
	// Figure appends the amplicon figure under each text row.
	Figure        bool
	FigureOptions pretty.Options
	// Tm scores primer footprints; nil leaves Tm out.
	Tm pretty.TmFunc
}
