// core/primer/primer.go
package primer

import "primertail-core/seq"

// UnsetID marks a primer nobody has named yet.
const UnsetID = "id?"

// Primer is an oligonucleotide (5'→3') with identity metadata and an optional
// concentration in nM. Primers are values: adding a tail yields a new primer.
type Primer struct {
	ID            string
	Name          string
	Description   string
	Seq           string
	Concentration float64
}

// New returns an unnamed primer.
func New(s string) Primer {
	return Primer{ID: UnsetID, Name: UnsetID, Seq: s}
}

// Named returns a primer with id used for both ID and Name.
func Named(id, s string) Primer {
	return Primer{ID: id, Name: id, Seq: s}
}

func (p Primer) Len() int       { return len(p.Seq) }
func (p Primer) String() string { return p.Seq }

// Unnamed reports whether p still carries the placeholder identity.
func (p Primer) Unnamed() bool { return p.ID == "" || p.ID == UnsetID }

// WithTail returns p with tail prepended to its 5' end.
func (p Primer) WithTail(tail string) Primer {
	if tail == "" {
		return p
	}
	p.Seq = tail + p.Seq
	return p
}

// Record converts p to a sequence record.
func (p Primer) Record() seq.Record {
	return seq.Record{ID: p.ID, Name: p.Name, Description: p.Description, Seq: p.Seq}
}
