// core/seq/seq.go
package seq

import "strings"

var complement [256]byte

func init() {
	pairs := []string{"AT", "CG", "GC", "TA", "RY", "YR", "SS", "WW", "KM", "MK", "BV", "VB", "DH", "HD", "NN", "UA"}
	for _, p := range pairs {
		complement[p[0]] = p[1]
		complement[p[0]+'a'-'A'] = p[1] + 'a' - 'A'
	}
}

// RevComp returns the reverse complement of s. Case is preserved and
// unknown symbols become N (n for lower case input).
func RevComp(s []byte) []byte {
	n := len(s)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := s[n-1-i]
		c := complement[b]
		if c == 0 {
			c = 'N'
			if b >= 'a' && b <= 'z' {
				c = 'n'
			}
		}
		out[i] = c
	}
	return out
}

// RevCompString is RevComp for strings.
func RevCompString(s string) string { return string(RevComp([]byte(s))) }

// Record is an immutable, linear nucleotide sequence with identity metadata.
type Record struct {
	ID          string
	Name        string
	Description string
	Accession   string
	Seq         string
}

// New returns an anonymous record holding s.
func New(s string) Record { return Record{Seq: s} }

func (r Record) Len() int       { return len(r.Seq) }
func (r Record) String() string { return r.Seq }

// AccessionOrID returns the accession, or the ID when none is set.
func (r Record) AccessionOrID() string {
	if r.Accession != "" {
		return r.Accession
	}
	return r.ID
}

// Slice returns the bases in [start, end). Negative indexes count from the
// end and out of range bounds are clamped, so Slice never panics.
func (r Record) Slice(start, end int) Record {
	n := len(r.Seq)
	start, end = clamp(start, n), clamp(end, n)
	if end < start {
		end = start
	}
	out := r
	out.Seq = r.Seq[start:end]
	return out
}

// Head returns the first n bases (all of them if n exceeds the length).
func (r Record) Head(n int) Record {
	if n <= 0 {
		return r.Slice(0, 0)
	}
	return r.Slice(0, n)
}

// Tail returns the last n bases (all of them if n exceeds the length).
func (r Record) Tail(n int) Record {
	if n <= 0 {
		return r.Slice(0, 0)
	}
	return r.Slice(len(r.Seq)-n, len(r.Seq))
}

func (r Record) RevComp() Record {
	out := r
	out.Seq = RevCompString(r.Seq)
	return out
}

// Concat appends others to r. Identity metadata is r's.
func (r Record) Concat(others ...Record) Record {
	var b strings.Builder
	b.Grow(r.Len() + totalLen(others))
	b.WriteString(r.Seq)
	for _, o := range others {
		b.WriteString(o.Seq)
	}
	out := r
	out.Seq = b.String()
	return out
}

func totalLen(rs []Record) int {
	n := 0
	for _, r := range rs {
		n += r.Len()
	}
	return n
}

func clamp(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}
