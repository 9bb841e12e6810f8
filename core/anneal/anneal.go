// core/anneal/anneal.go
package anneal

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"primertail-core/primer"
	"primertail-core/seq"
)

// DefaultMinLength is the shortest 3' footprint that counts as annealed.
const DefaultMinLength = 13

var (
	ErrNoProduct        = errors.New("no PCR product")
	ErrAmbiguousProduct = errors.New("more than one PCR product")
)

// Bound is a primer annealed to a template. Forward primers sit on the top
// strand; reverse primers on the bottom strand.
type Bound struct {
	Primer primer.Primer
	// Forward: index of the first template base under the footprint.
	// Reverse: index one past the last template base under the footprint.
	Position  int
	Footprint string // 3' part of the primer that pairs with the template
	Tail      string // 5' remainder
	Reverse   bool
}

// Start and End give the footprint's half-open extent on the top strand.
func (b Bound) Start() int {
	if b.Reverse {
		return b.Position - len(b.Footprint)
	}
	return b.Position
}

func (b Bound) End() int {
	if b.Reverse {
		return b.Position
	}
	return b.Position + len(b.Footprint)
}

// Amplicon is a PCR product together with the primers that made it.
type Amplicon struct {
	Template     seq.Record
	Forward      primer.Primer
	Reverse      primer.Primer
	FwdFootprint string
	RevFootprint string
	Start, End   int // amplified template region [Start, End)
	Seq          string
}

func (a Amplicon) Len() int { return len(a.Seq) }

// FwdTail and RevTail are the primer 5' parts outside the template.
func (a Amplicon) FwdTail() string { return a.Forward.Seq[:len(a.Forward.Seq)-len(a.FwdFootprint)] }
func (a Amplicon) RevTail() string { return a.Reverse.Seq[:len(a.Reverse.Seq)-len(a.RevFootprint)] }

// Record returns the product as a sequence carrying the template's identity.
func (a Amplicon) Record() seq.Record {
	r := a.Template
	r.Seq = a.Seq
	return r
}

// Result lists every binding site and every product Anneal found.
type Result struct {
	Forward  []Bound
	Reverse  []Bound
	Products []Amplicon
}

// Anneal finds where primers bind template and pairs every forward site with
// every reverse site downstream of it. A footprint is the longest 3' suffix
// of a primer matching the template (case-insensitive, IUPAC codes in the
// primer match what they cover) and must be at least minLength long.
// Templates are linear.
func Anneal(primers []primer.Primer, template seq.Record, minLength int) Result {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	tmpl := []byte(strings.ToUpper(template.Seq))
	upper := make([][]byte, len(primers))
	rc := make([][]byte, len(primers))

	var seeds, slow []seed
	for i, p := range primers {
		upper[i] = []byte(strings.ToUpper(p.Seq))
		rc[i] = seq.RevComp(upper[i])
		if len(upper[i]) < minLength {
			continue
		}
		fs := upper[i][len(upper[i])-minLength:]
		rs := rc[i][:minLength]
		for _, s := range []seed{{primer: i, pat: fs}, {primer: i, reverse: true, pat: rs}} {
			if isACGT(s.pat) {
				seeds = append(seeds, s)
			} else {
				slow = append(slow, s)
			}
		}
	}

	var hits []seedHit
	if len(seeds) > 0 {
		hits = scanAC(tmpl, buildAC(seeds), seeds)
	}
	all := append(append([]seed(nil), seeds...), slow...)
	for k, s := range slow {
		for _, pos := range primer.FindMatches(tmpl, s.pat) {
			hits = append(hits, seedHit{seed: len(seeds) + k, pos: pos})
		}
	}

	var res Result
	for _, h := range hits {
		s := all[h.seed]
		p := primers[s.primer]
		n := len(upper[s.primer])
		k := minLength
		if s.reverse {
			// rc(primer) runs left to right from the 3' end at h.pos
			for k < n && h.pos+k < len(tmpl) && primer.BaseMatch(tmpl[h.pos+k], rc[s.primer][k]) {
				k++
			}
			res.Reverse = append(res.Reverse, Bound{
				Primer: p, Position: h.pos + k, Reverse: true,
				Footprint: p.Seq[n-k:], Tail: p.Seq[:n-k],
			})
			continue
		}
		start := h.pos
		for k < n && start > 0 && primer.BaseMatch(tmpl[start-1], upper[s.primer][n-k-1]) {
			start--
			k++
		}
		res.Forward = append(res.Forward, Bound{
			Primer: p, Position: start,
			Footprint: p.Seq[n-k:], Tail: p.Seq[:n-k],
		})
	}
	sort.SliceStable(res.Forward, func(i, j int) bool { return res.Forward[i].Position < res.Forward[j].Position })
	sort.SliceStable(res.Reverse, func(i, j int) bool { return res.Reverse[i].Position < res.Reverse[j].Position })

	for _, f := range res.Forward {
		for _, r := range res.Reverse {
			if r.Start() < f.Start() || r.End() < f.End() {
				continue
			}
			res.Products = append(res.Products, product(template, f, r))
		}
	}
	sort.SliceStable(res.Products, func(i, j int) bool {
		a, b := res.Products[i], res.Products[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
	return res
}

func product(template seq.Record, f, r Bound) Amplicon {
	var b strings.Builder
	start, end := f.Start(), r.End()
	b.Grow(len(f.Tail) + end - start + len(r.Tail))
	b.WriteString(f.Tail)
	b.WriteString(template.Seq[start:end])
	b.WriteString(seq.RevCompString(r.Tail))
	return Amplicon{
		Template:     template,
		Forward:      f.Primer,
		Reverse:      r.Primer,
		FwdFootprint: f.Footprint,
		RevFootprint: r.Footprint,
		Start:        start,
		End:          end,
		Seq:          b.String(),
	}
}

// Amplify runs a PCR with exactly one primer pair and expects exactly one
// product.
func Amplify(fwd, rev primer.Primer, template seq.Record, minLength int) (Amplicon, error) {
	res := Anneal([]primer.Primer{fwd, rev}, template, minLength)
	switch len(res.Products) {
	case 0:
		return Amplicon{}, fmt.Errorf("%w: %s and %s on %s", ErrNoProduct, label(fwd), label(rev), templateLabel(template))
	case 1:
		return res.Products[0], nil
	default:
		return Amplicon{}, fmt.Errorf("%w: %d products from %s and %s on %s",
			ErrAmbiguousProduct, len(res.Products), label(fwd), label(rev), templateLabel(template))
	}
}

func label(p primer.Primer) string {
	if p.Unnamed() {
		return p.Seq
	}
	return p.ID
}

func templateLabel(r seq.Record) string {
	if r.ID == "" {
		return fmt.Sprintf("%d bp template", r.Len())
	}
	return r.ID
}
