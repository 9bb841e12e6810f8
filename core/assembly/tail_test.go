// core/assembly/tail_test.go
package assembly

import (
	"errors"
	"strings"
	"testing"

	"primertail-core/anneal"
	"primertail-core/primer"
	"primertail-core/seq"
)

const (
	tmplA = "atgactgctaacccttccttggtgttgaacaagatcgacgacatttcgttcgaaacttacgatg"
	tmplB = "ccaaacccaccaggtaccttatgtaagtacttcaagtcgccagaagacttcttggtcaagttgcc"
	tmplC = "tgtactggtgctgaaccttgtatcaagttgggtgttgacgccattgccccaggtggtcgtttcgtt"

	linker = "ggatccaaaactgcagtttt"
	vector = "gaattcgagctcggtacccggggatcctctagagtcgacctgcaggcatgcaagcttggc"
)

var pairs = map[string][2]string{
	tmplA: {"atgactgctaacccttcc", "catcgtaagtttcgaacga"},
	tmplB: {"ccaaacccaccagg", "ggcaacttgaccaagaag"},
	tmplC: {"tgtactggtgctgaacc", "aacgaaacgaccacct"},
}

func amplicon(t *testing.T, tmpl string) Amplifiable {
	t.Helper()
	p := pairs[tmpl]
	a, err := anneal.Amplify(primer.New(p[0]), primer.New(p[1]), seq.New(tmpl), 0)
	if err != nil {
		t.Fatal(err)
	}
	return Amplifiable{Amplicon: a}
}

func fixed(s string) Fixed { return Fixed{Seq: seq.New(s)} }

func seqs(frags []Fragment) []string {
	out := make([]string, len(frags))
	for i, f := range frags {
		out[i] = f.Record().Seq
	}
	return out
}

// fuse joins sequences on their longest end overlap of at least minOv bases,
// the way an overlap assembly would.
func fuse(t *testing.T, ss []string, minOv int) string {
	t.Helper()
	r := ss[0]
next:
	for _, s := range ss[1:] {
		for k := len(s); k >= minOv; k-- {
			if k <= len(r) && strings.HasSuffix(r, s[:k]) {
				r += s[k:]
				continue next
			}
		}
		t.Fatalf("no %d base overlap between %q and %q", minOv, r, s)
	}
	return r
}

// ring fuses ss and removes the overlap that closes the circle.
func ring(t *testing.T, ss []string, minOv int) seq.Record {
	t.Helper()
	linear := fuse(t, ss, minOv)
	k := len(linear) - 1
	for ; k >= minOv; k-- {
		if strings.HasSuffix(linear, linear[:k]) {
			break
		}
	}
	if k < minOv {
		t.Fatal("assembly does not close")
	}
	return seq.New(linear[:len(linear)-k])
}

func TestTailCircularAssembly(t *testing.T) {
	a, b, c := amplicon(t, tmplA), amplicon(t, tmplB), amplicon(t, tmplC)

	tailed, err := Tail([]Fragment{a, b, c, a}, 35, 40, nil)
	if err != nil {
		t.Fatal(err)
	}
	lens := []int{82, 101, 102, 82}
	for i, f := range tailed {
		if f.Len() != lens[i] {
			t.Errorf("fragment %d is %d bp, want %d", i, f.Len(), lens[i])
		}
	}

	closed, err := Circularize(tailed, PCR{})
	if err != nil {
		t.Fatal(err)
	}
	got := seqs(closed)
	want := []string{
		tmplC[len(tmplC)-18:] + tmplA + tmplB[:18],
		tmplA[len(tmplA)-18:] + tmplB + tmplC[:18],
		tmplB[len(tmplB)-18:] + tmplC + tmplA[:18],
	}
	if len(got) != 3 {
		t.Fatalf("got %d fragments", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fragment %d = %q, want %q", i, got[i], want[i])
		}
	}

	circ := ring(t, got, 35)
	if circ.Len() != 195 {
		t.Fatalf("circular product is %d bp, want 195", circ.Len())
	}
	if circ.Checksum(true) != seq.New(tmplA+tmplB+tmplC).Checksum(true) {
		t.Fatal("circular product differs from a+b+c")
	}
}

func TestTailLinkerBetweenAmplicons(t *testing.T) {
	a, b := amplicon(t, tmplA), amplicon(t, tmplB)
	out, err := Tail([]Fragment{a, fixed(linker), b}, 35, 40, PCR{})
	if err != nil {
		t.Fatal(err)
	}
	got := seqs(out)
	if len(got) != 2 {
		t.Fatalf("linker not absorbed: %d fragments", len(got))
	}
	if got[0] != tmplA+linker+tmplB[:8] || got[1] != tmplA[len(tmplA)-8:]+linker+tmplB {
		t.Fatalf("fragments = %q", got)
	}
	if fuse(t, got, 35) != tmplA+linker+tmplB {
		t.Fatal("fused product wrong")
	}
}

func TestTailLinkerAbsorbedByOneSide(t *testing.T) {
	a, b := amplicon(t, tmplA), amplicon(t, tmplB)

	out, err := Tail([]Fragment{a, fixed(linker), fixed(vector)}, 35, 40, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := seqs(out)
	if len(got) != 2 || got[0] != tmplA+linker+vector[:35] || got[1] != vector {
		t.Fatalf("preceding amplicon: %q", got)
	}

	out, err = Tail([]Fragment{fixed(vector), fixed(linker), b}, 35, 40, nil)
	if err != nil {
		t.Fatal(err)
	}
	got = seqs(out)
	if len(got) != 2 || got[0] != vector || got[1] != vector[len(vector)-35:]+linker+tmplB {
		t.Fatalf("following amplicon: %q", got)
	}
}

func TestTailFixedNeighbour(t *testing.T) {
	a, b := amplicon(t, tmplA), amplicon(t, tmplB)

	out, err := Tail([]Fragment{a, fixed(vector)}, 35, 40, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := seqs(out); got[0] != tmplA+vector[:35] || got[1] != vector {
		t.Fatalf("amplicon then fixed: %q", got)
	}
	if _, ok := out[1].(Fixed); !ok {
		t.Fatalf("fixed fragment changed kind: %T", out[1])
	}

	out, err = Tail([]Fragment{fixed(vector), b}, 35, 40, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := seqs(out); got[1] != vector[len(vector)-35:]+tmplB {
		t.Fatalf("fixed then amplicon: %q", got)
	}
}

func TestTailEdgeLinkers(t *testing.T) {
	a, b := amplicon(t, tmplA), amplicon(t, tmplB)
	out, err := Tail([]Fragment{fixed(linker), a, b, fixed("tttt")}, 35, 40, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := seqs(out)
	want := []string{
		linker + tmplA + tmplB[:18],
		tmplA[len(tmplA)-18:] + tmplB + "tttt",
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("fragments = %q, want %q", got, want)
	}
	// outermost primers only carry the edge linkers
	first := out[0].(Amplifiable)
	if first.Forward().Seq != linker+"atgactgctaacccttcc" {
		t.Fatalf("first forward = %s", first.Forward().Seq)
	}
}

func TestTailMaxLinkBoundary(t *testing.T) {
	a, b := amplicon(t, tmplA), amplicon(t, tmplB)
	l40 := strings.Repeat("acgt", 10)
	l41 := l40 + "a"

	out, err := Tail([]Fragment{a, fixed(l40), b}, 35, 40, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("40 bp linker kept: %d fragments", len(out))
	}
	if fuse(t, seqs(out), 35) != tmplA+l40+tmplB {
		t.Fatal("40 bp linker product wrong")
	}

	out, err = Tail([]Fragment{a, fixed(l41), b}, 35, 40, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[1].Record().Seq != l41 {
		t.Fatalf("41 bp fragment absorbed: %q", seqs(out))
	}
	if fuse(t, seqs(out), 35) != tmplA+l41+tmplB {
		t.Fatal("41 bp fragment product wrong")
	}
}

func TestTailJunctionOverlap(t *testing.T) {
	a, b, c := amplicon(t, tmplA), amplicon(t, tmplB), amplicon(t, tmplC)
	for _, ov := range []int{20, 35, 40} {
		out, err := Tail([]Fragment{a, b, c}, ov, 10, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := fuse(t, seqs(out), ov); got != tmplA+tmplB+tmplC {
			t.Errorf("overlap %d: fused product wrong", ov)
		}
	}
}

func TestTailDoesNotMutateInput(t *testing.T) {
	a, b := amplicon(t, tmplA), amplicon(t, tmplB)
	in := []Fragment{a, fixed(linker), b}
	if _, err := Tail(in, 35, 40, nil); err != nil {
		t.Fatal(err)
	}
	if in[0].(Amplifiable).Reverse().Seq != "catcgtaagtttcgaacga" || in[2].(Amplifiable).Forward().Seq != "ccaaacccaccagg" {
		t.Fatal("input primers changed")
	}
	if len(in) != 3 || in[1].Record().Seq != linker {
		t.Fatal("input list changed")
	}
}

func TestTailNonAmplifiableJunction(t *testing.T) {
	a := amplicon(t, tmplA)
	tests := map[string][]Fragment{
		"two fixed":            {fixed(vector), fixed(vector)},
		"fixed pair after amp": {a, fixed(vector), fixed(vector)},
		"linker between fixed": {fixed(vector), fixed(linker), fixed(vector)},
		"leading linker":       {fixed(linker), fixed(vector), a},
		"trailing linker":      {a, fixed(vector), fixed(linker)},
		"lone linker":          {fixed(linker)},
	}
	for name, frags := range tests {
		if _, err := Tail(frags, 35, 40, nil); !errors.Is(err, ErrNonAmplifiableJunction) {
			t.Errorf("%s: want ErrNonAmplifiableJunction, got %v", name, err)
		}
	}
}

func TestTailEmptyAndSingle(t *testing.T) {
	out, err := Tail(nil, 35, 40, nil)
	if err != nil || len(out) != 0 {
		t.Fatalf("empty input: %v %v", out, err)
	}
	a := amplicon(t, tmplA)
	out, err = Tail([]Fragment{a}, 35, 40, nil)
	if err != nil || len(out) != 1 || out[0].Record().Seq != tmplA {
		t.Fatalf("single amplicon: %v %v", seqs(out), err)
	}
}

type failing struct{}

func (failing) Amplify(primer.Primer, primer.Primer, seq.Record) (anneal.Amplicon, error) {
	return anneal.Amplicon{}, anneal.ErrNoProduct
}

func TestTailReportsAmplifierError(t *testing.T) {
	a, b := amplicon(t, tmplA), amplicon(t, tmplB)
	if _, err := Tail([]Fragment{a, b}, 35, 40, failing{}); !errors.Is(err, anneal.ErrNoProduct) {
		t.Fatalf("want ErrNoProduct, got %v", err)
	}
}

func TestCircularizeNeedsMatchingEnds(t *testing.T) {
	a, b, c := amplicon(t, tmplA), amplicon(t, tmplB), amplicon(t, tmplC)
	if _, err := Circularize([]Fragment{a, b, c}, nil); err == nil {
		t.Fatal("different templates at the ends accepted")
	}
	if _, err := Circularize([]Fragment{a}, nil); err == nil {
		t.Fatal("single fragment accepted")
	}
	if _, err := Circularize([]Fragment{fixed(vector), b, a}, nil); !errors.Is(err, ErrNonAmplifiableJunction) {
		t.Fatalf("fixed end: %v", err)
	}
}

func TestTailCircularFixedFirst(t *testing.T) {
	a, b := amplicon(t, tmplA), amplicon(t, tmplB)
	tl := Tailer{Overlap: 35, MaxLink: 40}
	out, err := tl.TailCircular([]Fragment{fixed(vector), a, b})
	if err != nil {
		t.Fatal(err)
	}
	got := seqs(out)
	want := []string{
		vector,
		vector[len(vector)-35:] + tmplA + tmplB[:18],
		tmplA[len(tmplA)-18:] + tmplB + vector[:35],
	}
	if len(got) != len(want) {
		t.Fatalf("got %d fragments, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fragment %d = %q, want %q", i, got[i], want[i])
		}
	}
	if ring(t, got, 35).Checksum(true) != seq.New(vector+tmplA+tmplB).Checksum(true) {
		t.Fatal("circular product differs from vector+a+b")
	}
}

func TestTailCircularLinkerFirst(t *testing.T) {
	a, b := amplicon(t, tmplA), amplicon(t, tmplB)
	tl := Tailer{Overlap: 35, MaxLink: 40}
	out, err := tl.TailCircular([]Fragment{fixed(linker), a, b})
	if err != nil {
		t.Fatal(err)
	}
	got := seqs(out)
	want := []string{
		tmplB[len(tmplB)-8:] + linker + tmplA + tmplB[:18],
		tmplA[len(tmplA)-18:] + tmplB + linker + tmplA[:8],
	}
	if len(got) != len(want) {
		t.Fatalf("linker not absorbed: %d fragments", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fragment %d = %q, want %q", i, got[i], want[i])
		}
	}
	if ring(t, got, 35).Checksum(true) != seq.New(linker+tmplA+tmplB).Checksum(true) {
		t.Fatal("circular product differs from linker+a+b")
	}
}

func TestTailCircularSingleAmplicon(t *testing.T) {
	out, err := Tailer{Overlap: 35, MaxLink: 40}.TailCircular([]Fragment{amplicon(t, tmplA)})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d fragments", len(out))
	}
	if got, want := out[0].Record().Seq, tmplA[len(tmplA)-18:]+tmplA+tmplA[:18]; got != want {
		t.Fatalf("closed amplicon = %q, want %q", got, want)
	}
}

func TestTailCircularErrors(t *testing.T) {
	tl := Tailer{Overlap: 35, MaxLink: 40}
	if out, err := tl.TailCircular(nil); err != nil || out != nil {
		t.Fatalf("empty = %v, %v", out, err)
	}
	if _, err := tl.TailCircular([]Fragment{fixed(linker)}); !errors.Is(err, ErrNonAmplifiableJunction) {
		t.Fatalf("linker only: %v", err)
	}
	if _, err := tl.TailCircular([]Fragment{fixed(vector)}); !errors.Is(err, ErrNonAmplifiableJunction) {
		t.Fatalf("fixed only: %v", err)
	}
}

func TestTailOddLinkerBetweenAmplicons(t *testing.T) {
	const odd = "ggatccaaaactgcagttttc" // 21 bp: each side carries 11 of them
	a, b := amplicon(t, tmplA), amplicon(t, tmplB)
	out, err := Tail([]Fragment{a, fixed(odd), b}, 35, 40, PCR{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("linker not absorbed: %d fragments", len(out))
	}
	fwd := out[1].(Amplifiable).Forward().Seq
	rev := out[0].(Amplifiable).Reverse().Seq
	wantFwd := tmplA[len(tmplA)-8:] + odd[:10] + odd[10:] + pairs[tmplB][0]
	wantRev := seq.RevCompString(odd[11:]+tmplB[:8]) + seq.RevCompString(odd[:11]) + pairs[tmplA][1]
	if fwd != wantFwd {
		t.Errorf("forward = %q, want %q", fwd, wantFwd)
	}
	if rev != wantRev {
		t.Errorf("reverse = %q, want %q", rev, wantRev)
	}
	got := seqs(out)
	if got[0] != tmplA+odd+tmplB[:8] || got[1] != tmplA[len(tmplA)-8:]+odd+tmplB {
		t.Fatalf("fragments = %q", got)
	}
	if fuse(t, got, 35) != tmplA+odd+tmplB {
		t.Fatal("fused product wrong")
	}
}
