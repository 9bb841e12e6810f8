package pretty

import (
	"strings"
	"testing"

	"primertail-core/anneal"
	"primertail-core/primer"
	"primertail-core/seq"
)

const pUCFragment = "atgactgctaacccttccttggtgttgaacaagatcgacgacatttcgttcgaaacttacgatg"

func amplify(t *testing.T, fwd, rev string) anneal.Amplicon {
	t.Helper()
	a, err := anneal.Amplify(primer.New(fwd), primer.New(rev), seq.New(pUCFragment), anneal.DefaultMinLength)
	if err != nil {
		t.Fatalf("Amplify: %v", err)
	}
	return a
}

func TestFigurePlain(t *testing.T) {
	a := amplify(t, "atgactgctaacccttcc", "catcgtaagtttcgaacga")
	want := strings.Join([]string{
		"5atgactgctaacccttcc...tcgttcgaaacttacgatg3",
		"                      |||||||||||||||||||",
		"                     3agcaagctttgaatgctac5",
		"5atgactgctaacccttcc3",
		" ||||||||||||||||||",
		"3tactgacgattgggaagg...agcaagctttgaatgctac5",
	}, "\n") + "\n"
	if got := Figure(a, DefaultOptions); got != want {
		t.Fatalf("Figure mismatch:\n--- got ---\n%s--- want ---\n%s", got, want)
	}
}

func TestFigureTailed(t *testing.T) {
	a := amplify(t, "GGATCCatgactgctaacccttcc", "GGATCCcatcgtaagtttcgaacga")
	want := strings.Join([]string{
		"      5atgactgctaacccttcc...tcgttcgaaacttacgatg3",
		"                            |||||||||||||||||||",
		"                           3agcaagctttgaatgctacCCTAGG5",
		"5GGATCCatgactgctaacccttcc3",
		"       ||||||||||||||||||",
		"      3tactgacgattgggaagg...agcaagctttgaatgctac5",
	}, "\n") + "\n"
	if got := Figure(a, DefaultOptions); got != want {
		t.Fatalf("Figure mismatch:\n--- got ---\n%s--- want ---\n%s", got, want)
	}
}

func TestFigureTmLabels(t *testing.T) {
	a := amplify(t, "atgactgctaacccttcc", "catcgtaagtttcgaacga")
	a.Forward.Concentration = 1000
	opt := Options{
		Tm:       func(fp string, nM float64) float64 { return float64(len(fp)) },
		AltTm:    func(fp string, nM float64) float64 { return nM / 100 },
		AltLabel: "alt",
		Prefix:   "# ",
	}
	lines := strings.Split(strings.TrimSuffix(Figure(a, opt), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("want 6 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "# ") {
			t.Fatalf("line without prefix: %q", l)
		}
	}
	if !strings.HasSuffix(lines[1], " tm 19.0 (alt) 0.0") {
		t.Fatalf("reverse label: %q", lines[1])
	}
	if !strings.HasSuffix(lines[4], " tm 18.0 (alt) 10.0") {
		t.Fatalf("forward label: %q", lines[4])
	}
}

func TestFigurePartialGlyph(t *testing.T) {
	a := amplify(t, "atgactgctaacccttNc", "catcgtaagtttcgaacga")
	lines := strings.Split(Figure(a, DefaultOptions), "\n")
	if lines[4] != " ||||||||||||||||¦|" {
		t.Fatalf("bars = %q", lines[4])
	}
}

func TestFigureMissingFootprints(t *testing.T) {
	got := Figure(anneal.Amplicon{}, Options{Prefix: "# "})
	if !strings.HasPrefix(got, "# (figure not available") {
		t.Fatalf("got %q", got)
	}
}
