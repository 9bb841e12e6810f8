package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primertail-core/anneal"
	"primertail-core/assembly"
	"primertail-core/primer"
	"primertail-core/seq"
	"primertail/pkg/api"
)

const tmplA = "atgactgctaacccttccttggtgttgaacaagatcgacgacatttcgttcgaaacttacgatg"

func amplicon(t *testing.T, fwd, rev string) anneal.Amplicon {
	t.Helper()
	a, err := anneal.Amplify(primer.Named("fw64", fwd), primer.Named("rv64", rev),
		seq.Record{ID: "pUC", Seq: tmplA}, anneal.DefaultMinLength)
	require.NoError(t, err)
	a.Forward.Concentration, a.Reverse.Concentration = 1000, 1000
	return a
}

func lengthTm(fp string, _ float64) float64 { return float64(len(fp)) + 0.004 }

func TestToAPIPrimerSplitsTail(t *testing.T) {
	a := amplicon(t, "GGATCCatgactgctaacccttcc", "catcgtaagtttcgaacga")
	v := ToAPIAmplicon(a, lengthTm)

	assert.Equal(t, "pUC", v.TemplateID)
	assert.Equal(t, 0, v.Start)
	assert.Equal(t, 64, v.End)
	assert.Equal(t, 70, v.Length)
	assert.Equal(t, "GGATCC", v.Forward.Tail)
	assert.Equal(t, "atgactgctaacccttcc", v.Forward.Footprint)
	assert.Equal(t, 18.0, v.Forward.Tm)
	assert.Empty(t, v.Reverse.Tail)
	assert.Equal(t, 1000.0, v.Reverse.ConcentrationNM)
}

func TestWriteAmpliconsText(t *testing.T) {
	a := amplicon(t, "atgactgctaacccttcc", "catcgtaagtttcgaacga")
	var buf bytes.Buffer
	require.NoError(t, WriteAmpliconsText(&buf, []anneal.Amplicon{a}, Options{Header: true, Tm: lengthTm}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, AmpliconHeader, lines[0])
	assert.Equal(t, "pUC\t0\t64\t64\tatgactgctaacccttcc\t18.0\tcatcgtaagtttcgaacga\t19.0", lines[1])
}

func TestWriteAmpliconsTextFigure(t *testing.T) {
	a := amplicon(t, "atgactgctaacccttcc", "catcgtaagtttcgaacga")
	var buf bytes.Buffer
	require.NoError(t, WriteAmpliconsText(&buf, []anneal.Amplicon{a}, Options{Figure: true}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "\t-\t")
	assert.Equal(t, "5atgactgctaacccttcc3", lines[4])
}

func TestWriteAmpliconsFASTA(t *testing.T) {
	a := amplicon(t, "atgactgctaacccttcc", "catcgtaagtttcgaacga")
	var buf bytes.Buffer
	require.NoError(t, WriteAmpliconsFASTA(&buf, []anneal.Amplicon{a, {}}))
	assert.Equal(t, ">pUC_1 start=0 end=64 len=64 fwd=fw64 rev=rv64\n"+tmplA+"\n", buf.String())
}

func TestWriteAmpliconsJSON(t *testing.T) {
	a := amplicon(t, "atgactgctaacccttcc", "catcgtaagtttcgaacga")
	var buf bytes.Buffer
	require.NoError(t, WriteAmpliconsJSON(&buf, []anneal.Amplicon{a}, Options{}))

	var got []api.AmpliconV1
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "fw64", got[0].Forward.ID)
	assert.Zero(t, got[0].Forward.Tm)
	assert.NotContains(t, buf.String(), `"tm"`)
}

func TestFragmentsWriters(t *testing.T) {
	a := amplicon(t, "atgactgctaacccttcc", "catcgtaagtttcgaacga")
	frags := []assembly.Fragment{
		assembly.Amplifiable{Amplicon: a},
		assembly.Fixed{Seq: seq.New("ggatccaaaa")},
	}

	var txt bytes.Buffer
	require.NoError(t, WriteFragmentsText(&txt, frags, Options{Header: true}))
	assert.Equal(t, FragmentHeader+"\n"+
		"pUC\tamplicon\t64\tatgactgctaacccttcc\tcatcgtaagtttcgaacga\n"+
		"fragment2\tfixed\t10\t-\t-\n", txt.String())

	var fa bytes.Buffer
	require.NoError(t, WriteFragmentsFASTA(&fa, frags))
	assert.Contains(t, fa.String(), ">fragment2 len=10 kind=fixed\nggatccaaaa\n")

	var js bytes.Buffer
	require.NoError(t, WriteFragmentsJSON(&js, frags, true, Options{}))
	var doc api.TailResponseV1
	require.NoError(t, json.Unmarshal(js.Bytes(), &doc))
	assert.True(t, doc.Circular)
	require.Len(t, doc.Fragments, 2)
	assert.Nil(t, doc.Fragments[1].Forward)
}

func TestWritePrimersFASTADedupes(t *testing.T) {
	a := amplicon(t, "atgactgctaacccttcc", "catcgtaagtttcgaacga")
	a.Forward.Description = "fw64 pUC"
	var buf bytes.Buffer
	require.NoError(t, WritePrimersFASTA(&buf, AmpliconPrimers([]anneal.Amplicon{a, a})))
	assert.Equal(t, ">fw64 fw64 pUC\natgactgctaacccttcc\n>rv64\ncatcgtaagtttcgaacga\n", buf.String())
}

func TestWriteTm(t *testing.T) {
	list := []api.TmV1{{Seq: "acgt", Formula: "basic", Tm: 12, PrimerNM: 1000, SaltMM: 50}}
	var buf bytes.Buffer
	require.NoError(t, WriteTmText(&buf, list, Options{}))
	assert.Equal(t, "acgt\tbasic\t12.00\t0.0\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteTmJSON(&buf, list))
	assert.Contains(t, buf.String(), `"formula": "basic"`)
}
