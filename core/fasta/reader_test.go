// core/fasta/reader_test.go
package fasta

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const plain = `>seq1 first record
acgt
ACGT
>seq2
NNnn
`

// writeGz creates a gzipped FASTA file with provided data, returns the file path.
func writeGz(t *testing.T, data string) string {
	path := filepath.Join(t.TempDir(), "test.fa.gz")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(data)); err != nil {
		t.Fatalf("write gz: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestReadRecords(t *testing.T) {
	recs, err := Read(context.Background(), strings.NewReader(plain))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}
	if recs[0].ID != "seq1" || recs[0].Description != "first record" || recs[0].Seq != "acgtACGT" {
		t.Fatalf("record 0 = %+v", recs[0])
	}
	if recs[1].ID != "seq2" || recs[1].Seq != "NNnn" {
		t.Fatalf("record 1 = %+v", recs[1])
	}
}

func TestReadGzip(t *testing.T) {
	recs, err := ReadFile(context.Background(), writeGz(t, plain))
	if err != nil {
		t.Fatalf("read gz: %v", err)
	}
	if len(recs) != 2 || recs[1].ID != "seq2" {
		t.Fatalf("gzip parse failed: %+v", recs)
	}
}

func TestReadStdin(t *testing.T) {
	orig := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = io.WriteString(w, plain)
		_ = w.Close()
	}()

	recs, err := ReadFile(context.Background(), "-")
	if err != nil {
		t.Fatalf("read stdin: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records from stdin, got %d", len(recs))
	}
}

func TestReadRejectsHeaderlessData(t *testing.T) {
	if _, err := Read(context.Background(), strings.NewReader("ACGT\n")); err == nil {
		t.Fatal("expected error for data before header")
	}
}

func TestReadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Read(ctx, strings.NewReader(plain)); err != context.Canceled {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.fa")); err == nil {
		t.Fatal("expected error")
	}
}
