// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"primertail-core/seq"
)

const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)

// Each parses FASTA from r and calls emit once per record. The header's first
// token is the ID (and Name); the rest is the description. Sequence case is
// kept. Cancellation via ctx is checked between lines.
func Each(ctx context.Context, r io.Reader, emit func(seq.Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		cur  seq.Record
		body strings.Builder
		open bool
	)
	flush := func() error {
		if !open {
			return nil
		}
		cur.Seq = body.String()
		body.Reset()
		return emit(cur)
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			cur = parseHeader(line[1:])
			open = true
			continue
		}
		if !open {
			return fmt.Errorf("fasta: sequence data before first header")
		}
		for _, b := range line {
			if b != ' ' && b != '\t' {
				body.WriteByte(b)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// Read returns every record in r.
func Read(ctx context.Context, r io.Reader) ([]seq.Record, error) {
	var out []seq.Record
	err := Each(ctx, r, func(rec seq.Record) error {
		out = append(out, rec)
		return nil
	})
	return out, err
}

// ReadFile reads every record in path ("-" for stdin, gzip aware).
func ReadFile(ctx context.Context, path string) ([]seq.Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	recs, err := Read(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

func parseHeader(hdr []byte) seq.Record {
	h := strings.TrimSpace(string(hdr))
	id, desc := h, ""
	if i := strings.IndexAny(h, " \t"); i >= 0 {
		id, desc = h[:i], strings.TrimSpace(h[i+1:])
	}
	return seq.Record{ID: id, Name: id, Description: desc}
}
