// internal/cliutil/cliutil.go
package cliutil

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"primertail-core/fasta"
	"primertail-core/oligo"
	"primertail-core/seq"
)

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPositionals expands any globs among path-like positionals. "-" is
// kept as is (stdin).
func ExpandPositionals(posArgs []string) ([]string, error) {
	var out []string
	for _, a := range posArgs {
		if a == "-" || !hasGlobMeta(a) {
			out = append(out, a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", a, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", a)
		}
		out = append(out, m...)
	}
	return out, nil
}

// ReadTemplates reads every record of every FASTA file in paths, in order.
// Sequences are validated as DNA.
func ReadTemplates(ctx context.Context, paths []string) ([]seq.Record, error) {
	var out []seq.Record
	for _, p := range paths {
		recs, err := fasta.ReadFile(ctx, p)
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			return nil, fmt.Errorf("%s: no FASTA records", p)
		}
		for _, r := range recs {
			clean, err := oligo.Validate(r.Seq)
			if err != nil {
				return nil, fmt.Errorf("%s: record %s: %w", p, r.ID, err)
			}
			r.Seq = clean
			out = append(out, r)
		}
	}
	return out, nil
}
