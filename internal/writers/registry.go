// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"primertail-core/anneal"
	"primertail-core/assembly"
	"primertail-core/primer"
	"primertail/internal/output"
	"primertail/pkg/api"
)

// WriteFunc serializes one payload in one format.
type WriteFunc[T any] func(w io.Writer, payload T, opt output.Options) error

// Registry maps format names to writers for one payload kind.
// Register in init() blocks; last registration wins.
type Registry[T any] struct {
	kind string
	m    map[string]WriteFunc[T]
}

func newRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, m: map[string]WriteFunc[T]{}}
}

func (r *Registry[T]) Register(format string, fn WriteFunc[T]) { r.m[format] = fn }

// Write dispatches payload to the writer registered for format.
func (r *Registry[T]) Write(format string, w io.Writer, payload T, opt output.Options) error {
	fn, ok := r.m[format]
	if !ok {
		return fmt.Errorf("unknown %s format %q (no writer registered)", r.kind, format)
	}
	return fn(w, payload, opt)
}

// Formats lists the registered format names, sorted.
func (r *Registry[T]) Formats() []string {
	out := make([]string, 0, len(r.m))
	for f := range r.m {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// FragmentSet is a tailed assembly and whether it closes into a circle.
type FragmentSet struct {
	Fragments []assembly.Fragment
	Circular  bool
}

var (
	Amplicons = newRegistry[[]anneal.Amplicon]("amplicon")
	Fragments = newRegistry[FragmentSet]("fragment")
	Tms       = newRegistry[[]api.TmV1]("tm")
	Library   = newRegistry[[]primer.Primer]("primer")
)
