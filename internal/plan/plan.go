// Package plan reads assembly plans: an ordered list of fragments to be
// joined, each either designed from a template or used as a fixed sequence.
package plan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"primertail-core/anneal"
	"primertail-core/assembly"
	"primertail-core/fasta"
	"primertail-core/oligo"
	"primertail-core/primer"
	"primertail-core/seq"
	"primertail/internal/appcore"
	"primertail/internal/batch"
	"primertail/pkg/api"
)

// Plan is one assembly. Zero Overlap and MaxLink take the caller's defaults.
type Plan struct {
	Overlap   int        `yaml:"overlap"`
	MaxLink   int        `yaml:"max_link"`
	Circular  bool       `yaml:"circular"`
	Fragments []Fragment `yaml:"fragments"`

	// dir resolves relative template_file paths.
	dir string
}

// Fragment is one plan entry. Exactly one of Template, TemplateFile and
// Sequence is set.
type Fragment struct {
	Name         string  `yaml:"name"`
	Template     string  `yaml:"template"`
	TemplateFile string  `yaml:"template_file"`
	Record       string  `yaml:"record"` // record id inside TemplateFile; default first
	Forward      string  `yaml:"forward"`
	Reverse      string  `yaml:"reverse"`
	TargetTm     float64 `yaml:"target_tm"`
	Sequence     string  `yaml:"sequence"`
}

// Designer makes the amplicon of a template fragment.
type Designer interface {
	Amplicon(template seq.Record, fwd, rev *primer.Primer, targetTm float64) (anneal.Amplicon, error)
}

// Load reads and validates a YAML plan. Relative template files are
// resolved against the plan's directory.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	p.dir = filepath.Dir(path)
	return p, nil
}

// Parse decodes and validates a YAML plan. Unknown keys are errors.
func Parse(data []byte) (*Plan, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var p Plan
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty plan")
		}
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// FromAPI builds a plan from an HTTP or MCP tail request.
func FromAPI(req api.TailRequestV1) (*Plan, error) {
	p := &Plan{Overlap: req.Overlap, MaxLink: req.MaxLink, Circular: req.Circular}
	for _, f := range req.Fragments {
		p.Fragments = append(p.Fragments, Fragment{
			Name: f.Name, Template: f.Template, Forward: f.Forward, Reverse: f.Reverse,
			TargetTm: f.TargetTm, Sequence: f.Sequence,
		})
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the plan's shape; sequences are checked by Build.
func (p *Plan) Validate() error {
	if len(p.Fragments) == 0 {
		return errors.New("plan has no fragments")
	}
	if p.Overlap < 0 || p.MaxLink < 0 {
		return fmt.Errorf("overlap and max_link must be >= 0, got %d and %d", p.Overlap, p.MaxLink)
	}
	for i := range p.Fragments {
		f := &p.Fragments[i]
		if f.Name == "" {
			f.Name = fmt.Sprintf("fragment%d", i+1)
		}
		n := 0
		for _, s := range []string{f.Template, f.TemplateFile, f.Sequence} {
			if s != "" {
				n++
			}
		}
		if n != 1 {
			return fmt.Errorf("fragment %s: set exactly one of template, template_file, sequence", f.Name)
		}
		if f.Sequence != "" && (f.Forward != "" || f.Reverse != "" || f.TargetTm != 0) {
			return fmt.Errorf("fragment %s: a fixed sequence takes no primers or target_tm", f.Name)
		}
		if f.Record != "" && f.TemplateFile == "" {
			return fmt.Errorf("fragment %s: record needs template_file", f.Name)
		}
	}
	return nil
}

// Build turns every entry into an assembly fragment: template entries are
// designed (or amplified when both primers are given) through d, at most
// threads at a time; sequence entries become fixed fragments. Order is kept.
func (p *Plan) Build(ctx context.Context, d Designer, threads int) ([]assembly.Fragment, error) {
	return batch.Map(ctx, p.Fragments, threads, func(ctx context.Context, f Fragment) (assembly.Fragment, error) {
		frag, err := p.build(ctx, f, d)
		if err != nil {
			return nil, fmt.Errorf("fragment %s: %w", f.Name, err)
		}
		return frag, nil
	})
}

func (p *Plan) build(ctx context.Context, f Fragment, d Designer) (assembly.Fragment, error) {
	if f.Sequence != "" {
		s, err := oligo.Validate(f.Sequence)
		if err != nil {
			return nil, err
		}
		return assembly.Fixed{Seq: seq.Record{ID: f.Name, Name: f.Name, Seq: s}}, nil
	}

	tmpl, err := p.template(ctx, f)
	if err != nil {
		return nil, err
	}
	fwd, err := appcore.ParsePrimer(f.Name+"_fw", f.Forward)
	if err != nil {
		return nil, err
	}
	rev, err := appcore.ParsePrimer(f.Name+"_rv", f.Reverse)
	if err != nil {
		return nil, err
	}
	a, err := d.Amplicon(tmpl, fwd, rev, f.TargetTm)
	if err != nil {
		return nil, err
	}
	// designed primers are named after the fragment
	if fwd == nil {
		a.Forward = rename(a.Forward, f.Name+"_fw", a.Template)
	}
	if rev == nil {
		a.Reverse = rename(a.Reverse, f.Name+"_rv", a.Template)
	}
	return assembly.Amplifiable{Amplicon: a}, nil
}

func rename(p primer.Primer, id string, template seq.Record) primer.Primer {
	p.ID, p.Name = id, id
	p.Description = id + " " + template.AccessionOrID()
	return p
}

func (p *Plan) template(ctx context.Context, f Fragment) (seq.Record, error) {
	if f.Template != "" {
		s, err := oligo.Validate(f.Template)
		if err != nil {
			return seq.Record{}, err
		}
		return seq.Record{ID: f.Name, Name: f.Name, Seq: s}, nil
	}

	path := f.TemplateFile
	if !filepath.IsAbs(path) && p.dir != "" {
		path = filepath.Join(p.dir, path)
	}
	recs, err := fasta.ReadFile(ctx, path)
	if err != nil {
		return seq.Record{}, err
	}
	for _, r := range recs {
		if f.Record == "" || strings.EqualFold(r.ID, f.Record) {
			// the plan name identifies the fragment; the record keeps its accession
			if r.Accession == "" {
				r.Accession = r.ID
			}
			r.ID = f.Name
			return r, nil
		}
	}
	if f.Record != "" {
		return seq.Record{}, fmt.Errorf("record %q not found in %s", f.Record, path)
	}
	return seq.Record{}, fmt.Errorf("no records in %s", path)
}
