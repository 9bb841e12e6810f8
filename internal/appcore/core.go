// internal/appcore/core.go
package appcore

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"primertail-core/anneal"
	"primertail-core/assembly"
	"primertail-core/design"
	"primertail-core/oligo"
	"primertail-core/primer"
	"primertail-core/seq"
	"primertail-core/thermo"
	"primertail/internal/batch"
	"primertail/internal/config"
	"primertail/internal/pretty"
	"primertail/pkg/api"
)

// Settings is everything the commands need to design, amplify and tail.
// Concentrations are in nM (primers) and mM (salt).
type Settings struct {
	TargetTm    float64
	FwdNM       float64
	RevNM       float64
	SaltMM      float64
	MinLength   int
	FormulaName string
	Formula     thermo.Formula

	Overlap int
	MaxLink int
	Threads int

	Logger *slog.Logger
}

// FromConfig resolves concentrations and the Tm formula named in c.
func FromConfig(c config.Config, logger *slog.Logger) (Settings, error) {
	s := Settings{
		TargetTm:  c.TargetTm,
		MinLength: c.MinLength,
		Overlap:   c.Overlap,
		MaxLink:   c.MaxLink,
		Threads:   c.Threads,
		Logger:    logger,
	}
	var err error
	if s, err = s.WithConc(c.FwdConc, c.RevConc, c.SaltConc); err != nil {
		return Settings{}, err
	}
	return s.WithFormula(c.Formula)
}

// WithFormula switches to the named Tm formula. Empty keeps the current one.
func (s Settings) WithFormula(name string) (Settings, error) {
	if name == "" && s.Formula != nil {
		return s, nil
	}
	f, err := thermo.Lookup(name)
	if err != nil {
		return Settings{}, err
	}
	if name == "" {
		name = thermo.Default
	}
	s.Formula, s.FormulaName = f, strings.ToLower(name)
	return s, nil
}

// WithConc parses concentration strings ("1uM", "50mM", bare numbers in nM
// and mM). Empty strings keep the current value.
func (s Settings) WithConc(fwd, rev, salt string) (Settings, error) {
	var err error
	if fwd != "" {
		if s.FwdNM, err = thermo.ParseNM(fwd); err != nil {
			return Settings{}, fmt.Errorf("forward primer concentration: %w", err)
		}
	}
	if rev != "" {
		if s.RevNM, err = thermo.ParseNM(rev); err != nil {
			return Settings{}, fmt.Errorf("reverse primer concentration: %w", err)
		}
	}
	if salt != "" {
		if s.SaltMM, err = thermo.ParseMM(salt); err != nil {
			return Settings{}, fmt.Errorf("salt concentration: %w", err)
		}
	}
	return s, nil
}

// ParsePrimer validates raw as an oligo. Empty raw gives nil (not supplied).
func ParsePrimer(id, raw string) (*primer.Primer, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	clean, err := oligo.Validate(raw)
	if err != nil && id == "" {
		return nil, fmt.Errorf("primer: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("primer %s: %w", id, err)
	}
	p := primer.New(clean)
	if id != "" {
		p = primer.Named(id, clean)
	}
	return &p, nil
}

// DesignOptions maps s onto design.Options.
func (s Settings) DesignOptions(fwd, rev *primer.Primer) design.Options {
	return design.Options{
		Forward:   fwd,
		Reverse:   rev,
		TargetTm:  s.TargetTm,
		ForwardNM: s.FwdNM,
		ReverseNM: s.RevNM,
		SaltMM:    s.SaltMM,
		MinLength: s.MinLength,
		Formula:   s.Formula,
		Logger:    s.Logger,
	}
}

// Design designs the missing primers for template.
func (s Settings) Design(template seq.Record, fwd, rev *primer.Primer) (anneal.Amplicon, error) {
	return design.Design(template, s.DesignOptions(fwd, rev))
}

// Amplicon designs when at most one primer is given and runs a plain PCR
// when both are. targetTm overrides s.TargetTm when non-zero.
func (s Settings) Amplicon(template seq.Record, fwd, rev *primer.Primer, targetTm float64) (anneal.Amplicon, error) {
	if targetTm != 0 {
		s.TargetTm = targetTm
	}
	if fwd != nil && rev != nil {
		return s.Amplify(template, *fwd, *rev)
	}
	return s.Design(template, fwd, rev)
}

// Amplify runs a PCR with both primers given. Primers are stamped with the
// configured concentrations when they carry none.
func (s Settings) Amplify(template seq.Record, fwd, rev primer.Primer) (anneal.Amplicon, error) {
	if fwd.Concentration == 0 {
		fwd.Concentration = s.fwdNM()
	}
	if rev.Concentration == 0 {
		rev.Concentration = s.revNM()
	}
	return anneal.Amplify(fwd, rev, template, s.MinLength)
}

// DesignAll designs every template independently, s.Threads at a time.
// Results follow the order of templates.
func (s Settings) DesignAll(ctx context.Context, templates []seq.Record, fwd, rev *primer.Primer) ([]anneal.Amplicon, error) {
	return batch.Map(ctx, templates, s.Threads, func(_ context.Context, t seq.Record) (anneal.Amplicon, error) {
		a, err := s.Amplicon(t, fwd, rev, 0)
		if err != nil {
			return anneal.Amplicon{}, fmt.Errorf("%s: %w", recordLabel(t), err)
		}
		return a, nil
	})
}

// Tail adds overlap tails to frags. With circular set the last fragment is
// also joined to the first one.
func (s Settings) Tail(frags []assembly.Fragment, circular bool) ([]assembly.Fragment, error) {
	amp := assembly.PCR{MinLength: s.MinLength}
	t := assembly.Tailer{Overlap: s.Overlap, MaxLink: s.MaxLink, Amplifier: amp, Logger: s.Logger}
	if circular {
		return t.TailCircular(frags)
	}
	return t.Tail(frags)
}

// Tm scores seq with the configured formula and salt.
func (s Settings) Tm(sequence string, primerNM float64) float64 {
	return s.formula()(strings.ToUpper(sequence), nonZero(primerNM, s.fwdNM()), s.saltMM())
}

// TmAll scores every sequence at the forward primer concentration.
func (s Settings) TmAll(seqs []string) ([]api.TmV1, error) {
	if len(seqs) == 0 {
		return nil, fmt.Errorf("no sequences given")
	}
	out := make([]api.TmV1, 0, len(seqs))
	for i, raw := range seqs {
		clean, err := oligo.Validate(raw)
		if err != nil {
			return nil, fmt.Errorf("sequence %d: %w", i+1, err)
		}
		out = append(out, api.TmV1{
			Seq:      clean,
			Formula:  s.name(),
			Tm:       math.Round(s.Tm(clean, 0)*100) / 100,
			PrimerNM: s.fwdNM(),
			SaltMM:   s.saltMM(),
			Hairpin:  math.Round(thermo.Hairpin(clean)*100) / 100,
		})
	}
	return out, nil
}

// TmFunc is Tm shaped for the amplicon figure.
func (s Settings) TmFunc() pretty.TmFunc { return s.Tm }

// FigureOptions labels footprints with the configured formula and, for
// comparison, one other formula.
func (s Settings) FigureOptions(prefix string) pretty.Options {
	alt := "santalucia"
	if s.FormulaName == alt {
		alt = thermo.Default
	}
	other, err := s.WithFormula(alt)
	opt := pretty.DefaultOptions
	opt.Prefix = prefix
	opt.Tm = s.Tm
	if err == nil {
		opt.AltTm, opt.AltLabel = other.Tm, alt
	}
	return opt
}

func (s Settings) formula() thermo.Formula {
	if s.Formula == nil {
		return thermo.Bresluc
	}
	return s.Formula
}

func (s Settings) name() string {
	if s.FormulaName == "" {
		return thermo.Default
	}
	return s.FormulaName
}

func (s Settings) fwdNM() float64  { return nonZero(s.FwdNM, design.DefaultPrimerNM) }
func (s Settings) revNM() float64  { return nonZero(s.RevNM, design.DefaultPrimerNM) }
func (s Settings) saltMM() float64 { return nonZero(s.SaltMM, design.DefaultSaltMM) }

func nonZero(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func recordLabel(r seq.Record) string {
	if r.ID != "" {
		return r.ID
	}
	return fmt.Sprintf("%d bp template", r.Len())
}
