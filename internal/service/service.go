// Package service answers v1 API requests. The HTTP and MCP front ends are
// thin adapters over it.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"primertail-core/anneal"
	"primertail-core/oligo"
	"primertail-core/seq"
	"primertail/internal/appcore"
	"primertail/internal/output"
	"primertail/internal/plan"
	"primertail/internal/pretty"
	"primertail/pkg/api"
)

// ErrInvalidInput wraps every error caused by the request itself.
var ErrInvalidInput = errors.New("invalid input")

func invalid(err error) error { return fmt.Errorf("%w: %w", ErrInvalidInput, err) }

// Service holds the defaults requests override.
type Service struct {
	Settings appcore.Settings
}

// Designed is an amplicon together with the settings that made it.
type Designed struct {
	Amplicon anneal.Amplicon
	Settings appcore.Settings
}

// API returns the v1 view with footprint Tm.
func (d Designed) API() api.AmpliconV1 { return output.ToAPIAmplicon(d.Amplicon, d.Settings.TmFunc()) }

// Figure draws the amplicon with Tm labels.
func (d Designed) Figure() string { return pretty.Figure(d.Amplicon, d.Settings.FigureOptions("")) }

// Design designs the primers req asks for.
func (s Service) Design(req api.DesignRequestV1) (Designed, error) {
	st, err := s.settings(req.FwdConc, req.RevConc, req.SaltConc, req.Formula)
	if err != nil {
		return Designed{}, err
	}
	if req.TargetTm != 0 {
		st.TargetTm = req.TargetTm
	}
	if req.MinLength < 0 {
		return Designed{}, invalid(fmt.Errorf("min_length must be >= 0, got %d", req.MinLength))
	}
	if req.MinLength != 0 {
		st.MinLength = req.MinLength
	}
	tmpl, err := oligo.Validate(req.Template)
	if err != nil {
		return Designed{}, invalid(fmt.Errorf("template: %w", err))
	}
	id := req.TemplateID
	if id == "" {
		id = "template"
	}
	fwd, err := appcore.ParsePrimer("", req.Forward)
	if err != nil {
		return Designed{}, invalid(err)
	}
	rev, err := appcore.ParsePrimer("", req.Reverse)
	if err != nil {
		return Designed{}, invalid(err)
	}
	a, err := st.Design(seq.Record{ID: id, Seq: tmpl}, fwd, rev)
	if err != nil {
		return Designed{}, err
	}
	return Designed{Amplicon: a, Settings: st}, nil
}

// Tail designs every template fragment of req and tails the assembly.
func (s Service) Tail(ctx context.Context, req api.TailRequestV1) (api.TailResponseV1, error) {
	p, err := plan.FromAPI(req)
	if err != nil {
		return api.TailResponseV1{}, invalid(err)
	}
	st := s.Settings
	if p.Overlap != 0 {
		st.Overlap = p.Overlap
	}
	if p.MaxLink != 0 {
		st.MaxLink = p.MaxLink
	}
	frags, err := p.Build(ctx, st, st.Threads)
	if err != nil {
		return api.TailResponseV1{}, err
	}
	tailed, err := st.Tail(frags, p.Circular)
	if err != nil {
		return api.TailResponseV1{}, err
	}
	return api.TailResponseV1{Fragments: output.ToAPIFragments(tailed, st.TmFunc()), Circular: p.Circular}, nil
}

// Tm scores every sequence of req.
func (s Service) Tm(req api.TmRequestV1) ([]api.TmV1, error) {
	st, err := s.settings(req.PrimerConc, "", req.SaltConc, req.Formula)
	if err != nil {
		return nil, err
	}
	out, err := st.TmAll(req.Seqs)
	if err != nil {
		return nil, invalid(err)
	}
	return out, nil
}

// settings layers request overrides on the defaults.
func (s Service) settings(fwd, rev, salt, formula string) (appcore.Settings, error) {
	st, err := s.Settings.WithConc(fwd, rev, salt)
	if err != nil {
		return st, invalid(err)
	}
	st, err = st.WithFormula(strings.TrimSpace(formula))
	if err != nil {
		return st, invalid(err)
	}
	return st, nil
}
