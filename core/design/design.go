// core/design/design.go
package design

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"primertail-core/anneal"
	"primertail-core/primer"
	"primertail-core/seq"
	"primertail-core/thermo"
)

var (
	ErrOverSpecified    = errors.New("both primers given, use anneal.Amplify instead")
	ErrTemplateTooShort = errors.New("template too short to reach target Tm")
	ErrAssemblyMismatch = errors.New("designed primers do not give exactly one product")
	ErrNonMonotonic     = errors.New("Tm formula is not monotonic in primer length")
	ErrNoAnnealing      = errors.New("primer does not anneal to template")
)

// Options tunes Design. Zero fields take the Default* values.
type Options struct {
	Forward *primer.Primer
	Reverse *primer.Primer

	TargetTm  float64 // °C
	ForwardNM float64
	ReverseNM float64
	SaltMM    float64
	MinLength int
	Formula   thermo.Formula

	Logger *slog.Logger
}

const (
	DefaultTargetTm  = 55.0
	DefaultPrimerNM  = 1000.0
	DefaultSaltMM    = 50.0
	DefaultMinLength = anneal.DefaultMinLength
)

func (o Options) withDefaults() Options {
	if o.TargetTm == 0 {
		o.TargetTm = DefaultTargetTm
	}
	if o.ForwardNM == 0 {
		o.ForwardNM = DefaultPrimerNM
	}
	if o.ReverseNM == 0 {
		o.ReverseNM = DefaultPrimerNM
	}
	if o.SaltMM == 0 {
		o.SaltMM = DefaultSaltMM
	}
	if o.MinLength == 0 {
		o.MinLength = DefaultMinLength
	}
	if o.Formula == nil {
		o.Formula = thermo.Bresluc
	}
	return o
}

func (o Options) debug(msg string, args ...any) {
	if o.Logger != nil {
		o.Logger.Debug(msg, args...)
	}
}

func (o Options) tm(s string, primerNM float64) float64 {
	return o.Formula(strings.ToUpper(s), primerNM, o.SaltMM)
}

// Design returns the amplicon of template made by a Tm-matched primer pair.
// At most one primer may be supplied; the missing one is grown to match the
// Tm of the supplied primer's footprint. With neither supplied, the forward
// primer is grown toward TargetTm and the reverse toward the forward's Tm.
func Design(template seq.Record, opt Options) (anneal.Amplicon, error) {
	o := opt.withDefaults()
	rcTemplate := template.RevComp().Seq

	var fp, rp primer.Primer
	switch {
	case o.Forward != nil && o.Reverse != nil:
		return anneal.Amplicon{}, ErrOverSpecified

	case o.Forward != nil:
		fp = *o.Forward
		b, err := footprint(fp, template, o.MinLength, false)
		if err != nil {
			return anneal.Amplicon{}, err
		}
		target := o.tm(b.Footprint, o.ForwardNM)
		o.debug("forward primer given, designing reverse", "footprint", b.Footprint, "target_tm", target)
		s, err := Grow(target, rcTemplate, o.MinLength, o.Formula)
		if err != nil {
			return anneal.Amplicon{}, fmt.Errorf("reverse primer: %w", err)
		}
		rp = primer.New(s)

	case o.Reverse != nil:
		rp = *o.Reverse
		b, err := footprint(rp, template, o.MinLength, true)
		if err != nil {
			return anneal.Amplicon{}, err
		}
		target := o.tm(b.Footprint, o.ReverseNM)
		o.debug("reverse primer given, designing forward", "footprint", b.Footprint, "target_tm", target)
		s, err := Grow(target, template.Seq, o.MinLength, o.Formula)
		if err != nil {
			return anneal.Amplicon{}, fmt.Errorf("forward primer: %w", err)
		}
		fp = primer.New(s)

	default:
		o.debug("no primer given, designing forward", "target_tm", o.TargetTm)
		s, err := Grow(o.TargetTm, template.Seq, o.MinLength, o.Formula)
		if err != nil {
			return anneal.Amplicon{}, fmt.Errorf("forward primer: %w", err)
		}
		fp = primer.New(s)
		target := o.tm(fp.Seq, o.ForwardNM)
		o.debug("designing reverse", "target_tm", target)
		s, err = Grow(target, rcTemplate, o.MinLength, o.Formula)
		if err != nil {
			return anneal.Amplicon{}, fmt.Errorf("reverse primer: %w", err)
		}
		rp = primer.New(s)
	}

	fp = finish(fp, "fw", o.ForwardNM, template)
	rp = finish(rp, "rv", o.ReverseNM, template)

	res := anneal.Anneal([]primer.Primer{fp, rp}, template, o.MinLength)
	if len(res.Products) != 1 {
		return anneal.Amplicon{}, fmt.Errorf("%w: %s and %s give %d products on %s",
			ErrAssemblyMismatch, fp.Seq, rp.Seq, len(res.Products), template.AccessionOrID())
	}
	a := res.Products[0]
	o.debug("designed",
		"forward", a.Forward.Seq, "forward_tm", o.tm(a.FwdFootprint, o.ForwardNM),
		"reverse", a.Reverse.Seq, "reverse_tm", o.tm(a.RevFootprint, o.ReverseNM),
		"length", a.Len())
	return a, nil
}

func footprint(p primer.Primer, template seq.Record, minLength int, reverse bool) (anneal.Bound, error) {
	res := anneal.Anneal([]primer.Primer{p}, template, minLength)
	sites := res.Forward
	strand := "forward"
	if reverse {
		sites, strand = res.Reverse, "reverse"
	}
	if len(sites) == 0 {
		return anneal.Bound{}, fmt.Errorf("%w: %s %s on %s", ErrNoAnnealing, strand, p.Seq, template.AccessionOrID())
	}
	return sites[len(sites)-1], nil
}

// finish sets concentration and, for unnamed primers, a name derived from
// the template length ("fw64", "rv64").
func finish(p primer.Primer, prefix string, nM float64, template seq.Record) primer.Primer {
	p.Concentration = nM
	id := fmt.Sprintf("%s%d", prefix, template.Len())
	if p.ID == "" || p.ID == primer.UnsetID {
		p.ID = id
	}
	if p.Name == "" || p.Name == primer.UnsetID {
		p.Name = id
	}
	p.Description = p.ID + " " + template.AccessionOrID()
	return p
}
