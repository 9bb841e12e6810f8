// core/design/grow.go
package design

import (
	"fmt"
	"math"
	"strings"

	"primertail-core/thermo"
)

// MaxStepDrop is the largest Tm fall (°C) tolerated for a one-base extension.
// Nearest-neighbour formulas wobble by under 1 °C per base.
const MaxStepDrop = 5.0

// step is one state of the length search.
type step struct {
	length int
	primer string
	tm     float64
}

// Grow returns the prefix of source whose Tm is closest to target. The search
// extends a candidate one base at a time from minLength until Tm reaches
// target, then picks the first candidate reaching it or the one a base
// shorter, preferring the shorter on a tie. Tm is scored on the upper-cased
// candidate at the formula's default concentrations.
func Grow(target float64, source string, minLength int, f thermo.Formula) (string, error) {
	if minLength < 1 {
		minLength = 1
	}
	if len(source) < minLength {
		return "", fmt.Errorf("%w: %d bases, need at least %d", ErrTemplateTooShort, len(source), minLength)
	}
	at := func(n int) step {
		p := source[:n]
		return step{length: n, primer: p, tm: f(strings.ToUpper(p), thermo.DefaultPrimerNM, thermo.DefaultSaltMM)}
	}

	cur := at(minLength)
	if !finite(cur.tm) {
		return "", fmt.Errorf("%w: Tm of %q is %v", ErrNonMonotonic, cur.primer, cur.tm)
	}
	for cur.tm < target {
		if cur.length == len(source) {
			return "", fmt.Errorf("%w: %d bases reach %.2f °C, target %.2f °C",
				ErrTemplateTooShort, cur.length, cur.tm, target)
		}
		next := at(cur.length + 1)
		if !finite(next.tm) || cur.tm-next.tm > MaxStepDrop {
			return "", fmt.Errorf("%w: Tm went from %.2f to %v at length %d",
				ErrNonMonotonic, cur.tm, next.tm, next.length)
		}
		cur = next
	}

	if cur.length == minLength {
		return cur.primer, nil
	}
	shorter := at(cur.length - 1)
	if math.Abs(target-shorter.tm) <= math.Abs(target-cur.tm) {
		return shorter.primer, nil
	}
	return cur.primer, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
