// core/assembly/tail.go
package assembly

import (
	"errors"
	"fmt"
	"log/slog"

	"primertail-core/primer"
	"primertail-core/seq"
)

var ErrNonAmplifiableJunction = errors.New("non-amplifiable junction")

const (
	DefaultOverlap = 35
	DefaultMaxLink = 40
)

// Tailer adds primer tails so that adjacent fragments overlap and can be
// joined in order (overlap-extension PCR, Gibson assembly, homologous
// recombination). Fragments no longer than MaxLink are linkers: they are
// written into the neighbouring primers and disappear from the result.
type Tailer struct {
	Overlap   int
	MaxLink   int
	Amplifier Amplifier
	Logger    *slog.Logger
}

// Tail is Tailer{overlap, maxLink, amp}.Tail(frags). A nil amp uses PCR.
func Tail(frags []Fragment, overlap, maxLink int, amp Amplifier) ([]Fragment, error) {
	return Tailer{Overlap: overlap, MaxLink: maxLink, Amplifier: amp}.Tail(frags)
}

// slot is a fragment in the working buffer. seq is the fragment as it was
// handed in; primer tails never change it.
type slot struct {
	seq      string
	amp      bool
	fwd, rev primer.Primer
	template seq.Record
	fixed    Fragment
}

func (s *slot) prependFwd(t string) { s.fwd = s.fwd.WithTail(t) }
func (s *slot) prependRev(t string) { s.rev = s.rev.WithTail(t) }

func head(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

func tail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if n > len(s) {
		n = len(s)
	}
	return s[len(s)-n:]
}

func rc(s string) string { return seq.RevCompString(s) }

func (t Tailer) debug(msg string, args ...any) {
	if t.Logger != nil {
		t.Logger.Debug(msg, args...)
	}
}

// check verifies the input can be tailed before anything is touched.
func (t Tailer) check(frags []Fragment) error {
	var long []Fragment
	var idx []int
	for i, f := range frags {
		if f.Len() > t.MaxLink {
			long = append(long, f)
			idx = append(idx, i)
		}
	}
	for k := 0; k+1 < len(long); k++ {
		if !isAmp(long[k]) && !isAmp(long[k+1]) {
			return fmt.Errorf("%w: fragments %d and %d (%s, %s) are both fixed",
				ErrNonAmplifiableJunction, idx[k], idx[k+1], name(long[k]), name(long[k+1]))
		}
	}
	n := len(frags)
	if n == 0 {
		return nil
	}
	if frags[0].Len() <= t.MaxLink && (n < 2 || !isAmp(frags[1])) {
		return fmt.Errorf("%w: leading linker %s needs an amplifiable fragment after it",
			ErrNonAmplifiableJunction, name(frags[0]))
	}
	if n > 1 && frags[n-1].Len() <= t.MaxLink && !isAmp(frags[n-2]) {
		return fmt.Errorf("%w: trailing linker %s needs an amplifiable fragment before it",
			ErrNonAmplifiableJunction, name(frags[n-1]))
	}
	return nil
}

func isAmp(f Fragment) bool {
	_, ok := f.(Amplifiable)
	return ok
}

func name(f Fragment) string {
	if r := f.Record(); r.ID != "" {
		return r.ID
	}
	return fmt.Sprintf("%d bp", f.Len())
}

// Tail returns frags with primer tails added. The input is not modified;
// fragment order is kept and absorbed linkers are removed.
func (t Tailer) Tail(frags []Fragment) ([]Fragment, error) {
	if err := t.check(frags); err != nil {
		return nil, err
	}
	amp := t.Amplifier
	if amp == nil {
		amp = PCR{}
	}
	t.debug("tailing fragments", "count", len(frags), "overlap", t.Overlap, "max_link", t.MaxLink)

	buf := make([]*slot, 0, len(frags))
	for _, f := range frags {
		s := &slot{seq: f.Record().Seq}
		if a, ok := f.(Amplifiable); ok {
			s.amp = true
			s.fwd, s.rev, s.template = a.Amplicon.Forward, a.Amplicon.Reverse, a.Amplicon.Template
		} else {
			s.fixed = f
		}
		buf = append(buf, s)
	}
	if len(buf) == 0 {
		return nil, nil
	}

	// Edge linkers go into the outermost primers. The assembly is linear, so
	// nothing wraps around from one end to the other.
	if len(buf[0].seq) <= t.MaxLink {
		buf[1].prependFwd(buf[0].seq)
		t.debug("leading linker absorbed", "length", len(buf[0].seq))
		buf = buf[1:]
	}
	if n := len(buf); n > 1 && len(buf[n-1].seq) <= t.MaxLink {
		buf[n-2].prependRev(rc(buf[n-1].seq))
		t.debug("trailing linker absorbed", "length", len(buf[n-1].seq))
		buf = buf[:n-1]
	}

	tl := (t.Overlap + 1) / 2
	for i := 0; i+1 < len(buf); i++ {
		first, secnd := buf[i], buf[i+1]
		n := len(secnd.seq)

		if n <= t.MaxLink {
			if i+2 >= len(buf) {
				return nil, fmt.Errorf("%w: linker at position %d has no fragment after it", ErrNonAmplifiableJunction, i+1)
			}
			third := buf[i+2]
			h := n / 2
			switch {
			case first.amp && third.amp:
				first.prependRev(rc(secnd.seq)[h:])
				third.prependFwd(secnd.seq[h:])
				first.prependRev(tail(rc(third.seq)+rc(secnd.seq)[:h], tl))
				third.prependFwd(tail(first.seq+secnd.seq[:h], tl))
				t.debug("linker split between flanking amplicons", "index", i+1, "length", n)
			case first.amp:
				first.prependRev(rc(secnd.seq))
				first.prependRev(rc(head(third.seq, t.Overlap)))
				t.debug("linker absorbed by preceding amplicon", "index", i+1, "length", n)
			case third.amp:
				third.prependFwd(secnd.seq)
				third.prependFwd(tail(first.seq, t.Overlap))
				t.debug("linker absorbed by following amplicon", "index", i+1, "length", n)
			}
			buf[i+1] = &slot{}
			continue
		}

		switch {
		case first.amp && secnd.amp:
			secnd.prependFwd(tail(first.seq, tl))
			first.prependRev(rc(head(secnd.seq, tl)))
		case first.amp:
			first.prependRev(rc(head(secnd.seq, t.Overlap)))
		case secnd.amp:
			secnd.prependFwd(tail(first.seq, t.Overlap))
		}
	}

	out := make([]Fragment, 0, len(buf))
	for _, s := range buf {
		switch {
		case s.amp:
			a, err := amp.Amplify(s.fwd, s.rev, s.template)
			if err != nil {
				return nil, fmt.Errorf("re-amplify %s: %w", s.template.AccessionOrID(), err)
			}
			out = append(out, Amplifiable{Amplicon: a})
		case len(s.seq) == 0:
			// absorbed linker
		default:
			out = append(out, s.fixed)
		}
	}
	t.debug("tailing done", "fragments", len(out))
	return out, nil
}

// TailCircular tails frags as a ring, so the last fragment also overlaps
// the first. Linkers at the start of the list are moved behind the last
// fragment, where they sit in the ring, and get absorbed at that junction.
// Fragment order is otherwise kept.
func (t Tailer) TailCircular(frags []Fragment) ([]Fragment, error) {
	if len(frags) == 0 {
		return nil, nil
	}
	k := 0
	for k < len(frags) && frags[k].Len() <= t.MaxLink {
		k++
	}
	if k == len(frags) {
		return nil, fmt.Errorf("%w: circular assembly has no fragment longer than %d bp",
			ErrNonAmplifiableJunction, t.MaxLink)
	}
	ring := make([]Fragment, 0, len(frags)+1)
	ring = append(ring, frags[k:]...)
	ring = append(ring, frags[:k]...)
	ring = append(ring, frags[k])
	out, err := t.Tail(ring)
	if err != nil {
		return nil, err
	}
	if _, ok := frags[k].(Amplifiable); ok {
		return Circularize(out, t.Amplifier)
	}
	// The repeated fixed fragment only gave the last amplicon its tail.
	return out[:len(out)-1], nil
}

// Circularize closes an assembly whose first amplicon was repeated at the
// end: the repeat is dropped and the first fragment is re-made from the
// repeat's forward primer and the first fragment's reverse primer.
func Circularize(frags []Fragment, amp Amplifier) ([]Fragment, error) {
	if len(frags) < 2 {
		return nil, fmt.Errorf("circularize: need at least 2 fragments, got %d", len(frags))
	}
	first, ok1 := frags[0].(Amplifiable)
	last, ok2 := frags[len(frags)-1].(Amplifiable)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%w: circularize needs amplicons at both ends", ErrNonAmplifiableJunction)
	}
	if first.Template().Checksum(false) != last.Template().Checksum(false) {
		return nil, fmt.Errorf("circularize: first and last fragments come from different templates")
	}
	if amp == nil {
		amp = PCR{}
	}
	closing, err := amp.Amplify(last.Forward(), first.Reverse(), first.Template())
	if err != nil {
		return nil, fmt.Errorf("circularize: %w", err)
	}
	out := make([]Fragment, 0, len(frags)-1)
	out = append(out, Amplifiable{Amplicon: closing})
	return append(out, frags[1:len(frags)-1]...), nil
}
