// internal/writers/jsonl.go
package writers

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"primertail-core/anneal"
	"primertail/internal/output"
	"primertail/internal/pretty"
	"primertail/pkg/api"
)

// Buffered writers are pooled across JSONL streams; each stream rebinds one
// to its output and returns it on exit.
var bwPool = sync.Pool{
	New: func() any { return bufio.NewWriterSize(io.Discard, 64<<10) },
}

// startJSONL spins up an encoder goroutine writing one JSON value per line.
// Broken pipes at flush time are not errors.
func startJSONL[T any](out io.Writer, bufSize int, encode func(*json.Encoder, T) error) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		for v := range in {
			if err := encode(enc, v); err != nil {
				// drain so senders never block on a dead writer
				for range in {
				}
				done <- err
				return
			}
		}
		if err := bw.Flush(); err != nil && !IsBrokenPipe(err) {
			done <- err
			return
		}
		done <- nil
	}()

	return in, done
}

// StartAmpliconJSONLWriter streams each amplicon as one JSON line (v1).
func StartAmpliconJSONLWriter(out io.Writer, bufSize int, tm pretty.TmFunc) (chan<- anneal.Amplicon, <-chan error) {
	return startJSONL(out, bufSize, func(enc *json.Encoder, a anneal.Amplicon) error {
		return enc.Encode(output.ToAPIAmplicon(a, tm))
	})
}

// StartFragmentJSONLWriter streams each fragment as one JSON line (v1).
func StartFragmentJSONLWriter(out io.Writer, bufSize int) (chan<- api.FragmentV1, <-chan error) {
	return startJSONL(out, bufSize, func(enc *json.Encoder, f api.FragmentV1) error { return enc.Encode(f) })
}

// StartTmJSONLWriter streams each Tm result as one JSON line (v1).
func StartTmJSONLWriter(out io.Writer, bufSize int) (chan<- api.TmV1, <-chan error) {
	return startJSONL(out, bufSize, func(enc *json.Encoder, t api.TmV1) error { return enc.Encode(t) })
}

// feed sends list through a JSONL writer and waits for it to finish.
func feed[T any](list []T, in chan<- T, done <-chan error) error {
	for _, v := range list {
		in <- v
	}
	close(in)
	return <-done
}
