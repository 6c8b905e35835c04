// internal/report/json.go
package report

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"syscall"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Downstream consumers like `head` close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Reuse a 64 KiB buffered writer across JSONL streams.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// StartJSONL spins up an encoder goroutine writing one JSON value per line.
// Close the returned channel, then read the error channel once. Broken
// pipes are not errors.
func StartJSONL[T any](out io.Writer, bufSize int) (chan<- T, <-chan error) {
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
		var failed error
		for v := range in {
			if failed != nil {
				continue // drain so producers never block
			}
			if err := enc.Encode(v); err != nil {
				failed = err
			}
		}
		if failed == nil {
			failed = bw.Flush()
		}
		if IsBrokenPipe(failed) {
			failed = nil
		}
		done <- failed
	}()

	return in, done
}
