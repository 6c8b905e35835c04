// core/fasta/reader.go
// Package fasta reads reference sequences for off-target search.
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA sequence, uppercased, line breaks removed.
type Record struct {
	ID  string
	Seq []byte
}

const maxLine = 64 * 1024 * 1024 // single-line genomes

// Read parses FASTA from r and calls emit per record. It honors ctx between
// lines; emit may return an error to stop early.
func Read(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id   string
		seen bool
		seq  = make([]byte, 0, 1<<16)
	)
	flush := func() error {
		if !seen {
			return nil
		}
		return emit(Record{ID: id, Seq: bytes.ToUpper(append([]byte(nil), seq...))})
	}

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			id, seen, seq = headerID(line[1:]), true, seq[:0]
			continue
		}
		if !seen {
			return fmt.Errorf("fasta: sequence before first header")
		}
		seq = append(seq, line...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ReadAll collects every record of r.
func ReadAll(ctx context.Context, r io.Reader) ([]Record, error) {
	var out []Record
	err := Read(ctx, r, func(rec Record) error {
		out = append(out, rec)
		return nil
	})
	return out, err
}

// ReadPath is ReadAll over a file; "-" is stdin and gzip input is detected
// by magic number or .gz suffix.
func ReadPath(ctx context.Context, path string) ([]Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	recs, err := ReadAll(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Open returns a reader over path, transparently gunzipping.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := io.ReadFull(fh, sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func headerID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}

// Chunk is a window of a record; Offset is its start in the record.
type Chunk struct {
	ID     string
	Offset int
	Seq    []byte
}

// Chunks splits rec into windows of size bases that overlap by overlap
// bases, so a pattern up to overlap+1 long is wholly inside some window.
// size <= 0, or a record no longer than size, yields one chunk.
func Chunks(rec Record, size, overlap int) []Chunk {
	if overlap < 0 {
		overlap = 0
	}
	if size <= 0 || len(rec.Seq) <= size || size <= overlap {
		return []Chunk{{ID: rec.ID, Seq: rec.Seq}}
	}
	var out []Chunk
	for off := 0; off < len(rec.Seq); off += size - overlap {
		end := min(off+size, len(rec.Seq))
		out = append(out, Chunk{ID: rec.ID, Offset: off, Seq: rec.Seq[off:end]})
		if end == len(rec.Seq) {
			break
		}
	}
	return out
}
