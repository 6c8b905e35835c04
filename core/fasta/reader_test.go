package fasta

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plain = `>seq1 first record
ACGT
acgt
>seq2
NNnn

; comment
>seq3
`

// writeGz creates a gzipped FASTA file with the given data.
func writeGz(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ref.fa.gz")
	fh, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(fh)
	_, err = gw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fh.Close())
	return path
}

func TestReadAll(t *testing.T) {
	recs, err := ReadAll(context.Background(), strings.NewReader(plain))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "seq1", recs[0].ID)
	assert.Equal(t, "ACGTACGT", string(recs[0].Seq))
	assert.Equal(t, "NNNN", string(recs[1].Seq))
	assert.Equal(t, "seq3", recs[2].ID)
	assert.Empty(t, recs[2].Seq)
}

func TestRead_SequenceBeforeHeader(t *testing.T) {
	_, err := ReadAll(context.Background(), strings.NewReader("ACGT\n>x\nAC\n"))
	assert.Error(t, err)
}

func TestRead_StopsOnEmitError(t *testing.T) {
	n := 0
	err := Read(context.Background(), strings.NewReader(plain), func(Record) error {
		n++
		return io.ErrUnexpectedEOF
	})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, 1, n)
}

func TestRead_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	recs, err := ReadAll(ctx, strings.NewReader(plain))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, recs)
}

func TestReadPath_Gzip(t *testing.T) {
	recs, err := ReadPath(context.Background(), writeGz(t, plain))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "seq2", recs[1].ID)
}

func TestReadPath_Stdin(t *testing.T) {
	orig := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = io.WriteString(w, plain)
		_ = w.Close()
	}()

	recs, err := ReadPath(context.Background(), "-")
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestReadPath_Missing(t *testing.T) {
	_, err := ReadPath(context.Background(), filepath.Join(t.TempDir(), "nope.fa"))
	assert.Error(t, err)
}

func TestChunks_OverlapCoversBoundaries(t *testing.T) {
	rec := Record{ID: "r", Seq: []byte("AAAAACCCCCGGGGGTTTTT")}
	chunks := Chunks(rec, 8, 3)
	require.NotEmpty(t, chunks)
	assert.Equal(t, 0, chunks[0].Offset)
	for i, c := range chunks {
		assert.Equal(t, string(rec.Seq[c.Offset:c.Offset+len(c.Seq)]), string(c.Seq))
		if i > 0 {
			prev := chunks[i-1]
			assert.Equal(t, 3, prev.Offset+len(prev.Seq)-c.Offset, "overlap")
		}
	}
	last := chunks[len(chunks)-1]
	assert.Equal(t, len(rec.Seq), last.Offset+len(last.Seq))

	assert.Len(t, Chunks(rec, 0, 3), 1)
	assert.Len(t, Chunks(rec, 50, 3), 1)
	assert.Len(t, Chunks(rec, 3, 3), 1)
}
