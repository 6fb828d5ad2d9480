package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flushRecorder counts flushes and the buffered length at each one.
type flushRecorder struct {
	bytes.Buffer
	flushes []int
	failOn  int
}

func (f *flushRecorder) Flush() error {
	f.flushes = append(f.flushes, f.Len())
	if f.failOn > 0 && len(f.flushes) == f.failOn {
		return errors.New("device not ready")
	}
	return nil
}

type failingWriter struct {
	after int
	err   error
	n     int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.n >= f.after {
		return 0, f.err
	}
	f.n++
	return len(p), nil
}

func TestEncoder_LiteralExample(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, EncoderConfig{Format: DefaultFormat()})

	err := enc.WriteLines([][]uint16{{1, 2}, {}, {300}})
	require.NoError(t, err)

	want := []byte{0x01, 0x00, 0x02, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0x2C, 0x01, 0xFF, 0xFF}
	assert.Equal(t, want, buf.Bytes())
	assert.Equal(t, int64(3), enc.Lines())
	assert.Equal(t, int64(len(want)), enc.Bytes())
}

func TestEncoder_EmptyLine(t *testing.T) {
	testCases := []struct {
		name   string
		format Format
		want   []byte
	}{
		{"default sentinel", DefaultFormat(), []byte{0xFF, 0xFF}},
		{"zero sentinel", NewFormat(Sentinel{0x00, 0x00}), []byte{0x00, 0x00}},
		{"zero value format", Format{}, []byte{0xFF, 0xFF}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := NewEncoder(&buf, EncoderConfig{Format: tc.format})
			require.NoError(t, enc.WriteLine(nil))
			assert.Equal(t, tc.want, buf.Bytes())
		})
	}
}

func TestEncoder_SingleWritePerLine(t *testing.T) {
	w := &failingWriter{after: 1, err: errors.New("disk full")}
	enc := NewEncoder(w, EncoderConfig{})

	require.NoError(t, enc.WriteLine([]uint16{1, 2, 3, 4}))
	assert.Equal(t, 1, w.n)
}

func TestEncoder_FlushCadence(t *testing.T) {
	lines := make([][]uint16, 10)
	for i := range lines {
		lines[i] = []uint16{uint16(i), uint16(i * 2)}
	}

	rec := &flushRecorder{}
	enc := NewEncoder(rec, EncoderConfig{FlushEvery: 3})
	require.NoError(t, enc.WriteLines(lines))

	// 3 lines of 6 bytes each between flushes
	assert.Equal(t, []int{18, 36, 54}, rec.flushes)

	t.Run("flushing more often does not change output", func(t *testing.T) {
		every := &flushRecorder{}
		enc := NewEncoder(every, EncoderConfig{FlushEvery: 1})
		require.NoError(t, enc.WriteLines(lines))

		assert.Len(t, every.flushes, len(lines))
		assert.Equal(t, rec.Bytes(), every.Bytes())
	})

	t.Run("default cadence", func(t *testing.T) {
		rec := &flushRecorder{}
		enc := NewEncoder(rec, EncoderConfig{})
		require.NoError(t, enc.WriteLines(lines))
		assert.Empty(t, rec.flushes)
	})
}

func TestEncoder_WriteError(t *testing.T) {
	cause := errors.New("disk full")
	enc := NewEncoder(&failingWriter{after: 1, err: cause}, EncoderConfig{})

	err := enc.WriteLines([][]uint16{{1}, {2}, {3}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, int64(1), enc.Lines())

	var codecErr *Error
	require.True(t, errors.As(err, &codecErr))
	assert.Equal(t, "write", codecErr.Op)
}

func TestEncoder_FlushError(t *testing.T) {
	rec := &flushRecorder{failOn: 2}
	enc := NewEncoder(rec, EncoderConfig{FlushEvery: 2})

	err := enc.WriteLines([][]uint16{{1}, {2}, {3}, {4}, {5}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
	assert.Equal(t, int64(4), enc.Lines())
}

func TestEncodeLines(t *testing.T) {
	lines := [][]uint16{{7}, {}, {8, 9}}

	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf, EncoderConfig{}).WriteLines(lines))

	assert.Equal(t, buf.Bytes(), EncodeLines(lines, DefaultFormat()))
	assert.Empty(t, EncodeLines(nil, DefaultFormat()))
}

func TestEncoder_FlushCadenceAcrossBatches(t *testing.T) {
	rec := &flushRecorder{}
	enc := NewEncoder(rec, EncoderConfig{FlushEvery: 4})

	require.NoError(t, enc.WriteLine([]uint16{1}))
	require.NoError(t, enc.WriteLines([][]uint16{{2}, {3}}))
	assert.Empty(t, rec.flushes)

	require.NoError(t, enc.WriteLines([][]uint16{{4}, {5}}))
	assert.Equal(t, []int{16}, rec.flushes)
}
