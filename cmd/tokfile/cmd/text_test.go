package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/tokfile/pkg/codec"
	"github.com/ssargent/tokfile/pkg/tokfile"
)

func TestParseLine(t *testing.T) {
	testCases := []struct {
		input   string
		want    []uint16
		wantErr bool
	}{
		{input: "1 2", want: []uint16{1, 2}},
		{input: "", want: []uint16{}},
		{input: "  300\t7  ", want: []uint16{300, 7}},
		{input: "65535", want: []uint16{65535}},
		{input: "65536", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "1 x", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parseLine(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAppendLine(t *testing.T) {
	assert.Equal(t, "1 2\n", string(appendLine(nil, []uint16{1, 2})))
	assert.Equal(t, "\n", string(appendLine(nil, []uint16{})))
	assert.Equal(t, "65535\n", string(appendLine(nil, []uint16{65535})))
}

func TestEncodeDecodeText(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "test.tok")
	input := "1 2\n\n300\n"

	w, err := tokfile.NewWriter(tokfile.WriterConfig{FilePath: filePath})
	require.NoError(t, err)

	res, err := encodeText(strings.NewReader(input), w, codec.DefaultFormat(), false)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, int64(3), res.lines)
	assert.Equal(t, int64(3), res.tokens)

	r, err := tokfile.NewReader(tokfile.ReaderConfig{FilePath: filePath})
	require.NoError(t, err)
	defer r.Close()

	var out bytes.Buffer
	var seen int
	lines, err := decodeTokens(r, &out, func(n int) { seen += n })
	require.NoError(t, err)
	assert.Equal(t, int64(3), lines)
	assert.Equal(t, input, out.String())
	assert.Equal(t, 12, seen)
}

func TestEncodeText_ManyLines(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "test.tok")

	var input strings.Builder
	for i := 0; i < encodeBatchSize*2+10; i++ {
		input.WriteString("5 6 7\n")
	}

	w, err := tokfile.NewWriter(tokfile.WriterConfig{FilePath: filePath, FlushEvery: 1000})
	require.NoError(t, err)
	res, err := encodeText(strings.NewReader(input.String()), w, codec.DefaultFormat(), false)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	lines, err := tokfile.ReadAll(filePath, codec.DefaultFormat())
	require.NoError(t, err)
	assert.Len(t, lines, encodeBatchSize*2+10)
	assert.Equal(t, int64(len(lines)), res.lines)
}

func TestEncodeText_Collision(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "test.tok")
	w, err := tokfile.NewWriter(tokfile.WriterConfig{FilePath: filePath})
	require.NoError(t, err)
	defer w.Close()

	_, err = encodeText(strings.NewReader("1 2\n3 65535 4\n"), w, codec.DefaultFormat(), false)
	assert.ErrorIs(t, err, codec.ErrSentinelCollision)
	assert.Contains(t, err.Error(), "line 2")

	_, err = encodeText(strings.NewReader("3 65535 4\n"), w, codec.DefaultFormat(), true)
	assert.NoError(t, err)
}

func TestEncodeText_InvalidToken(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "test.tok")
	w, err := tokfile.NewWriter(tokfile.WriterConfig{FilePath: filePath})
	require.NoError(t, err)
	defer w.Close()

	_, err = encodeText(strings.NewReader("1\n2\n70000\n"), w, codec.DefaultFormat(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "70000")
}
