//go:build bench
// +build bench

package codec

import (
	"bytes"
	"io"
	"testing"
)

func benchLines(count, width int) [][]uint16 {
	lines := make([][]uint16, count)
	for i := range lines {
		line := make([]uint16, width)
		for j := range line {
			line[j] = uint16((i*width + j) % 50257)
		}
		lines[i] = line
	}
	return lines
}

func BenchmarkEncoder_WriteLines(b *testing.B) {
	benchmarks := []struct {
		name  string
		lines [][]uint16
	}{
		{"short", benchLines(1000, 8)},
		{"medium", benchLines(1000, 128)},
		{"long", benchLines(100, 4096)},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			enc := NewEncoder(io.Discard, EncoderConfig{})
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := enc.WriteLines(bm.lines); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecoder_Next(b *testing.B) {
	benchmarks := []struct {
		name  string
		lines [][]uint16
	}{
		{"short", benchLines(1000, 8)},
		{"medium", benchLines(1000, 128)},
		{"long", benchLines(100, 4096)},
	}

	for _, bm := range benchmarks {
		data := EncodeLines(bm.lines, DefaultFormat())
		b.Run(bm.name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				dec := NewDecoder(bytes.NewReader(data), DefaultFormat())
				for _, ok := dec.Next(); ok; _, ok = dec.Next() {
				}
			}
		})
	}
}
