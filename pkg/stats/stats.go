// Package stats summarises the lines of a tokens file.
package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/codahale/hdrhistogram"

	"github.com/ssargent/tokfile/pkg/codec"
)

// MaxTrackedLength is the longest line length the histogram records exactly.
// Longer lines are counted in Summary.Overflow.
const MaxTrackedLength = 1 << 24

// LineStats accumulates line lengths and token ranges
type LineStats struct {
	sentinel   codec.Sentinel
	format     codec.Format
	hist       *hdrhistogram.Histogram
	lines      int64
	tokens     int64
	empty      int64
	collisions int64
	overflow   int64
	maxToken   int
}

// Summary is a snapshot of LineStats
type Summary struct {
	Lines      int64
	Tokens     int64
	Empty      int64
	Collisions int64 // Tokens that encode as the sentinel; always 0 for decoded lines
	Overflow   int64 // Lines longer than MaxTrackedLength
	MaxToken   int   // -1 when no token was seen
	MinLength  int64
	MaxLength  int64
	MeanLength float64
	P50        int64
	P90        int64
	P99        int64
}

// New creates empty statistics for lines written in format
func New(format codec.Format) *LineStats {
	return &LineStats{
		sentinel: format.SentinelOrDefault(),
		format:   format,
		hist:     hdrhistogram.New(1, MaxTrackedLength, 3),
		maxToken: -1,
	}
}

// Observe adds one line
func (s *LineStats) Observe(line []uint16) {
	s.lines++
	s.tokens += int64(len(line))
	if len(line) == 0 {
		s.empty++
	}
	if err := s.hist.RecordValue(int64(len(line))); err != nil {
		s.overflow++
	}

	order := s.format.Order()
	for _, tok := range line {
		if int(tok) > s.maxToken {
			s.maxToken = int(tok)
		}
		if s.sentinel.Collides(tok, order) {
			s.collisions++
		}
	}
}

// Summary returns the current statistics
func (s *LineStats) Summary() Summary {
	sum := Summary{
		Lines:      s.lines,
		Tokens:     s.tokens,
		Empty:      s.empty,
		Collisions: s.collisions,
		Overflow:   s.overflow,
		MaxToken:   s.maxToken,
	}
	if s.hist.TotalCount() == 0 {
		return sum
	}
	sum.MinLength = s.hist.Min()
	sum.MaxLength = s.hist.Max()
	sum.MeanLength = s.hist.Mean()
	sum.P50 = s.hist.ValueAtQuantile(50)
	sum.P90 = s.hist.ValueAtQuantile(90)
	sum.P99 = s.hist.ValueAtQuantile(99)
	return sum
}

// PrintDistribution writes the non-empty line length histogram bars to out
func (s *LineStats) PrintDistribution(out io.Writer) error {
	for _, bar := range s.hist.Distribution() {
		if bar.Count == 0 {
			continue
		}
		if _, err := fmt.Fprintln(out, strings.TrimSpace(bar.String())); err != nil {
			return err
		}
	}
	return nil
}
