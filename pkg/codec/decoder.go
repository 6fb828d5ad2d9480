package codec

import (
	"encoding/binary"
	"errors"
	"io"
	"iter"
)

// Decoder reads lines of tokens from a byte stream by locating sentinels.
//
// A Decoder is either readable or exhausted. It becomes exhausted the first
// time fewer than TokenWidth bytes can be read, and stays exhausted: later
// calls return immediately without touching the stream. Tokens of a trailing
// line with no sentinel, and a dangling odd byte, are discarded.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	r         io.Reader
	sentinel  Sentinel
	order     binary.ByteOrder
	pair      [TokenWidth]byte
	pending   []uint16
	exhausted bool
	err       error
	lines     int64
	discarded int
}

// NewDecoder creates a decoder reading from r
func NewDecoder(r io.Reader, format Format) *Decoder {
	return &Decoder{
		r:        r,
		sentinel: format.SentinelOrDefault(),
		order:    format.Order(),
	}
}

// Next returns the next line and true, or nil and false once the stream is
// exhausted. An empty line is returned as a non-nil empty slice.
func (d *Decoder) Next() ([]uint16, bool) {
	if d.exhausted {
		return nil, false
	}
	for {
		n, err := io.ReadFull(d.r, d.pair[:])
		if err != nil {
			d.exhaust(n, err)
			return nil, false
		}
		if Sentinel(d.pair) == d.sentinel {
			line := d.pending
			if line == nil {
				line = []uint16{}
			}
			d.pending = nil
			d.lines++
			return line, true
		}
		d.pending = append(d.pending, d.order.Uint16(d.pair[:]))
	}
}

func (d *Decoder) exhaust(partial int, err error) {
	d.exhausted = true
	d.discarded += len(d.pending)*TokenWidth + partial
	d.pending = nil
	if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		d.err = err
	}
}

// All returns the remaining lines as a sequence. The sequence consumes the
// decoder and cannot be replayed.
func (d *Decoder) All() iter.Seq[[]uint16] {
	return func(yield func([]uint16) bool) {
		for {
			line, ok := d.Next()
			if !ok || !yield(line) {
				return
			}
		}
	}
}

// Err returns the read error that exhausted the decoder, if any.
// Reaching the end of the stream, even mid-line, is not an error.
func (d *Decoder) Err() error {
	return d.err
}

// Exhausted reports whether the decoder has stopped reading.
func (d *Decoder) Exhausted() bool {
	return d.exhausted
}

// Lines returns the number of lines decoded so far.
func (d *Decoder) Lines() int64 {
	return d.lines
}

// Discarded returns the number of trailing bytes dropped because no sentinel
// followed them.
func (d *Decoder) Discarded() int {
	return d.discarded
}

// DecodeAll reads every line from r.
func DecodeAll(r io.Reader, format Format) ([][]uint16, error) {
	d := NewDecoder(r, format)
	var lines [][]uint16
	for line := range d.All() {
		lines = append(lines, line)
	}
	return lines, d.Err()
}
