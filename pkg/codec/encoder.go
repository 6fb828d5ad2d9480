package codec

import (
	"encoding/binary"
	"io"
)

// Flusher is implemented by destinations that buffer writes.
type Flusher interface {
	Flush() error
}

// EncoderConfig holds configuration for an Encoder
type EncoderConfig struct {
	Format     Format // Sentinel and byte order
	FlushEvery int    // Lines between flushes in WriteLines (<= 0 = DefaultFlushEvery)
}

// Encoder appends lines of tokens to a byte stream.
// An Encoder is not safe for concurrent use.
type Encoder struct {
	w          io.Writer
	sentinel   Sentinel
	order      binary.ByteOrder
	flushEvery int
	buf        []byte
	lines      int64
	bytes      int64
}

// NewEncoder creates an encoder writing to w
func NewEncoder(w io.Writer, config EncoderConfig) *Encoder {
	flushEvery := config.FlushEvery
	if flushEvery <= 0 {
		flushEvery = DefaultFlushEvery
	}
	return &Encoder{
		w:          w,
		sentinel:   config.Format.SentinelOrDefault(),
		order:      config.Format.Order(),
		flushEvery: flushEvery,
	}
}

// WriteLine encodes each token followed by the sentinel.
// The bytes of one line are handed to the destination in a single Write.
func (e *Encoder) WriteLine(tokens []uint16) error {
	e.buf = AppendLine(e.buf[:0], tokens, e.sentinel, e.order)

	n, err := e.w.Write(e.buf)
	e.bytes += int64(n)
	if err != nil {
		return writeError("write", err)
	}
	e.lines++
	return nil
}

// WriteLines encodes lines in order. Whenever the encoder's total line count
// reaches a multiple of FlushEvery, the destination is flushed.
func (e *Encoder) WriteLines(lines [][]uint16) error {
	for _, line := range lines {
		if err := e.WriteLine(line); err != nil {
			return err
		}
		if e.lines%int64(e.flushEvery) == 0 {
			if err := e.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes the destination if it buffers writes.
func (e *Encoder) Flush() error {
	f, ok := e.w.(Flusher)
	if !ok {
		return nil
	}
	if err := f.Flush(); err != nil {
		return writeError("flush", err)
	}
	return nil
}

// Lines returns the number of lines fully handed to the destination.
func (e *Encoder) Lines() int64 {
	return e.lines
}

// Bytes returns the number of bytes accepted by the destination.
func (e *Encoder) Bytes() int64 {
	return e.bytes
}

// AppendLine appends the encoding of one line to dst and returns the extended buffer.
func AppendLine(dst []byte, tokens []uint16, sentinel Sentinel, order binary.ByteOrder) []byte {
	var pair [TokenWidth]byte
	for _, tok := range tokens {
		order.PutUint16(pair[:], tok)
		dst = append(dst, pair[:]...)
	}
	return append(dst, sentinel[:]...)
}

// EncodeLines returns the encoding of lines as one byte slice.
func EncodeLines(lines [][]uint16, format Format) []byte {
	sentinel, order := format.SentinelOrDefault(), format.Order()
	var out []byte
	for _, line := range lines {
		out = AppendLine(out, line, sentinel, order)
	}
	return out
}
