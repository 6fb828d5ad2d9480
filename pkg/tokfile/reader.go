package tokfile

import (
	"bufio"
	"iter"
	"os"

	"github.com/ssargent/tokfile/pkg/codec"
)

// Reader provides sequential access to the lines of a tokens file
type Reader struct {
	file     *os.File
	decoder  *codec.Decoder
	config   ReaderConfig
	reported bool
	closed   bool
}

// NewReader opens the tokens file for reading
func NewReader(config ReaderConfig) (*Reader, error) {
	if err := codec.CheckHost(); err != nil {
		return nil, err
	}

	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, openError(config.FilePath, err)
	}

	return &Reader{
		file:    file,
		decoder: codec.NewDecoder(bufio.NewReaderSize(file, bufferSize(config.BufferSize)), config.Format),
		config:  config,
	}, nil
}

// Next returns the next line and true, or nil and false once the file is exhausted
func (r *Reader) Next() ([]uint16, bool) {
	line, ok := r.decoder.Next()
	if ok {
		r.config.Metrics.RecordLineRead(len(line))
		return line, true
	}
	if !r.reported {
		r.reported = true
		r.config.Metrics.RecordExhausted(r.decoder.Discarded(), r.decoder.Err())
	}
	return nil, false
}

// All returns the remaining lines as a sequence that cannot be replayed
func (r *Reader) All() iter.Seq[[]uint16] {
	return func(yield func([]uint16) bool) {
		for {
			line, ok := r.Next()
			if !ok || !yield(line) {
				return
			}
		}
	}
}

// Err returns the read error that stopped the reader, if any
func (r *Reader) Err() error {
	return r.decoder.Err()
}

// Discarded returns the number of trailing bytes that did not form a complete line
func (r *Reader) Discarded() int {
	return r.decoder.Discarded()
}

// Lines returns the number of lines read so far
func (r *Reader) Lines() int64 {
	return r.decoder.Lines()
}

// Path returns the file path
func (r *Reader) Path() string {
	return r.config.FilePath
}

// Close closes the tokens file. Closing twice is a no-op.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

// ReadAll reads every line of the file at path
func ReadAll(path string, format codec.Format) ([][]uint16, error) {
	r, err := NewReader(ReaderConfig{FilePath: path, Format: format})
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var lines [][]uint16
	for line := range r.All() {
		lines = append(lines, line)
	}
	return lines, r.Err()
}
