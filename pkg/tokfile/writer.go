package tokfile

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/ssargent/tokfile/pkg/codec"
)

// Writer appends lines of tokens to a file
type Writer struct {
	file    *os.File
	buf     *bufio.Writer
	encoder *codec.Encoder
	config  WriterConfig
	offset  int64 // Bytes handed to the buffer, including the initial file size
	closed  bool
}

// NewWriter opens the tokens file for writing with the given configuration
func NewWriter(config WriterConfig) (*Writer, error) {
	if err := codec.CheckHost(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0750); err != nil {
		return nil, openError(config.FilePath, err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if config.Truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}

	file, err := os.OpenFile(config.FilePath, flags, 0600)
	if err != nil {
		return nil, openError(config.FilePath, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, openError(config.FilePath, err)
	}

	w := &Writer{
		file:   file,
		buf:    bufio.NewWriterSize(file, bufferSize(config.BufferSize)),
		config: config,
		offset: stat.Size(),
	}
	w.encoder = codec.NewEncoder(sink{w}, codec.EncoderConfig{
		Format:     config.Format,
		FlushEvery: config.FlushEvery,
	})

	return w, nil
}

// sink is the encoder's destination. The encoder hands it exactly one line
// per Write, which is what the per-line metrics rely on.
type sink struct {
	w *Writer
}

func (s sink) Write(p []byte) (int, error) {
	n, err := s.w.buf.Write(p)
	s.w.offset += int64(n)
	if err != nil {
		s.w.config.Metrics.RecordWriteError()
		return n, err
	}
	s.w.config.Metrics.RecordLineWritten(len(p)/codec.TokenWidth-1, n)
	return n, nil
}

func (s sink) Flush() error {
	start := time.Now()
	err := s.w.sync()
	s.w.config.Metrics.RecordFlush(err == nil, time.Since(start))
	return err
}

// WriteLine appends one line
func (w *Writer) WriteLine(tokens []uint16) error {
	if w.closed {
		return w.closedError("write")
	}
	return w.withPath(w.encoder.WriteLine(tokens))
}

// WriteLines appends lines in order, flushing every FlushEvery lines
func (w *Writer) WriteLines(lines [][]uint16) error {
	if w.closed {
		return w.closedError("write")
	}
	return w.withPath(w.encoder.WriteLines(lines))
}

// Flush writes buffered lines to the file, and fsyncs it if configured
func (w *Writer) Flush() error {
	if w.closed {
		return w.closedError("flush")
	}
	return w.withPath(w.encoder.Flush())
}

// sync performs the actual flush (internal method)
func (w *Writer) sync() error {
	if err := w.buf.Flush(); err != nil {
		return err
	}

	if !w.config.Fsync {
		return nil
	}
	return w.file.Sync()
}

// Close flushes buffered lines and closes the file. The file is closed even
// when the flush fails; the first error is returned.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	flushErr := w.withPath(w.encoder.Flush())
	closeErr := w.file.Close()
	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return &codec.Error{Op: "close", Path: w.config.FilePath, Kind: codec.ErrWrite, Err: closeErr}
	}
	return nil
}

// Size returns the size of the file once buffered lines are flushed
func (w *Writer) Size() int64 {
	return w.offset
}

// Lines returns the number of lines written by this writer
func (w *Writer) Lines() int64 {
	return w.encoder.Lines()
}

// Path returns the file path
func (w *Writer) Path() string {
	return w.config.FilePath
}

func (w *Writer) closedError(op string) error {
	return &codec.Error{Op: op, Path: w.config.FilePath, Kind: codec.ErrWrite, Err: os.ErrClosed}
}

func (w *Writer) withPath(err error) error {
	var codecErr *codec.Error
	if errors.As(err, &codecErr) && codecErr.Path == "" {
		codecErr.Path = w.config.FilePath
	}
	return err
}

// WriteAll replaces the file at path with lines
func WriteAll(path string, format codec.Format, lines [][]uint16) (err error) {
	w, err := NewWriter(WriterConfig{FilePath: path, Format: format, Truncate: true})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := w.Close(); err == nil {
			err = closeErr
		}
	}()

	return w.WriteLines(lines)
}
