// Package tokfile reads and writes tokens files on disk.
//
// A Writer owns a buffered, append-only file handle and encodes lines with a
// codec.Encoder; a Reader owns a buffered, forward-only handle and decodes
// them with a codec.Decoder. Neither type is safe for concurrent use.
package tokfile

import (
	"github.com/ssargent/tokfile/pkg/codec"
	"github.com/ssargent/tokfile/pkg/metrics"
)

// DefaultBufferSize is the buffer size used when none is configured.
const DefaultBufferSize = 64 * 1024

// WriterConfig holds configuration for the tokens writer
type WriterConfig struct {
	FilePath   string           // Path to the tokens file
	Format     codec.Format     // Sentinel and byte order
	FlushEvery int              // Lines between flushes in WriteLines (0 = codec.DefaultFlushEvery)
	BufferSize int              // Write buffer size (0 = DefaultBufferSize)
	Fsync      bool             // Fsync the file on every flush
	Truncate   bool             // Truncate an existing file instead of appending
	Metrics    *metrics.Metrics // Optional
}

// ReaderConfig holds configuration for the tokens reader
type ReaderConfig struct {
	FilePath   string           // Path to the tokens file
	Format     codec.Format     // Must match the format the file was written with
	BufferSize int              // Read buffer size (0 = DefaultBufferSize)
	Metrics    *metrics.Metrics // Optional
}

func bufferSize(n int) int {
	if n <= 0 {
		return DefaultBufferSize
	}
	return n
}

func openError(path string, err error) error {
	return &codec.Error{Op: "open", Path: path, Kind: codec.ErrOpen, Err: err}
}
