package cmd

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ssargent/tokfile/pkg/codec"
	"github.com/ssargent/tokfile/pkg/tokfile"
)

const (
	encodeBatchSize = 4096
	maxTextLineSize = 64 * 1024 * 1024
)

// parseLine parses whitespace-separated decimal token ids
func parseLine(text string) ([]uint16, error) {
	fields := strings.Fields(text)
	line := make([]uint16, 0, len(fields))
	for _, field := range fields {
		tok, err := strconv.ParseUint(field, 10, 16)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid token %q", field)
		}
		line = append(line, uint16(tok))
	}
	return line, nil
}

// appendLine formats a line as space-separated decimal ids
func appendLine(dst []byte, line []uint16) []byte {
	for i, tok := range line {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = strconv.AppendUint(dst, uint64(tok), 10)
	}
	return append(dst, '\n')
}

// scanText calls fn with every parsed line of in, numbered from 1
func scanText(in io.Reader, fn func(lineNo int, line []uint16) error) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTextLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line, err := parseLine(scanner.Text())
		if err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
	return errors.Wrap(scanner.Err(), "read text input")
}

type encodeResult struct {
	lines  int64
	tokens int64
}

// encodeText reads one line of ids per text line and writes it to w.
// Tokens that would encode as the sentinel are rejected unless allowCollisions is set.
func encodeText(in io.Reader, w *tokfile.Writer, format codec.Format, allowCollisions bool) (encodeResult, error) {
	var res encodeResult
	sentinel, order := format.SentinelOrDefault(), format.Order()

	batch := make([][]uint16, 0, encodeBatchSize)
	flush := func() error {
		if err := w.WriteLines(batch); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	err := scanText(in, func(lineNo int, line []uint16) error {
		if !allowCollisions {
			for _, tok := range line {
				if sentinel.Collides(tok, order) {
					return errors.Wrapf(codec.ErrSentinelCollision,
						"line %d: token %d encodes as sentinel %s", lineNo, tok, sentinel)
				}
			}
		}

		batch = append(batch, line)
		res.lines++
		res.tokens += int64(len(line))
		if len(batch) == encodeBatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return res, err
	}

	return res, flush()
}

// decodeTokens writes every line of r to out as text and returns the number of lines.
// onLine, if set, is called with the encoded size of each line.
func decodeTokens(r *tokfile.Reader, out io.Writer, onLine func(bytes int)) (int64, error) {
	bw := bufio.NewWriter(out)
	var buf []byte
	var lines int64

	for line := range r.All() {
		buf = appendLine(buf[:0], line)
		if _, err := bw.Write(buf); err != nil {
			return lines, errors.Wrap(err, "write text output")
		}
		lines++
		if onLine != nil {
			onLine((len(line) + 1) * codec.TokenWidth)
		}
	}
	if err := r.Err(); err != nil {
		return lines, errors.Wrapf(err, "read %s", r.Path())
	}

	return lines, errors.Wrap(bw.Flush(), "write text output")
}
