// Package codec provides the tokens file format used by tokfile.
//
// A tokens file stores lines of 16-bit token ids, as produced by a tokenizer,
// with no header, footer or length prefixes. Every line is terminated by a
// fixed two-byte sentinel.
//
// # File Format
//
//	file     := line*
//	line     := token* sentinel
//	token    := 2 bytes, unsigned 16-bit value, little-endian
//	sentinel := 2 fixed bytes, default 0xFF 0xFF
//
// The lines [[1 2] [] [300]] with the default sentinel encode as:
//
//	01 00 02 00 FF FF FF FF 2C 01 FF FF
//
// An empty line is encoded as the sentinel alone.
//
// # Sentinel Collisions
//
// The format has no escaping. A token whose encoding equals the sentinel
// (65535 with the default sentinel) ends its line early when decoded, and the
// remaining tokens appear as a new line. The decoder cannot detect this. The
// vocabulary must leave the sentinel value unused; Format.CheckVocabSize and
// Sentinel.Collides check that up front.
//
// # Usage
//
//	enc := codec.NewEncoder(w, codec.EncoderConfig{Format: codec.DefaultFormat()})
//	if err := enc.WriteLines(lines); err != nil {
//	    return err
//	}
//
//	dec := codec.NewDecoder(r, codec.DefaultFormat())
//	for line := range dec.All() {
//	    process(line)
//	}
//	if err := dec.Err(); err != nil {
//	    return err
//	}
//
// # Truncation
//
// A stream that ends mid-line, or with a single dangling byte, decodes the
// complete lines before it and then reports exhaustion. The dropped bytes are
// counted by Decoder.Discarded; Decoder.Err stays nil.
//
// # Thread Safety
//
// Encoders and Decoders own their stream and are not safe for concurrent use.
package codec
