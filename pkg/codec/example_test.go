package codec_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/ssargent/tokfile/pkg/codec"
)

// ExampleEncoder demonstrates the byte layout of a few lines
func ExampleEncoder() {
	var buf bytes.Buffer
	enc := codec.NewEncoder(&buf, codec.EncoderConfig{Format: codec.DefaultFormat()})

	if err := enc.WriteLines([][]uint16{{1, 2}, {}, {300}}); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("% X\n", buf.Bytes())

	// Output:
	// 01 00 02 00 FF FF FF FF 2C 01 FF FF
}

// ExampleDecoder demonstrates iterating over decoded lines
func ExampleDecoder() {
	data := []byte{0x01, 0x00, 0x02, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0x2C, 0x01, 0xFF, 0xFF}
	dec := codec.NewDecoder(bytes.NewReader(data), codec.DefaultFormat())

	for line := range dec.All() {
		fmt.Println(line)
	}
	if err := dec.Err(); err != nil {
		log.Fatal(err)
	}

	// Output:
	// [1 2]
	// []
	// [300]
}

// ExampleFormat_CheckVocabSize demonstrates validating a vocabulary up front
func ExampleFormat_CheckVocabSize() {
	format := codec.DefaultFormat()

	fmt.Println(format.CheckVocabSize(50257))
	fmt.Println(format.CheckVocabSize(65536))

	// Output:
	// <nil>
	// token collides with sentinel: id 65535 of vocabulary size 65536 encodes as sentinel 0xFFFF
}
