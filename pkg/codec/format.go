package codec

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// TokenWidth is the encoded size of a token and of the sentinel, in bytes.
const TokenWidth = 2

// DefaultFlushEvery is the number of lines WriteLines encodes between flushes.
const DefaultFlushEvery = 10000

// Sentinel is the two-byte marker that terminates every line, in file order.
type Sentinel [TokenWidth]byte

// DefaultSentinel is used when no sentinel is configured.
var DefaultSentinel = Sentinel{0xFF, 0xFF}

// ParseSentinel parses four hex digits, optionally prefixed with 0x, e.g. "ffff".
// The digits are the two sentinel bytes in the order they appear in the file.
func ParseSentinel(s string) (Sentinel, error) {
	var out Sentinel
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if len(trimmed) != 2*TokenWidth {
		return out, fmt.Errorf("%w: %q: want %d hex digits", ErrInvalidSentinel, s, 2*TokenWidth)
	}
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return out, fmt.Errorf("%w: %q: %v", ErrInvalidSentinel, s, err)
	}
	copy(out[:], raw)
	return out, nil
}

// String formats the sentinel bytes in file order, e.g. 0xFFFF.
func (s Sentinel) String() string {
	return fmt.Sprintf("0x%02X%02X", s[0], s[1])
}

// Token returns the token value whose encoding under order equals the sentinel.
func (s Sentinel) Token(order binary.ByteOrder) uint16 {
	return order.Uint16(s[:])
}

// Collides reports whether token would be written as the sentinel bytes.
func (s Sentinel) Collides(token uint16, order binary.ByteOrder) bool {
	return token == s.Token(order)
}

// Format is the on-disk definition shared by an Encoder and a Decoder.
// Both sides of a file must use the same Format; a mismatch is not detected.
type Format struct {
	// Sentinel terminates every line. Nil means DefaultSentinel.
	Sentinel *Sentinel
	// ByteOrder of token values. Nil means little-endian.
	ByteOrder binary.ByteOrder
}

// DefaultFormat returns the 0xFFFF sentinel with little-endian tokens.
func DefaultFormat() Format {
	return Format{ByteOrder: binary.LittleEndian}
}

// NewFormat returns a little-endian Format terminated by s.
func NewFormat(s Sentinel) Format {
	return Format{Sentinel: &s, ByteOrder: binary.LittleEndian}
}

// SentinelOrDefault returns the configured sentinel or DefaultSentinel.
func (f Format) SentinelOrDefault() Sentinel {
	if f.Sentinel == nil {
		return DefaultSentinel
	}
	return *f.Sentinel
}

// Order returns the configured byte order or little-endian.
func (f Format) Order() binary.ByteOrder {
	if f.ByteOrder == nil {
		return binary.LittleEndian
	}
	return f.ByteOrder
}

// CheckVocabSize reports whether a vocabulary of ids 0..n-1 can be written
// without any id colliding with the sentinel.
func (f Format) CheckVocabSize(n int) error {
	if n < 0 {
		return fmt.Errorf("negative vocabulary size %d", n)
	}
	s := f.SentinelOrDefault()
	if tok := int(s.Token(f.Order())); tok < n {
		return fmt.Errorf("%w: id %d of vocabulary size %d encodes as sentinel %s",
			ErrSentinelCollision, tok, n, s)
	}
	return nil
}

// CheckHost rejects big-endian hosts.
func CheckHost() error {
	var probe [TokenWidth]byte
	binary.NativeEndian.PutUint16(probe[:], 1)
	if probe[0] != 1 {
		return ErrUnsupportedHost
	}
	return nil
}
