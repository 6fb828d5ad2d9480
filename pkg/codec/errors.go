package codec

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrOpen              = errors.New("tokens file could not be opened")
	ErrWrite             = errors.New("tokens could not be written")
	ErrSentinelCollision = errors.New("token collides with sentinel")
	ErrInvalidSentinel   = errors.New("invalid sentinel")
	ErrUnsupportedHost   = errors.New("big-endian hosts are not supported")
)

// Error records a failed operation on a tokens stream.
type Error struct {
	Op   string // Operation that failed, e.g. "open", "write", "flush"
	Path string // Backing file, empty for plain streams
	Kind error  // One of the Err* kinds above
	Err  error  // Underlying cause
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s: %s", e.Op, e.Path, msg)
	} else if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func writeError(op string, err error) error {
	return &Error{Op: op, Kind: ErrWrite, Err: err}
}
