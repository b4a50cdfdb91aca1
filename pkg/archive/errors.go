package archive

import (
	"errors"
	"fmt"
)

// ErrInvalidUTF8 is the cause of a decode failure.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// ReadKind tags the stage at which a source could not be read.
type ReadKind string

const (
	KindOpen   ReadKind = "open"
	KindRead   ReadKind = "read"
	KindDecode ReadKind = "decode"
)

// ReadError is returned when a source file cannot be turned into text lines.
// It never aborts a run; its message is written into the archive instead.
type ReadError struct {
	Path   string
	Kind   ReadKind
	Offset int // Byte offset of the first undecodable byte; decode errors only.
	Cause  error
}

func (e *ReadError) Error() string {
	if e.Kind == KindDecode {
		return fmt.Sprintf("decode %s: %v at byte offset %d", e.Path, e.Cause, e.Offset)
	}
	return e.Cause.Error()
}

func (e *ReadError) Unwrap() error { return e.Cause }
