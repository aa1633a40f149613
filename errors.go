package dem

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfMemory     = errors.New("out of memory")
	ErrTruncatedInput  = errors.New("truncated input")
)

// A TruncatedInputError is returned when a file holds fewer samples than its
// declared dimensions require.
type TruncatedInputError struct {
	Path     string
	Expected int64 // Bytes.
	Actual   int64 // Bytes.
}

func (e *TruncatedInputError) Error() string {
	msg := fmt.Sprintf("truncated input: expected %d bytes (%d samples), got %d bytes", e.Expected, e.Expected/sampleSize, e.Actual)
	if e.Path == "" {
		return msg
	}
	return e.Path + ": " + msg
}

func (e *TruncatedInputError) Is(target error) bool {
	return target == ErrTruncatedInput
}
