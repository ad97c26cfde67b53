package b3

import (
	"errors"
	"strconv"
)

// ErrInvalidKeyLength is matched (via errors.Is) by every *KeyLengthError.
var ErrInvalidKeyLength = errors.New("b3: invalid key length")

// A KeyLengthError is returned when a keyed hasher is constructed with a key
// that is not exactly KeyLen bytes.
type KeyLengthError struct {
	Expected int
	Actual   int
}

func (e *KeyLengthError) Error() string {
	return ErrInvalidKeyLength.Error() + ": expected " + strconv.Itoa(e.Expected) + " bytes, got " + strconv.Itoa(e.Actual)
}

// Is reports whether target is ErrInvalidKeyLength.
func (e *KeyLengthError) Is(target error) bool {
	return target == ErrInvalidKeyLength
}
