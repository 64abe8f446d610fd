package pm3

import (
	"errors"
	"fmt"
)

var (
	// ErrSize is returned when a structure has the wrong length.
	ErrSize = errors.New("invalid save structure size")

	// ErrTrailingData is returned when a file holds more than one structure.
	ErrTrailingData = errors.New("unexpected trailing data after save structure")
)

func sizeError(name string, got, want int) error {
	return fmt.Errorf("%s is %d bytes, want %d: %w", name, got, want, ErrSize)
}
