package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("conflict")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrFamilyMismatch = errors.New("address family mismatch")
	ErrOutOfRange     = errors.New("address outside subnet range")
	ErrInvalidOrder   = errors.New("range start exceeds range end")

	// ErrSearchBudget means the bounded scan found no gap; for IPv6-scale
	// ranges this is not proof of exhaustion.
	ErrSearchBudget = errors.New("no available address found within search budget")

	// ErrSubnetExhausted means the whole usable range was scanned and every
	// address is occupied.
	ErrSubnetExhausted = errors.New("subnet exhausted")
)

// RangeConflictError reports a reservation range overlapping occupied
// addresses. It unwraps to ErrConflict.
type RangeConflictError struct {
	Addresses []string
}

func (e *RangeConflictError) Error() string {
	return fmt.Sprintf("range overlaps occupied addresses: %s", strings.Join(e.Addresses, ", "))
}

func (e *RangeConflictError) Unwrap() error {
	return ErrConflict
}
