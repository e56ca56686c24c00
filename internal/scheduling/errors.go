package scheduling

import (
	"errors"
	"fmt"
)

var (
	ErrBlockNotFound   = errors.New("block not found")
	ErrBookingNotFound = errors.New("booking not found")
)

var (
	ErrDuplicateBooking  = errors.New("employee already has a booking for this block")
	ErrBlockFull         = errors.New("block is fully booked")
	ErrBlockNotOpen      = errors.New("block is not open for booking")
	ErrInvalidTransition = errors.New("invalid state transition")
)

var ErrValidation = errors.New("validation failed")

// ValidationError carries a machine readable code next to the message.
// It matches ErrValidation under errors.Is.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrBlockNotFound) || errors.Is(err, ErrBookingNotFound)
}
