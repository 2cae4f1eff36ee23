package service

import (
	"errors"
	"fmt"
)

// Booking and questionnaire errors. Compare with errors.Is.
var (
	ErrNotConfigured   = errors.New("booking is not configured")
	ErrDateBlocked     = errors.New("date is blocked")
	ErrDateUnavailable = errors.New("date is not bookable")
	ErrSlotTaken       = errors.New("slot already booked")
	ErrDayFull         = errors.New("day fully booked")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrStorage         = errors.New("storage failure")
)

// ValidationError rejects a single request field. It matches ErrInvalidRequest.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// storageErr marks err as a transport failure of op.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// UserMessage returns the text shown to a visitor for err
func UserMessage(err error) string {
	var validationErr *ValidationError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.Is(err, ErrNotConfigured):
		return "Booking is not currently configured."
	case errors.Is(err, ErrDateBlocked), errors.Is(err, ErrDateUnavailable):
		return "This date is not available."
	case errors.Is(err, ErrSlotTaken):
		return "Time slot already booked."
	case errors.Is(err, ErrDayFull):
		return "This day is fully booked."
	default:
		return "Something went wrong."
	}
}
