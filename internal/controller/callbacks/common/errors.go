package common

import (
	"errors"

	"github.com/creativeflow/leads_backend/internal/service"
)

var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage returns the admin-facing text for err
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoMessage):
		return "❌ This message can no longer be edited"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid data"
	case errors.Is(err, service.ErrNotConfigured):
		return "⚠️ Booking is not configured: no active consultation settings"
	case errors.Is(err, service.ErrInvalidRequest):
		return "❌ " + service.UserMessage(err)
	default:
		return "❌ Something went wrong, check the logs"
	}
}
