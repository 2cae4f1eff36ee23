package common

import (
	"context"

	"github.com/creativeflow/leads_backend/internal/service"
)

// DayService is what the admin views need from the booking service
type DayService interface {
	Day(ctx context.Context, date string) (*service.DaySummary, error)
	Today() string
}
