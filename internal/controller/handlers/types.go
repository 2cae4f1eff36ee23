package handlers

import (
	"github.com/creativeflow/leads_backend/internal/controller/callbacks/common"
	"go.uber.org/zap"
)

// Handlers holds the dependencies of the admin commands
type Handlers struct {
	days   common.DayService
	logger *zap.Logger
}

func NewHandlers(days common.DayService, logger *zap.Logger) *Handlers {
	return &Handlers{
		days:   days,
		logger: logger,
	}
}
