package repository

import (
	"context"
	"fmt"

	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/creativeflow/leads_backend/internal/repository/base"
)

type SettingsRepository struct {
	*base.Repository
}

func NewSettingsRepository(db base.DB) *SettingsRepository {
	return &SettingsRepository{Repository: base.NewRepository(db)}
}

// GetActive returns the active booking window, or nil if none is configured
func (r *SettingsRepository) GetActive(ctx context.Context) (*model.ConsultationSettings, error) {
	query := `
		SELECT id, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		       slot_duration, max_per_day, is_active
		FROM consultation_settings
		WHERE is_active
		LIMIT 1
	`

	var settings model.ConsultationSettings
	err := r.QueryRow(ctx, query).Scan(
		&settings.ID,
		&settings.StartTime,
		&settings.EndTime,
		&settings.SlotDuration,
		&settings.MaxPerDay,
		&settings.IsActive,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active settings: %w", err)
	}

	return &settings, nil
}
