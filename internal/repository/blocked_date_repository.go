package repository

import (
	"context"
	"fmt"

	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/creativeflow/leads_backend/internal/repository/base"
)

type BlockedDateRepository struct {
	*base.Repository
}

func NewBlockedDateRepository(db base.DB) *BlockedDateRepository {
	return &BlockedDateRepository{Repository: base.NewRepository(db)}
}

// Get returns the blocked-date row for date (YYYY-MM-DD), or nil when the date is open
func (r *BlockedDateRepository) Get(ctx context.Context, date string) (*model.BlockedDate, error) {
	query := `
		SELECT to_char(date, 'YYYY-MM-DD'), COALESCE(reason, '')
		FROM consultation_blocked_dates
		WHERE date = $1
	`

	var blocked model.BlockedDate
	err := r.QueryRow(ctx, query, date).Scan(&blocked.Date, &blocked.Reason)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get blocked date: %w", err)
	}

	return &blocked, nil
}

// ListBetween returns blocked dates in [from, to], ordered by date
func (r *BlockedDateRepository) ListBetween(ctx context.Context, from, to string) ([]model.BlockedDate, error) {
	query := `
		SELECT to_char(date, 'YYYY-MM-DD'), COALESCE(reason, '')
		FROM consultation_blocked_dates
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
	`

	rows, err := r.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list blocked dates: %w", err)
	}
	defer rows.Close()

	var dates []model.BlockedDate
	for rows.Next() {
		var blocked model.BlockedDate
		if err := rows.Scan(&blocked.Date, &blocked.Reason); err != nil {
			return nil, fmt.Errorf("scan blocked date: %w", err)
		}
		dates = append(dates, blocked)
	}

	return dates, rows.Err()
}
