package repository

import (
	"context"
	"fmt"

	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/creativeflow/leads_backend/internal/repository/base"
)

// InsertOutcome is the result of a reservation write that did not fail in transport.
type InsertOutcome int

const (
	InsertCreated  InsertOutcome = iota // Row written
	InsertConflict                      // Rejected by consultations_active_slot
)

// Statuses that hold a slot, spelled as in the consultations_active_slot index.
var activeStatuses = statusStrings(model.ActiveConsultationStatuses)

func statusStrings(statuses []model.ConsultationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

type ConsultationRepository struct {
	*base.Repository
}

func NewConsultationRepository(db base.DB) *ConsultationRepository {
	return &ConsultationRepository{Repository: base.NewRepository(db)}
}

// ActiveTimes returns the HH:MM times held by pending or confirmed reservations on date
func (r *ConsultationRepository) ActiveTimes(ctx context.Context, date string) ([]string, error) {
	query := `
		SELECT to_char(consultation_time, 'HH24:MI')
		FROM consultations
		WHERE consultation_date = $1 AND status = ANY($2)
		ORDER BY consultation_time
	`

	rows, err := r.Query(ctx, query, date, activeStatuses)
	if err != nil {
		return nil, fmt.Errorf("get active times: %w", err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan consultation time: %w", err)
		}
		times = append(times, t)
	}

	return times, rows.Err()
}

// ExistsActive reports whether (date, time) is held by a pending or confirmed reservation
func (r *ConsultationRepository) ExistsActive(ctx context.Context, date, time string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM consultations
			WHERE consultation_date = $1 AND consultation_time = $2 AND status = ANY($3)
		)
	`

	var exists bool
	if err := r.QueryRow(ctx, query, date, time, activeStatuses).Scan(&exists); err != nil {
		return false, fmt.Errorf("check slot occupancy: %w", err)
	}

	return exists, nil
}

// CountActive counts the non-cancelled reservations on date
func (r *ConsultationRepository) CountActive(ctx context.Context, date string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM consultations
		WHERE consultation_date = $1 AND status = ANY($2)
	`

	var count int
	if err := r.QueryRow(ctx, query, date, activeStatuses).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active consultations: %w", err)
	}

	return count, nil
}

// CountActiveBetween counts non-cancelled reservations per date in [from, to].
// Dates without reservations are absent from the map.
func (r *ConsultationRepository) CountActiveBetween(ctx context.Context, from, to string) (map[string]int, error) {
	query := `
		SELECT to_char(consultation_date, 'YYYY-MM-DD'), COUNT(*)
		FROM consultations
		WHERE consultation_date BETWEEN $1 AND $2 AND status = ANY($3)
		GROUP BY consultation_date
	`

	rows, err := r.Query(ctx, query, from, to, activeStatuses)
	if err != nil {
		return nil, fmt.Errorf("count consultations by date: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			date  string
			count int
		)
		if err := rows.Scan(&date, &count); err != nil {
			return nil, fmt.Errorf("scan consultation count: %w", err)
		}
		counts[date] = count
	}

	return counts, rows.Err()
}

// ListByDate returns every reservation on date, cancelled ones included, by time
func (r *ConsultationRepository) ListByDate(ctx context.Context, date string) ([]*model.Consultation, error) {
	query := `
		SELECT id, to_char(consultation_date, 'YYYY-MM-DD'), to_char(consultation_time, 'HH24:MI'),
		       name, phone, status, created_at
		FROM consultations
		WHERE consultation_date = $1
		ORDER BY consultation_time, created_at
	`

	rows, err := r.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("get consultations by date: %w", err)
	}
	defer rows.Close()

	var consultations []*model.Consultation
	for rows.Next() {
		var c model.Consultation
		err := rows.Scan(
			&c.ID,
			&c.Date,
			&c.Time,
			&c.Name,
			&c.Phone,
			&c.Status,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan consultation: %w", err)
		}
		consultations = append(consultations, &c)
	}

	return consultations, rows.Err()
}

// Insert writes a reservation. A unique-index rejection is reported as InsertConflict
// with a nil error; any other failure is returned as an error.
func (r *ConsultationRepository) Insert(ctx context.Context, c *model.Consultation) (InsertOutcome, error) {
	query := `
		INSERT INTO consultations (name, phone, consultation_date, consultation_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, c.Name, c.Phone, c.Date, c.Time, c.Status).
		Scan(&c.ID, &c.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return InsertConflict, nil
		}
		return 0, fmt.Errorf("insert consultation: %w", err)
	}

	return InsertCreated, nil
}
