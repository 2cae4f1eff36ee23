package repository

import (
	"context"
	"fmt"

	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/creativeflow/leads_backend/internal/repository/base"
)

type QuoteRepository struct {
	*base.Repository
}

func NewQuoteRepository(db base.DB) *QuoteRepository {
	return &QuoteRepository{Repository: base.NewRepository(db)}
}

// ListQuestions returns the questionnaire ordered by step
func (r *QuoteRepository) ListQuestions(ctx context.Context) ([]*model.QuoteQuestion, error) {
	query := `
		SELECT id, question, type, options, step, required, placeholder
		FROM quote_questions
		ORDER BY step ASC, id ASC
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list quote questions: %w", err)
	}
	defer rows.Close()

	var questions []*model.QuoteQuestion
	for rows.Next() {
		var q model.QuoteQuestion
		err := rows.Scan(
			&q.ID,
			&q.Question,
			&q.Type,
			&q.Options,
			&q.Step,
			&q.Required,
			&q.Placeholder,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quote question: %w", err)
		}
		questions = append(questions, &q)
	}

	return questions, rows.Err()
}

// Create stores a submitted quote
func (r *QuoteRepository) Create(ctx context.Context, quote *model.Quote) error {
	query := `
		INSERT INTO quotes (id, answers, name, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.QueryRow(ctx, query, quote.ID, quote.Answers, quote.Name, quote.Phone).
		Scan(&quote.CreatedAt)
	if err != nil {
		return fmt.Errorf("create quote: %w", err)
	}

	return nil
}
