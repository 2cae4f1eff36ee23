package model

import (
	"time"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionTypeText        QuestionType = "text"
	QuestionTypeTextarea    QuestionType = "textarea"
	QuestionTypeSelect      QuestionType = "select"
	QuestionTypeMultiSelect QuestionType = "multiselect"
)

type QuoteQuestion struct {
	ID          int64        `json:"id"`
	Question    string       `json:"question"`
	Type        QuestionType `json:"type"`
	Options     []string     `json:"options"` // nil for free-text questions
	Step        int          `json:"step"`
	Required    bool         `json:"required"`
	Placeholder *string      `json:"placeholder"`
}

type Quote struct {
	ID        uuid.UUID      `json:"id"`
	Answers   map[string]any `json:"answers"` // question text -> string or []string
	Name      *string        `json:"name"`
	Phone     *string        `json:"phone"`
	CreatedAt time.Time      `json:"created_at"`
}
