package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Questions whose answers are copied onto the quote row.
const (
	QuestionFullName = "Your full name"
	QuestionPhone    = "Your phone number"
)

const maxAnswerLength = 5000

// QuoteStore reads the questionnaire and stores submissions.
type QuoteStore interface {
	ListQuestions(ctx context.Context) ([]*model.QuoteQuestion, error)
	Create(ctx context.Context, quote *model.Quote) error
}

type QuestionnaireStep struct {
	Step      int                    `json:"step"`
	Questions []*model.QuoteQuestion `json:"questions"`
}

type Questionnaire struct {
	TotalSteps int                 `json:"totalSteps"`
	Steps      []QuestionnaireStep `json:"steps"`
}

type QuoteService struct {
	quotes      QuoteStore
	notifier    Notifier
	phoneRegion string
	logger      *zap.Logger
}

func NewQuoteService(quotes QuoteStore, notifier Notifier, phoneRegion string, logger *zap.Logger) *QuoteService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &QuoteService{
		quotes:      quotes,
		notifier:    notifier,
		phoneRegion: phoneRegion,
		logger:      logger,
	}
}

// SetNotifier replaces the lead notifier
func (s *QuoteService) SetNotifier(n Notifier) {
	if n == nil {
		n = noopNotifier{}
	}
	s.notifier = n
}

// Questionnaire returns the questions grouped by step in ascending order
func (s *QuoteService) Questionnaire(ctx context.Context) (*Questionnaire, error) {
	questions, err := s.quotes.ListQuestions(ctx)
	if err != nil {
		return nil, storageErr("load questions", err)
	}

	q := &Questionnaire{TotalSteps: 1, Steps: []QuestionnaireStep{}}
	for _, question := range questions {
		if n := len(q.Steps); n == 0 || q.Steps[n-1].Step != question.Step {
			q.Steps = append(q.Steps, QuestionnaireStep{Step: question.Step})
		}
		last := &q.Steps[len(q.Steps)-1]
		last.Questions = append(last.Questions, question)

		if question.Step > q.TotalSteps {
			q.TotalSteps = question.Step
		}
	}

	return q, nil
}

// Submit validates answers (keyed by question text) and stores the quote
func (s *QuoteService) Submit(ctx context.Context, answers map[string]any) (*model.Quote, error) {
	questions, err := s.quotes.ListQuestions(ctx)
	if err != nil {
		return nil, storageErr("load questions", err)
	}

	byText := make(map[string]*model.QuoteQuestion, len(questions))
	for _, q := range questions {
		byText[q.Question] = q
	}

	clean := make(map[string]any, len(answers))
	for text, raw := range answers {
		question, ok := byText[text]
		if !ok {
			return nil, invalid("answers", fmt.Sprintf("Unknown question %q.", text))
		}

		value, err := normalizeAnswer(question, raw)
		if err != nil {
			return nil, err
		}
		if value != nil {
			clean[text] = value
		}
	}

	for _, q := range questions {
		if q.Required && clean[q.Question] == nil {
			return nil, invalid("answers", fmt.Sprintf("Please answer %q.", q.Question))
		}
	}

	quote := &model.Quote{
		ID:      uuid.New(),
		Answers: clean,
	}
	if name, ok := clean[QuestionFullName].(string); ok {
		quote.Name = &name
	}
	if raw, ok := clean[QuestionPhone].(string); ok {
		phone, err := normalizePhone(raw, s.phoneRegion)
		if err != nil {
			return nil, err
		}
		clean[QuestionPhone] = phone
		quote.Phone = &phone
	}

	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, storageErr("create quote", err)
	}

	s.logger.Info("Quote submitted",
		zap.String("quote_id", quote.ID.String()),
		zap.Int("answers", len(clean)),
	)

	s.notifier.QuoteSubmitted(ctx, quote)

	return quote, nil
}

// normalizeAnswer returns a trimmed string, a []string, or nil for a blank answer.
func normalizeAnswer(q *model.QuoteQuestion, raw any) (any, error) {
	switch q.Type {
	case model.QuestionTypeMultiSelect:
		choices, ok := stringList(raw)
		if !ok {
			return nil, invalid("answers", fmt.Sprintf("%q expects a list of choices.", q.Question))
		}
		var picked []string
		for _, c := range choices {
			c = strings.TrimSpace(c)
			if c == "" || slices.Contains(picked, c) {
				continue
			}
			if !slices.Contains(q.Options, c) {
				return nil, invalid("answers", fmt.Sprintf("%q is not an option of %q.", c, q.Question))
			}
			picked = append(picked, c)
		}
		if len(picked) == 0 {
			return nil, nil
		}
		return picked, nil

	default:
		text, ok := raw.(string)
		if !ok {
			return nil, invalid("answers", fmt.Sprintf("%q expects text.", q.Question))
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, nil
		}
		if len([]rune(text)) > maxAnswerLength {
			return nil, invalid("answers", fmt.Sprintf("The answer to %q is too long.", q.Question))
		}
		if q.Type == model.QuestionTypeSelect && !slices.Contains(q.Options, text) {
			return nil, invalid("answers", fmt.Sprintf("%q is not an option of %q.", text, q.Question))
		}
		return text, nil
	}
}

// stringList accepts []string or a decoded JSON array of strings.
func stringList(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
