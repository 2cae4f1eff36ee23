package formatting

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/creativeflow/leads_backend/internal/model"
)

// ConsultationNotice is the admin message for a new booking
func ConsultationNotice(c *model.Consultation) string {
	return fmt.Sprintf(
		"📞 <b>New consultation</b>\n\n"+
			"🗓 %s\n"+
			"👤 %s\n"+
			"☎️ %s\n"+
			"#%d",
		FormatDateTime(c.Date, c.Time),
		html.EscapeString(c.Name),
		html.EscapeString(c.Phone),
		c.ID,
	)
}

// QuoteNotice is the admin message for a new quote request, answers sorted by question
func QuoteNotice(q *model.Quote) string {
	var sb strings.Builder
	sb.WriteString("📝 <b>New quote request</b>\n")

	if q.Name != nil {
		fmt.Fprintf(&sb, "👤 %s\n", html.EscapeString(*q.Name))
	}
	if q.Phone != nil {
		fmt.Fprintf(&sb, "☎️ %s\n", html.EscapeString(*q.Phone))
	}

	questions := make([]string, 0, len(q.Answers))
	for question := range q.Answers {
		questions = append(questions, question)
	}
	sort.Strings(questions)

	for _, question := range questions {
		fmt.Fprintf(&sb, "\n<b>%s</b>\n%s\n",
			html.EscapeString(question),
			html.EscapeString(answerText(q.Answers[question])),
		)
	}

	return sb.String()
}

func answerText(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case []string:
		return strings.Join(a, ", ")
	case []any:
		parts := make([]string, 0, len(a))
		for _, item := range a {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(a)
	}
}
