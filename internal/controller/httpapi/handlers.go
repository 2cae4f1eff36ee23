package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/creativeflow/leads_backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConsultationAPI is the booking surface used by the handlers
type ConsultationAPI interface {
	Availability(ctx context.Context, date string) (*service.Availability, error)
	ValidateBooking(ctx context.Context, date, slot string) (service.Validation, error)
	Book(ctx context.Context, req service.BookingRequest) (*model.Consultation, error)
	Calendar(ctx context.Context, from, to string) ([]service.CalendarDay, error)
	UpcomingCalendar(ctx context.Context) ([]service.CalendarDay, error)
}

// QuoteAPI is the questionnaire surface used by the handlers
type QuoteAPI interface {
	Questionnaire(ctx context.Context) (*service.Questionnaire, error)
	Submit(ctx context.Context, answers map[string]any) (*model.Quote, error)
}

// Pinger checks the database for /readyz
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers holds the dependencies of the HTTP handlers
type Handlers struct {
	consultations ConsultationAPI
	quotes        QuoteAPI
	db            Pinger
	logger        *zap.Logger
}

func NewHandlers(consultations ConsultationAPI, quotes QuoteAPI, db Pinger, logger *zap.Logger) *Handlers {
	return &Handlers{
		consultations: consultations,
		quotes:        quotes,
		db:            db,
		logger:        logger,
	}
}

type validateRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type validateResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

type quoteRequest struct {
	Answers map[string]any `json:"answers"`
}

func (h *Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("Readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetAvailability handles GET /api/consultations/availability?date=YYYY-MM-DD
func (h *Handlers) GetAvailability(c *gin.Context) {
	avail, err := h.consultations.Availability(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

// GetCalendar handles GET /api/consultations/calendar, defaulting to the upcoming horizon
func (h *Handlers) GetCalendar(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")

	var (
		days []service.CalendarDay
		err  error
	)
	switch {
	case from == "" && to == "":
		days, err = h.consultations.UpcomingCalendar(c.Request.Context())
	case from == "" || to == "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both from and to are required."})
		return
	default:
		days, err = h.consultations.Calendar(c.Request.Context(), from, to)
	}
	if err != nil {
		h.renderError(c, err)
		return
	}

	if days == nil {
		days = []service.CalendarDay{}
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// ValidateBooking handles POST /api/consultations/validate
func (h *Handlers) ValidateBooking(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	v, err := h.consultations.ValidateBooking(c.Request.Context(), req.Date, req.Time)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, validateResponse{
		Valid:   v.Valid,
		Message: service.UserMessage(v.Reason),
	})
}

// CreateConsultation handles POST /api/consultations
func (h *Handlers) CreateConsultation(c *gin.Context) {
	var req service.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	consultation, err := h.consultations.Book(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, consultation)
}

// GetQuestions handles GET /api/quotes/questions
func (h *Handlers) GetQuestions(c *gin.Context) {
	q, err := h.quotes.Questionnaire(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// CreateQuote handles POST /api/quotes
func (h *Handlers) CreateQuote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Answers == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	quote, err := h.quotes.Submit(c.Request.Context(), req.Answers)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

func (h *Handlers) renderError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", RequestID(c)),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": service.UserMessage(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrDateBlocked), errors.Is(err, service.ErrDateUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrSlotTaken), errors.Is(err, service.ErrDayFull):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
