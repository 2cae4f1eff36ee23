package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/creativeflow/leads_backend/internal/availability"
	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/creativeflow/leads_backend/internal/repository"
	"go.uber.org/zap"
)

const (
	maxNameLength   = 100
	maxCalendarDays = 92
)

// SettingsStore loads the active booking window.
type SettingsStore interface {
	GetActive(ctx context.Context) (*model.ConsultationSettings, error)
}

// BlockedDateStore looks up administratively closed dates.
type BlockedDateStore interface {
	Get(ctx context.Context, date string) (*model.BlockedDate, error)
	ListBetween(ctx context.Context, from, to string) ([]model.BlockedDate, error)
}

// ConsultationStore reads and writes reservations.
type ConsultationStore interface {
	ActiveTimes(ctx context.Context, date string) ([]string, error)
	ExistsActive(ctx context.Context, date, time string) (bool, error)
	CountActive(ctx context.Context, date string) (int, error)
	CountActiveBetween(ctx context.Context, from, to string) (map[string]int, error)
	ListByDate(ctx context.Context, date string) ([]*model.Consultation, error)
	Insert(ctx context.Context, c *model.Consultation) (repository.InsertOutcome, error)
}

// Notifier is told about new leads. Implementations must not block for long.
type Notifier interface {
	ConsultationBooked(ctx context.Context, c *model.Consultation)
	QuoteSubmitted(ctx context.Context, q *model.Quote)
}

type noopNotifier struct{}

func (noopNotifier) ConsultationBooked(context.Context, *model.Consultation) {}
func (noopNotifier) QuoteSubmitted(context.Context, *model.Quote)           {}

// CalendarConfig is the presentation-side date policy used by Calendar and Book.
type CalendarConfig struct {
	Location       *time.Location
	ClosedWeekdays []time.Weekday
	HorizonDays    int
	PhoneRegion    string
	Now            func() time.Time // nil means time.Now
}

// Availability is the result of resolving one date.
type Availability struct {
	Date      string   `json:"date"`
	Slots     []string `json:"slots"`
	IsBlocked bool     `json:"isBlocked"`
}

// Validation is the advisory answer of ValidateBooking.
// Reason is ErrDateBlocked, ErrSlotTaken or ErrDayFull when Valid is false.
type Validation struct {
	Valid  bool
	Reason error
}

type BookingRequest struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type DayStatus string

const (
	DayOpen        DayStatus = "open"
	DayFull        DayStatus = "full"
	DayBlocked     DayStatus = "blocked"
	DayUnavailable DayStatus = "unavailable"
)

type CalendarDay struct {
	Date   string    `json:"date"`
	Status DayStatus `json:"status"`
	Booked int       `json:"booked"`
}

// DaySummary is the admin view of a single date.
type DaySummary struct {
	Date          string
	Consultations []*model.Consultation
	Availability  *Availability
}

type ConsultationService struct {
	settings      SettingsStore
	blocked       BlockedDateStore
	consultations ConsultationStore
	notifier      Notifier
	calendar      CalendarConfig
	closed        map[time.Weekday]bool
	logger        *zap.Logger
}

func NewConsultationService(
	settings SettingsStore,
	blocked BlockedDateStore,
	consultations ConsultationStore,
	notifier Notifier,
	calendar CalendarConfig,
	logger *zap.Logger,
) *ConsultationService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if calendar.Location == nil {
		calendar.Location = time.UTC
	}
	if calendar.Now == nil {
		calendar.Now = time.Now
	}

	closed := make(map[time.Weekday]bool, len(calendar.ClosedWeekdays))
	for _, d := range calendar.ClosedWeekdays {
		closed[d] = true
	}

	return &ConsultationService{
		settings:      settings,
		blocked:       blocked,
		consultations: consultations,
		notifier:      notifier,
		calendar:      calendar,
		closed:        closed,
		logger:        logger,
	}
}

// SetNotifier replaces the lead notifier. Used when the bot starts after the service.
func (s *ConsultationService) SetNotifier(n Notifier) {
	if n == nil {
		n = noopNotifier{}
	}
	s.notifier = n
}

// Availability returns the free slots of date, or IsBlocked for an administratively closed date
func (s *ConsultationService) Availability(ctx context.Context, date string) (*Availability, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}
	date = day.Format(model.DateLayout)

	settings, err := s.activeSettings(ctx)
	if err != nil {
		return nil, err
	}

	blocked, err := s.blocked.Get(ctx, date)
	if err != nil {
		return nil, storageErr("check blocked date", err)
	}
	if blocked != nil {
		return &Availability{Date: date, Slots: []string{}, IsBlocked: true}, nil
	}

	taken, err := s.consultations.ActiveTimes(ctx, date)
	if err != nil {
		return nil, storageErr("load reservations", err)
	}

	all, err := generateSlots(settings)
	if err != nil {
		return nil, err
	}

	return &Availability{Date: date, Slots: availability.Subtract(all, taken)}, nil
}

// ValidateBooking is an advisory pre-check of (date, time). The insert in Book
// stays authoritative because concurrent callers can both pass it.
func (s *ConsultationService) ValidateBooking(ctx context.Context, date, slot string) (Validation, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return Validation{}, err
	}
	clock, err := parseSlot(slot)
	if err != nil {
		return Validation{}, err
	}

	return s.validate(ctx, day.Format(model.DateLayout), clock.String(), nil)
}

// validate runs the three checks in order. settings is loaded lazily when nil.
func (s *ConsultationService) validate(ctx context.Context, date, slot string, settings *model.ConsultationSettings) (Validation, error) {
	// 1. Blocked date
	blocked, err := s.blocked.Get(ctx, date)
	if err != nil {
		return Validation{}, storageErr("check blocked date", err)
	}
	if blocked != nil {
		return Validation{Reason: ErrDateBlocked}, nil
	}

	// 2. Slot occupancy
	taken, err := s.consultations.ExistsActive(ctx, date, slot)
	if err != nil {
		return Validation{}, storageErr("check slot", err)
	}
	if taken {
		return Validation{Reason: ErrSlotTaken}, nil
	}

	// 3. Daily capacity
	if settings == nil {
		if settings, err = s.activeSettings(ctx); err != nil {
			return Validation{}, err
		}
	}
	count, err := s.consultations.CountActive(ctx, date)
	if err != nil {
		return Validation{}, storageErr("count reservations", err)
	}
	if count >= settings.MaxPerDay {
		return Validation{Reason: ErrDayFull}, nil
	}

	return Validation{Valid: true}, nil
}

// Book validates req and writes a pending reservation.
// A write lost to a concurrent booker is reported as ErrSlotTaken.
func (s *ConsultationService) Book(ctx context.Context, req BookingRequest) (*model.Consultation, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "Please enter your name.")
	}
	if len([]rune(name)) > maxNameLength {
		return nil, invalid("name", "Name is too long.")
	}

	phone, err := normalizePhone(req.Phone, s.calendar.PhoneRegion)
	if err != nil {
		return nil, err
	}

	day, err := s.parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	clock, err := parseSlot(req.Time)
	if err != nil {
		return nil, err
	}
	if !s.selectable(day) {
		return nil, ErrDateUnavailable
	}

	date, slot := day.Format(model.DateLayout), clock.String()

	settings, err := s.activeSettings(ctx)
	if err != nil {
		return nil, err
	}
	grid, err := generateSlots(settings)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(grid, slot) {
		return nil, invalid("time", "Please pick one of the offered times.")
	}

	validation, err := s.validate(ctx, date, slot, settings)
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		return nil, validation.Reason
	}

	consultation := &model.Consultation{
		Date:   date,
		Time:   slot,
		Name:   name,
		Phone:  phone,
		Status: model.ConsultationStatusPending,
	}

	outcome, err := s.consultations.Insert(ctx, consultation)
	if err != nil {
		return nil, storageErr("create reservation", err)
	}
	if outcome == repository.InsertConflict {
		s.logger.Info("Slot taken by a concurrent booking",
			zap.String("date", date),
			zap.String("time", slot),
		)
		return nil, ErrSlotTaken
	}

	s.logger.Info("Consultation booked",
		zap.Int64("consultation_id", consultation.ID),
		zap.String("date", date),
		zap.String("time", slot),
	)

	s.notifier.ConsultationBooked(ctx, consultation)

	return consultation, nil
}

// Calendar reports the status of every date in [from, to]
func (s *ConsultationService) Calendar(ctx context.Context, from, to string) ([]CalendarDay, error) {
	start, err := s.parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := s.parseDate(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, invalid("to", "End date must not be before start date.")
	}
	if end.Sub(start) >= maxCalendarDays*24*time.Hour {
		return nil, invalid("to", fmt.Sprintf("At most %d days can be requested.", maxCalendarDays))
	}

	from, to = start.Format(model.DateLayout), end.Format(model.DateLayout)

	settings, err := s.activeSettings(ctx)
	if err != nil {
		return nil, err
	}

	blockedDates, err := s.blocked.ListBetween(ctx, from, to)
	if err != nil {
		return nil, storageErr("list blocked dates", err)
	}
	blocked := make(map[string]bool, len(blockedDates))
	for _, b := range blockedDates {
		blocked[b.Date] = true
	}

	counts, err := s.consultations.CountActiveBetween(ctx, from, to)
	if err != nil {
		return nil, storageErr("count reservations", err)
	}

	var days []CalendarDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(model.DateLayout)
		day := CalendarDay{Date: date, Booked: counts[date], Status: DayOpen}

		switch {
		case !s.selectable(d):
			day.Status = DayUnavailable
		case blocked[date]:
			day.Status = DayBlocked
		case day.Booked >= settings.MaxPerDay:
			day.Status = DayFull
		}

		days = append(days, day)
	}

	return days, nil
}

// UpcomingCalendar is Calendar from tomorrow over the configured horizon
func (s *ConsultationService) UpcomingCalendar(ctx context.Context) ([]CalendarDay, error) {
	today := s.today()
	horizon := s.calendar.HorizonDays
	if horizon <= 0 || horizon > maxCalendarDays {
		horizon = maxCalendarDays
	}

	return s.Calendar(ctx,
		today.AddDate(0, 0, 1).Format(model.DateLayout),
		today.AddDate(0, 0, horizon).Format(model.DateLayout),
	)
}

// Day returns the reservations and remaining slots of date
func (s *ConsultationService) Day(ctx context.Context, date string) (*DaySummary, error) {
	avail, err := s.Availability(ctx, date)
	if err != nil {
		return nil, err
	}

	consultations, err := s.consultations.ListByDate(ctx, avail.Date)
	if err != nil {
		return nil, storageErr("list reservations", err)
	}

	return &DaySummary{
		Date:          avail.Date,
		Consultations: consultations,
		Availability:  avail,
	}, nil
}

// Today returns the current date in the service timezone
func (s *ConsultationService) Today() string {
	return s.today().Format(model.DateLayout)
}

func (s *ConsultationService) today() time.Time {
	now := s.calendar.Now().In(s.calendar.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.calendar.Location)
}

// selectable applies the calendar policy: no past dates, no today, no closed weekdays.
func (s *ConsultationService) selectable(day time.Time) bool {
	return day.After(s.today()) && !s.closed[day.Weekday()]
}

func (s *ConsultationService) activeSettings(ctx context.Context) (*model.ConsultationSettings, error) {
	settings, err := s.settings.GetActive(ctx)
	if err != nil {
		return nil, storageErr("load settings", err)
	}
	if settings == nil {
		return nil, ErrNotConfigured
	}
	return settings, nil
}

func (s *ConsultationService) parseDate(date string) (time.Time, error) {
	day, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(date), s.calendar.Location)
	if err != nil {
		return time.Time{}, invalid("date", "Please pick a valid date.")
	}
	return day, nil
}

func parseSlot(slot string) (availability.Clock, error) {
	clock, err := availability.ParseClock(slot)
	if err != nil {
		return 0, invalid("time", "Please pick a valid time.")
	}
	return clock, nil
}

func generateSlots(settings *model.ConsultationSettings) ([]string, error) {
	slots, err := availability.GenerateSlots(settings.StartTime, settings.EndTime, settings.SlotDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotConfigured, err)
	}
	return slots, nil
}
