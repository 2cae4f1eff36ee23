package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Monday 2 March 2026, noon UTC.
var fixedNow = time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

const (
	tuesday   = "2026-03-03"
	wednesday = "2026-03-04"
	thursday  = "2026-03-05"
	friday    = "2026-03-06"
	validTel  = "(650) 253-0000"
)

func defaultSettings() *model.ConsultationSettings {
	return &model.ConsultationSettings{
		ID:           1,
		StartTime:    "10:00",
		EndTime:      "12:00",
		SlotDuration: 30,
		MaxPerDay:    3,
		IsActive:     true,
	}
}

func newTestService(store ConsultationStore, m *memoryStore, notifier Notifier) *ConsultationService {
	return NewConsultationService(m, m, store, notifier, CalendarConfig{
		Location:       time.UTC,
		ClosedWeekdays: []time.Weekday{time.Friday, time.Saturday},
		HorizonDays:    5,
		PhoneRegion:    "US",
		Now:            func() time.Time { return fixedNow },
	}, zap.NewNop())
}

func TestAvailability_AllSlotsWhenEmpty(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	svc := newTestService(m, m, nil)

	got, err := svc.Availability(context.Background(), tuesday)
	require.NoError(t, err)
	assert.Equal(t, &Availability{Date: tuesday, Slots: []string{"10:00", "10:30", "11:00", "11:30"}}, got)
}

func TestAvailability_SubtractsActiveReservations(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	m.add(tuesday, "10:30", model.ConsultationStatusPending)
	m.add(tuesday, "11:00", model.ConsultationStatusConfirmed)
	m.add(tuesday, "11:30", model.ConsultationStatusCancelled)
	m.add(wednesday, "10:00", model.ConsultationStatusPending)
	svc := newTestService(m, m, nil)

	got, err := svc.Availability(context.Background(), tuesday)
	require.NoError(t, err)
	assert.False(t, got.IsBlocked)
	assert.Equal(t, []string{"10:00", "11:30"}, got.Slots)
}

func TestAvailability_BlockedDateIgnoresEverythingElse(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	m.blocked[tuesday] = "Public holiday"
	m.add(tuesday, "10:00", model.ConsultationStatusPending)
	svc := newTestService(m, m, nil)

	got, err := svc.Availability(context.Background(), tuesday)
	require.NoError(t, err)
	assert.True(t, got.IsBlocked)
	assert.NotNil(t, got.Slots)
	assert.Empty(t, got.Slots)
}

func TestAvailability_NoWeekdayPolicy(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	svc := newTestService(m, m, nil)

	got, err := svc.Availability(context.Background(), friday)
	require.NoError(t, err)
	assert.Len(t, got.Slots, 4)
}

func TestAvailability_Idempotent(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	m.add(tuesday, "11:00", model.ConsultationStatusPending)
	svc := newTestService(m, m, nil)

	first, err := svc.Availability(context.Background(), tuesday)
	require.NoError(t, err)
	second, err := svc.Availability(context.Background(), tuesday)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAvailability_Errors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		m := newMemoryStore(nil)
		_, err := newTestService(m, m, nil).Availability(context.Background(), tuesday)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("broken settings", func(t *testing.T) {
		settings := defaultSettings()
		settings.StartTime = "ten"
		m := newMemoryStore(settings)
		_, err := newTestService(m, m, nil).Availability(context.Background(), tuesday)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("storage", func(t *testing.T) {
		cause := errors.New("connection refused")
		m := newMemoryStore(defaultSettings())
		m.err = cause
		_, err := newTestService(m, m, nil).Availability(context.Background(), tuesday)
		assert.ErrorIs(t, err, ErrStorage)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("bad date", func(t *testing.T) {
		m := newMemoryStore(defaultSettings())
		_, err := newTestService(m, m, nil).Availability(context.Background(), "03/03/2026")
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestValidateBooking(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(m *memoryStore)
		time   string
		reason error
	}{
		{
			name:  "free slot",
			setup: func(m *memoryStore) {},
			time:  "10:00",
		},
		{
			name:   "blocked date",
			setup:  func(m *memoryStore) { m.blocked[tuesday] = "Holiday" },
			time:   "10:00",
			reason: ErrDateBlocked,
		},
		{
			name: "blocked wins over taken",
			setup: func(m *memoryStore) {
				m.blocked[tuesday] = "Holiday"
				m.add(tuesday, "10:00", model.ConsultationStatusPending)
			},
			time:   "10:00",
			reason: ErrDateBlocked,
		},
		{
			name:   "pending reservation",
			setup:  func(m *memoryStore) { m.add(tuesday, "10:30", model.ConsultationStatusPending) },
			time:   "10:30",
			reason: ErrSlotTaken,
		},
		{
			name:   "confirmed reservation with seconds",
			setup:  func(m *memoryStore) { m.add(tuesday, "10:30", model.ConsultationStatusConfirmed) },
			time:   "10:30:00",
			reason: ErrSlotTaken,
		},
		{
			name:  "cancelled reservation frees the slot",
			setup: func(m *memoryStore) { m.add(tuesday, "10:30", model.ConsultationStatusCancelled) },
			time:  "10:30",
		},
		{
			name: "day at capacity with free slot",
			setup: func(m *memoryStore) {
				m.add(tuesday, "10:00", model.ConsultationStatusPending)
				m.add(tuesday, "10:30", model.ConsultationStatusConfirmed)
				m.add(tuesday, "11:00", model.ConsultationStatusPending)
			},
			time:   "11:30",
			reason: ErrDayFull,
		},
		{
			name: "cancelled reservations do not count",
			setup: func(m *memoryStore) {
				m.add(tuesday, "10:00", model.ConsultationStatusPending)
				m.add(tuesday, "10:30", model.ConsultationStatusCancelled)
				m.add(tuesday, "11:00", model.ConsultationStatusPending)
			},
			time: "11:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMemoryStore(defaultSettings())
			tt.setup(m)
			svc := newTestService(m, m, nil)

			got, err := svc.ValidateBooking(context.Background(), tuesday, tt.time)
			require.NoError(t, err)
			if tt.reason == nil {
				assert.Equal(t, Validation{Valid: true}, got)
				return
			}
			assert.False(t, got.Valid)
			assert.ErrorIs(t, got.Reason, tt.reason)
		})
	}
}

func TestValidateBooking_SettingsOnlyNeededForCapacity(t *testing.T) {
	m := newMemoryStore(nil)
	m.add(tuesday, "10:00", model.ConsultationStatusPending)
	svc := newTestService(m, m, nil)

	got, err := svc.ValidateBooking(context.Background(), tuesday, "10:00")
	require.NoError(t, err)
	assert.ErrorIs(t, got.Reason, ErrSlotTaken)

	_, err = svc.ValidateBooking(context.Background(), tuesday, "10:30")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestValidateBooking_BadInput(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	svc := newTestService(m, m, nil)

	_, err := svc.ValidateBooking(context.Background(), "tomorrow", "10:00")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	_, err = svc.ValidateBooking(context.Background(), tuesday, "25:00")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestBook_Success(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	notifier := &recordingNotifier{}
	svc := newTestService(m, m, notifier)

	got, err := svc.Book(context.Background(), BookingRequest{
		Date:  tuesday,
		Time:  "11:00",
		Name:  "  Ada Lovelace ",
		Phone: validTel,
	})
	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "+16502530000", got.Phone)
	assert.Equal(t, model.ConsultationStatusPending, got.Status)
	assert.Equal(t, []*model.Consultation{got}, notifier.consultations)

	avail, err := svc.Availability(context.Background(), tuesday)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30", "11:30"}, avail.Slots)
}

func TestBook_LostRaceIsSlotTaken(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	notifier := &recordingNotifier{}
	svc := newTestService(racingStore{m}, m, notifier)

	_, err := svc.Book(context.Background(), BookingRequest{Date: tuesday, Time: "10:00", Name: "Ada", Phone: validTel})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NotErrorIs(t, err, ErrStorage)
	assert.Empty(t, notifier.consultations)
}

func TestBook_ConcurrentBookersGetOneSlot(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	m.settings.MaxPerDay = 100
	svc := newTestService(m, m, nil)

	const bookers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		booked  int
		refused int
	)
	for i := 0; i < bookers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book(context.Background(), BookingRequest{Date: tuesday, Time: "10:00", Name: "Ada", Phone: validTel})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				booked++
			case errors.Is(err, ErrSlotTaken):
				refused++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, booked)
	assert.Equal(t, bookers-1, refused)
}

func TestBook_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *memoryStore)
		req   BookingRequest
		want  error
	}{
		{"empty name", nil, BookingRequest{Date: tuesday, Time: "10:00", Name: "  ", Phone: validTel}, ErrInvalidRequest},
		{"bad phone", nil, BookingRequest{Date: tuesday, Time: "10:00", Name: "Ada", Phone: "12"}, ErrInvalidRequest},
		{"bad date", nil, BookingRequest{Date: "2026-02-30", Time: "10:00", Name: "Ada", Phone: validTel}, ErrInvalidRequest},
		{"today", nil, BookingRequest{Date: "2026-03-02", Time: "10:00", Name: "Ada", Phone: validTel}, ErrDateUnavailable},
		{"past", nil, BookingRequest{Date: "2026-02-24", Time: "10:00", Name: "Ada", Phone: validTel}, ErrDateUnavailable},
		{"closed weekday", nil, BookingRequest{Date: friday, Time: "10:00", Name: "Ada", Phone: validTel}, ErrDateUnavailable},
		{"off the grid", nil, BookingRequest{Date: tuesday, Time: "10:15", Name: "Ada", Phone: validTel}, ErrInvalidRequest},
		{"after hours", nil, BookingRequest{Date: tuesday, Time: "12:00", Name: "Ada", Phone: validTel}, ErrInvalidRequest},
		{
			"not configured",
			func(m *memoryStore) { m.settings = nil },
			BookingRequest{Date: tuesday, Time: "10:00", Name: "Ada", Phone: validTel},
			ErrNotConfigured,
		},
		{
			"blocked",
			func(m *memoryStore) { m.blocked[thursday] = "Offsite" },
			BookingRequest{Date: thursday, Time: "10:00", Name: "Ada", Phone: validTel},
			ErrDateBlocked,
		},
		{
			"taken",
			func(m *memoryStore) { m.add(tuesday, "10:00", model.ConsultationStatusConfirmed) },
			BookingRequest{Date: tuesday, Time: "10:00", Name: "Ada", Phone: validTel},
			ErrSlotTaken,
		},
		{
			"full",
			func(m *memoryStore) { m.settings.MaxPerDay = 0 },
			BookingRequest{Date: tuesday, Time: "10:00", Name: "Ada", Phone: validTel},
			ErrDayFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMemoryStore(defaultSettings())
			if tt.setup != nil {
				tt.setup(m)
			}
			svc := newTestService(m, m, nil)

			_, err := svc.Book(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, m.inserts)
		})
	}
}

func TestBook_InsertFailureIsStorage(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	svc := newTestService(failingInsert{m}, m, nil)

	_, err := svc.Book(context.Background(), BookingRequest{Date: tuesday, Time: "10:00", Name: "Ada", Phone: validTel})
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, "Something went wrong.", UserMessage(err))
}

func TestCalendar(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	m.blocked[wednesday] = "Offsite"
	for _, slot := range []string{"10:00", "10:30", "11:00"} {
		m.add(thursday, slot, model.ConsultationStatusPending)
	}
	m.add(tuesday, "10:00", model.ConsultationStatusPending)
	m.add(tuesday, "10:30", model.ConsultationStatusCancelled)
	svc := newTestService(m, m, nil)

	days, err := svc.Calendar(context.Background(), "2026-03-02", "2026-03-08")
	require.NoError(t, err)
	assert.Equal(t, []CalendarDay{
		{Date: "2026-03-02", Status: DayUnavailable},
		{Date: tuesday, Status: DayOpen, Booked: 1},
		{Date: wednesday, Status: DayBlocked},
		{Date: thursday, Status: DayFull, Booked: 3},
		{Date: friday, Status: DayUnavailable},
		{Date: "2026-03-07", Status: DayUnavailable},
		{Date: "2026-03-08", Status: DayOpen},
	}, days)
}

func TestCalendar_FullMatchesValidator(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	m.settings.MaxPerDay = 1
	m.add(tuesday, "10:00", model.ConsultationStatusPending)
	svc := newTestService(m, m, nil)

	days, err := svc.Calendar(context.Background(), tuesday, tuesday)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, DayFull, days[0].Status)

	v, err := svc.ValidateBooking(context.Background(), tuesday, "11:00")
	require.NoError(t, err)
	assert.ErrorIs(t, v.Reason, ErrDayFull)
}

func TestCalendar_RangeErrors(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	svc := newTestService(m, m, nil)

	_, err := svc.Calendar(context.Background(), wednesday, tuesday)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	_, err = svc.Calendar(context.Background(), "2026-03-01", "2026-07-01")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestUpcomingCalendar(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	svc := newTestService(m, m, nil)

	days, err := svc.UpcomingCalendar(context.Background())
	require.NoError(t, err)
	require.Len(t, days, 5)
	assert.Equal(t, tuesday, days[0].Date)
	assert.Equal(t, "2026-03-07", days[4].Date)
	assert.Equal(t, "2026-03-02", svc.Today())
}

func TestDay(t *testing.T) {
	m := newMemoryStore(defaultSettings())
	m.add(tuesday, "10:00", model.ConsultationStatusPending)
	m.add(tuesday, "10:30", model.ConsultationStatusCancelled)
	svc := newTestService(m, m, nil)

	day, err := svc.Day(context.Background(), tuesday)
	require.NoError(t, err)
	assert.Equal(t, tuesday, day.Date)
	assert.Len(t, day.Consultations, 2)
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, day.Availability.Slots)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Booking is not currently configured.", UserMessage(ErrNotConfigured))
	assert.Equal(t, "This date is not available.", UserMessage(ErrDateBlocked))
	assert.Equal(t, "Time slot already booked.", UserMessage(ErrSlotTaken))
	assert.Equal(t, "This day is fully booked.", UserMessage(ErrDayFull))
	assert.Equal(t, "Please enter your name.", UserMessage(invalid("name", "Please enter your name.")))
	assert.Equal(t, "Something went wrong.", UserMessage(storageErr("load", errors.New("eof"))))
	assert.Empty(t, UserMessage(nil))
}
