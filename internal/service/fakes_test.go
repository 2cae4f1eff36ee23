package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/creativeflow/leads_backend/internal/repository"
)

// memoryStore is an in-memory stand-in for the three consultation tables.
// Insert enforces the same (date, time) uniqueness as consultations_active_slot.
type memoryStore struct {
	mu            sync.Mutex
	settings      *model.ConsultationSettings
	blocked       map[string]string
	consultations []*model.Consultation
	nextID        int64
	err           error // returned by every call when set
	inserts       int
}

func newMemoryStore(settings *model.ConsultationSettings) *memoryStore {
	return &memoryStore{settings: settings, blocked: map[string]string{}}
}

func (m *memoryStore) add(date, time string, status model.ConsultationStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.consultations = append(m.consultations, &model.Consultation{
		ID: m.nextID, Date: date, Time: time, Name: "Seed", Phone: "+15555550100", Status: status,
	})
}

func (m *memoryStore) GetActive(context.Context) (*model.ConsultationSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.settings, nil
}

func (m *memoryStore) Get(_ context.Context, date string) (*model.BlockedDate, error) {
	if m.err != nil {
		return nil, m.err
	}
	reason, ok := m.blocked[date]
	if !ok {
		return nil, nil
	}
	return &model.BlockedDate{Date: date, Reason: reason}, nil
}

func (m *memoryStore) ListBetween(_ context.Context, from, to string) ([]model.BlockedDate, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.BlockedDate
	for date, reason := range m.blocked {
		if date >= from && date <= to {
			out = append(out, model.BlockedDate{Date: date, Reason: reason})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *memoryStore) active(date string) []*model.Consultation {
	var out []*model.Consultation
	for _, c := range m.consultations {
		if c.Date == date && c.Status.Occupies() {
			out = append(out, c)
		}
	}
	return out
}

func (m *memoryStore) ActiveTimes(_ context.Context, date string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var times []string
	for _, c := range m.active(date) {
		times = append(times, c.Time)
	}
	sort.Strings(times)
	return times, nil
}

func (m *memoryStore) ExistsActive(_ context.Context, date, time string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for _, c := range m.active(date) {
		if c.Time == time {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) CountActive(_ context.Context, date string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return len(m.active(date)), nil
}

func (m *memoryStore) CountActiveBetween(_ context.Context, from, to string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	counts := map[string]int{}
	for _, c := range m.consultations {
		if c.Status.Occupies() && c.Date >= from && c.Date <= to {
			counts[c.Date]++
		}
	}
	return counts, nil
}

func (m *memoryStore) ListByDate(_ context.Context, date string) ([]*model.Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*model.Consultation
	for _, c := range m.consultations {
		if c.Date == date {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryStore) Insert(_ context.Context, c *model.Consultation) (repository.InsertOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts++
	if m.err != nil {
		return 0, m.err
	}
	for _, existing := range m.active(c.Date) {
		if existing.Time == c.Time {
			return repository.InsertConflict, nil
		}
	}
	m.nextID++
	c.ID = m.nextID
	m.consultations = append(m.consultations, c)
	return repository.InsertCreated, nil
}

// racingStore lets every pre-check pass and then loses the insert, as when
// another visitor books the same slot between validation and write.
type racingStore struct {
	*memoryStore
}

func (r racingStore) ExistsActive(context.Context, string, string) (bool, error) { return false, nil }
func (r racingStore) CountActive(context.Context, string) (int, error)            { return 0, nil }
func (r racingStore) Insert(context.Context, *model.Consultation) (repository.InsertOutcome, error) {
	return repository.InsertConflict, nil
}

type failingInsert struct {
	*memoryStore
}

func (f failingInsert) Insert(context.Context, *model.Consultation) (repository.InsertOutcome, error) {
	return 0, errors.New("disk full")
}

type recordingNotifier struct {
	consultations []*model.Consultation
	quotes        []*model.Quote
}

func (n *recordingNotifier) ConsultationBooked(_ context.Context, c *model.Consultation) {
	n.consultations = append(n.consultations, c)
}

func (n *recordingNotifier) QuoteSubmitted(_ context.Context, q *model.Quote) {
	n.quotes = append(n.quotes, q)
}
