package service_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"feedback-backend/internal/models"
)

// memoryStore is an in-process FeedbackStore for tests.
type memoryStore struct {
	mu      sync.Mutex
	records []models.FeedbackRecord
	nextID  int
	err     error
}

func (m *memoryStore) Insert(_ context.Context, record *models.FeedbackRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	record.ID = fmt.Sprintf("fb-%d", m.nextID)
	m.records = append(m.records, *record)
	return nil
}

func (m *memoryStore) FindRecent(_ context.Context, limit int) ([]models.FeedbackRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := append([]models.FeedbackRecord(nil), m.records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryStore) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.records)), m.err
}

func (m *memoryStore) CountSince(_ context.Context, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.records {
		if !r.Timestamp.Before(since) {
			n++
		}
	}
	return n, m.err
}

func (m *memoryStore) RatingDistribution(context.Context) (map[int]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dist := make(map[int]int64)
	for _, r := range m.records {
		dist[r.Rating]++
	}
	return dist, m.err
}

func (m *memoryStore) AverageRating(context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.records) == 0 {
		return 0, m.err
	}
	var sum int
	for _, r := range m.records {
		sum += r.Rating
	}
	return float64(sum) / float64(len(m.records)), m.err
}

func (m *memoryStore) Ping(context.Context) error { return m.err }

func (m *memoryStore) add(rating int, ts time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, models.FeedbackRecord{Rating: rating, Timestamp: ts})
}

type failingClient struct{}

func (failingClient) Generate(context.Context, string) (string, error) {
	return "", errors.New("generation service unavailable")
}

type channelNotifier chan string

func (c channelNotifier) Publish(_ context.Context, message string) error {
	c <- message
	return nil
}
