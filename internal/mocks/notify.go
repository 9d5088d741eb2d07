package mocks

import (
	"context"
	"sync"

	"github.com/staff-directory-api/internal/importer"
	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/notify"
)

// RecordingSink keeps every notification it receives
type RecordingSink struct {
	mu            sync.Mutex
	Notifications []models.Notification
}

// Verify interface compliance
var _ notify.Sink = (*RecordingSink)(nil)

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) Notify(_ context.Context, n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notifications = append(s.Notifications, n)
}

// Count returns the number of notifications received
func (s *RecordingSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Notifications)
}

// Last returns the most recent notification, zero when none arrived
func (s *RecordingSink) Last() models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Notifications) == 0 {
		return models.Notification{}
	}
	return s.Notifications[len(s.Notifications)-1]
}

// Reset forgets every notification
func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notifications = nil
}

// MockExtractor stands in for a capture-based extractor
type MockExtractor struct {
	Candidates []importer.Candidate
	Err        error
	Calls      int
}

// Verify interface compliance
var _ importer.Extractor = (*MockExtractor)(nil)

func (m *MockExtractor) Extract(ctx context.Context, artifact models.Artifact) ([]importer.Candidate, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]importer.Candidate, len(m.Candidates))
	copy(out, m.Candidates)
	return out, nil
}
