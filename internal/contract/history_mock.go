package contract

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fcuny/git-stats/schema"
)

// MockHistoryStore is a testify-based mock implementation of the HistoryStore
// interface for use in unit tests.
type MockHistoryStore struct {
	mock.Mock
}

var _ HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(command string, startTime time.Time, params map[string]any) (int64, error) {
	ret := m.Called(command, startTime, params)
	id, _ := ret.Get(0).(int64)
	return id, ret.Error(1)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, totalContributors int) error {
	ret := m.Called(runID, endTime, totalContributors)
	return ret.Error(0)
}

// RecordScores implements the HistoryStore interface.
func (m *MockHistoryStore) RecordScores(runID int64, scope string, entries []schema.ScoredContributor) error {
	ret := m.Called(runID, scope, entries)
	return ret.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (HistoryStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(HistoryStatus)
	return status, ret.Error(1)
}

// Clear implements the HistoryStore interface.
func (m *MockHistoryStore) Clear() error {
	ret := m.Called()
	return ret.Error(0)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
