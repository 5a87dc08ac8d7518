package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
type Mock struct {
	mu sync.Mutex

	ChallengesCreatedCount   int
	MatchesRecordedCount     int
	SweepRunsCount           int
	SweepDurations           []float64
	NotificationsSentCount   int
	NotificationsFailedCount int
	StartupTimes             []float64
}

var _ Metrics = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncChallengesCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChallengesCreatedCount++
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchesRecordedCount++
}

func (m *Mock) IncSweepRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SweepRunsCount++
}

func (m *Mock) ObserveSweepDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SweepDurations = append(m.SweepDurations, seconds)
}

func (m *Mock) IncNotificationsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotificationsSentCount++
}

func (m *Mock) IncNotificationsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotificationsFailedCount++
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimes = append(m.StartupTimes, seconds)
}
