package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncChallengesCreated()
	IncMatchesRecorded()
	IncSweepRuns()
	ObserveSweepDuration(seconds float64)
	IncNotificationsSent()
	IncNotificationsFailed()
	SetStartupTime(seconds float64)
}
