package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	ChallengesCreated   prometheus.Counter
	MatchesRecorded     prometheus.Counter
	SweepRuns           prometheus.Counter
	SweepDuration       prometheus.Histogram
	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
