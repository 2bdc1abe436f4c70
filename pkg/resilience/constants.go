package resilience

import "time"

// Breaker defaults for a single user driving one backend. The breaker trips
// after a short run of server failures and probes again after Timeout.
const (
	DefaultMaxRequests           uint32        = 1
	DefaultInterval              time.Duration = 2 * time.Minute
	DefaultTimeout               time.Duration = 15 * time.Second
	DefaultFailureThreshold      uint32        = 3
	DefaultFailureRatioThreshold float64       = 0.6
	DefaultMinRequestsToTrip     uint32        = 5
)
