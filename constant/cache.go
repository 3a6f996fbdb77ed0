package constant

import "time"

// Cache configuration constants
const (
	// CacheTTL defines the time-to-live for cached verdicts (ensure regular re-verification)
	CacheTTL = 5 * time.Minute
	// CacheNumCounters is the number of keys to track frequency
	CacheNumCounters = 1e4
	// CacheMaxCost is the maximum cost of cache
	CacheMaxCost = 1 << 20
	// CacheBufferItems is the number of keys per Get buffer
	CacheBufferItems = 64
)

// DefaultRefreshInterval is how often the background refresher re-verifies the license
const DefaultRefreshInterval = 2 * time.Hour
