package cache

import (
	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/dgraph-io/ristretto/v2"

	"github.com/VeduStorm/NovaCore/constant"
	"github.com/VeduStorm/NovaCore/model"
)

// Manager handles in-process caching of verdicts between verification runs
type Manager struct {
	cache  *ristretto.Cache[string, model.Verdict]
	logger log.Logger
}

// New creates a new cache manager
func New(logger log.Logger) (*Manager, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, model.Verdict]{
		NumCounters: constant.CacheNumCounters,
		MaxCost:     constant.CacheMaxCost,
		BufferItems: constant.CacheBufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &Manager{
		cache:  cache,
		logger: logger,
	}, nil
}

// Get retrieves a cached verdict by config fingerprint
func (m *Manager) Get(fingerprint string) (model.Verdict, bool) {
	if v, found := m.cache.Get(fingerprint); found {
		m.logger.Debugf("Verdict cache hit for %s [ok: %t]", fingerprint, v.OK)
		return v, true
	}

	return model.Verdict{}, false
}

// Store caches a verdict with a fixed TTL so the license is re-verified
// regularly
func (m *Manager) Store(fingerprint string, v model.Verdict) {
	m.cache.SetWithTTL(fingerprint, v, 1, constant.CacheTTL)
	m.cache.Wait()

	m.logger.Debugf("Stored verdict for %s", fingerprint)
}

// Clear drops all cached verdicts
func (m *Manager) Clear() {
	m.cache.Clear()
}
