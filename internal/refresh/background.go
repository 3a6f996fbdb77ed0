package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/LerianStudio/lib-commons/commons/log"
)

// Verifier defines the interface for license verification
type Verifier interface {
	VerifyWithRetry(ctx context.Context) error
}

// Manager handles background re-verification of the license
type Manager struct {
	refreshInterval       time.Duration
	started               bool
	mu                    sync.Mutex
	cancel                context.CancelFunc
	verifier              Verifier
	logger                log.Logger
	lastSuccessfulRefresh time.Time
}

// New creates a new background refresh manager
func New(verifier Verifier, refreshInterval time.Duration, logger log.Logger) *Manager {
	return &Manager{
		verifier:        verifier,
		refreshInterval: refreshInterval,
		logger:          logger,
	}
}

// Start begins the background refresh process
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}

	refreshCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.started = true
	m.mu.Unlock()

	ticker := time.NewTicker(m.refreshInterval)

	go func() {
		m.logger.Info("Starting background license refresh")

		for {
			select {
			case <-refreshCtx.Done():
				ticker.Stop()
				m.logger.Info("Background license refresh stopped")

				return

			case <-ticker.C:
				m.logger.Info("Running scheduled license verification")
				m.attemptVerification(refreshCtx)
			}
		}
	}()
}

// Shutdown stops the background refresh process
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return
	}

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	m.started = false
	m.logger.Info("Background license refresh shutdown complete")
}

// attemptVerification performs a verification with retry logic
func (m *Manager) attemptVerification(ctx context.Context) {
	err := m.verifier.VerifyWithRetry(ctx)
	if err == nil {
		m.mu.Lock()
		m.lastSuccessfulRefresh = time.Now()
		m.mu.Unlock()

		m.logger.Info("License verification successful")

		return
	}

	m.logger.Errorf("License verification failed after retries: %v", err)
}

// LastSuccessfulRefresh returns when the license last verified cleanly.
func (m *Manager) LastSuccessfulRefresh() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastSuccessfulRefresh
}
