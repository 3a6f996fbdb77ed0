// Package verification wires the pipeline together: config -> API call ->
// normalization -> evaluation -> verdict. Reporting and exit policy live in
// the report package; nothing here terminates the process.
package verification

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"
	"github.com/cenkalti/backoff/v5"

	"github.com/VeduStorm/NovaCore/constant"
	licErr "github.com/VeduStorm/NovaCore/error"
	"github.com/VeduStorm/NovaCore/internal/api"
	"github.com/VeduStorm/NovaCore/internal/cache"
	"github.com/VeduStorm/NovaCore/internal/evaluate"
	"github.com/VeduStorm/NovaCore/internal/refresh"
	"github.com/VeduStorm/NovaCore/internal/shutdown"
	"github.com/VeduStorm/NovaCore/model"
	"github.com/VeduStorm/NovaCore/util"
)

// Client runs license verifications with caching and optional background
// refresh
type Client struct {
	config          model.LicenseConfig
	fingerprint     string
	apiClient       *api.Client
	cacheManager    *cache.Manager
	refreshManager  *refresh.Manager
	shutdownManager *shutdown.Manager
	logger          log.Logger
	now             func() time.Time

	lastMu      sync.RWMutex
	lastVerdict *model.Verdict
}

// Option customizes a Client.
type Option func(*settings)

type settings struct {
	logger          *log.Logger
	httpClient      *http.Client
	refreshInterval time.Duration
	now             func() time.Time
}

// WithLogger injects a logger; the default is the zap logger.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithHTTPClient overrides the HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

// WithRefreshInterval changes how often the background refresher re-verifies.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *settings) { s.refreshInterval = d }
}

// WithClock overrides the evaluation clock (useful for testing expiry logic).
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// New creates a verification client for the given config. The config is
// validated before any network call can be issued.
func New(cfg model.LicenseConfig, opts ...Option) (*Client, error) {
	s := settings{
		refreshInterval: constant.DefaultRefreshInterval,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}

	var l log.Logger
	if s.logger != nil {
		l = *s.logger
	} else {
		l = zap.InitializeLogger()
	}

	if err := cfg.Validate(); err != nil {
		l.Errorf("Invalid license configuration: %s", err.Error())
		return nil, &licErr.ConfigError{Msg: err.Error(), Err: err}
	}

	cacheManager, err := cache.New(l)
	if err != nil {
		l.Errorf("Failed to initialize verdict cache: %s", err.Error())
		return nil, err
	}

	client := &Client{
		config:          cfg,
		fingerprint:     util.Fingerprint(cfg),
		apiClient:       api.New(s.httpClient, l),
		cacheManager:    cacheManager,
		shutdownManager: shutdown.New(),
		logger:          l,
		now:             s.now,
	}

	client.refreshManager = refresh.New(client, s.refreshInterval, l)

	return client, nil
}

// Verify runs the pipeline once, serving recent verdicts from the in-process
// cache. Network and protocol failures short-circuit before evaluation.
func (c *Client) Verify(ctx context.Context) (model.Verdict, error) {
	if v, found := c.cacheManager.Get(c.fingerprint); found {
		return v, nil
	}

	return c.verifyFresh(ctx)
}

// verifyFresh always hits the API, then caches passing verdicts.
func (c *Client) verifyFresh(ctx context.Context) (model.Verdict, error) {
	res, err := c.apiClient.Verify(ctx, c.config.URL, c.config.Key)
	if err != nil {
		// A transient outage must not flip a long-running licensed app to
		// failing; serve the last known verdict until the server is back.
		if licErr.IsConnectionError(err) {
			if last, ok := c.LastVerdict(); ok {
				c.logger.Warnf("License server unreachable, using last verification result: %s", err.Error())
				return last, nil
			}
		}

		return model.Verdict{}, err
	}

	v := evaluate.Evaluate(c.config, res, c.now())

	c.setLastVerdict(v)
	c.logVerdict(v)

	// Failing verdicts are never cached so a corrected license or config is
	// picked up on the next run.
	if v.OK {
		c.cacheManager.Store(c.fingerprint, v)
	}

	return v, nil
}

// LastVerdict returns the most recent verdict produced from a server
// response, if any.
func (c *Client) LastVerdict() (model.Verdict, bool) {
	c.lastMu.RLock()
	defer c.lastMu.RUnlock()

	if c.lastVerdict == nil {
		return model.Verdict{}, false
	}

	return *c.lastVerdict, true
}

func (c *Client) setLastVerdict(v model.Verdict) {
	c.lastMu.Lock()
	defer c.lastMu.Unlock()

	c.lastVerdict = &v
}

// VerifyWithRetry implements the refresh.Verifier interface. Retries apply
// only to this background path; the verification call itself keeps its single
// 500-triggered fallback.
func (c *Client) VerifyWithRetry(ctx context.Context) error {
	operation := func() (model.Verdict, error) {
		v, err := c.verifyFresh(ctx)
		if err != nil && licErr.IsConfigError(err) {
			return model.Verdict{}, backoff.Permanent(err)
		}

		return v, err
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(3))

	return err
}

// logVerdict reports expiry pressure on passing verdicts and the full
// mismatch list on failing ones.
func (c *Client) logVerdict(v model.Verdict) {
	if !v.OK {
		for _, reason := range v.Mismatches {
			c.logger.Warnf("License mismatch: %s", reason)
		}

		return
	}

	if v.DaysToExpiry == nil {
		return
	}

	days := *v.DaysToExpiry

	switch {
	case days <= constant.DefaultMinExpiryDaysToUrgentWarn:
		c.logger.Warnf("WARNING: License expires in %d days. Contact your account manager to renew", days)
	case days <= constant.DefaultMinExpiryDaysToNormalWarn:
		c.logger.Warnf("License expires in %d days", days)
	}
}

// StartBackgroundRefresh runs a ticker to re-verify the license periodically
func (c *Client) StartBackgroundRefresh(ctx context.Context) {
	c.refreshManager.Start(ctx)
}

// ShutdownBackgroundRefresh stops the background refresh process
func (c *Client) ShutdownBackgroundRefresh() {
	c.refreshManager.Shutdown()
}

// SetHTTPClient allows overriding the HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client *http.Client) {
	c.apiClient.SetHTTPClient(client)
}

// SetTerminationHandler customizes how an embedding application terminates
// when verification fails at a gate
func (c *Client) SetTerminationHandler(handler shutdown.Handler) {
	c.shutdownManager.SetHandler(handler)
}

// Terminate invokes the configured termination handler.
func (c *Client) Terminate(code int, reason string) {
	c.shutdownManager.Terminate(code, reason)
}

// Config returns the immutable license config the client was built from.
func (c *Client) Config() model.LicenseConfig {
	return c.config
}

// Logger returns the logger used by the client
func (c *Client) Logger() log.Logger {
	return c.logger
}
