// Package middleware provides a Fiber gate for applications that embed the
// license verifier: the app refuses to start without a passing verdict and
// every request is checked against the (cached) current verdict.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/gofiber/fiber/v2"

	"github.com/VeduStorm/NovaCore/constant"
	"github.com/VeduStorm/NovaCore/model"
	"github.com/VeduStorm/NovaCore/report"
	"github.com/VeduStorm/NovaCore/verification"
)

// LicenseGate wraps a verification client with middleware capabilities
type LicenseGate struct {
	verifier *verification.Client
}

// NewLicenseGate creates a gate for the given license config. Returns nil
// when the config is invalid; the error is logged through the provided
// logger.
func NewLicenseGate(cfg model.LicenseConfig, logger *log.Logger, opts ...verification.Option) *LicenseGate {
	if logger != nil {
		opts = append(opts, verification.WithLogger(logger))
	}

	verifier, err := verification.New(cfg, opts...)
	if err != nil {
		return nil
	}

	return &LicenseGate{verifier: verifier}
}

// Verifier exposes the underlying verification client so embedding
// applications can tune it (HTTP client, termination handler).
func (g *LicenseGate) Verifier() *verification.Client {
	if g == nil {
		return nil
	}

	return g.verifier
}

// Handler creates a Fiber middleware that verifies the license at startup,
// keeps it fresh in the background and rejects requests once the verdict
// turns invalid.
func (g *LicenseGate) Handler() fiber.Handler {
	if g != nil && g.verifier != nil {
		bgCtx := context.Background()

		g.verifyOnStartup(bgCtx)

		go g.verifier.StartBackgroundRefresh(bgCtx)
	}

	return func(ctx *fiber.Ctx) error {
		if g == nil || g.verifier == nil {
			return ctx.Next()
		}

		return g.processRequest(ctx)
	}
}

// verifyOnStartup verifies the license during application start and
// terminates through the configured handler when the license does not pass,
// so the app never starts unlicensed.
func (g *LicenseGate) verifyOnStartup(ctx context.Context) {
	l := g.verifier.Logger()

	v, err := g.verifier.Verify(ctx)
	if err != nil {
		l.Errorf("License verification failed at startup: %v (code %s)", err, constant.ErrGateVerificationFailed)
		g.verifier.Terminate(report.ExitCodeForError(err), "license verification failed: "+err.Error())

		return
	}

	if !v.OK {
		l.Errorf("License is invalid at startup: %s (code %s)", strings.Join(v.Mismatches, "; "), constant.ErrGateLicenseInvalid)
		g.verifier.Terminate(report.ExitCodeFor(v), "license is invalid: "+strings.Join(v.Mismatches, "; "))
	}
}

// processRequest re-checks the verdict on each request. The verdict cache
// makes this cheap between refreshes.
func (g *LicenseGate) processRequest(ctx *fiber.Ctx) error {
	l := g.verifier.Logger()

	v, err := g.verifier.Verify(ctx.Context())
	if err != nil {
		l.Errorf("License verification failed: %v (code %s)", err, constant.ErrGateVerificationFailed)

		return ctx.Status(http.StatusForbidden).JSON(fiber.Map{
			"code":    constant.ErrGateVerificationFailed,
			"title":   "License Verification Failed",
			"message": "The license could not be verified against the license server",
		})
	}

	if !v.OK {
		l.Errorf("License is invalid (code %s)", constant.ErrGateLicenseInvalid)

		return ctx.Status(http.StatusForbidden).JSON(fiber.Map{
			"code":    constant.ErrGateLicenseInvalid,
			"title":   "Invalid License",
			"message": "The license is invalid, expired or does not match this deployment",
		})
	}

	return ctx.Next()
}
