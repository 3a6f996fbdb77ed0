// Package novacore verifies a locally-held license against the NovaCore
// license API and reports the outcome. The whole run is one pipeline: load
// config, call the API once (plus at most one fallback retry), evaluate,
// report. Exit-code translation is left to the caller; see the report
// package.
package novacore

import (
	"context"
	"io"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"

	"github.com/VeduStorm/NovaCore/internal/config"
	"github.com/VeduStorm/NovaCore/model"
	"github.com/VeduStorm/NovaCore/report"
	"github.com/VeduStorm/NovaCore/verification"
)

// Run executes one verification pipeline end to end: config from configPath
// (default path when empty), one network call, evaluation, rendering to out
// per the reporting mode. Config, network and protocol failures come back as
// the taxonomy errors without a verdict; everything else yields a verdict.
func Run(ctx context.Context, configPath string, mode report.Mode, out io.Writer, logger *log.Logger, opts ...verification.Option) (model.Verdict, error) {
	var l log.Logger
	if logger != nil {
		l = *logger
	} else {
		l = zap.InitializeLogger()
		logger = &l
	}

	cfg, err := config.Load(configPath, l)
	if err != nil {
		return model.Verdict{}, err
	}

	opts = append([]verification.Option{verification.WithLogger(logger)}, opts...)

	client, err := verification.New(cfg, opts...)
	if err != nil {
		return model.Verdict{}, err
	}

	v, err := client.Verify(ctx)
	if err != nil {
		return model.Verdict{}, err
	}

	report.NewReporter(mode, out).Render(v)

	return v, nil
}
