// Package report turns a verdict into line-oriented text output and decides
// process exit behavior. The core pipeline never exits; exit-code translation
// happens only at the outermost boundary through this package.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/VeduStorm/NovaCore/constant"
	licErr "github.com/VeduStorm/NovaCore/error"
	"github.com/VeduStorm/NovaCore/model"
)

// Mode selects one of the three reporting policies.
type Mode int

const (
	// ModeExitAlways always prints the report and exits non-zero on mismatch
	ModeExitAlways Mode = iota
	// ModeSilentUnlessMismatch prints nothing unless the verdict fails,
	// then exits non-zero
	ModeSilentUnlessMismatch
	// ModeReportNeverExit always prints but never exits on mismatch;
	// config and network errors still exit
	ModeReportNeverExit
)

// ParseMode maps the CLI flag value onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exit":
		return ModeExitAlways, nil
	case "silent":
		return ModeSilentUnlessMismatch, nil
	case "noexit":
		return ModeReportNeverExit, nil
	default:
		return ModeExitAlways, fmt.Errorf("unknown reporting mode %q (want exit, silent or noexit)", s)
	}
}

// ExitCodeFor maps a verdict onto its process exit code.
func ExitCodeFor(v model.Verdict) int {
	if v.OK {
		return constant.ExitOK
	}

	if v.ErrorType == constant.ErrorTypeInvalidLicenseKey {
		return constant.ExitInvalidKey
	}

	return constant.ExitMismatch
}

// ExitCodeForError maps a pipeline error onto its exit code. Errors outside
// the known taxonomy are unexpected and keep a distinct code so they are
// never mistaken for a verification outcome.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return constant.ExitOK
	case licErr.IsConfigError(err):
		return constant.ExitConfigError
	case licErr.IsNetworkError(err), licErr.IsProtocolError(err):
		return constant.ExitNetworkError
	default:
		return constant.ExitUnexpected
	}
}

// checkLabels are the human-readable names shown in the report table.
var checkLabels = map[string]string{
	constant.CheckAPISuccess:         "API success",
	constant.CheckLicenseActive:      "License active",
	constant.CheckKeyMatches:         "Key matches",
	constant.CheckDiscordMatches:     "Discord ID matches",
	constant.CheckProductNameMatches: "Product name matches",
	constant.CheckProductIDMatches:   "Product ID matches",
	constant.CheckNotExpired:         "Not expired",
}

// Reporter renders verdicts according to a reporting mode.
type Reporter struct {
	mode Mode
	out  io.Writer
}

// NewReporter creates a reporter writing to out.
func NewReporter(mode Mode, out io.Writer) *Reporter {
	return &Reporter{mode: mode, out: out}
}

// Mode returns the reporter's policy.
func (r *Reporter) Mode() Mode {
	return r.mode
}

// Render prints the verdict per the reporting policy.
func (r *Reporter) Render(v model.Verdict) {
	if r.mode == ModeSilentUnlessMismatch && v.OK {
		return
	}

	r.renderChecks(v)

	if v.OK {
		fmt.Fprintln(r.out, "All checks passed.")
	} else {
		fmt.Fprintln(r.out, "Mismatches found:")

		for _, reason := range v.Mismatches {
			fmt.Fprintf(r.out, "  - %s\n", reason)
		}
	}

	if v.Message != "" {
		fmt.Fprintf(r.out, "Server message: %s\n", v.Message)
	}

	if v.DaysToExpiry != nil {
		fmt.Fprintf(r.out, "Expires: %s (%d days)\n", v.ExpiresAt.Format("2006-01-02 15:04:05 MST"), *v.DaysToExpiry)
	}

	if v.MaxIPs > 0 || v.UsedIPsCount > 0 {
		fmt.Fprintf(r.out, "IPs: %d used of %d (%d remaining)\n", v.UsedIPsCount, v.MaxIPs, v.RemainingIPs)
	}
}

// ShouldExit reports whether the policy demands a non-zero exit for this
// verdict. Config and network errors are decided upstream and always exit.
func (m Mode) ShouldExit(v model.Verdict) bool {
	if v.OK {
		return false
	}

	return m != ModeReportNeverExit
}

// ShouldExit applies the reporter's mode policy to a verdict.
func (r *Reporter) ShouldExit(v model.Verdict) bool {
	return r.mode.ShouldExit(v)
}

func (r *Reporter) renderChecks(v model.Verdict) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.AppendHeader(table.Row{"Check", "Result"})

	for _, name := range constant.CheckOrder {
		result := "FAIL"
		if v.Checks[name] {
			result = "PASS"
		}

		t.AppendRow(table.Row{checkLabels[name], result})
	}

	t.Render()
}
