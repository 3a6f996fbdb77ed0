package cmd

import (
	"net/http"

	"github.com/LerianStudio/lib-commons/commons/zap"
	"github.com/spf13/cobra"

	novacore "github.com/VeduStorm/NovaCore"
	"github.com/VeduStorm/NovaCore/constant"
	"github.com/VeduStorm/NovaCore/report"
	"github.com/VeduStorm/NovaCore/verification"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run one license verification and exit with a deterministic code",
	Long: `Verifies the configured license against the license server.

Exit codes: 0 all checks passed, 2 config error, 3 network or protocol
error, 4 mismatches found, 5 invalid license key.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().String("config", constant.DefaultConfigPath, "Path to the license config file")
	verifyCmd.Flags().String("mode", "exit", "Reporting mode: exit, silent or noexit")
	verifyCmd.Flags().Duration("timeout", constant.DefaultHTTPTimeout, "HTTP timeout for the verification call")
}

func runVerify(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	modeName, err := cmd.Flags().GetString("mode")
	if err != nil {
		return err
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}

	mode, err := report.ParseMode(modeName)
	if err != nil {
		return err
	}

	logger := zap.InitializeLogger()

	v, err := novacore.Run(cmd.Context(), configPath, mode, cmd.OutOrStdout(), &logger,
		verification.WithHTTPClient(&http.Client{Timeout: timeout}))
	if err != nil {
		// Config and network errors always exit, even in noexit mode;
		// only verdict-level mismatches honor the mode.
		exitWith(report.ExitCodeForError(err), "Something went wrong. Here's a preview for developers:", err)
		return nil
	}

	if mode.ShouldExit(v) {
		exitWith(report.ExitCodeFor(v), "", nil)
	}

	return nil
}
