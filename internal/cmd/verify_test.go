package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeduStorm/NovaCore/constant"
	"github.com/VeduStorm/NovaCore/test/helper"
)

// captureExit swaps the process exit for the duration of a test.
func captureExit(t *testing.T) *int {
	t.Helper()

	code := -1
	old := osExit
	osExit = func(c int) { code = c }
	t.Cleanup(func() { osExit = old })

	return &code
}

func writeConfig(t *testing.T, url, key string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	content := fmt.Sprintf(`{"url": %q, "key": %q}`, url, key)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func runVerifyCommand(t *testing.T, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"verify"}, args...))

	require.NoError(t, rootCmd.Execute())

	return buf.String()
}

func TestVerifyCommand_PassingLicenseExitsZero(t *testing.T) {
	code := captureExit(t)
	future := time.Now().Add(90 * 24 * time.Hour).Format(time.RFC3339)
	body := fmt.Sprintf(`{"success":true,"license":{"status":"active","license_key":"KEY","expires_at":%q}}`, future)
	ts := helper.NewTestServer(t, helper.JSONHandler(http.StatusOK, body))

	out := runVerifyCommand(t, "--config", writeConfig(t, ts.URL, "KEY"), "--mode", "exit")

	assert.Equal(t, -1, *code, "no explicit exit on success")
	assert.Contains(t, out, "All checks passed.")
}

func TestVerifyCommand_MismatchExitsFour(t *testing.T) {
	code := captureExit(t)
	body := `{"success":true,"license":{"status":"inactive","license_key":"KEY"}}`
	ts := helper.NewTestServer(t, helper.JSONHandler(http.StatusOK, body))

	runVerifyCommand(t, "--config", writeConfig(t, ts.URL, "KEY"), "--mode", "exit")

	assert.Equal(t, constant.ExitMismatch, *code)
}

func TestVerifyCommand_NoexitModeDoesNotExitOnMismatch(t *testing.T) {
	code := captureExit(t)
	body := `{"success":true,"license":{"status":"inactive","license_key":"KEY"}}`
	ts := helper.NewTestServer(t, helper.JSONHandler(http.StatusOK, body))

	out := runVerifyCommand(t, "--config", writeConfig(t, ts.URL, "KEY"), "--mode", "noexit")

	assert.Equal(t, -1, *code, "noexit mode must not exit on mismatches")
	assert.Contains(t, out, "Mismatches found:")
}

func TestVerifyCommand_InvalidKeyExitsFive(t *testing.T) {
	code := captureExit(t)
	ts := helper.NewTestServer(t, helper.JSONHandler(http.StatusNotFound, `{"message":"License key not found"}`))

	runVerifyCommand(t, "--config", writeConfig(t, ts.URL, "KEY"), "--mode", "silent")

	assert.Equal(t, constant.ExitInvalidKey, *code)
}

func TestVerifyCommand_MissingConfigExitsTwo(t *testing.T) {
	code := captureExit(t)

	runVerifyCommand(t, "--config", filepath.Join(t.TempDir(), "nope.json"), "--mode", "noexit")

	assert.Equal(t, constant.ExitConfigError, *code, "config errors exit even in noexit mode")
}

func TestVerifyCommand_ServerErrorExitsThree(t *testing.T) {
	code := captureExit(t)
	ts := helper.NewTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	runVerifyCommand(t, "--config", writeConfig(t, ts.URL, "KEY"), "--mode", "noexit")

	assert.Equal(t, constant.ExitNetworkError, *code, "network errors exit even in noexit mode")
}
