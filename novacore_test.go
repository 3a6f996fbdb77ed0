package novacore

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	licErr "github.com/VeduStorm/NovaCore/error"
	"github.com/VeduStorm/NovaCore/report"
	"github.com/VeduStorm/NovaCore/test/helper"
)

func writeConfig(t *testing.T, url, key string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	content := fmt.Sprintf(`{"url": %q, "key": %q}`, url, key)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRun_PassingLicense(t *testing.T) {
	future := time.Now().Add(90 * 24 * time.Hour).Format(time.RFC3339)
	body := fmt.Sprintf(`{"success":true,"license":{"status":"active","license_key":"KEY","expires_at":%q}}`, future)
	ts := helper.NewTestServer(t, helper.JSONHandler(http.StatusOK, body))

	tl := helper.NewTestLogger()
	var out bytes.Buffer

	v, err := Run(context.Background(), writeConfig(t, ts.URL, "KEY"), report.ModeExitAlways, &out, tl.Logger())

	require.NoError(t, err)
	assert.True(t, v.OK)
	assert.Contains(t, out.String(), "All checks passed.")
}

func TestRun_SilentModeSuppressesOutputOnSuccess(t *testing.T) {
	future := time.Now().Add(90 * 24 * time.Hour).Format(time.RFC3339)
	body := fmt.Sprintf(`{"success":true,"license":{"status":"active","license_key":"KEY","expires_at":%q}}`, future)
	ts := helper.NewTestServer(t, helper.JSONHandler(http.StatusOK, body))

	tl := helper.NewTestLogger()
	var out bytes.Buffer

	v, err := Run(context.Background(), writeConfig(t, ts.URL, "KEY"), report.ModeSilentUnlessMismatch, &out, tl.Logger())

	require.NoError(t, err)
	assert.True(t, v.OK)
	assert.Empty(t, out.String())
}

func TestRun_ConfigErrorShortCircuits(t *testing.T) {
	tl := helper.NewTestLogger()
	var out bytes.Buffer

	_, err := Run(context.Background(), filepath.Join(t.TempDir(), "nope.json"), report.ModeExitAlways, &out, tl.Logger())

	assert.True(t, licErr.IsConfigError(err))
	assert.Empty(t, out.String(), "no report is rendered when the pipeline fails upstream")
}

func TestRun_NetworkErrorShortCircuits(t *testing.T) {
	ts := helper.NewTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	tl := helper.NewTestLogger()
	var out bytes.Buffer

	_, err := Run(context.Background(), writeConfig(t, ts.URL, "KEY"), report.ModeExitAlways, &out, tl.Logger())

	assert.True(t, licErr.IsNetworkError(err))
	assert.Empty(t, out.String())
}
