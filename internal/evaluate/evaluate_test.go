package evaluate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeduStorm/NovaCore/constant"
	"github.com/VeduStorm/NovaCore/model"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// matchingRecord returns a record that passes every check for matchingConfig.
func matchingRecord() *model.LicenseRecord {
	return &model.LicenseRecord{
		Status:     "active",
		LicenseKey: "ABC",
		ExpiresAt:  now.Add(90 * 24 * time.Hour).Format(time.RFC3339),
		UsedIPs:    []string{"10.0.0.1"},
		MaxIPs:     3,
		Customer:   model.Customer{DiscordID: strPtr("123")},
		Product:    model.Product{Name: strPtr("NovaBot"), ID: strPtr("p-1")},
		Success:    boolPtr(true),
		StatusText: strPtr("success"),
	}
}

func matchingConfig() model.LicenseConfig {
	return model.LicenseConfig{
		URL:         "https://license.example.com/verify",
		Key:         "ABC",
		DiscordID:   strPtr("123"),
		ProductName: strPtr("NovaBot"),
		ProductID:   strPtr("p-1"),
	}
}

func TestEvaluate_AllChecksPass(t *testing.T) {
	v := Evaluate(matchingConfig(), model.NormalizedResult{Record: matchingRecord()}, now)

	assert.True(t, v.OK)
	assert.Empty(t, v.Mismatches)

	for _, name := range constant.CheckOrder {
		assert.True(t, v.Checks[name], "check %s", name)
	}

	require.NotNil(t, v.DaysToExpiry)
	assert.Equal(t, 90, *v.DaysToExpiry)
	assert.Equal(t, 1, v.UsedIPsCount)
	assert.Equal(t, 3, v.MaxIPs)
	assert.Equal(t, 2, v.RemainingIPs)
}

func TestEvaluate_InactiveStatusAlwaysMismatches(t *testing.T) {
	rec := matchingRecord()
	rec.Status = "suspended"

	v := Evaluate(matchingConfig(), model.NormalizedResult{Record: rec}, now)

	assert.False(t, v.OK)
	assert.False(t, v.Checks[constant.CheckLicenseActive])
	assert.Contains(t, v.Mismatches, constant.MismatchLicenseActive)
}

func TestEvaluate_KeyMismatch(t *testing.T) {
	cfg := matchingConfig()
	cfg.Key = "OTHER"

	v := Evaluate(cfg, model.NormalizedResult{Record: matchingRecord()}, now)

	assert.False(t, v.OK)
	assert.Contains(t, v.Mismatches, constant.MismatchKey)
}

func TestEvaluate_SkipLogic_DiscordUnsetInConfig(t *testing.T) {
	cfg := matchingConfig()
	cfg.DiscordID = nil

	for _, serverValue := range []*string{nil, strPtr("123"), strPtr("999")} {
		rec := matchingRecord()
		rec.Customer.DiscordID = serverValue

		v := Evaluate(cfg, model.NormalizedResult{Record: rec}, now)

		assert.True(t, v.OK, "server discord_id %v must not affect the verdict", serverValue)
		assert.True(t, v.Checks[constant.CheckDiscordMatches])
		assert.NotContains(t, v.Mismatches, constant.MismatchDiscord)
	}
}

func TestEvaluate_SkipLogic_ServerOmitsProduct(t *testing.T) {
	rec := matchingRecord()
	rec.Product = model.Product{}

	v := Evaluate(matchingConfig(), model.NormalizedResult{Record: rec}, now)

	assert.True(t, v.OK)
	assert.True(t, v.Checks[constant.CheckProductNameMatches])
	assert.True(t, v.Checks[constant.CheckProductIDMatches])
}

func TestEvaluate_DiscordMismatch(t *testing.T) {
	rec := matchingRecord()
	rec.Customer.DiscordID = strPtr("999")

	v := Evaluate(matchingConfig(), model.NormalizedResult{Record: rec}, now)

	assert.False(t, v.OK)
	assert.Contains(t, v.Mismatches, constant.MismatchDiscord)
}

func TestEvaluate_ExpiryExactlyNowIsExpired(t *testing.T) {
	rec := matchingRecord()
	rec.ExpiresAt = now.Format(time.RFC3339)

	v := Evaluate(matchingConfig(), model.NormalizedResult{Record: rec}, now)

	assert.False(t, v.Checks[constant.CheckNotExpired])
	assert.Contains(t, v.Mismatches, constant.MismatchExpired)
}

func TestEvaluate_PastExpiryHasNegativeDays(t *testing.T) {
	rec := matchingRecord()
	rec.ExpiresAt = now.Add(-36 * time.Hour).Format(time.RFC3339)

	v := Evaluate(matchingConfig(), model.NormalizedResult{Record: rec}, now)

	assert.False(t, v.OK)
	require.NotNil(t, v.DaysToExpiry)
	assert.Equal(t, -2, *v.DaysToExpiry)
}

func TestEvaluate_UnparseableExpiryIsPermissive(t *testing.T) {
	rec := matchingRecord()
	rec.ExpiresAt = "whenever"

	v := Evaluate(matchingConfig(), model.NormalizedResult{Record: rec}, now)

	assert.True(t, v.OK)
	assert.True(t, v.Checks[constant.CheckNotExpired])
	assert.Nil(t, v.ExpiresAt)
	assert.Nil(t, v.DaysToExpiry)
}

func TestEvaluate_RemainingIPsNeverNegative(t *testing.T) {
	rec := matchingRecord()
	rec.MaxIPs = 2
	rec.UsedIPs = []string{"a", "b", "c", "d", "e"}

	v := Evaluate(matchingConfig(), model.NormalizedResult{Record: rec}, now)

	assert.Equal(t, 5, v.UsedIPsCount)
	assert.Equal(t, 2, v.MaxIPs)
	assert.Equal(t, 0, v.RemainingIPs)
}

func TestEvaluate_APISuccessTolerance(t *testing.T) {
	tests := []struct {
		name       string
		success    *bool
		statusText *string
		want       bool
	}{
		{"explicit true", boolPtr(true), nil, true},
		{"explicit false", boolPtr(false), strPtr("success"), false},
		{"both absent", nil, nil, true},
		{"absent success with success text", nil, strPtr("success"), true},
		{"absent success with error text", nil, strPtr("error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := matchingRecord()
			rec.Success = tt.success
			rec.StatusText = tt.statusText

			v := Evaluate(matchingConfig(), model.NormalizedResult{Record: rec}, now)

			assert.Equal(t, tt.want, v.Checks[constant.CheckAPISuccess])
		})
	}
}

func TestEvaluate_InvalidKeyIsTerminal(t *testing.T) {
	res := model.NormalizedResult{Invalid: &model.InvalidKey{Message: "License key not found"}}

	v := Evaluate(matchingConfig(), res, now)

	assert.False(t, v.OK)
	assert.Equal(t, []string{constant.MismatchInvalidKey}, v.Mismatches)
	assert.Equal(t, constant.ErrorTypeInvalidLicenseKey, v.ErrorType)
	assert.Equal(t, "License key not found", v.Message)
	assert.Zero(t, v.MaxIPs)
	assert.Zero(t, v.UsedIPsCount)
	assert.Zero(t, v.RemainingIPs)
	assert.Nil(t, v.ExpiresAt)
	assert.Nil(t, v.DaysToExpiry)

	for _, name := range constant.CheckOrder {
		assert.False(t, v.Checks[name], "check %s", name)
	}
}

func TestEvaluate_MismatchOrderIsFixed(t *testing.T) {
	cfg := matchingConfig()
	cfg.Key = "OTHER"

	rec := matchingRecord()
	rec.Success = boolPtr(false)
	rec.Status = "expired"
	rec.Customer.DiscordID = strPtr("999")
	rec.ExpiresAt = now.Add(-time.Hour).Format(time.RFC3339)

	v := Evaluate(cfg, model.NormalizedResult{Record: rec}, now)

	assert.Equal(t, []string{
		constant.MismatchAPISuccess,
		constant.MismatchLicenseActive,
		constant.MismatchKey,
		constant.MismatchDiscord,
		constant.MismatchExpired,
	}, v.Mismatches)
}

func TestEvaluate_OKIffNoMismatches(t *testing.T) {
	ok := Evaluate(matchingConfig(), model.NormalizedResult{Record: matchingRecord()}, now)
	assert.Equal(t, len(ok.Mismatches) == 0, ok.OK)

	rec := matchingRecord()
	rec.Status = "inactive"
	bad := Evaluate(matchingConfig(), model.NormalizedResult{Record: rec}, now)
	assert.Equal(t, len(bad.Mismatches) == 0, bad.OK)
}
