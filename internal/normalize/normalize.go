// Package normalize converts raw license API payloads into one of two
// canonical shapes: a license record, or an invalid-key marker. The upstream
// API conflates "key truly absent" with generic 404s from routing; the
// message-content heuristic below is the only reliable discriminator
// available.
package normalize

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/VeduStorm/NovaCore/constant"
	licErr "github.com/VeduStorm/NovaCore/error"
	"github.com/VeduStorm/NovaCore/model"
)

// wireResponse mirrors the documented success payload of the license API.
// Fields the server is known to emit with inconsistent types are kept raw and
// coerced leniently.
type wireResponse struct {
	Success  *bool         `json:"success"`
	Status   *string       `json:"status"`
	Message  string        `json:"message"`
	License  *wireLicense  `json:"license"`
	Customer *wireCustomer `json:"customer"`
	Product  *wireProduct  `json:"product"`
}

type wireLicense struct {
	Status     string          `json:"status"`
	LicenseKey string          `json:"license_key"`
	ExpiresAt  json.RawMessage `json:"expires_at"`
	UsedIPs    json.RawMessage `json:"used_ips"`
	MaxIPs     json.RawMessage `json:"max_ips"`
}

type wireCustomer struct {
	DiscordID *string `json:"discord_id"`
}

type wireProduct struct {
	Name *string `json:"name"`
	ID   *string `json:"id"`
}

// wireError is the loose shape of 404 bodies, used only for classification.
type wireError struct {
	Message string  `json:"message"`
	Status  *string `json:"status"`
	Success *bool   `json:"success"`
}

// Normalize turns a raw status/body pair into a NormalizedResult or escalates
// to a *licErr.ProtocolError.
func Normalize(status int, contentType string, body []byte) (model.NormalizedResult, error) {
	if status == http.StatusNotFound {
		return classifyNotFound(body)
	}

	if status < 200 || status > 299 {
		return model.NormalizedResult{}, &licErr.ProtocolError{
			StatusCode:  status,
			Reason:      http.StatusText(status),
			ContentType: contentType,
			BodyPreview: Preview(body),
		}
	}

	var raw wireResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return model.NormalizedResult{}, &licErr.ProtocolError{
			StatusCode:  status,
			Reason:      http.StatusText(status),
			ContentType: contentType,
			BodyPreview: Preview(body),
		}
	}

	rec := &model.LicenseRecord{
		Success:    raw.Success,
		StatusText: raw.Status,
		Message:    raw.Message,
	}

	if raw.License != nil {
		rec.Status = raw.License.Status
		rec.LicenseKey = raw.License.LicenseKey
		rec.ExpiresAt = lenientString(raw.License.ExpiresAt)
		rec.UsedIPs = lenientStringSlice(raw.License.UsedIPs)
		rec.MaxIPs = lenientNonNegativeInt(raw.License.MaxIPs)
	}

	if raw.Customer != nil {
		rec.Customer = model.Customer{DiscordID: raw.Customer.DiscordID}
	}

	if raw.Product != nil {
		rec.Product = model.Product{Name: raw.Product.Name, ID: raw.Product.ID}
	}

	return model.NormalizedResult{Record: rec}, nil
}

// classifyNotFound applies the invalid-key heuristic to a 404 body. A 404
// that does not look like "key does not exist" stays a protocol error.
func classifyNotFound(body []byte) (model.NormalizedResult, error) {
	var raw wireError
	if err := json.Unmarshal(body, &raw); err == nil {
		msg := strings.ToLower(raw.Message)

		mentionsLicense := strings.Contains(msg, "license") &&
			(strings.Contains(msg, "not found") || strings.Contains(msg, "invalid"))

		declaresError := raw.Status != nil && *raw.Status == "error" &&
			raw.Success != nil && !*raw.Success &&
			strings.Contains(msg, "key")

		if mentionsLicense || declaresError {
			message := raw.Message
			if message == "" {
				message = "License key not found"
			}

			return model.NormalizedResult{Invalid: &model.InvalidKey{Message: message}}, nil
		}
	}

	return model.NormalizedResult{}, &licErr.ProtocolError{
		StatusCode:  http.StatusNotFound,
		Reason:      http.StatusText(http.StatusNotFound),
		BodyPreview: Preview(body),
	}
}

// Preview truncates a response body to the diagnostic limit, never cutting
// a multi-byte rune in half.
func Preview(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= constant.BodyPreviewLimit {
		return s
	}

	cut := constant.BodyPreviewLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut]
}

// lenientString unquotes a raw JSON value when it is a string, otherwise
// returns its compact text. Downstream parsing decides whether the value is
// usable.
func lenientString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return strings.TrimSpace(string(raw))
}

// lenientStringSlice decodes a raw JSON array into strings, stringifying
// non-string elements. Absent or non-array values become nil.
func lenientStringSlice(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var elems []any
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}

	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if s, ok := e.(string); ok {
			out = append(out, s)
			continue
		}

		out = append(out, fmt.Sprint(e))
	}

	return out
}

// lenientNonNegativeInt decodes a raw JSON value as a non-negative integer,
// treating anything else as zero.
func lenientNonNegativeInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}

	n := int(f)
	if float64(n) != f || n < 0 {
		return 0
	}

	return n
}
