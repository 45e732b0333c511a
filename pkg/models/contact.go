package models

import "strings"

// Represents the data structure coming from the portfolio contact form
type ContactSubmission struct {
	Name       string           `json:"name" validate:"required"`
	Email      string           `json:"email" validate:"required"`
	Phone      string           `json:"phone" validate:"required"`
	Message    string           `json:"message" validate:"required"`
	DeviceInfo *TelemetryBundle `json:"deviceInfo" validate:"required"`
}

// TelemetryBundle is the device information the browser collects before the
// form can be sent. Pointer fields are optional: nil means the browser could
// not provide the value.
type TelemetryBundle struct {
	UserAgent        string   `json:"userAgent"`
	Platform         string   `json:"platform"`
	Language         string   `json:"language"`
	ScreenResolution string   `json:"screenResolution"`
	BrowserName      string   `json:"browserName"`
	IP               *string  `json:"ip,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	BatteryLevel     *string  `json:"batteryLevel,omitempty"`
	NetworkType      *string  `json:"networkType,omitempty"`
}

// Browser names reported by the form
const (
	BrowserFirefox = "Firefox"
	BrowserChrome  = "Chrome"
	BrowserSafari  = "Safari"
	BrowserEdge    = "Edge"
	BrowserUnknown = "Unknown"
)

// BrowserNameFromUserAgent applies the same substring checks as the form.
// Edge user agents also contain "Chrome" and are reported as Chrome.
func BrowserNameFromUserAgent(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "Firefox"):
		return BrowserFirefox
	case strings.Contains(userAgent, "Chrome"):
		return BrowserChrome
	case strings.Contains(userAgent, "Safari"):
		return BrowserSafari
	case strings.Contains(userAgent, "Edge"):
		return BrowserEdge
	default:
		return BrowserUnknown
	}
}

// PublicIP returns the trimmed IP, or "" when the browser did not resolve one.
func (t *TelemetryBundle) PublicIP() string {
	if t == nil || t.IP == nil {
		return ""
	}
	return strings.TrimSpace(*t.IP)
}
