package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Sharma12321/SreeHari-Portfolio/pkg/models"
)

// Placeholders for values the browser or the lookups did not provide
const (
	placeholderNA          = "N/A"
	placeholderNotProvided = "Not provided"
)

// TimestampLayout is the long, full-date style used in notifications
const TimestampLayout = "Monday, January 2, 2006 at 3:04:05 PM MST"

// Telegram's HTML mode only understands these five entities.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes text for Telegram's HTML parse mode
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// LocalizeTimestamp renders at in the named zone. An empty or unknown zone
// falls back to UTC; the zone actually used is returned with the text.
func LocalizeTimestamp(at time.Time, timezone string) (string, string) {
	loc := time.UTC
	used := models.DefaultTimezone
	if timezone != "" {
		if l, err := time.LoadLocation(timezone); err == nil {
			loc = l
			used = timezone
		}
	}
	return at.In(loc).Format(TimestampLayout), used
}

// FormatNotification renders the report sent to Telegram. It has no side
// effects; the submission time is passed in.
func FormatNotification(sub models.ContactSubmission, geo models.GeolocationRecord, risk models.RiskAssessment, at time.Time) string {
	device := sub.DeviceInfo
	if device == nil {
		device = &models.TelemetryBundle{}
	}

	timestamp, timezone := LocalizeTimestamp(at, geo.Timezone)

	vpn := "✅ Not Detected"
	if risk.VPNOrProxyDetected {
		vpn = "⚠️ Detected"
	}

	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "• %s: %s\n", label, EscapeHTML(value))
	}
	section := func(icon, title string) {
		fmt.Fprintf(&b, "\n%s <b>%s</b>\n", icon, title)
	}

	b.WriteString("🚨 <b>New Contact Form Submission</b>\n")

	section("👤", "Contact Information")
	line("Name", sub.Name)
	line("Email", sub.Email)
	line("Phone", sub.Phone)

	section("💬", "Message Content")
	b.WriteString(EscapeHTML(sub.Message))
	b.WriteString("\n")

	section("📱", "Device Details")
	line("Browser", orDefault(device.BrowserName, models.BrowserUnknown))
	line("Platform", orDefault(device.Platform, placeholderNA))
	line("Screen Resolution", orDefault(device.ScreenResolution, placeholderNA))
	line("Language", orDefault(device.Language, placeholderNA))
	line("Battery Level", optional(device.BatteryLevel, placeholderNA))
	line("Network Type", optional(device.NetworkType, placeholderNA))

	section("📍", "Location Information")
	line("City", models.OrUnknown(geo.City))
	line("Region", models.OrUnknown(geo.Region))
	line("Country", models.OrUnknown(geo.Country))
	line("ISP", models.OrUnknown(geo.ISP))
	line("Organization", models.OrUnknown(geo.Organization))

	section("🔒", "Security Information")
	line("IP Address", orDefault(device.PublicIP(), placeholderNA))
	fmt.Fprintf(&b, "• VPN/Proxy Detection: %s\n", vpn)
	fmt.Fprintf(&b, "• Threat Score: %d/100\n", risk.ThreatScore)
	line("Country", models.OrUnknown(risk.Country))
	line("Region", models.OrUnknown(risk.Region))
	line("City", models.OrUnknown(risk.City))
	line("ISP", models.OrUnknown(risk.ISP))

	section("📍", "Coordinates")
	line("Latitude", coordinate(device.Latitude))
	line("Longitude", coordinate(device.Longitude))

	section("⏰", "Submission Details")
	line("Timestamp", timestamp)
	line("Timezone", timezone)

	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func optional(s *string, def string) string {
	if s == nil {
		return def
	}
	return orDefault(*s, def)
}

func coordinate(v *float64) string {
	if v == nil {
		return placeholderNotProvided
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
