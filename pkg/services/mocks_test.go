package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/Sharma12321/SreeHari-Portfolio/pkg/clients/ipapi"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/clients/ipapico"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/metrics"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/models"
)

// MockGeolocationClient
type MockGeolocationClient struct {
	mock.Mock
}

func (m *MockGeolocationClient) Lookup(ctx context.Context, ip string) (*ipapi.Location, error) {
	args := m.Called(ctx, ip)
	loc, _ := args.Get(0).(*ipapi.Location)
	return loc, args.Error(1)
}

// MockReputationClient
type MockReputationClient struct {
	mock.Mock
}

func (m *MockReputationClient) Lookup(ctx context.Context, ip string) (*ipapico.IPInfo, error) {
	args := m.Called(ctx, ip)
	info, _ := args.Get(0).(*ipapico.IPInfo)
	return info, args.Error(1)
}

// MockTelegramClient
type MockTelegramClient struct {
	mock.Mock
}

func (m *MockTelegramClient) SendMessage(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

func newTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func validSubmission() models.ContactSubmission {
	return models.ContactSubmission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "+91 98765 43210",
		Message: "Hello, I'd like to talk about a security audit.",
		DeviceInfo: &models.TelemetryBundle{
			UserAgent:        "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0",
			Platform:         "Linux x86_64",
			Language:         "en-US",
			ScreenResolution: "1920x1080",
			BrowserName:      "Firefox",
			IP:               strPtr("203.0.113.9"),
		},
	}
}

var nopLogger = zerolog.Nop()
