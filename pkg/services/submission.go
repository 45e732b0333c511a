package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Sharma12321/SreeHari-Portfolio/pkg/clients/telegram"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/logging"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/metrics"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/models"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/utils"
)

// ContactSubmissionService defines the interface for handling contact form submissions
type ContactSubmissionService interface {
	Submit(ctx context.Context, sub models.ContactSubmission) error
}

type contactSubmissionServiceImpl struct {
	geolocation    *GeolocationResolver
	risk           *RiskHeuristic
	telegramClient telegram.Client
	metrics        *metrics.Metrics
	logger         zerolog.Logger
	now            func() time.Time
}

// NewContactSubmissionService creates a new submission service. now supplies
// the submission timestamp; nil means time.Now.
func NewContactSubmissionService(
	geolocation *GeolocationResolver,
	risk *RiskHeuristic,
	telegramClient telegram.Client,
	m *metrics.Metrics,
	logger zerolog.Logger,
	now func() time.Time,
) ContactSubmissionService {
	if now == nil {
		now = time.Now
	}
	return &contactSubmissionServiceImpl{
		geolocation:    geolocation,
		risk:           risk,
		telegramClient: telegramClient,
		metrics:        m,
		logger:         logging.Component(logger, "submission"),
		now:            now,
	}
}

// Submit validates, enriches, formats and delivers one submission.
// It returns *ValidationError before any network call, or *DispatchError
// when Telegram does not accept the message. Lookup failures never surface.
func (s *contactSubmissionServiceImpl) Submit(ctx context.Context, sub models.ContactSubmission) error {
	if err := ValidateSubmission(sub); err != nil {
		s.metrics.Submissions.WithLabelValues(metrics.OutcomeInvalid).Inc()
		s.logger.Info().Err(err).Msg("Rejected contact submission")
		return err
	}

	logger := s.logger.With().
		Str("submission_id", uuid.NewString()).
		Str("email_hash", utils.HashIdentifier(sub.Email)).
		Logger()

	// work on a copy so the caller's bundle is left untouched
	device := *sub.DeviceInfo
	if device.BrowserName == "" {
		device.BrowserName = models.BrowserNameFromUserAgent(device.UserAgent)
	}
	sub.DeviceInfo = &device
	ip := device.PublicIP()

	logger.Info().Str("ip", ip).Str("browser", device.BrowserName).Msg("Processing contact submission")

	var (
		geo  models.GeolocationRecord
		risk models.RiskAssessment
		g    errgroup.Group
	)
	g.Go(func() error {
		geo = s.geolocation.Resolve(ctx, ip)
		return nil
	})
	g.Go(func() error {
		risk = s.risk.Assess(ctx, ip)
		return nil
	})
	_ = g.Wait()

	message := FormatNotification(sub, geo, risk, s.now())

	start := time.Now()
	err := s.telegramClient.SendMessage(ctx, message)
	s.metrics.DispatchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.Submissions.WithLabelValues(metrics.OutcomeDispatchFailed).Inc()
		logger.Error().Err(err).Msg("Error sending Telegram message")
		return &DispatchError{Err: err}
	}

	s.metrics.Submissions.WithLabelValues(metrics.OutcomeSuccess).Inc()
	logger.Info().
		Bool("vpn_or_proxy", risk.VPNOrProxyDetected).
		Str("country", geo.Country).
		Msg("Successfully delivered contact submission")
	return nil
}
