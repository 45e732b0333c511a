package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Sharma12321/SreeHari-Portfolio/pkg/clients/ipapi"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/logging"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/metrics"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/models"
)

// GeolocationResolver maps a public IP to a location. It never fails: any
// lookup error yields models.DegradedGeolocation.
type GeolocationResolver struct {
	client  ipapi.Client
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewGeolocationResolver creates a resolver backed by ip-api.com
func NewGeolocationResolver(client ipapi.Client, logger zerolog.Logger, m *metrics.Metrics) *GeolocationResolver {
	return &GeolocationResolver{
		client:  client,
		logger:  logging.Component(logger, "geolocation"),
		metrics: m,
	}
}

// Resolve looks up ip. Missing fields in a successful response become Unknown.
func (r *GeolocationResolver) Resolve(ctx context.Context, ip string) models.GeolocationRecord {
	loc, err := r.client.Lookup(ctx, ip)
	if err != nil {
		r.logger.Warn().Err(err).Str("ip", ip).Msg("Error fetching location info")
		r.metrics.DegradedLookups.WithLabelValues(metrics.LookupGeolocation).Inc()
		return models.DegradedGeolocation()
	}

	timezone := loc.Timezone
	if timezone == "" {
		timezone = models.DefaultTimezone
	}

	return models.GeolocationRecord{
		City:         models.OrUnknown(loc.City),
		Region:       models.OrUnknown(loc.RegionName),
		Country:      models.OrUnknown(loc.Country),
		ISP:          models.OrUnknown(loc.ISP),
		Organization: models.OrUnknown(loc.Org),
		Timezone:     timezone,
	}
}
