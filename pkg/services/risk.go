package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Sharma12321/SreeHari-Portfolio/pkg/clients/ipapico"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/logging"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/metrics"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/models"
)

// SuspiciousThreatScore is the only non-zero score the heuristic produces
const SuspiciousThreatScore = 50

// RiskHeuristic flags IPs that look like VPN, proxy or hosting exits. Like
// GeolocationResolver it never fails.
type RiskHeuristic struct {
	client  ipapico.Client
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewRiskHeuristic creates a heuristic backed by ipapi.co
func NewRiskHeuristic(client ipapico.Client, logger zerolog.Logger, m *metrics.Metrics) *RiskHeuristic {
	return &RiskHeuristic{
		client:  client,
		logger:  logging.Component(logger, "reputation"),
		metrics: m,
	}
}

// Assess looks up ip and classifies it
func (h *RiskHeuristic) Assess(ctx context.Context, ip string) models.RiskAssessment {
	info, err := h.client.Lookup(ctx, ip)
	if err != nil {
		h.logger.Warn().Err(err).Str("ip", ip).Msg("Error fetching security info")
		h.metrics.DegradedLookups.WithLabelValues(metrics.LookupReputation).Inc()
		return models.DegradedRisk()
	}
	return ClassifyIP(info)
}

// ClassifyIP applies the VPN/proxy rule to a reputation response. The score is
// either 0 or SuspiciousThreatScore.
func ClassifyIP(info *ipapico.IPInfo) models.RiskAssessment {
	org := strings.ToLower(info.Org)
	suspicious := strings.Contains(org, "vpn") || strings.Contains(org, "proxy") || info.Hosting

	score := 0
	if suspicious {
		score = SuspiciousThreatScore
	}

	return models.RiskAssessment{
		VPNOrProxyDetected: suspicious,
		ThreatScore:        score,
		Country:            models.OrUnknown(info.CountryName),
		Region:             models.OrUnknown(info.Region),
		City:               models.OrUnknown(info.City),
		ISP:                models.OrUnknown(info.Org),
	}
}
