package models

// Unknown is substituted for any location or reputation value we could not resolve.
const Unknown = "Unknown"

// DefaultTimezone is used when the IP lookup gives no usable timezone.
const DefaultTimezone = "UTC"

// GeolocationRecord is the location of the submitter's public IP
type GeolocationRecord struct {
	City         string
	Region       string
	Country      string
	ISP          string
	Organization string
	Timezone     string
}

// DegradedGeolocation is returned whenever the location lookup fails
func DegradedGeolocation() GeolocationRecord {
	return GeolocationRecord{
		City:         Unknown,
		Region:       Unknown,
		Country:      Unknown,
		ISP:          Unknown,
		Organization: Unknown,
		Timezone:     DefaultTimezone,
	}
}

// RiskAssessment is the VPN/proxy heuristic for the submitter's public IP.
// Its location fields come from a different service than GeolocationRecord
// and may disagree with it.
type RiskAssessment struct {
	VPNOrProxyDetected bool
	ThreatScore        int
	Country            string
	Region             string
	City               string
	ISP                string
}

// DegradedRisk is returned whenever the reputation lookup fails
func DegradedRisk() RiskAssessment {
	return RiskAssessment{
		Country: Unknown,
		Region:  Unknown,
		City:    Unknown,
		ISP:     Unknown,
	}
}

// OrUnknown returns s, or Unknown when s is empty.
func OrUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
