package ipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Location is the subset of the ip-api.com JSON response we use
type Location struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Country    string  `json:"country"`
	RegionName string  `json:"regionName"`
	City       string  `json:"city"`
	ISP        string  `json:"isp"`
	Org        string  `json:"org"`
	Timezone   string  `json:"timezone"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Query      string  `json:"query"`
}

// Client defines the interface for interacting with the ip-api.com geolocation API
type Client interface {
	Lookup(ctx context.Context, ip string) (*Location, error)
}

type clientImpl struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new ip-api.com client. Every lookup is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) Client {
	return &clientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *clientImpl) Lookup(ctx context.Context, ip string) (*Location, error) {
	if ip == "" {
		return nil, fmt.Errorf("no IP address to look up")
	}

	lookupURL := fmt.Sprintf("%s/json/%s", c.baseURL, url.PathEscape(ip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error looking up location: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from ip-api: status %d: %s", resp.StatusCode, string(body))
	}

	var location Location
	if err := json.Unmarshal(body, &location); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}

	// ip-api reports private, reserved and invalid addresses with HTTP 200
	if location.Status != "success" {
		return nil, fmt.Errorf("error from ip-api: %s", location.Message)
	}

	return &location, nil
}
