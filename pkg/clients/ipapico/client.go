package ipapico

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

// IPInfo is the subset of the ipapi.co JSON response we use
type IPInfo struct {
	IP          string `json:"ip"`
	Org         string `json:"org"`
	Hosting     bool   `json:"hosting"`
	CountryName string `json:"country_name"`
	Region      string `json:"region"`
	City        string `json:"city"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

// Client defines the interface for interacting with the ipapi.co API
type Client interface {
	Lookup(ctx context.Context, ip string) (*IPInfo, error)
}

type clientImpl struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new ipapi.co client. Every lookup is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) Client {
	return &clientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *clientImpl) Lookup(ctx context.Context, ip string) (*IPInfo, error) {
	if ip == "" {
		return nil, fmt.Errorf("no IP address to look up")
	}

	lookupURL := fmt.Sprintf("%s/%s/json/", c.baseURL, url.PathEscape(ip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	// ipapi.co rejects requests without a user agent
	req.Header.Add("User-Agent", "portfolio-contact/1.0")
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error looking up IP reputation: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from ipapi.co: status %d: %s", resp.StatusCode, string(body))
	}

	var info IPInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}

	if info.Error {
		return nil, fmt.Errorf("error from ipapi.co: %s", info.Reason)
	}

	return &info, nil
}
