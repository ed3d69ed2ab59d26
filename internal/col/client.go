// Package col fetches cost-of-living profiles for a city. Profiles supply
// the essential-expense baseline when a snapshot is created without one.
package col

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Profile is a monthly cost-of-living breakdown for a city, in $/month.
type Profile struct {
	City           string  `json:"city"`
	Housing        float64 `json:"housing"`
	Food           float64 `json:"food"`
	Transportation float64 `json:"transportation"`
	Utilities      float64 `json:"utilities"`
	Healthcare     float64 `json:"healthcare"`
	Other          float64 `json:"other"`
	Total          float64 `json:"total"`
	// Source records where the profile came from: "live", "fallback", or
	// "generic".
	Source string `json:"source,omitempty"`
}

// APIError represents an error from the cost-of-living API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client fetches cost-of-living profiles. Lookup order: live API, then the
// local fallback file, then a built-in generic profile. Lookup never fails;
// the generic profile is the last resort.
type Client struct {
	BaseURL      string
	FallbackPath string
	HTTPClient   *http.Client

	cache *profileCache
}

// NewClient creates a cost-of-living client. If baseURL is empty, defaults
// to "http://localhost:3001".
func NewClient(baseURL, fallbackPath string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:3001"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL:      baseURL,
		FallbackPath: fallbackPath,
		HTTPClient:   &http.Client{Timeout: timeout},
		cache:        newProfileCache(1 * time.Hour),
	}
}

// Profile returns the cost-of-living profile for a city.
func (c *Client) Profile(city string) Profile {
	if cached, found := c.cache.Get(city); found {
		log.Printf("[COL] Cache hit for %q (source=%s)", city, cached.Source)
		return cached
	}

	if profile, err := c.fetchLive(city); err == nil {
		profile.Source = "live"
		c.cache.Set(city, profile)
		return profile
	} else {
		log.Printf("[COL] Live fetch failed for %q: %v", city, err)
	}

	if profile, ok, err := c.loadFallback(city); err != nil {
		log.Printf("[COL] Fallback load failed for %q: %v", city, err)
	} else if ok {
		profile.Source = "fallback"
		c.cache.Set(city, profile)
		return profile
	}

	log.Printf("[COL] Using generic profile for %q", city)
	return genericProfile(city)
}

// fetchLive queries the live cost-of-living API.
func (c *Client) fetchLive(city string) (Profile, error) {
	u := fmt.Sprintf("%s/api/cost-of-living/%s", c.BaseURL, url.PathEscape(city))

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.HTTPClient.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[COL] Response: %d %s (duration: %v, city=%q)",
		resp.StatusCode, resp.Status, duration, city)

	if resp.StatusCode != http.StatusOK {
		return Profile{}, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return Profile{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return normalize(profile, city), nil
}

type fallbackFile struct {
	Cities []Profile `json:"cities"`
}

// loadFallback looks the city up in the local fallback JSON file. City
// matching is case-insensitive.
func (c *Client) loadFallback(city string) (Profile, bool, error) {
	if c.FallbackPath == "" {
		return Profile{}, false, nil
	}
	raw, err := os.ReadFile(c.FallbackPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, false, nil
		}
		return Profile{}, false, err
	}

	var file fallbackFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return Profile{}, false, fmt.Errorf("failed to parse fallback file: %w", err)
	}

	for _, entry := range file.Cities {
		if strings.EqualFold(entry.City, city) {
			return normalize(entry, city), true, nil
		}
	}
	return Profile{}, false, nil
}

// normalize fills in the city name and total when the source omitted them.
func normalize(p Profile, city string) Profile {
	if p.City == "" {
		p.City = city
	}
	if p.Total == 0 {
		p.Total = p.Housing + p.Food + p.Transportation + p.Utilities + p.Healthcare + p.Other
	}
	return p
}

// genericProfile is the last-resort profile when neither the live API nor the
// fallback file know the city.
func genericProfile(city string) Profile {
	p := Profile{
		City:           city,
		Housing:        1500,
		Food:           400,
		Transportation: 150,
		Utilities:      100,
		Healthcare:     80,
		Other:          150,
		Source:         "generic",
	}
	return normalize(p, city)
}
