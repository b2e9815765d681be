package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
)

// InterfaceGeocodeService defines the geocoding service interface.
type InterfaceGeocodeService interface {
	ReverseGeocode(lat, lng float64) (string, error)
}

// GeocodeService resolves GPS fixes to human-readable addresses through a
// third-party geocoding provider, with a Redis cache in front.
type GeocodeService struct {
	Config *config.Config
	Redis  InterfaceRedisService
	Client *http.Client
}

// reverseGeocodeResponse is the provider's reverse lookup payload
// (Nominatim-compatible).
type reverseGeocodeResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// NewGeocodeService creates a new geocoding service.
func NewGeocodeService(cfg *config.Config, redis InterfaceRedisService) InterfaceGeocodeService {
	return &GeocodeService{
		Config: cfg,
		Redis:  redis,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// ReverseGeocode returns the address of a GPS fix. Cache hits skip the
// provider; provider failures return an error the caller may degrade on.
func (s *GeocodeService) ReverseGeocode(lat, lng float64) (string, error) {
	if s.Redis != nil {
		if address, err := s.Redis.GetCachedAddress(lat, lng); err == nil && address != "" {
			return address, nil
		}
	}

	endpoint := fmt.Sprintf("%s/reverse?format=json&lat=%s&lon=%s",
		s.Config.GeocodeAPIURL,
		url.QueryEscape(fmt.Sprintf("%.6f", lat)),
		url.QueryEscape(fmt.Sprintf("%.6f", lng)))
	if s.Config.GeocodeAPIKey != "" {
		endpoint += "&key=" + url.QueryEscape(s.Config.GeocodeAPIKey)
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "jalrakshak/1.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error fetching address: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode API returned status code %d", resp.StatusCode)
	}

	var apiResp reverseGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("error decoding geocode response: %w", err)
	}
	if apiResp.Error != "" {
		return "", fmt.Errorf("geocode API error: %s", apiResp.Error)
	}

	if s.Redis != nil && apiResp.DisplayName != "" {
		// Addresses do not move; cache for a day.
		s.Redis.CacheAddress(lat, lng, apiResp.DisplayName, 24*time.Hour)
	}

	return apiResp.DisplayName, nil
}
