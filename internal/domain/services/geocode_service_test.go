package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
)

func TestReverseGeocode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name": "Tank Bund Road, Hyderabad, Telangana, India"}`))
	}))
	defer ts.Close()

	s := NewGeocodeService(&config.Config{GeocodeAPIURL: ts.URL}, nil)

	address, err := s.ReverseGeocode(17.4065, 78.4772)
	require.NoError(t, err)
	assert.Equal(t, "Tank Bund Road, Hyderabad, Telangana, India", address)
}

func TestReverseGeocodeProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "Unable to geocode"}`))
	}))
	defer ts.Close()

	s := NewGeocodeService(&config.Config{GeocodeAPIURL: ts.URL}, nil)

	_, err := s.ReverseGeocode(0, 0)
	assert.Error(t, err)
}

func TestReverseGeocodeBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	s := NewGeocodeService(&config.Config{GeocodeAPIURL: ts.URL}, nil)

	_, err := s.ReverseGeocode(17.4065, 78.4772)
	assert.Error(t, err)
}
