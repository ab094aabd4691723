package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// GeoPoint is a resolved coordinate pair.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// GeocodingService resolves free-text addresses to coordinates. Callers treat
// failure as non-fatal: a listing is created without coordinates when the
// geocoder is down.
type GeocodingService interface {
	Geocode(ctx context.Context, address string) (*GeoPoint, error)
}

// NominatimGeocodingService - forward geocoding against a Nominatim-compatible
// HTTP endpoint.
type NominatimGeocodingService struct {
	baseURL    string
	httpClient *http.Client
}

func NewNominatimGeocodingService(baseURL string) *NominatimGeocodingService {
	return &NominatimGeocodingService{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (s *NominatimGeocodingService) Geocode(ctx context.Context, address string) (*GeoPoint, error) {
	if address == "" {
		return nil, fmt.Errorf("empty address")
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", s.baseURL, url.QueryEscape(address))

	httpReq, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	httpReq.Header.Set("User-Agent", "circularbuild/1.0")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("geocoder request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %v", err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no results for address")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocoder response: %v", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocoder response: %v", err)
	}

	return &GeoPoint{Lat: lat, Lng: lng}, nil
}
