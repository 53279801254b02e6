package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

const defaultGeocodingBaseURL = "https://api.openweathermap.org/geo/1.0"

// OpenWeatherMapGeocoder resolves city names with the OpenWeatherMap direct geocoding API
type OpenWeatherMapGeocoder struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

// OpenWeatherMapGeocoderParams holds parameters for creating the geocoder
type OpenWeatherMapGeocoderParams struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient HTTPClient
	Logger     ports.Logger
}

type geocodingResult struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

var _ ports.Geocoder = (*OpenWeatherMapGeocoder)(nil)

func NewOpenWeatherMapGeocoder(params OpenWeatherMapGeocoderParams) *OpenWeatherMapGeocoder {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultGeocodingBaseURL
	}
	client := params.HTTPClient
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &OpenWeatherMapGeocoder{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		client:  client,
		logger:  params.Logger,
	}
}

// Geocode returns the best match for cityName
func (g *OpenWeatherMapGeocoder) Geocode(ctx context.Context, cityName string) (*ports.GeoPoint, error) {
	if cityName == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	u, err := url.Parse(g.baseURL + "/direct")
	if err != nil {
		return nil, errors.NewInvalidRequestError("invalid geocoding URL", err)
	}
	q := u.Query()
	q.Set("q", cityName)
	q.Set("limit", "1")
	q.Set("appid", g.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.NewInvalidRequestError("invalid geocoding URL", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to call OpenWeatherMap geocoding", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			g.logger.Warn("Failed to close geocoding response body", ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("OpenWeatherMap geocoding returned status %d", resp.StatusCode), nil)
	}

	var results []geocodingResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode geocoding response", err)
	}
	if len(results) == 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("city %q not found", cityName))
	}

	best := results[0]
	g.logger.Debug("City geocoded",
		ports.F("city", cityName),
		ports.F("match", best.Name),
		ports.F("country", best.Country))

	return &ports.GeoPoint{
		Name:      best.Name,
		Country:   best.Country,
		Latitude:  best.Lat,
		Longitude: best.Lon,
	}, nil
}
