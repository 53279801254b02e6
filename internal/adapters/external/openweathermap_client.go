package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	_ "golang.org/x/image/webp"
	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

const (
	defaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5"
	defaultIconBaseURL    = "https://openweathermap.org/img/wn"
	defaultHTTPTimeout    = 10 * time.Second
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenWeatherMapClient implements the WeatherClient port against OpenWeatherMap
type OpenWeatherMapClient struct {
	apiKey      string
	baseURL     string
	iconBaseURL string
	client      HTTPClient
	logger      ports.Logger
}

// OpenWeatherMapClientParams holds parameters for creating the OpenWeatherMap client
type OpenWeatherMapClientParams struct {
	APIKey      string
	BaseURL     string
	IconBaseURL string
	Timeout     time.Duration
	HTTPClient  HTTPClient
	Logger      ports.Logger
}

// currentWeatherResponse mirrors the fields read from /weather. Pointers
// mark members that must be present.
type currentWeatherResponse struct {
	Name *string `json:"name"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Pressure  *int     `json:"pressure"`
		Humidity  *int     `json:"humidity"`
	} `json:"main"`
	Weather *[]struct {
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	} `json:"weather"`
}

var _ ports.WeatherClient = (*OpenWeatherMapClient)(nil)

func NewOpenWeatherMapClient(params OpenWeatherMapClientParams) *OpenWeatherMapClient {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultWeatherBaseURL
	}
	iconBaseURL := params.IconBaseURL
	if iconBaseURL == "" {
		iconBaseURL = defaultIconBaseURL
	}
	client := params.HTTPClient
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &OpenWeatherMapClient{
		apiKey:      params.APIKey,
		baseURL:     baseURL,
		iconBaseURL: iconBaseURL,
		client:      client,
		logger:      params.Logger,
	}
}

// FetchWeather retrieves the current weather at the given coordinates in metric units
func (c *OpenWeatherMapClient) FetchWeather(ctx context.Context, latitude, longitude float64) (*ports.WeatherSnapshot, error) {
	requestURL, err := c.weatherURL(latitude, longitude)
	if err != nil {
		return nil, errors.NewInvalidRequestError("The request URL is invalid.", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewInvalidRequestError("The request URL is invalid.", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError("Network error occurred: "+err.Error(), err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close OpenWeatherMap response body", ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Wrap(errors.InvalidResponseError, "The server response was invalid.",
			fmt.Errorf("OpenWeatherMap returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError("Network error occurred: "+err.Error(), err)
	}
	if len(body) == 0 {
		return nil, errors.NewNoDataError("No data was received from the server.")
	}

	snapshot, err := decodeCurrentWeather(body)
	if err != nil {
		return nil, errors.NewDecodingError("Failed to decode the response: "+err.Error(), err)
	}
	return snapshot, nil
}

// FetchIcon downloads the @2x icon for code. Any failure yields nil.
func (c *OpenWeatherMapClient) FetchIcon(ctx context.Context, iconCode string) []byte {
	iconURL := fmt.Sprintf("%s/%s@2x.png", c.iconBaseURL, url.PathEscape(iconCode))
	if _, err := url.ParseRequestURI(iconURL); err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, iconURL, nil)
	if err != nil {
		return nil
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("Icon download failed", ports.F("icon", iconCode), ports.F("error", err))
		return nil
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close icon response body", ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("Icon download rejected", ports.F("icon", iconCode), ports.F("status", resp.StatusCode))
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return nil
	}

	// png and webp decoders are registered by the imports above
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		c.logger.Debug("Icon is not a decodable image", ports.F("icon", iconCode), ports.F("error", err))
		return nil
	}
	return data
}

func (c *OpenWeatherMapClient) weatherURL(latitude, longitude float64) (string, error) {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) || math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return "", fmt.Errorf("coordinates must be finite")
	}

	u, err := url.Parse(c.baseURL + "/weather")
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base URL %q is not absolute", c.baseURL)
	}

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func decodeCurrentWeather(body []byte) (*ports.WeatherSnapshot, error) {
	var resp currentWeatherResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	switch {
	case resp.Name == nil:
		return nil, fmt.Errorf("missing field %q", "name")
	case resp.Main == nil:
		return nil, fmt.Errorf("missing field %q", "main")
	case resp.Main.Temp == nil:
		return nil, fmt.Errorf("missing field %q", "main.temp")
	case resp.Main.FeelsLike == nil:
		return nil, fmt.Errorf("missing field %q", "main.feels_like")
	case resp.Weather == nil:
		return nil, fmt.Errorf("missing field %q", "weather")
	}

	conditions := make([]ports.WeatherCondition, 0, len(*resp.Weather))
	for i, w := range *resp.Weather {
		if w.Description == nil || w.Icon == nil {
			return nil, fmt.Errorf("weather[%d]: description and icon are required", i)
		}
		conditions = append(conditions, ports.WeatherCondition{Description: *w.Description, Icon: *w.Icon})
	}

	return &ports.WeatherSnapshot{
		CityName:    *resp.Name,
		Temperature: *resp.Main.Temp,
		FeelsLike:   *resp.Main.FeelsLike,
		Pressure:    resp.Main.Pressure,
		Humidity:    resp.Main.Humidity,
		Conditions:  conditions,
	}, nil
}
