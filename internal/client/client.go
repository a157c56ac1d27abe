package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/kjstillabower/weather-cli/internal/models"
)

// WeatherAPI is the upstream weather data source. FetchCurrentWeather
// reports found=false when the city is unknown to the API; a 404 is not an
// error. FetchForecast returns an empty slice in the same case.
type WeatherAPI interface {
	FetchCurrentWeather(ctx context.Context, city string) (models.WeatherRecord, bool, error)
	FetchForecast(ctx context.Context, city string) ([]models.WeatherRecord, error)
}

var (
	ErrInvalidAPIKey  = errors.New("invalid API key")
	ErrServiceFailure = errors.New("weather service failure")
)

// OpenWeatherClient talks to the OpenWeatherMap v2.5 API. Responses carry
// temperatures in Kelvin; the client converts to Celsius before handing
// records to callers. One attempt per call, bounded by the configured
// timeout; retries are the caller's problem (the CLI does not retry).
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenWeatherClient(apiKey, baseURL string, timeout time.Duration) (*OpenWeatherClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidAPIKey)
	}
	if len(apiKey) < 10 {
		return nil, fmt.Errorf("%w: API key appears invalid (too short)", ErrInvalidAPIKey)
	}

	return &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type weatherCondition struct {
	Description string `json:"description"`
}

type weatherMain struct {
	Temp     float64 `json:"temp"`
	Humidity int     `json:"humidity"`
}

type weatherWind struct {
	Speed float64 `json:"speed"`
}

type currentWeatherResponse struct {
	Name    string             `json:"name"`
	Main    weatherMain        `json:"main"`
	Weather []weatherCondition `json:"weather"`
	Wind    weatherWind        `json:"wind"`
	Dt      int64              `json:"dt"`
}

type forecastResponse struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []forecastEntry `json:"list"`
}

type forecastEntry struct {
	Main    weatherMain        `json:"main"`
	Weather []weatherCondition `json:"weather"`
	Wind    weatherWind        `json:"wind"`
	Dt      int64              `json:"dt"`
}

// FetchCurrentWeather returns the current conditions for city. found is
// false when the API reports the city as unknown (HTTP 404).
func (c *OpenWeatherClient) FetchCurrentWeather(ctx context.Context, city string) (models.WeatherRecord, bool, error) {
	body, found, err := c.get(ctx, "/weather", city)
	if err != nil {
		return models.WeatherRecord{}, false, err
	}
	if !found {
		return models.WeatherRecord{}, false, nil
	}

	var apiResp currentWeatherResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return models.WeatherRecord{}, false, fmt.Errorf("parse current weather response: %w", err)
	}

	return models.WeatherRecord{
		City:        apiResp.Name,
		Temperature: kelvinToCelsius(apiResp.Main.Temp),
		Condition:   firstDescription(apiResp.Weather),
		Humidity:    apiResp.Main.Humidity,
		WindSpeed:   apiResp.Wind.Speed,
		Timestamp:   unixToUTC(apiResp.Dt),
	}, true, nil
}

// FetchForecast returns the 5-day/3-hour forecast for city, in API order.
// The city name on every record comes from the response's top-level
// city.name field, not from the entries. An unknown city yields an empty
// slice and no error.
func (c *OpenWeatherClient) FetchForecast(ctx context.Context, city string) ([]models.WeatherRecord, error) {
	body, found, err := c.get(ctx, "/forecast", city)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.WeatherRecord{}, nil
	}

	var apiResp forecastResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse forecast response: %w", err)
	}

	records := make([]models.WeatherRecord, 0, len(apiResp.List))
	for _, entry := range apiResp.List {
		records = append(records, models.WeatherRecord{
			City:        apiResp.City.Name,
			Temperature: kelvinToCelsius(entry.Main.Temp),
			Condition:   firstDescription(entry.Weather),
			Humidity:    entry.Main.Humidity,
			WindSpeed:   entry.Wind.Speed,
			Timestamp:   unixToUTC(entry.Dt),
		})
	}
	return records, nil
}

// get issues a single GET against baseURL+endpoint for city. found is false
// on HTTP 404; any other non-2xx status or transport failure wraps
// ErrServiceFailure. The status is taken from the response itself.
func (c *OpenWeatherClient) get(ctx context.Context, endpoint, city string) (body []byte, found bool, err error) {
	req, err := c.buildRequest(ctx, endpoint, city)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, false, fmt.Errorf("%w: request timeout: %w", ErrServiceFailure, err)
		}
		return nil, false, fmt.Errorf("%w: http request failed: %w", ErrServiceFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("%w: HTTP %d from %s", ErrServiceFailure, resp.StatusCode, endpoint)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("%w: read response body: %w", ErrServiceFailure, err)
	}
	return body, true, nil
}

func (c *OpenWeatherClient) buildRequest(ctx context.Context, endpoint, city string) (*http.Request, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	u.Path += endpoint

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if corrID := extractCorrelationID(ctx); corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}
	return req, nil
}

// kelvinToCelsius converts and rounds to one decimal place, matching the
// precision the display layer prints.
func kelvinToCelsius(kelvin float64) float64 {
	return math.Round((kelvin-273.15)*10) / 10
}

func firstDescription(weather []weatherCondition) string {
	if len(weather) == 0 {
		return ""
	}
	return weather[0].Description
}

func unixToUTC(dt int64) time.Time {
	if dt == 0 {
		return time.Time{}
	}
	return time.Unix(dt, 0).UTC()
}
