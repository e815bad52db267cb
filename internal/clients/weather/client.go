package weather

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	GeolocateURL = "https://ipinfo.io/json"
	ForecastURL  = "https://api.openweathermap.org/data/2.5/forecast"
)

// Client fetches the local weather forecast: geolocation by IP, then the
// OpenWeatherMap 5-day forecast for that position.
type Client struct {
	apiKey       string
	httpClient   *http.Client
	geolocateURL string
	forecastURL  string
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		geolocateURL: GeolocateURL,
		forecastURL:  ForecastURL,
	}
}

// IsConfigured returns true if the client has an API key.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// LocalForecast geolocates by IP and returns the forecast filtered to the
// daily noon entries.
func (c *Client) LocalForecast() (*ForecastResponse, error) {
	lat, lon, err := c.locate()
	if err != nil {
		return nil, fmt.Errorf("geolocate: %w", err)
	}

	forecast, err := c.Forecast(lat, lon)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}

	forecast.List = NoonForecasts(forecast.List)
	return forecast, nil
}

func (c *Client) locate() (lat, lon string, err error) {
	data, err := c.get(c.geolocateURL)
	if err != nil {
		return "", "", err
	}

	var info struct {
		Loc string `json:"loc"`
	}
	if err := json.Unmarshal(data, &info); err != nil {
		return "", "", fmt.Errorf("parse geolocation: %w", err)
	}

	parts := strings.Split(info.Loc, ",")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("unexpected location format: %q", info.Loc)
	}
	return parts[0], parts[1], nil
}

// Forecast returns the raw 5-day forecast for the given position.
func (c *Client) Forecast(lat, lon string) (*ForecastResponse, error) {
	q := url.Values{}
	q.Set("lat", lat)
	q.Set("lon", lon)
	q.Set("appid", c.apiKey)

	data, err := c.get(c.forecastURL + "?" + q.Encode())
	if err != nil {
		return nil, err
	}

	forecast := &ForecastResponse{}
	if err := json.Unmarshal(data, forecast); err != nil {
		return nil, fmt.Errorf("parse forecast: %w", err)
	}
	return forecast, nil
}

func (c *Client) get(rawURL string) ([]byte, error) {
	resp, err := c.httpClient.Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// NoonForecasts keeps only the entries falling on 12:00 UTC, one per day.
func NoonForecasts(list []Forecast) []Forecast {
	var noon []Forecast
	for _, f := range list {
		if time.Unix(f.Dt, 0).UTC().Hour() == 12 {
			noon = append(noon, f)
		}
	}
	return noon
}
