package weather

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoonForecasts(t *testing.T) {
	noon := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	morning := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	nextNoon := noon.AddDate(0, 0, 1)

	list := []Forecast{
		{Dt: morning.Unix()},
		{Dt: noon.Unix()},
		{Dt: nextNoon.Unix()},
	}

	filtered := NoonForecasts(list)
	require.Len(t, filtered, 2)
	assert.Equal(t, noon.Unix(), filtered[0].Dt)
	assert.Equal(t, nextNoon.Unix(), filtered[1].Dt)
}

func TestTempF(t *testing.T) {
	// 300 K is 80.33 °F
	f := Forecast{Main: Main{Temp: 300}}
	assert.Equal(t, 80, f.TempF())

	// 273.15 K is exactly 32 °F
	freezing := Forecast{Main: Main{Temp: 273.15}}
	assert.Equal(t, 32, freezing.TempF())
}

func TestDescription(t *testing.T) {
	assert.Empty(t, Forecast{}.Description())
	f := Forecast{Weather: []Condition{{Description: "light rain"}}}
	assert.Equal(t, "light rain", f.Description())
}

func TestLocalForecast(t *testing.T) {
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"loc": "40.71,-74.00"}`))
	}))
	defer geo.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "40.71", r.URL.Query().Get("lat"))
		assert.Equal(t, "-74.00", r.URL.Query().Get("lon"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.Write([]byte(`{
			"city": {"name": "New York"},
			"list": [
				{"dt": 1704888000, "dt_txt": "2024-01-10 12:00:00", "main": {"temp": 280.15}, "weather": [{"description": "clear sky"}]},
				{"dt": 1704898800, "dt_txt": "2024-01-10 15:00:00", "main": {"temp": 281.15}, "weather": [{"description": "clouds"}]}
			]
		}`))
	}))
	defer api.Close()

	client := NewClient("test-key")
	client.geolocateURL = geo.URL
	client.forecastURL = api.URL

	forecast, err := client.LocalForecast()
	require.NoError(t, err)

	assert.Equal(t, "New York", forecast.City.Name)
	require.Len(t, forecast.List, 1)
	assert.Equal(t, "2024-01-10 12:00:00", forecast.List[0].DtTxt)
}

func TestIsConfigured(t *testing.T) {
	assert.False(t, NewClient("").IsConfigured())
	assert.True(t, NewClient("key").IsConfigured())
}
