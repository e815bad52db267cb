package weather

import "math"

// ForecastResponse is the OpenWeatherMap 5-day forecast payload, trimmed to
// the fields the app displays.
type ForecastResponse struct {
	City City       `json:"city"`
	List []Forecast `json:"list"`
}

type City struct {
	Name string `json:"name"`
}

type Forecast struct {
	Dt      int64       `json:"dt"`
	DtTxt   string      `json:"dt_txt"`
	Main    Main        `json:"main"`
	Weather []Condition `json:"weather"`
}

type Main struct {
	Temp float64 `json:"temp"` // Kelvin
}

type Condition struct {
	Description string `json:"description"`
}

// TempF converts the Kelvin temperature to rounded Fahrenheit.
func (f Forecast) TempF() int {
	return int(math.Round((f.Main.Temp-273.15)*9/5 + 32))
}

// Description returns the first weather condition description.
func (f Forecast) Description() string {
	if len(f.Weather) == 0 {
		return ""
	}
	return f.Weather[0].Description
}
