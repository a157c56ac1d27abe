package models

import "time"

// WeatherRecord is one observation or forecast point for a city.
// Temperature is in Celsius, already converted from the API's Kelvin
// and rounded to one decimal place. A zero Timestamp means the API
// did not report an observation time.
type WeatherRecord struct {
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	Condition   string    `json:"condition"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Timestamp   time.Time `json:"timestamp"`
}
