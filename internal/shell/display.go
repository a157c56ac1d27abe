package shell

import (
	"fmt"
	"strings"

	"github.com/kjstillabower/weather-cli/internal/models"
)

// displayCurrent prints one record as a fixed-format block. Temperature is
// always shown with one fractional digit; the timestamp line is omitted
// when the record has none.
func (s *Shell) displayCurrent(rec models.WeatherRecord) {
	fmt.Fprintf(s.out, "\nWeather for %s:\n", rec.City)
	fmt.Fprintf(s.out, "Temperature: %.1f°C\n", rec.Temperature)
	fmt.Fprintf(s.out, "Condition: %s\n", rec.Condition)
	fmt.Fprintf(s.out, "Humidity: %d%%\n", rec.Humidity)
	fmt.Fprintf(s.out, "Wind Speed: %v m/s\n", rec.WindSpeed)
	if !rec.Timestamp.IsZero() {
		fmt.Fprintf(s.out, "Time: %s UTC\n", rec.Timestamp.UTC().Format("2006-01-02 15:04:05"))
	}
}

// displayForecast prints a city header taken from the first record, then
// each record's block behind a 40-dash rule. Prints nothing for an empty
// slice; the loop reports "No forecast available" instead.
func (s *Shell) displayForecast(recs []models.WeatherRecord) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintf(s.out, "\n5-Day Forecast for %s:\n", recs[0].City)
	for _, rec := range recs {
		fmt.Fprintln(s.out, strings.Repeat("-", 40))
		s.displayCurrent(rec)
	}
}
