package shell

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-cli/internal/models"
)

func TestDisplayCurrent_FormatsAllFields(t *testing.T) {
	var out bytes.Buffer
	sh := NewShell(&fakeProvider{}, strings.NewReader(""), &out, zap.NewNop())

	sh.displayCurrent(models.WeatherRecord{
		City:        "London",
		Temperature: 10.0,
		Condition:   "clear sky",
		Humidity:    80,
		WindSpeed:   3.2,
		Timestamp:   time.Date(2021, 11, 1, 15, 0, 0, 0, time.UTC),
	})

	output := out.String()
	for _, want := range []string{
		"Weather for London:",
		"Temperature: 10.0°C",
		"Condition: clear sky",
		"Humidity: 80%",
		"Wind Speed: 3.2 m/s",
		"Time: 2021-11-01 15:00:00 UTC",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("displayCurrent() output missing %q:\n%s", want, output)
		}
	}
}

func TestDisplayCurrent_OneFractionalDigit(t *testing.T) {
	var out bytes.Buffer
	sh := NewShell(&fakeProvider{}, strings.NewReader(""), &out, zap.NewNop())

	sh.displayCurrent(models.WeatherRecord{City: "Oslo", Temperature: -1.1})

	if !strings.Contains(out.String(), "Temperature: -1.1°C") {
		t.Errorf("displayCurrent() output = %q, want one fractional digit", out.String())
	}
}

func TestDisplayCurrent_OmitsTimeWhenNoTimestamp(t *testing.T) {
	var out bytes.Buffer
	sh := NewShell(&fakeProvider{}, strings.NewReader(""), &out, zap.NewNop())

	sh.displayCurrent(models.WeatherRecord{City: "Oslo", Temperature: 5.0})

	if strings.Contains(out.String(), "Time:") {
		t.Errorf("displayCurrent() printed Time for zero timestamp:\n%s", out.String())
	}
}

func TestDisplayForecast_HeaderFromFirstRecordAndRules(t *testing.T) {
	var out bytes.Buffer
	sh := NewShell(&fakeProvider{}, strings.NewReader(""), &out, zap.NewNop())

	sh.displayForecast([]models.WeatherRecord{
		{City: "Paris", Temperature: 10.0, Condition: "light rain"},
		{City: "Paris", Temperature: 11.1, Condition: "overcast clouds"},
	})

	output := out.String()
	if !strings.Contains(output, "5-Day Forecast for Paris:") {
		t.Errorf("displayForecast() output missing header:\n%s", output)
	}
	rule := strings.Repeat("-", 40)
	if got := strings.Count(output, rule); got != 2 {
		t.Errorf("displayForecast() printed %d separator rules, want 2", got)
	}
	if !strings.Contains(output, "Condition: overcast clouds") {
		t.Errorf("displayForecast() output missing second record:\n%s", output)
	}
}

func TestDisplayForecast_EmptyPrintsNothing(t *testing.T) {
	var out bytes.Buffer
	sh := NewShell(&fakeProvider{}, strings.NewReader(""), &out, zap.NewNop())

	sh.displayForecast(nil)
	sh.displayForecast([]models.WeatherRecord{})

	if out.Len() != 0 {
		t.Errorf("displayForecast() on empty input wrote %q, want nothing", out.String())
	}
}
