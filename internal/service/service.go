package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-cli/internal/client"
	"github.com/kjstillabower/weather-cli/internal/models"
	"github.com/kjstillabower/weather-cli/internal/validation"
)

// Maximum city name length accepted before hitting the network.
const cityMaxLength = 100

// WeatherService sits between the shell and the upstream API client. It
// validates city names before any network call and emits structured logs
// per fetch. It holds no state beyond its dependencies; every call is
// independent.
type WeatherService struct {
	api    client.WeatherAPI
	logger *zap.Logger
}

func NewWeatherService(api client.WeatherAPI, logger *zap.Logger) *WeatherService {
	return &WeatherService{
		api:    api,
		logger: logger,
	}
}

// CurrentWeather fetches current conditions for city. found is false when
// the API does not know the city; that is not an error.
func (s *WeatherService) CurrentWeather(ctx context.Context, city string) (models.WeatherRecord, bool, error) {
	name, err := validation.ValidateCity(city, cityMaxLength)
	if err != nil {
		return models.WeatherRecord{}, false, fmt.Errorf("invalid city %q: %w", city, err)
	}

	start := time.Now()
	record, found, err := s.api.FetchCurrentWeather(ctx, name)
	if err != nil {
		s.logger.Warn("current weather fetch failed",
			zap.String("city", name),
			zap.String("category", string(client.CategorizeError(err))),
			zap.Error(err))
		return models.WeatherRecord{}, false, err
	}

	s.logger.Debug("current weather fetched",
		zap.String("city", name),
		zap.Bool("found", found),
		zap.Duration("duration", time.Since(start)))
	return record, found, nil
}

// Forecast fetches the 5-day/3-hour forecast for city. An unknown city
// yields an empty slice and no error.
func (s *WeatherService) Forecast(ctx context.Context, city string) ([]models.WeatherRecord, error) {
	name, err := validation.ValidateCity(city, cityMaxLength)
	if err != nil {
		return nil, fmt.Errorf("invalid city %q: %w", city, err)
	}

	start := time.Now()
	records, err := s.api.FetchForecast(ctx, name)
	if err != nil {
		s.logger.Warn("forecast fetch failed",
			zap.String("city", name),
			zap.String("category", string(client.CategorizeError(err))),
			zap.Error(err))
		return nil, err
	}

	s.logger.Debug("forecast fetched",
		zap.String("city", name),
		zap.Int("entries", len(records)),
		zap.Duration("duration", time.Since(start)))
	return records, nil
}
