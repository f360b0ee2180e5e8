package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Demianms/MuseosApp/internal/client/rest"
	"github.com/Demianms/MuseosApp/internal/domain"
)

var ErrWeatherUnavailable = domain.ErrWeatherUnavailable

type WeatherAPI interface {
	GetCurrentWeather(ctx context.Context, location string) (domain.Weather, error)
}

type WeatherRepository struct {
	api WeatherAPI
}

func NewWeatherRepository(api WeatherAPI) *WeatherRepository {
	return &WeatherRepository{
		api: api,
	}
}

func (r *WeatherRepository) FindCurrent(ctx context.Context, location string) (domain.Weather, error) {
	w, err := r.api.GetCurrentWeather(ctx, location)
	if err != nil {
		// Any non-2xx, including the 400 for an unknown q, stays an upstream error.
		if errors.Is(err, rest.ErrEmptyBody) {
			return domain.Weather{}, ErrWeatherUnavailable
		}
		return domain.Weather{}, fmt.Errorf("r.api.GetCurrentWeather -> %w", err)
	}
	if w.Location.Name == "" {
		return domain.Weather{}, ErrWeatherUnavailable
	}

	return w, nil
}
