package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Demianms/MuseosApp/internal/domain"
	"github.com/Demianms/MuseosApp/internal/repository"
)

var ErrWeatherUnavailable = repository.ErrWeatherUnavailable

type WeatherRepository interface {
	FindCurrent(ctx context.Context, location string) (domain.Weather, error)
}

type WeatherService struct {
	repo            WeatherRepository
	defaultLocation string
}

func NewWeatherService(repo WeatherRepository, defaultLocation string) *WeatherService {
	return &WeatherService{
		repo:            repo,
		defaultLocation: defaultLocation,
	}
}

// GetCurrent returns the current weather for location, falling back to the
// configured default when location is blank.
func (s *WeatherService) GetCurrent(ctx context.Context, location string) (domain.Weather, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		location = s.defaultLocation
	}

	w, err := s.repo.FindCurrent(ctx, location)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("s.repo.FindCurrent -> %w", err)
	}

	return w, nil
}
