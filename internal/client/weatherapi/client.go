// Package weatherapi fetches current conditions from WeatherAPI.com.
package weatherapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Demianms/MuseosApp/internal/client/rest"
	"github.com/Demianms/MuseosApp/internal/domain"
)

var ErrMissingAPIKey = errors.New("weather api key is not configured")

type Client struct {
	rest   *rest.Client
	apiKey string
}

func New(rc *rest.Client, apiKey string) *Client {
	return &Client{rest: rc, apiKey: apiKey}
}

func (c *Client) GetCurrentWeather(ctx context.Context, location string) (domain.Weather, error) {
	if c.apiKey == "" {
		return domain.Weather{}, ErrMissingAPIKey
	}

	var w domain.Weather
	q := url.Values{"key": {c.apiKey}, "q": {location}}
	if err := c.rest.Do(ctx, http.MethodGet, "current.json", q, nil, &w); err != nil {
		return domain.Weather{}, fmt.Errorf("c.rest.Do(GET current.json) -> %w", err)
	}

	return w, nil
}
