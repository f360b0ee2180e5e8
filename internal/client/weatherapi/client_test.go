package weatherapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Demianms/MuseosApp/internal/client/rest"
)

func TestClient_GetCurrentWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/current.json", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		if r.URL.Query().Get("q") != "Mexico City" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"location": {"name": "Mexico City", "country": "Mexico"},
			"current": {"temp_c": 21.5, "condition": {"text": "Sunny", "icon": "//cdn/113.png"}, "humidity": 40, "wind_kph": 9.4}
		}`))
	}))
	defer srv.Close()

	rc, err := rest.New(srv.URL+"/v1", time.Second, false)
	require.NoError(t, err)
	c := New(rc, "k")

	w, err := c.GetCurrentWeather(context.Background(), "Mexico City")
	require.NoError(t, err)
	assert.Equal(t, "Mexico", w.Location.Country)
	assert.InDelta(t, 21.5, w.Current.TempC, 1e-9)
	assert.Equal(t, "Sunny", w.Current.Condition.Text)
	assert.Equal(t, 40, w.Current.Humidity)

	_, err = c.GetCurrentWeather(context.Background(), "Atlantis")
	assert.True(t, rest.IsStatus(err, http.StatusBadRequest))

	_, err = New(rc, "").GetCurrentWeather(context.Background(), "Mexico City")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
