package museumapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Demianms/MuseosApp/internal/client/rest"
	"github.com/Demianms/MuseosApp/internal/domain"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	rc, err := rest.New(srv.URL, time.Second, false)
	require.NoError(t, err)

	return New(rc)
}

func TestClient_Museums(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/museums", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"nombre":"MUNAL","precio":"90.00"},{"id":2,"nombre":"Soumaya","precio":0}]`))
	})
	mux.HandleFunc("/api/museums/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"nombre":"MUNAL","precio":"90.00","rooms":[{"id":4,"nombre":"Sala A"}]}`))
	})
	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"nombre":"Arte"}]`))
	})
	mux.HandleFunc("/api/discounts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":9,"valor_descuento":"1.00","descripcion_aplicacion":"INAPAM"}]`))
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	museums, err := c.GetMuseums(ctx)
	require.NoError(t, err)
	require.Len(t, museums, 2)
	assert.True(t, museums[0].Price.Equal(decimal.NewFromInt(90)))
	assert.True(t, museums[1].Price.IsZero())

	museum, err := c.GetMuseumByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "MUNAL", museum.Name)
	require.Len(t, museum.Rooms, 1)

	_, err = c.GetMuseumByID(ctx, 404)
	assert.True(t, rest.IsStatus(err, http.StatusNotFound))

	categories, err := c.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{{ID: 1, Name: "Arte"}}, categories)

	discounts, err := c.GetDiscounts(ctx)
	require.NoError(t, err)
	require.Len(t, discounts, 1)
	assert.True(t, discounts[0].IsSeniorWaiver())
}

func TestClient_Quotations(t *testing.T) {
	var got domain.QuotationRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cotizaciones", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok","unique_id":"COT-1","cotizacion":{"museum_id":3,"price_total":"350.00"}}`))
	})
	mux.HandleFunc("/api/cotizaciones/COT-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unique_id":"COT-1","museum_id":3,"total_people":6}`))
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	resp, err := c.CreateQuotation(ctx, domain.QuotationRequest{
		MuseumID:    3,
		TotalPeople: 6,
		PriceTotal:  decimal.RequireFromString("350.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "COT-1", resp.Effective().UniqueID)
	assert.Equal(t, 3, got.MuseumID)
	assert.True(t, got.PriceTotal.Equal(decimal.NewFromInt(350)))

	found, err := c.GetQuotationByID(ctx, "COT-1")
	require.NoError(t, err)
	assert.Equal(t, 6, found.Effective().TotalPeople)

	_, err = c.GetQuotationByID(ctx, "nope")
	assert.True(t, rest.IsStatus(err, http.StatusNotFound))
}
