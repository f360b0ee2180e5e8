// Package museumapi talks to the museum REST backend.
package museumapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Demianms/MuseosApp/internal/client/rest"
	"github.com/Demianms/MuseosApp/internal/domain"
)

const (
	museumsPath    = "api/museums"
	categoriesPath = "api/categories"
	discountsPath  = "api/discounts"
	quotationsPath = "api/cotizaciones"
)

type Client struct {
	rest *rest.Client
}

func New(rc *rest.Client) *Client {
	return &Client{rest: rc}
}

func (c *Client) GetMuseums(ctx context.Context) ([]domain.Museum, error) {
	var museums []domain.Museum
	if err := c.rest.Do(ctx, http.MethodGet, museumsPath, nil, nil, &museums); err != nil {
		return nil, fmt.Errorf("c.rest.Do(GET %s) -> %w", museumsPath, err)
	}
	return museums, nil
}

func (c *Client) GetMuseumByID(ctx context.Context, id int) (domain.Museum, error) {
	var museum domain.Museum
	path := museumsPath + "/" + strconv.Itoa(id)
	if err := c.rest.Do(ctx, http.MethodGet, path, nil, nil, &museum); err != nil {
		return domain.Museum{}, fmt.Errorf("c.rest.Do(GET %s) -> %w", path, err)
	}
	return museum, nil
}

func (c *Client) GetCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.rest.Do(ctx, http.MethodGet, categoriesPath, nil, nil, &categories); err != nil {
		return nil, fmt.Errorf("c.rest.Do(GET %s) -> %w", categoriesPath, err)
	}
	return categories, nil
}

func (c *Client) GetDiscounts(ctx context.Context) ([]domain.Discount, error) {
	var discounts []domain.Discount
	if err := c.rest.Do(ctx, http.MethodGet, discountsPath, nil, nil, &discounts); err != nil {
		return nil, fmt.Errorf("c.rest.Do(GET %s) -> %w", discountsPath, err)
	}
	return discounts, nil
}

func (c *Client) CreateQuotation(ctx context.Context, req domain.QuotationRequest) (domain.QuotationResponse, error) {
	var resp domain.QuotationResponse
	if err := c.rest.Do(ctx, http.MethodPost, quotationsPath, nil, req, &resp); err != nil {
		return domain.QuotationResponse{}, fmt.Errorf("c.rest.Do(POST %s) -> %w", quotationsPath, err)
	}
	return resp, nil
}

func (c *Client) GetQuotationByID(ctx context.Context, uniqueID string) (domain.QuotationResponse, error) {
	var resp domain.QuotationResponse
	path := quotationsPath + "/" + url.PathEscape(uniqueID)
	if err := c.rest.Do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return domain.QuotationResponse{}, fmt.Errorf("c.rest.Do(GET %s) -> %w", path, err)
	}
	return resp, nil
}
