package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Demianms/MuseosApp/internal/client/rest"
	"github.com/Demianms/MuseosApp/internal/domain"
)

var ErrMuseumNotFound = domain.ErrMuseumNotFound

type MuseumAPI interface {
	GetMuseums(ctx context.Context) ([]domain.Museum, error)
	GetMuseumByID(ctx context.Context, id int) (domain.Museum, error)
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetDiscounts(ctx context.Context) ([]domain.Discount, error)
}

type MuseumRepository struct {
	api MuseumAPI
}

func NewMuseumRepository(api MuseumAPI) *MuseumRepository {
	return &MuseumRepository{
		api: api,
	}
}

func (r *MuseumRepository) ListMuseums(ctx context.Context) ([]domain.Museum, error) {
	museums, err := r.api.GetMuseums(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.api.GetMuseums -> %w", err)
	}
	if museums == nil {
		museums = []domain.Museum{}
	}

	return museums, nil
}

func (r *MuseumRepository) FindMuseumByID(ctx context.Context, id int) (domain.Museum, error) {
	museum, err := r.api.GetMuseumByID(ctx, id)
	if err != nil {
		if rest.IsStatus(err, http.StatusNotFound) {
			return domain.Museum{}, ErrMuseumNotFound
		}
		return domain.Museum{}, fmt.Errorf("r.api.GetMuseumByID -> %w", err)
	}
	if museum.ID == 0 {
		return domain.Museum{}, ErrMuseumNotFound
	}

	return museum, nil
}

func (r *MuseumRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := r.api.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.api.GetCategories -> %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	return categories, nil
}

func (r *MuseumRepository) ListDiscounts(ctx context.Context) ([]domain.Discount, error) {
	discounts, err := r.api.GetDiscounts(ctx)
	if err != nil {
		if errors.Is(err, rest.ErrEmptyBody) {
			return []domain.Discount{}, nil
		}
		return nil, fmt.Errorf("r.api.GetDiscounts -> %w", err)
	}
	if discounts == nil {
		discounts = []domain.Discount{}
	}

	return discounts, nil
}
