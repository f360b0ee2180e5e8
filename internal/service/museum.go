package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Demianms/MuseosApp/internal/domain"
	"github.com/Demianms/MuseosApp/internal/repository"
)

var (
	ErrMuseumNotFound = repository.ErrMuseumNotFound
	ErrRoomNotFound   = domain.ErrRoomNotFound
)

type MuseumRepository interface {
	ListMuseums(ctx context.Context) ([]domain.Museum, error)
	FindMuseumByID(ctx context.Context, id int) (domain.Museum, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListDiscounts(ctx context.Context) ([]domain.Discount, error)
}

// Catalog is what the museum list screen needs in one load.
type Catalog struct {
	Museums    []domain.Museum
	Categories []domain.Category
}

type MuseumService struct {
	repo MuseumRepository
}

func NewMuseumService(repo MuseumRepository) *MuseumService {
	return &MuseumService{
		repo: repo,
	}
}

// LoadCatalog fetches museums and categories concurrently. When categoryID
// is non-nil only museums tagged with that category are returned.
func (s *MuseumService) LoadCatalog(ctx context.Context, categoryID *int) (Catalog, error) {
	var catalog Catalog

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		museums, err := s.repo.ListMuseums(gctx)
		if err != nil {
			return fmt.Errorf("s.repo.ListMuseums -> %w", err)
		}
		catalog.Museums = museums
		return nil
	})
	g.Go(func() error {
		categories, err := s.repo.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("s.repo.ListCategories -> %w", err)
		}
		catalog.Categories = categories
		return nil
	})
	if err := g.Wait(); err != nil {
		return Catalog{}, err
	}

	if categoryID != nil {
		catalog.Museums = filterByCategory(catalog.Museums, *categoryID)
	}

	return catalog, nil
}

func filterByCategory(museums []domain.Museum, categoryID int) []domain.Museum {
	filtered := make([]domain.Museum, 0, len(museums))
	for _, m := range museums {
		if m.HasCategory(categoryID) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func (s *MuseumService) GetMuseum(ctx context.Context, id int) (domain.Museum, error) {
	museum, err := s.repo.FindMuseumByID(ctx, id)
	if err != nil {
		return domain.Museum{}, fmt.Errorf("s.repo.FindMuseumByID -> %w", err)
	}

	return museum, nil
}

func (s *MuseumService) GetRoom(ctx context.Context, museumID, roomID int) (domain.Room, error) {
	museum, err := s.GetMuseum(ctx, museumID)
	if err != nil {
		return domain.Room{}, err
	}

	room, ok := museum.FindRoom(roomID)
	if !ok {
		return domain.Room{}, ErrRoomNotFound
	}

	return room, nil
}

func (s *MuseumService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListCategories -> %w", err)
	}

	return categories, nil
}

func (s *MuseumService) ListDiscounts(ctx context.Context) ([]domain.Discount, error) {
	discounts, err := s.repo.ListDiscounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListDiscounts -> %w", err)
	}

	return discounts, nil
}
