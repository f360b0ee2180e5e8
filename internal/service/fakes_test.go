package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Demianms/MuseosApp/internal/domain"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

type fakeMuseumRepo struct {
	museums    []domain.Museum
	categories []domain.Category
	discounts  []domain.Discount
	err        error
	calls      int
}

func (f *fakeMuseumRepo) ListMuseums(context.Context) ([]domain.Museum, error) {
	return f.museums, f.err
}

func (f *fakeMuseumRepo) FindMuseumByID(_ context.Context, id int) (domain.Museum, error) {
	f.calls++
	if f.err != nil {
		return domain.Museum{}, f.err
	}
	for _, m := range f.museums {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Museum{}, domain.ErrMuseumNotFound
}

func (f *fakeMuseumRepo) ListCategories(context.Context) ([]domain.Category, error) {
	return f.categories, f.err
}

func (f *fakeMuseumRepo) ListDiscounts(context.Context) ([]domain.Discount, error) {
	return f.discounts, f.err
}

type fakeQuotationRepo struct {
	mu       sync.Mutex
	requests []domain.QuotationRequest
	records  []domain.QuotationRecord
	found    map[string]domain.QuotationResponse
	err      error
	// onCreate runs before the request is accepted.
	onCreate func()
}

func (f *fakeQuotationRepo) Create(_ context.Context, req domain.QuotationRequest) (domain.QuotationResponse, error) {
	if f.onCreate != nil {
		f.onCreate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.QuotationResponse{}, f.err
	}
	f.requests = append(f.requests, req)
	return domain.QuotationResponse{Message: "created", UniqueID: "COT-1"}, nil
}

func (f *fakeQuotationRepo) FindByUniqueID(_ context.Context, uniqueID string) (domain.QuotationResponse, error) {
	resp, ok := f.found[uniqueID]
	if !ok {
		return domain.QuotationResponse{}, domain.ErrQuotationNotFound
	}
	return resp, nil
}

func (f *fakeQuotationRepo) Record(_ context.Context, q domain.Quotation, museumName string) (domain.QuotationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := domain.QuotationRecord{
		ID:         uint(len(f.records) + 1),
		UniqueID:   q.UniqueID,
		MuseumID:   q.MuseumID,
		MuseumName: museumName,
		PriceTotal: q.PriceTotal,
	}
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeQuotationRepo) History(_ context.Context, limit int) ([]domain.QuotationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.QuotationRecord{}
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.records[i])
	}
	return out, nil
}

func testMuseum() domain.Museum {
	return domain.Museum{
		ID:    3,
		Name:  "MUNAL",
		Price: decimal.RequireFromString("100.00"),
		Rooms: []domain.Room{{ID: 10, Name: "Sala Virreinal"}},
		Categories: []domain.Category{
			{ID: 1, Name: "Arte"},
		},
		Discounts: []domain.Discount{
			{ID: 1, Value: decimal.RequireFromString("0.50"), Description: strPtr("Estudiantes")},
			{ID: 2, Value: decimal.RequireFromString("1.00"), Description: strPtr("Credencial INAPAM")},
		},
	}
}
