package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Demianms/MuseosApp/internal/client/rest"
	"github.com/Demianms/MuseosApp/internal/domain"
	"github.com/Demianms/MuseosApp/internal/repository/dao"
)

var (
	ErrQuotationNotFound = domain.ErrQuotationNotFound
	ErrQuotationExists   = dao.ErrQuotationExists
)

type QuotationAPI interface {
	CreateQuotation(ctx context.Context, req domain.QuotationRequest) (domain.QuotationResponse, error)
	GetQuotationByID(ctx context.Context, uniqueID string) (domain.QuotationResponse, error)
}

type QuotationDAO interface {
	Insert(ctx context.Context, q dao.Quotation) (dao.Quotation, error)
	List(ctx context.Context, limit int) ([]dao.Quotation, error)
}

// QuotationRepository creates and looks up quotations on the backend and,
// when a DAO is configured, keeps a local history of what was created.
type QuotationRepository struct {
	api QuotationAPI
	dao QuotationDAO
}

// NewQuotationRepository accepts a nil dao, in which case nothing is
// recorded and History is always empty.
func NewQuotationRepository(api QuotationAPI, dao QuotationDAO) *QuotationRepository {
	return &QuotationRepository{
		api: api,
		dao: dao,
	}
}

func (r *QuotationRepository) Create(ctx context.Context, req domain.QuotationRequest) (domain.QuotationResponse, error) {
	resp, err := r.api.CreateQuotation(ctx, req)
	if err != nil {
		return domain.QuotationResponse{}, fmt.Errorf("r.api.CreateQuotation -> %w", err)
	}

	return resp, nil
}

func (r *QuotationRepository) FindByUniqueID(ctx context.Context, uniqueID string) (domain.QuotationResponse, error) {
	resp, err := r.api.GetQuotationByID(ctx, uniqueID)
	if err != nil {
		if rest.IsStatus(err, http.StatusNotFound) {
			return domain.QuotationResponse{}, ErrQuotationNotFound
		}
		return domain.QuotationResponse{}, fmt.Errorf("r.api.GetQuotationByID -> %w", err)
	}

	return resp, nil
}

func (r *QuotationRepository) Record(ctx context.Context, q domain.Quotation, museumName string) (domain.QuotationRecord, error) {
	if r.dao == nil {
		return domain.QuotationRecord{}, nil
	}

	created, err := r.dao.Insert(ctx, dao.Quotation{
		UniqueID:                   q.UniqueID,
		MuseumID:                   q.MuseumID,
		MuseumName:                 museumName,
		AppointmentDate:            q.AppointmentDate,
		StartHour:                  q.StartHour,
		EndHour:                    q.EndHour,
		TotalPeople:                q.TotalPeople,
		TotalPeopleDiscount:        q.TotalPeopleDiscount,
		TotalPeopleWithoutDiscount: q.TotalPeopleWithoutDiscount,
		TotalInfants:               q.TotalInfants,
		TotalWithDiscount:          q.TotalWithDiscount,
		TotalWithoutDiscount:       q.TotalWithoutDiscount,
		PriceTotal:                 q.PriceTotal,
	})
	if err != nil {
		return domain.QuotationRecord{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *QuotationRepository) History(ctx context.Context, limit int) ([]domain.QuotationRecord, error) {
	records := []domain.QuotationRecord{}
	if r.dao == nil {
		return records, nil
	}

	found, err := r.dao.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}
	for _, q := range found {
		records = append(records, r.daoToDomain(q))
	}

	return records, nil
}

func (r *QuotationRepository) daoToDomain(q dao.Quotation) domain.QuotationRecord {
	return domain.QuotationRecord{
		ID:              q.ID,
		UniqueID:        q.UniqueID,
		MuseumID:        q.MuseumID,
		MuseumName:      q.MuseumName,
		AppointmentDate: q.AppointmentDate,
		StartHour:       q.StartHour,
		EndHour:         q.EndHour,
		TotalPeople:     q.TotalPeople,
		PriceTotal:      q.PriceTotal,
		CreatedAt:       q.CreatedAt,
	}
}
