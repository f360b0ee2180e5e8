package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrQuotationExists = errors.New("quotation already recorded")

// Quotation is a quotation submitted through this service.
type Quotation struct {
	ID uint `gorm:"primaryKey"`

	UniqueID        string `gorm:"uniqueIndex:uni_quotations_unique_id;not null"`
	MuseumID        int    `gorm:"not null;index"`
	MuseumName      string `gorm:"not null"`
	AppointmentDate string `gorm:"not null"`
	StartHour       string `gorm:"not null"`
	EndHour         string `gorm:"not null"`

	TotalPeople                int `gorm:"not null"`
	TotalPeopleDiscount        int `gorm:"not null"`
	TotalPeopleWithoutDiscount int `gorm:"not null"`
	TotalInfants               int `gorm:"not null"`

	TotalWithDiscount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalWithoutDiscount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PriceTotal           decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type QuotationDAO struct {
	db *gorm.DB
}

func NewQuotationDAO(db *gorm.DB) *QuotationDAO {
	return &QuotationDAO{
		db: db,
	}
}

func (d *QuotationDAO) Insert(ctx context.Context, q Quotation) (Quotation, error) {
	result := d.db.WithContext(ctx).Create(&q)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `"uni_quotations_unique_id"`) {
			return Quotation{}, ErrQuotationExists
		}

		return Quotation{}, result.Error
	}

	return q, nil
}

// List returns at most limit quotations, newest first.
func (d *QuotationDAO) List(ctx context.Context, limit int) ([]Quotation, error) {
	var quotations []Quotation

	result := d.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&quotations)
	if result.Error != nil {
		return nil, result.Error
	}

	return quotations, nil
}
