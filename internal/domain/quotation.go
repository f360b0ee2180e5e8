package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountedPeopleGroup is a user-defined bucket of attendees sharing one
// discount. Count is kept as the raw text typed by the user.
type DiscountedPeopleGroup struct {
	ID       string    `json:"id"`
	Count    string    `json:"count"`
	Discount *Discount `json:"discount"`
}

// QuotationRequest is the payload the backend expects when creating a
// group quotation. Field names are dictated by the backend.
type QuotationRequest struct {
	MuseumID                   int             `json:"museum_id"`
	AppointmentDate            string          `json:"appointment_date"`
	StartHour                  string          `json:"start_hour"`
	EndHour                    string          `json:"end_hour"`
	TotalPeople                int             `json:"total_people"`
	TotalPeopleDiscount        int             `json:"total_people_discount"`
	TotalPeopleWithoutDiscount int             `json:"totalPeopleWithoutDiscount"`
	TotalInfants               int             `json:"total_infants"`
	TotalWithDiscount          decimal.Decimal `json:"totalWithDiscount"`
	TotalWithoutDiscount       decimal.Decimal `json:"totalWithoutDiscount"`
	PriceTotal                 decimal.Decimal `json:"price_total"`
}

// Quotation is a priced estimate for a group visit as stored by the backend.
type Quotation struct {
	UniqueID                   string          `json:"unique_id"`
	MuseumID                   int             `json:"museum_id"`
	Museum                     *Museum         `json:"museum,omitempty"`
	AppointmentDate            string          `json:"appointment_date"`
	StartHour                  string          `json:"start_hour"`
	EndHour                    string          `json:"end_hour"`
	TotalPeople                int             `json:"total_people"`
	TotalPeopleDiscount        int             `json:"total_people_discount"`
	TotalPeopleWithoutDiscount int             `json:"totalPeopleWithoutDiscount"`
	TotalInfants               int             `json:"total_infants"`
	TotalWithDiscount          decimal.Decimal `json:"totalWithDiscount"`
	TotalWithoutDiscount       decimal.Decimal `json:"totalWithoutDiscount"`
	PriceTotal                 decimal.Decimal `json:"price_total"`
}

// QuotationResponse is returned by both create and search. Depending on
// the endpoint the quotation is nested under "cotizacion" or flattened
// at the top level.
type QuotationResponse struct {
	Message    string     `json:"message,omitempty"`
	UniqueID   string     `json:"unique_id"`
	Cotizacion *Quotation `json:"cotizacion,omitempty"`
	Quotation
}

// Effective returns the nested quotation when present, otherwise the
// top-level fields.
func (r QuotationResponse) Effective() Quotation {
	if r.Cotizacion != nil {
		q := *r.Cotizacion
		if q.UniqueID == "" {
			q.UniqueID = r.UniqueID
		}
		return q
	}

	q := r.Quotation
	q.UniqueID = r.UniqueID
	return q
}

// QuotationRecord is a quotation created through this service and kept in
// the local history.
type QuotationRecord struct {
	ID              uint            `json:"id"`
	UniqueID        string          `json:"unique_id"`
	MuseumID        int             `json:"museum_id"`
	MuseumName      string          `json:"museum_name"`
	AppointmentDate string          `json:"appointment_date"`
	StartHour       string          `json:"start_hour"`
	EndHour         string          `json:"end_hour"`
	TotalPeople     int             `json:"total_people"`
	PriceTotal      decimal.Decimal `json:"price_total"`
	CreatedAt       time.Time       `json:"created_at"`
}
