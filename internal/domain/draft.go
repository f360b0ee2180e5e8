package domain

import (
	"time"

	"github.com/Demianms/MuseosApp/internal/pricing"
)

// QuotationDraft is the editable state of a quotation before and after it
// is submitted. General and Infants hold the raw text typed by the user.
type QuotationDraft struct {
	ID              string                  `json:"id"`
	Museum          *Museum                 `json:"museum"`
	AppointmentDate string                  `json:"appointment_date"`
	StartHour       string                  `json:"start_hour"`
	EndHour         string                  `json:"end_hour"`
	General         string                  `json:"general"`
	Infants         string                  `json:"infants"`
	Groups          []DiscountedPeopleGroup `json:"groups"`
	Quotation       *QuotationResponse      `json:"quotation"`
	WasSearched     bool                    `json:"was_searched"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// MuseumID returns the selected museum id, or 0 when none is selected.
func (d QuotationDraft) MuseumID() int {
	if d.Museum == nil {
		return 0
	}
	return d.Museum.ID
}

func (d QuotationDraft) BasePrice() float64 {
	if d.Museum == nil {
		return 0
	}
	return d.Museum.Price.InexactFloat64()
}

func (d QuotationDraft) AvailableDiscounts() []Discount {
	if d.Museum == nil {
		return []Discount{}
	}
	return d.Museum.Discounts
}

func (d QuotationDraft) PricingInput() pricing.Input {
	in := pricing.Input{
		BasePrice: d.BasePrice(),
		General:   d.General,
		Infants:   d.Infants,
		Groups:    make([]pricing.Group, 0, len(d.Groups)),
	}
	for _, g := range d.Groups {
		pg := pricing.Group{Count: g.Count}
		if g.Discount != nil {
			f := g.Discount.Fraction()
			pg.Discount = &f
		}
		in.Groups = append(in.Groups, pg)
	}

	return in
}

// FindGroup returns the index of the group with the given id, or -1.
func (d QuotationDraft) FindGroup(groupID string) int {
	for i, g := range d.Groups {
		if g.ID == groupID {
			return i
		}
	}
	return -1
}

// Clone copies the group list so the result can be handed out while the
// stored draft keeps being edited. Museums and discounts are never mutated and
// stay shared.
func (d QuotationDraft) Clone() QuotationDraft {
	c := d
	c.Groups = make([]DiscountedPeopleGroup, len(d.Groups))
	copy(c.Groups, d.Groups)
	return c
}
