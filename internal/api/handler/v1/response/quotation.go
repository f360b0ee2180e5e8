package response

import (
	"github.com/shopspring/decimal"

	"github.com/Demianms/MuseosApp/internal/domain"
	"github.com/Demianms/MuseosApp/internal/pricing"
	"github.com/Demianms/MuseosApp/internal/service"
)

type Draft struct {
	domain.QuotationDraft
	MuseumID           int               `json:"museum_id"`
	BasePrice          decimal.Decimal   `json:"base_price"`
	AvailableDiscounts []domain.Discount `json:"available_discounts"`
	Totals             pricing.Result    `json:"totals"`
}

func NewDraft(d service.Draft) Draft {
	price := decimal.Zero
	if d.Museum != nil {
		price = d.Museum.Price
	}

	return Draft{
		QuotationDraft:     d.QuotationDraft,
		MuseumID:           d.MuseumID(),
		BasePrice:          price,
		AvailableDiscounts: d.AvailableDiscounts(),
		Totals:             d.Totals,
	}
}
