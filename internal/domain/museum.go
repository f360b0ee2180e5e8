package domain

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/shopspring/decimal"
)

type Room struct {
	ID          int     `json:"id"`
	Name        string  `json:"nombre"`
	Image       *string `json:"imagen"`
	Description string  `json:"descripcion"`
	CreatedAt   string  `json:"creado"`
	UpdatedAt   string  `json:"actualizado"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

// Discount is a backend-defined reduction. Value is a fraction in [0,1]
// and is trusted as sent.
type Discount struct {
	ID          int             `json:"id"`
	Value       decimal.Decimal `json:"valor_descuento"`
	Description *string         `json:"descripcion_aplicacion"`
}

var seniorWaiverPattern = regexp2.MustCompile(`inapam`, regexp2.IgnoreCase)

// IsSeniorWaiver reports whether the discount is the full INAPAM waiver:
// the description mentions "inapam" and the value is exactly 100%.
func (d Discount) IsSeniorWaiver() bool {
	if d.Description == nil {
		return false
	}
	ok, err := seniorWaiverPattern.MatchString(*d.Description)
	if err != nil || !ok {
		return false
	}

	return d.Value.Equal(decimal.NewFromInt(1))
}

// Fraction returns the discount value as a float for the price calculator.
func (d Discount) Fraction() float64 {
	return d.Value.InexactFloat64()
}

type Museum struct {
	ID            int             `json:"id"`
	Name          string          `json:"nombre"`
	Image         string          `json:"imagen"`
	OpeningHour   string          `json:"hora_de_apertura"`
	ClosingHour   string          `json:"hora_de_cierre"`
	Latitude      *float64        `json:"latitud"`
	Longitude     *float64        `json:"longitud"`
	Description   string          `json:"descripcion"`
	Price         decimal.Decimal `json:"precio"`
	URL           string          `json:"url"`
	NumberOfRooms int             `json:"numero_de_salas"`
	Status        string          `json:"estado"`
	CreatedAt     string          `json:"creado"`
	UpdatedAt     string          `json:"actualizado"`
	Rooms         []Room          `json:"rooms"`
	Categories    []Category      `json:"categories"`
	Discounts     []Discount      `json:"descuentos_asociados"`
}

func (m Museum) IsActive() bool {
	return strings.EqualFold(strings.TrimSpace(m.Status), "activo")
}

func (m Museum) HasCategory(categoryID int) bool {
	for _, c := range m.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}

func (m Museum) FindRoom(roomID int) (Room, bool) {
	for _, r := range m.Rooms {
		if r.ID == roomID {
			return r, true
		}
	}
	return Room{}, false
}

func (m Museum) FindDiscount(discountID int) (Discount, bool) {
	for _, d := range m.Discounts {
		if d.ID == discountID {
			return d, true
		}
	}
	return Discount{}, false
}

// HasCoordinates reports whether the museum can be placed on a map.
func (m Museum) HasCoordinates() bool {
	return m.Latitude != nil && m.Longitude != nil
}
