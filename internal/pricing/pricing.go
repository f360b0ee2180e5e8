// Package pricing computes group-visit quotation totals.
//
// Counts arrive as free text from live-edited fields; anything that does
// not parse as a non-negative integer counts as zero. Every priced line is
// rounded half-up to cents on its own before the lines are summed, so
// Round2(a)+Round2(b) is reported even where it differs from Round2(a+b).
package pricing

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Group is one discount bucket. A nil Discount means no reduction.
type Group struct {
	Count    string
	Discount *float64
}

type Input struct {
	BasePrice float64
	General   string
	Infants   string
	Groups    []Group
}

// Line is the priced subtotal of one bucket.
type Line struct {
	People   int             `json:"people"`
	Discount float64         `json:"discount"`
	Amount   decimal.Decimal `json:"amount"`
}

type Result struct {
	TotalPeople int             `json:"total_people"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	General     Line            `json:"general"`
	Infants     int             `json:"infants"`
	Groups      []Line          `json:"groups"`
}

// ParseCountOrZero parses a head-count typed by the user as a 32-bit value.
// Empty, negative, non-numeric text or anything past math.MaxInt32 yields 0.
func ParseCountOrZero(text string) int {
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil || n < 0 {
		return 0
	}
	return int(n)
}

// Round2 rounds half-up to two decimals on the cent-scaled value.
func Round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

func cents(x float64) decimal.Decimal {
	return decimal.NewFromFloat(Round2(x)).Round(2)
}

func lineAmount(count int, price, discount float64) float64 {
	return float64(count) * price * (1.0 - discount)
}

// Calculate returns attendance and price for the given inputs. It is pure
// and never fails.
func Calculate(in Input) Result {
	general := ParseCountOrZero(in.General)
	infants := ParseCountOrZero(in.Infants)

	res := Result{
		TotalPeople: general + infants,
		Infants:     infants,
		General: Line{
			People: general,
			Amount: cents(lineAmount(general, in.BasePrice, 0)),
		},
		Groups: make([]Line, 0, len(in.Groups)),
	}
	total := res.General.Amount

	for _, g := range in.Groups {
		count := ParseCountOrZero(g.Count)
		var d float64
		if g.Discount != nil {
			d = *g.Discount
		}
		line := Line{
			People:   count,
			Discount: d,
			Amount:   cents(lineAmount(count, in.BasePrice, d)),
		}
		res.TotalPeople += count
		res.Groups = append(res.Groups, line)
		total = total.Add(line.Amount)
	}
	res.TotalPrice = total.Round(2)

	return res
}

// Summary carries the aggregate figures the backend stores alongside a
// quotation.
type Summary struct {
	// PeopleWithDiscount counts only groups that have a discount attached.
	PeopleWithDiscount    int
	PeopleWithoutDiscount int
	// TotalWithDiscount rounds the unrounded sum of every group line once.
	TotalWithDiscount    decimal.Decimal
	TotalWithoutDiscount decimal.Decimal
}

func Summarize(in Input) Summary {
	general := ParseCountOrZero(in.General)
	s := Summary{
		PeopleWithoutDiscount: general,
		TotalWithoutDiscount:  cents(lineAmount(general, in.BasePrice, 0)),
	}

	var discounted float64
	for _, g := range in.Groups {
		count := ParseCountOrZero(g.Count)
		var d float64
		if g.Discount != nil {
			d = *g.Discount
			s.PeopleWithDiscount += count
		}
		discounted += lineAmount(count, in.BasePrice, d)
	}
	s.TotalWithDiscount = cents(discounted)

	return s
}
