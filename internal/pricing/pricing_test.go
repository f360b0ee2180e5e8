package pricing

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func frac(f float64) *float64 { return &f }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParseCountOrZero(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"digits", "12", 12},
		{"zero", "0", 0},
		{"empty", "", 0},
		{"letters", "abc", 0},
		{"mixed", "3a", 0},
		{"decimal", "2.5", 0},
		{"leading space", " 4", 0},
		{"negative", "-3", 0},
		{"explicit plus", "+7", 7},
		{"overflow", "99999999999999999999999", 0},
		{"max int32", "2147483647", 2147483647},
		{"past int32", "2147483648", 0},
		{"past int64", "9223372036854775807", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCountOrZero(tt.input))
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"already two decimals", 200.00, 200.00},
		{"half up", 0.125, 0.13},
		{"below half", 1.234, 1.23},
		{"above half", 1.236, 1.24},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Round2(tt.input), 1e-9)
		})
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		input       Input
		wantPeople  int
		wantPrice   string
		wantGeneral string
	}{
		{
			name: "general infants and half price group",
			input: Input{
				BasePrice: 100.00,
				General:   "2",
				Infants:   "1",
				Groups:    []Group{{Count: "3", Discount: frac(0.5)}},
			},
			wantPeople:  6,
			wantPrice:   "350.00",
			wantGeneral: "200.00",
		},
		{
			name: "free group",
			input: Input{
				BasePrice: 33.33,
				General:   "1",
				Groups:    []Group{{Count: "1", Discount: frac(1.0)}},
			},
			wantPeople:  2,
			wantPrice:   "33.33",
			wantGeneral: "33.33",
		},
		{
			name: "everything zero or unparsable",
			input: Input{
				BasePrice: 80,
				General:   "",
				Infants:   "x",
				Groups:    []Group{{Count: "abc"}, {Count: "0", Discount: frac(0.2)}},
			},
			wantPeople:  0,
			wantPrice:   "0.00",
			wantGeneral: "0.00",
		},
		{
			name: "group without discount pays full price",
			input: Input{
				BasePrice: 50,
				General:   "1",
				Groups:    []Group{{Count: "2"}},
			},
			wantPeople:  3,
			wantPrice:   "150.00",
			wantGeneral: "50.00",
		},
		{
			name: "infants are free",
			input: Input{
				BasePrice: 120,
				Infants:   "4",
			},
			wantPeople:  4,
			wantPrice:   "0.00",
			wantGeneral: "0.00",
		},
		{
			name: "several groups",
			input: Input{
				BasePrice: 10,
				General:   "3",
				Groups: []Group{
					{Count: "2", Discount: frac(0.25)},
					{Count: "4", Discount: frac(0.5)},
					{Count: "1", Discount: frac(1)},
				},
			},
			wantPeople:  10,
			wantPrice:   "65.00",
			wantGeneral: "30.00",
		},
		{
			name: "no groups",
			input: Input{
				BasePrice: 45.5,
				General:   "2",
			},
			wantPeople:  2,
			wantPrice:   "91.00",
			wantGeneral: "91.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.input)
			assert.Equal(t, tt.wantPeople, got.TotalPeople)
			assert.Equal(t, tt.wantPrice, got.TotalPrice.StringFixed(2))
			assert.Equal(t, tt.wantGeneral, got.General.Amount.StringFixed(2))
			assert.Len(t, got.Groups, len(tt.input.Groups))
		})
	}
}

func TestCalculate_RoundsEachLineBeforeSumming(t *testing.T) {
	in := Input{
		BasePrice: 0.005,
		General:   "1",
		Groups:    []Group{{Count: "1"}},
	}

	got := Calculate(in)

	// Each half-cent line rounds up on its own; rounding the raw sum would give 0.01.
	assert.True(t, got.General.Amount.Equal(dec("0.01")))
	assert.True(t, got.Groups[0].Amount.Equal(dec("0.01")))
	assert.True(t, got.TotalPrice.Equal(dec("0.02")), "got %s", got.TotalPrice)
	assert.InDelta(t, 0.01, Round2(0.005+0.005), 1e-9)
}

func TestCalculate_LargeCountsStayNonNegative(t *testing.T) {
	in := Input{
		BasePrice: 1,
		General:   "9223372036854775807",
		Infants:   "2147483647",
		Groups: []Group{
			{Count: "2147483647", Discount: frac(0.5)},
			{Count: "2147483647"},
			{Count: "1"},
		},
	}

	got := Calculate(in)

	assert.Equal(t, 0, got.General.People)
	assert.Equal(t, 3*2147483647+1, got.TotalPeople)
	assert.True(t, got.TotalPrice.Equal(dec("3221225471.50")), "got %s", got.TotalPrice)
	assert.True(t, got.TotalPrice.IsPositive())
}

func TestCalculate_Idempotent(t *testing.T) {
	in := Input{
		BasePrice: 73.9,
		General:   "5",
		Infants:   "2",
		Groups:    []Group{{Count: "3", Discount: frac(0.15)}, {Count: "2"}},
	}

	first := Calculate(in)
	second := Calculate(in)

	assert.Equal(t, first.TotalPeople, second.TotalPeople)
	assert.True(t, first.TotalPrice.Equal(second.TotalPrice))
	assert.Equal(t, "3", in.Groups[0].Count)
}

func TestCalculate_CountProperty(t *testing.T) {
	for g := 0; g < 4; g++ {
		for i := 0; i < 3; i++ {
			for c := 0; c < 4; c++ {
				in := Input{
					BasePrice: 12.5,
					General:   itoa(g),
					Infants:   itoa(i),
					Groups:    []Group{{Count: itoa(c), Discount: frac(0.3)}, {Count: itoa(c + 1)}},
				}
				got := Calculate(in)
				assert.Equal(t, g+i+c+c+1, got.TotalPeople)

				want := decimal.NewFromFloat(Round2(float64(g) * 12.5)).
					Add(decimal.NewFromFloat(Round2(float64(c) * 12.5 * 0.7))).
					Add(decimal.NewFromFloat(Round2(float64(c+1) * 12.5)))
				assert.True(t, want.Equal(got.TotalPrice), "g=%d i=%d c=%d want %s got %s", g, i, c, want, got.TotalPrice)
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	in := Input{
		BasePrice: 100,
		General:   "2",
		Infants:   "1",
		Groups: []Group{
			{Count: "3", Discount: frac(0.5)},
			{Count: "2"},
			{Count: "nope", Discount: frac(1)},
		},
	}

	got := Summarize(in)

	assert.Equal(t, 3, got.PeopleWithDiscount)
	assert.Equal(t, 2, got.PeopleWithoutDiscount)
	assert.Equal(t, "350.00", got.TotalWithDiscount.StringFixed(2))
	assert.Equal(t, "200.00", got.TotalWithoutDiscount.StringFixed(2))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
