package service

import (
	"testing"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestQuoteLine(t *testing.T) {
	int64p := func(v int64) *int64 { return &v }
	cases := []struct {
		name     string
		price    decimal.NullDecimal
		points   *int64
		weight   string
		subtotal string
		earned   int64
	}{
		{"plain", decimal.NewNullDecimal(dec("5000")), int64p(50), "3.0", "15000", 150},
		{"half point rounds up", decimal.NewNullDecimal(dec("2500")), int64p(25), "1.5", "3750", 38},
		{"fractional price", decimal.NewNullDecimal(dec("1234.56")), int64p(10), "0.333", "411.11", 3},
		{"quarter kilo", decimal.NewNullDecimal(dec("100")), int64p(10), "0.25", "25", 3},
		{"nil rates count as zero", decimal.NullDecimal{}, nil, "4", "0", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cat := &model.WasteCategory{ID: 9, PricePerKg: tc.price, PointsPerKg: tc.points}
			q := QuoteLine(cat, dec(tc.weight))
			require.Equal(t, uint64(9), q.CategoryID)
			require.True(t, dec(tc.subtotal).Equal(q.Subtotal), "subtotal %s", q.Subtotal)
			require.Equal(t, tc.earned, q.PointsEarned)
		})
	}
}

func TestSumLines(t *testing.T) {
	lines := []LineQuote{
		quote(1, dec("3"), dec("5000"), 150),
		quote(2, dec("1.25"), dec("2000"), 13),
	}
	tot := SumLines(lines)
	require.True(t, dec("17500").Equal(tot.Amount))
	require.True(t, dec("4.25").Equal(tot.Weight))
	require.Equal(t, int64(163), tot.Points)

	empty := SumLines(nil)
	require.True(t, empty.Amount.IsZero())
	require.Zero(t, empty.Points)
}
