package service

import (
	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/shopspring/decimal"
)

// LineQuote is one priced line of a transaction.
type LineQuote struct {
	CategoryID   uint64
	Weight       decimal.Decimal
	PricePerKg   decimal.Decimal
	PointsEarned int64
	Subtotal     decimal.Decimal
}

// QuoteLine prices weight kilograms at the category's current rates.
func QuoteLine(cat *model.WasteCategory, weight decimal.Decimal) LineQuote {
	return quote(cat.ID, weight, cat.Price(), pointsFor(cat.Points(), weight))
}

func quote(categoryID uint64, weight, pricePerKg decimal.Decimal, points int64) LineQuote {
	return LineQuote{
		CategoryID:   categoryID,
		Weight:       weight,
		PricePerKg:   pricePerKg,
		PointsEarned: points,
		Subtotal:     pricePerKg.Mul(weight).Round(2),
	}
}

// pointsFor rounds half away from zero to whole points.
func pointsFor(perKg int64, weight decimal.Decimal) int64 {
	return decimal.NewFromInt(perKg).Mul(weight).Round(0).IntPart()
}

type Totals struct {
	Amount decimal.Decimal
	Weight decimal.Decimal
	Points int64
}

func SumLines(lines []LineQuote) Totals {
	t := Totals{Amount: decimal.Zero, Weight: decimal.Zero}
	for _, l := range lines {
		t.Amount = t.Amount.Add(l.Subtotal)
		t.Weight = t.Weight.Add(l.Weight)
		t.Points += l.PointsEarned
	}
	return t
}

func buildTransaction(userID uint64, collectionID *uint64, lines []LineQuote, method model.PaymentMethod, status model.PaymentStatus, notes string) *model.Transaction {
	totals := SumLines(lines)
	items := make([]model.TransactionItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, model.TransactionItem{
			CategoryID:   l.CategoryID,
			Weight:       l.Weight,
			PricePerKg:   l.PricePerKg,
			PointsEarned: l.PointsEarned,
			Subtotal:     l.Subtotal,
		})
	}
	return &model.Transaction{
		UserID:            userID,
		WasteCollectionID: collectionID,
		TotalAmount:       totals.Amount,
		TotalWeight:       totals.Weight,
		TotalPoints:       totals.Points,
		PaymentMethod:     method,
		PaymentStatus:     status,
		Notes:             notes,
		Items:             items,
	}
}
