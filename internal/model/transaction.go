package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusCancelled PaymentStatus = "cancelled"

	// PaymentStatusPaid is a legacy spelling of completed found in old seed data.
	PaymentStatusPaid PaymentStatus = "paid"
)

// NormalizePaymentStatus returns the canonical status for s. The legacy
// "paid" value maps to completed.
func NormalizePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusCancelled:
		return PaymentStatus(s), true
	case PaymentStatusPaid:
		return PaymentStatusCompleted, true
	}
	return "", false
}

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodEWallet      PaymentMethod = "e_wallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodEWallet:
		return true
	}
	return false
}

type Transaction struct {
	ID                uint64            `gorm:"primaryKey;autoIncrement"`
	UserID            uint64            `gorm:"column:user_id;index;not null"`
	WasteCollectionID *uint64           `gorm:"column:waste_collection_id;uniqueIndex:uk_transactions_collection"`
	TotalAmount       decimal.Decimal   `gorm:"column:total_amount;type:decimal(14,2);not null"`
	TotalWeight       decimal.Decimal   `gorm:"column:total_weight;type:decimal(10,2);not null"`
	TotalPoints       int64             `gorm:"column:total_points;not null"`
	PaymentMethod     PaymentMethod     `gorm:"column:payment_method;size:32;not null"`
	PaymentStatus     PaymentStatus     `gorm:"column:payment_status;size:32;not null;index"`
	Notes             string            `gorm:"column:notes;type:text"`
	Items             []TransactionItem `gorm:"foreignKey:TransactionID"`
	CreatedAt         time.Time         `gorm:"autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}

type TransactionItem struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	TransactionID uint64          `gorm:"column:transaction_id;index;not null"`
	CategoryID    uint64          `gorm:"column:category_id;index;not null"`
	Weight        decimal.Decimal `gorm:"column:weight;type:decimal(10,2);not null"`
	PricePerKg    decimal.Decimal `gorm:"column:price_per_kg;type:decimal(12,2);not null"`
	PointsEarned  int64           `gorm:"column:points_earned;not null"`
	Subtotal      decimal.Decimal `gorm:"column:subtotal;type:decimal(14,2);not null"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
}

func (TransactionItem) TableName() string {
	return "transaction_items"
}
