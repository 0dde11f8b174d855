package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WasteCategory is one entry of the pricing catalog. Rates may be unset;
// pricing treats an unset rate as zero.
type WasteCategory struct {
	ID          uint64              `gorm:"primaryKey;autoIncrement"`
	Name        string              `gorm:"size:120;not null"`
	Description string              `gorm:"type:text"`
	PricePerKg  decimal.NullDecimal `gorm:"column:price_per_kg;type:decimal(12,2)"`
	PointsPerKg *int64              `gorm:"column:points_per_kg"`
	IsDeleted   bool                `gorm:"column:is_deleted;not null;default:false;index"`
	CreatedAt   time.Time           `gorm:"autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime"`
}

func (WasteCategory) TableName() string {
	return "waste_categories"
}

func (c *WasteCategory) Price() decimal.Decimal {
	if !c.PricePerKg.Valid {
		return decimal.Zero
	}
	return c.PricePerKg.Decimal
}

func (c *WasteCategory) Points() int64 {
	if c.PointsPerKg == nil {
		return 0
	}
	return *c.PointsPerKg
}
