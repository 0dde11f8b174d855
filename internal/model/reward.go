package model

import "time"

type Reward struct {
	ID             uint64     `gorm:"primaryKey;autoIncrement"`
	Name           string     `gorm:"size:120;not null"`
	Description    string     `gorm:"type:text"`
	PointsRequired int64      `gorm:"column:points_required;not null"`
	Stock          int64      `gorm:"column:stock;not null"`
	IsActive       bool       `gorm:"column:is_active;not null;index"`
	ExpiryDate     *time.Time `gorm:"column:expiry_date"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`
}

func (Reward) TableName() string {
	return "rewards"
}

func (r *Reward) Expired(now time.Time) bool {
	return r.ExpiryDate != nil && r.ExpiryDate.Before(now)
}
