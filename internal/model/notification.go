package model

import "time"

const (
	NotificationCollectionStatus = "collection_status"
	NotificationTransaction      = "transaction"
	NotificationRedemption       = "redemption"
)

type Notification struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement"`
	UserID        uint64     `gorm:"column:user_id;index;not null"`
	Type          string     `gorm:"column:type;size:64;not null"`
	Title         string     `gorm:"column:title;size:255"`
	Body          string     `gorm:"column:body;type:text"`
	CollectionID  *uint64    `gorm:"column:collection_id;index"`
	TransactionID *uint64    `gorm:"column:transaction_id;index"`
	RedemptionID  *uint64    `gorm:"column:redemption_id;index"`
	ReadAt        *time.Time `gorm:"column:read_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
