package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CollectionStatus string

const (
	CollectionStatusPending    CollectionStatus = "pending"
	CollectionStatusConfirmed  CollectionStatus = "confirmed"
	CollectionStatusProcessing CollectionStatus = "processing"
	CollectionStatusCompleted  CollectionStatus = "completed"
	CollectionStatusCancelled  CollectionStatus = "cancelled"
)

func (s CollectionStatus) Valid() bool {
	switch s {
	case CollectionStatusPending, CollectionStatusConfirmed, CollectionStatusProcessing,
		CollectionStatusCompleted, CollectionStatusCancelled:
		return true
	}
	return false
}

// WasteCollection is a customer's pickup request.
type WasteCollection struct {
	ID              uint64                `gorm:"primaryKey;autoIncrement"`
	UserID          uint64                `gorm:"column:user_id;index;not null"`
	PickupAddress   string                `gorm:"column:pickup_address;type:text;not null"`
	PickupDate      time.Time             `gorm:"column:pickup_date;not null"`
	PickupTimeSlot  string                `gorm:"column:pickup_time_slot;size:32"`
	Status          CollectionStatus      `gorm:"column:status;size:32;not null;index"`
	Notes           string                `gorm:"column:notes;type:text"`
	AssignedStaffID *uint64               `gorm:"column:assigned_staff_id;index"`
	Items           []WasteCollectionItem `gorm:"foreignKey:CollectionID"`
	CreatedAt       time.Time             `gorm:"autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"autoUpdateTime"`
}

func (WasteCollection) TableName() string {
	return "waste_collections"
}

type WasteCollectionItem struct {
	ID              uint64              `gorm:"primaryKey;autoIncrement"`
	CollectionID    uint64              `gorm:"column:collection_id;index;not null"`
	CategoryID      uint64              `gorm:"column:category_id;index;not null"`
	EstimatedWeight decimal.Decimal     `gorm:"column:estimated_weight;type:decimal(10,2);not null"`
	ActualWeight    decimal.NullDecimal `gorm:"column:actual_weight;type:decimal(10,2)"`
	CreatedAt       time.Time           `gorm:"autoCreateTime"`
}

func (WasteCollectionItem) TableName() string {
	return "waste_collection_items"
}
