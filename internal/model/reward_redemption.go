package model

import "time"

type RedemptionStatus string

const (
	RedemptionStatusPending   RedemptionStatus = "pending"
	RedemptionStatusApproved  RedemptionStatus = "approved"
	RedemptionStatusProcessed RedemptionStatus = "processed"
	RedemptionStatusCompleted RedemptionStatus = "completed"
	RedemptionStatusRejected  RedemptionStatus = "rejected"
	RedemptionStatusCancelled RedemptionStatus = "cancelled"
)

func (s RedemptionStatus) Valid() bool {
	switch s {
	case RedemptionStatusPending, RedemptionStatusApproved, RedemptionStatusProcessed,
		RedemptionStatusCompleted, RedemptionStatusRejected, RedemptionStatusCancelled:
		return true
	}
	return false
}

// ReleasesEscrow reports whether a redemption in this status has handed its
// points and stock unit back.
func (s RedemptionStatus) ReleasesEscrow() bool {
	return s == RedemptionStatusRejected || s == RedemptionStatusCancelled
}

type RewardRedemption struct {
	ID          uint64           `gorm:"primaryKey;autoIncrement"`
	UserID      uint64           `gorm:"column:user_id;index;not null"`
	RewardID    uint64           `gorm:"column:reward_id;index;not null"`
	PointsSpent int64            `gorm:"column:points_spent;not null"`
	Status      RedemptionStatus `gorm:"column:status;size:32;not null;index"`
	ProcessedAt *time.Time       `gorm:"column:processed_at"`
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime"`
}

func (RewardRedemption) TableName() string {
	return "reward_redemptions"
}
