package model

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleNasabah Role = "nasabah"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleNasabah
}

// Rank tiers, derived from the running point balance.
const (
	RankBronze   = "Bronze"
	RankSilver   = "Silver"
	RankGold     = "Gold"
	RankPlatinum = "Platinum"
)

const (
	SilverThreshold   int64 = 1000
	GoldThreshold     int64 = 5000
	PlatinumThreshold int64 = 10000
)

// RankFor maps a point balance onto its loyalty tier.
func RankFor(points int64) string {
	switch {
	case points >= PlatinumThreshold:
		return RankPlatinum
	case points >= GoldThreshold:
		return RankGold
	case points >= SilverThreshold:
		return RankSilver
	default:
		return RankBronze
	}
}

type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"size:120;not null"`
	Email        string    `gorm:"size:191;not null;uniqueIndex:uk_users_email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"`
	Role         Role      `gorm:"column:role;size:16;not null;index"`
	Phone        string    `gorm:"size:32"`
	Address      string    `gorm:"type:text"`
	Points       int64     `gorm:"column:points;not null;default:0"`
	Rank         string    `gorm:"column:rank_tier;size:16;not null;default:Bronze"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
