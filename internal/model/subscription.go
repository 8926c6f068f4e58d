package model

import (
	"time"
)

type Subscription struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	UserID    int64      `gorm:"not null;index:idx_subs_user_creator" json:"user_id"`
	CreatorID int64      `gorm:"not null;index:idx_subs_user_creator" json:"creator_id"`
	PlanID    int64      `gorm:"not null" json:"plan_id"` // 最近一次续费使用的套餐
	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   time.Time  `gorm:"not null;index" json:"end_date"`
	IsActive  bool       `gorm:"default:true;index" json:"is_active"`
	ExpiredAt *time.Time `json:"expired_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
