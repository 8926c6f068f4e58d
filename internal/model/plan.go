package model

import (
	"time"
)

type Plan struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	CreatorID    int64     `gorm:"not null;index" json:"creator_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Price        int       `gorm:"not null" json:"price"` // 卢比（整数）
	DurationDays int       `gorm:"not null" json:"duration_days"`
	Description  string    `gorm:"size:500" json:"description,omitempty"`
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Plan) TableName() string {
	return "plans"
}
