package model

import (
	"time"
)

const (
	OrderStatusCreated = "created"
	OrderStatusPaid    = "paid"
)

type Order struct {
	ID              int64      `gorm:"primaryKey" json:"id"`
	UserID          int64      `gorm:"not null;index:idx_orders_user_plan" json:"user_id"`
	PlanID          int64      `gorm:"not null;index:idx_orders_user_plan" json:"plan_id"`
	CreatorID       int64      `gorm:"not null" json:"creator_id"` // 下单时从套餐冗余，对账路径不再查套餐归属
	RazorpayOrderID string     `gorm:"size:100;uniqueIndex" json:"razorpay_order_id"`
	Amount          int        `gorm:"not null" json:"amount"` // 下单时的价格快照（卢比）
	Status          string     `gorm:"size:20;default:created;index" json:"status"` // created, paid
	CreatedAt       time.Time  `json:"created_at"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}
