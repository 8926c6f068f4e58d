package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/tgsub_go_server/internal/model"
)

var fixtureSeq int64

func nextSeq() int64 {
	return atomic.AddInt64(&fixtureSeq, 1)
}

// CreatorOption 创作者夹具选项
type CreatorOption func(*model.Creator)

func WithGroupIDs(ids ...int64) CreatorOption {
	return func(c *model.Creator) {
		_ = c.SetGroupIDs(ids)
	}
}

func WithBotToken(encrypted string) CreatorOption {
	return func(c *model.Creator) {
		c.BotTokenEncrypted = encrypted
	}
}

func WithInactiveCreator() CreatorOption {
	return func(c *model.Creator) {
		c.IsActive = false
	}
}

// TestCreator 创建测试创作者
func TestCreator(t *testing.T, db *gorm.DB, opts ...CreatorOption) *model.Creator {
	t.Helper()

	seq := nextSeq()
	creator := &model.Creator{
		TelegramID:        100000 + seq,
		Name:              fmt.Sprintf("creator-%d", seq),
		BotTokenEncrypted: "encrypted-token",
		IsActive:          true,
	}
	_ = creator.SetGroupIDs([]int64{-1000000 - seq})

	for _, opt := range opts {
		opt(creator)
	}

	if err := db.Create(creator).Error; err != nil {
		t.Fatalf("Failed to create test creator: %v", err)
	}
	return creator
}

// PlanOption 套餐夹具选项
type PlanOption func(*model.Plan)

func WithPrice(price int) PlanOption {
	return func(p *model.Plan) {
		p.Price = price
	}
}

func WithDurationDays(days int) PlanOption {
	return func(p *model.Plan) {
		p.DurationDays = days
	}
}

func WithInactivePlan() PlanOption {
	return func(p *model.Plan) {
		p.IsActive = false
	}
}

// TestPlan 创建测试套餐
func TestPlan(t *testing.T, db *gorm.DB, creatorID int64, opts ...PlanOption) *model.Plan {
	t.Helper()

	plan := &model.Plan{
		CreatorID:    creatorID,
		Name:         fmt.Sprintf("plan-%d", nextSeq()),
		Price:        199,
		DurationDays: 30,
		IsActive:     true,
	}

	for _, opt := range opts {
		opt(plan)
	}

	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}
	return plan
}

// TestOrder 创建测试订单
func TestOrder(t *testing.T, db *gorm.DB, userID int64, plan *model.Plan, status string) *model.Order {
	t.Helper()

	order := &model.Order{
		UserID:          userID,
		PlanID:          plan.ID,
		CreatorID:       plan.CreatorID,
		RazorpayOrderID: fmt.Sprintf("order_test%d", nextSeq()),
		Amount:          plan.Price,
		Status:          status,
	}

	if err := db.Create(order).Error; err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}
	return order
}

// TestSubscription 创建测试订阅
func TestSubscription(t *testing.T, db *gorm.DB, userID, creatorID, planID int64, endDate time.Time, active bool) *model.Subscription {
	t.Helper()

	sub := &model.Subscription{
		UserID:    userID,
		CreatorID: creatorID,
		PlanID:    planID,
		StartDate: endDate.AddDate(0, 0, -30),
		EndDate:   endDate,
		IsActive:  active,
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}
	return sub
}
