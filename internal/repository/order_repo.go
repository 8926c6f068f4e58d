package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/tgsub_go_server/internal/model"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *OrderRepository) GetByID(id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) GetByRazorpayOrderID(razorpayOrderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.Where("razorpay_order_id = ?", razorpayOrderID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetCreatedByUserAndPlan 查找同一用户同一套餐下未支付的订单
func (r *OrderRepository) GetCreatedByUserAndPlan(userID, planID int64) (*model.Order, error) {
	var order model.Order
	err := r.db.Where("user_id = ? AND plan_id = ? AND status = ?",
		userID, planID, model.OrderStatusCreated).
		Order("created_at DESC").
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Delete(id int64) error {
	return r.db.Delete(&model.Order{}, id).Error
}

// MarkPaid 原子地把订单从 created 置为 paid。
// 条件更新是对账的唯一串行化点：返回 false 表示已被并发请求处理过。
func (r *OrderRepository) MarkPaid(id int64, paidAt time.Time) (bool, error) {
	result := r.db.Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderStatusCreated).
		Updates(map[string]interface{}{
			"status":  model.OrderStatusPaid,
			"paid_at": paidAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
