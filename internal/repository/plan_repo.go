package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/tgsub_go_server/internal/model"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(plan *model.Plan) error {
	return r.db.Create(plan).Error
}

func (r *PlanRepository) GetByID(id int64) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetActiveByID 获取未下架的套餐
func (r *PlanRepository) GetActiveByID(id int64) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListActiveByCreator 按创建时间列出创作者未下架的套餐
func (r *PlanRepository) ListActiveByCreator(creatorID int64) ([]*model.Plan, error) {
	var plans []*model.Plan
	err := r.db.Where("creator_id = ? AND is_active = ?", creatorID, true).
		Order("created_at ASC").
		Find(&plans).Error
	return plans, err
}

// Deactivate 下架套餐（软删除），已有订单和订阅继续有效
func (r *PlanRepository) Deactivate(id int64) error {
	return r.db.Model(&model.Plan{}).Where("id = ?", id).Update("is_active", false).Error
}
