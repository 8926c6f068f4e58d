package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/tgsub_go_server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *SubscriptionRepository) GetByID(id int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetActiveByUserAndCreator 查找用户在某创作者下的生效订阅。
// 不变式：每个 (user, creator) 至多一条 is_active=true 的记录。
func (r *SubscriptionRepository) GetActiveByUserAndCreator(userID, creatorID int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("user_id = ? AND creator_id = ? AND is_active = ?",
		userID, creatorID, true).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Extend 续期：更新到期时间和最近使用的套餐
func (r *SubscriptionRepository) Extend(id, planID int64, endDate time.Time) error {
	return r.db.Model(&model.Subscription{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"plan_id":  planID,
			"end_date": endDate,
		}).Error
}

// ListExpired 列出已到期但仍生效的订阅
func (r *SubscriptionRepository) ListExpired(now time.Time) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := r.db.Where("is_active = ? AND end_date <= ?", true, now).
		Order("end_date ASC").
		Find(&subs).Error
	return subs, err
}

// Deactivate 条件失效：只有仍然生效且确实已到期的行才会被更新。
// 清理扫描期间被并发续期的订阅不满足条件，返回 false 并保持生效。
func (r *SubscriptionRepository) Deactivate(id int64, now time.Time) (bool, error) {
	result := r.db.Model(&model.Subscription{}).
		Where("id = ? AND is_active = ? AND end_date <= ?", id, true, now).
		Updates(map[string]interface{}{
			"is_active":  false,
			"expired_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
