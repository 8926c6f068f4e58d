package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/tgsub_go_server/internal/model"
)

type CreatorRepository struct {
	db *gorm.DB
}

func NewCreatorRepository(db *gorm.DB) *CreatorRepository {
	return &CreatorRepository{db: db}
}

func (r *CreatorRepository) Create(creator *model.Creator) error {
	return r.db.Create(creator).Error
}

func (r *CreatorRepository) GetByID(id int64) (*model.Creator, error) {
	var creator model.Creator
	err := r.db.Where("id = ?", id).First(&creator).Error
	if err != nil {
		return nil, err
	}
	return &creator, nil
}

func (r *CreatorRepository) GetByTelegramID(telegramID int64) (*model.Creator, error) {
	var creator model.Creator
	err := r.db.Where("telegram_id = ?", telegramID).First(&creator).Error
	if err != nil {
		return nil, err
	}
	return &creator, nil
}

func (r *CreatorRepository) ExistsByTelegramID(telegramID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Creator{}).Where("telegram_id = ?", telegramID).Count(&count).Error
	return count > 0, err
}
