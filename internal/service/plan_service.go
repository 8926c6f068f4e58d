package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/tgsub_go_server/internal/model"
	"github.com/qs3c/tgsub_go_server/internal/model/dto"
	"github.com/qs3c/tgsub_go_server/internal/repository"
)

var (
	ErrPlanNotFound    = errors.New("套餐不存在")
	ErrInvalidPrice    = errors.New("价格必须为正整数")
	ErrInvalidDuration = errors.New("订阅天数必须为正整数")
)

type PlanService struct {
	planRepo    *repository.PlanRepository
	creatorRepo *repository.CreatorRepository
}

func NewPlanService(planRepo *repository.PlanRepository, creatorRepo *repository.CreatorRepository) *PlanService {
	return &PlanService{
		planRepo:    planRepo,
		creatorRepo: creatorRepo,
	}
}

// CreatePlan 为创作者创建付费套餐
func (s *PlanService) CreatePlan(creatorID int64, req *dto.CreatePlanRequest) (*dto.CreatePlanResponse, error) {
	if req.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if req.DurationDays <= 0 {
		return nil, ErrInvalidDuration
	}

	if _, err := s.creatorRepo.GetByID(creatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, err
	}

	plan := &model.Plan{
		CreatorID:    creatorID,
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Description:  req.Description,
		IsActive:     true,
	}

	if err := s.planRepo.Create(plan); err != nil {
		return nil, err
	}

	return &dto.CreatePlanResponse{
		PlanID: plan.ID,
	}, nil
}

// ListActivePlans 列出创作者可售的套餐
func (s *PlanService) ListActivePlans(creatorID int64) (*dto.PlanListResponse, error) {
	if _, err := s.creatorRepo.GetByID(creatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, err
	}

	plans, err := s.planRepo.ListActiveByCreator(creatorID)
	if err != nil {
		return nil, err
	}

	resp := &dto.PlanListResponse{
		Plans: make([]dto.PlanInfo, 0, len(plans)),
	}
	for _, p := range plans {
		resp.Plans = append(resp.Plans, dto.PlanInfo{
			ID:           p.ID,
			Name:         p.Name,
			Price:        p.Price,
			DurationDays: p.DurationDays,
			Description:  p.Description,
		})
	}

	return resp, nil
}
