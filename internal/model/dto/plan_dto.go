package dto

type CreatePlanRequest struct {
	Name         string `json:"name" binding:"required"`
	Price        int    `json:"price" binding:"required"`
	DurationDays int    `json:"duration_days" binding:"required"`
	Description  string `json:"description"`
}

type CreatePlanResponse struct {
	PlanID int64 `json:"plan_id"`
}

type PlanInfo struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        int    `json:"price"`
	DurationDays int    `json:"duration_days"`
	Description  string `json:"description,omitempty"`
}

type PlanListResponse struct {
	Plans []PlanInfo `json:"plans"`
}
