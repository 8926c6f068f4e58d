package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/tgsub_go_server/internal/model/dto"
	"github.com/qs3c/tgsub_go_server/internal/pkg/response"
	"github.com/qs3c/tgsub_go_server/internal/service"
)

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

// Create 创建订阅套餐
// POST /api/v1/creator/:id/plan
func (h *PlanHandler) Create(c *gin.Context) {
	creatorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || creatorID <= 0 {
		response.ParamError(c, "创作者ID无效")
		return
	}

	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.planService.CreatePlan(creatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCreatorNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInvalidPrice), errors.Is(err, service.ErrInvalidDuration):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Created(c, resp)
}

// List 列出创作者的有效套餐
// GET /api/v1/creator/:id/plans
func (h *PlanHandler) List(c *gin.Context) {
	creatorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || creatorID <= 0 {
		response.ParamError(c, "创作者ID无效")
		return
	}

	resp, err := h.planService.ListActivePlans(creatorID)
	if err != nil {
		if errors.Is(err, service.ErrCreatorNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, resp)
}
