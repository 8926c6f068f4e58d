package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/tgsub_go_server/internal/model/dto"
	"github.com/qs3c/tgsub_go_server/internal/pkg/response"
	"github.com/qs3c/tgsub_go_server/internal/service"
)

type CreatorHandler struct {
	creatorService *service.CreatorService
}

func NewCreatorHandler(creatorService *service.CreatorService) *CreatorHandler {
	return &CreatorHandler{
		creatorService: creatorService,
	}
}

// Register 注册创作者
// POST /api/v1/creator/register
func (h *CreatorHandler) Register(c *gin.Context) {
	var req dto.RegisterCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.creatorService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCreatorExists):
			response.ConflictError(c, err.Error())
		case errors.Is(err, service.ErrNoGroups):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Created(c, resp)
}
