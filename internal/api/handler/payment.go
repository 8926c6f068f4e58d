package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/tgsub_go_server/internal/model/dto"
	"github.com/qs3c/tgsub_go_server/internal/pkg/response"
	"github.com/qs3c/tgsub_go_server/internal/service"
)

// 网关签名请求头，Razorpay 官方文档规定
const webhookSignatureHeader = "X-Razorpay-Signature"

type PaymentHandler struct {
	orderService   *service.OrderService
	paymentService *service.PaymentService
}

func NewPaymentHandler(orderService *service.OrderService, paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		orderService:   orderService,
		paymentService: paymentService,
	}
}

// CreateOrder 创建支付订单
// POST /api/v1/payment/create-order?planId=&buyerId=
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	planID, err := strconv.ParseInt(c.Query("planId"), 10, 64)
	if err != nil || planID <= 0 {
		response.ParamError(c, "套餐ID无效")
		return
	}
	buyerID, err := strconv.ParseInt(c.Query("buyerId"), 10, 64)
	if err != nil || buyerID <= 0 {
		response.ParamError(c, "买家ID无效")
		return
	}

	resp, err := h.orderService.CreateOrder(c.Request.Context(), planID, buyerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrAlreadySubscribed):
			response.ConflictError(c, err.Error())
		case errors.Is(err, service.ErrGatewayUnavailable):
			response.GatewayError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, resp)
}

// Verify 前端回传支付结果，校验签名并结算
// POST /api/v1/payment/verify
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.paymentService.VerifyPayment(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSignatureMismatch):
			response.SignatureError(c, err.Error())
		case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrPlanNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, &dto.WebhookResponse{Status: result})
}

// Webhook 网关异步通知，对原始报文验签
// POST /api/v1/payment/webhook
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.ParamError(c, "读取请求体失败")
		return
	}

	result, err := h.paymentService.HandleWebhook(c.Request.Context(), body, c.GetHeader(webhookSignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSignatureMismatch):
			response.SignatureError(c, err.Error())
		case errors.Is(err, service.ErrInvalidPayload):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrPlanNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, &dto.WebhookResponse{Status: result})
}
