package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qs3c/tgsub_go_server/internal/model"
	"github.com/qs3c/tgsub_go_server/internal/model/dto"
	"github.com/qs3c/tgsub_go_server/internal/pkg/razorpay"
	"github.com/qs3c/tgsub_go_server/internal/repository"
)

var (
	ErrAlreadySubscribed  = errors.New("已订阅该创作者，无需重复购买")
	ErrGatewayUnavailable = errors.New("支付网关暂不可用")
)

const (
	orderCurrency       = "INR"
	gatewayMaxAttempts  = 3
	gatewayRetryBackoff = 2 * time.Second
)

type OrderService struct {
	orderRepo *repository.OrderRepository
	planRepo  *repository.PlanRepository
	subRepo   *repository.SubscriptionRepository
	gateway   PaymentGateway
	backoff   time.Duration
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	planRepo *repository.PlanRepository,
	subRepo *repository.SubscriptionRepository,
	gateway PaymentGateway,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		planRepo:  planRepo,
		subRepo:   subRepo,
		gateway:   gateway,
		backoff:   gatewayRetryBackoff,
	}
}

// CreateOrder 创建或复用支付订单。
// 同一 (用户, 套餐) 下已有未支付订单时直接返回原订单，重复点结账不产生新单。
func (s *OrderService) CreateOrder(ctx context.Context, planID, userID int64) (*dto.CreateOrderResponse, error) {
	plan, err := s.planRepo.GetActiveByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	// 已有未到期的生效订阅则拒绝下单
	sub, err := s.subRepo.GetActiveByUserAndCreator(userID, plan.CreatorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && sub.EndDate.After(time.Now()) {
		return nil, ErrAlreadySubscribed
	}

	existing, err := s.orderRepo.GetCreatedByUserAndPlan(userID, planID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		if existing.RazorpayOrderID != "" {
			return s.buildResponse(existing), nil
		}
		// 历史脏数据：缺少网关订单号的单子无法支付，删掉重新下单
		if err := s.orderRepo.Delete(existing.ID); err != nil {
			return nil, err
		}
	}

	gatewayOrder, err := s.createGatewayOrder(ctx, plan.Price*100)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID:          userID,
		PlanID:          plan.ID,
		CreatorID:       plan.CreatorID,
		RazorpayOrderID: gatewayOrder.ID,
		Amount:          plan.Price,
		Status:          model.OrderStatusCreated,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	return s.buildResponse(order), nil
}

// createGatewayOrder 调网关下单，固定间隔重试
func (s *OrderService) createGatewayOrder(ctx context.Context, amountPaise int) (*razorpay.Order, error) {
	receipt := uuid.NewString()

	var lastErr error
	for attempt := 1; attempt <= gatewayMaxAttempts; attempt++ {
		order, err := s.gateway.CreateOrder(ctx, amountPaise, orderCurrency, receipt)
		if err == nil {
			return order, nil
		}
		lastErr = err
		log.Printf("Gateway create order failed (attempt %d/%d): %v", attempt, gatewayMaxAttempts, err)

		if attempt < gatewayMaxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.backoff):
			}
		}
	}

	log.Printf("Gateway unavailable after %d attempts: %v", gatewayMaxAttempts, lastErr)
	return nil, ErrGatewayUnavailable
}

func (s *OrderService) buildResponse(order *model.Order) *dto.CreateOrderResponse {
	return &dto.CreateOrderResponse{
		OrderID:  order.RazorpayOrderID,
		Amount:   order.Amount * 100,
		Currency: orderCurrency,
		KeyID:    s.gateway.KeyID(),
	}
}
