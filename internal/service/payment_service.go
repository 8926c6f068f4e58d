package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/tgsub_go_server/config"
	"github.com/qs3c/tgsub_go_server/internal/model"
	"github.com/qs3c/tgsub_go_server/internal/model/dto"
	"github.com/qs3c/tgsub_go_server/internal/pkg/crypto"
	"github.com/qs3c/tgsub_go_server/internal/pkg/razorpay"
	"github.com/qs3c/tgsub_go_server/internal/repository"
)

var (
	ErrOrderNotFound     = errors.New("订单不存在")
	ErrSignatureMismatch = errors.New("签名校验失败")
	ErrInvalidPayload    = errors.New("回调负载无效")
)

// PaymentService 对账核心：把网关的支付确认转成订阅状态变更，
// 在 at-least-once 投递下保证每笔已支付订单只产生一次订阅变更。
type PaymentService struct {
	orderRepo   *repository.OrderRepository
	planRepo    *repository.PlanRepository
	subRepo     *repository.SubscriptionRepository
	creatorRepo *repository.CreatorRepository
	gateway     PaymentGateway
	bot         BotGateway
	vault       *crypto.Vault
	cfg         *config.Config
}

func NewPaymentService(
	orderRepo *repository.OrderRepository,
	planRepo *repository.PlanRepository,
	subRepo *repository.SubscriptionRepository,
	creatorRepo *repository.CreatorRepository,
	gateway PaymentGateway,
	bot BotGateway,
	vault *crypto.Vault,
	cfg *config.Config,
) *PaymentService {
	return &PaymentService{
		orderRepo:   orderRepo,
		planRepo:    planRepo,
		subRepo:     subRepo,
		creatorRepo: creatorRepo,
		gateway:     gateway,
		bot:         bot,
		vault:       vault,
		cfg:         cfg,
	}
}

// VerifyPayment 处理买家回传的支付凭证
func (s *PaymentService) VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (string, error) {
	if !s.gateway.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		log.Printf("[SECURITY] payment signature mismatch for order %s", req.RazorpayOrderID)
		return "", ErrSignatureMismatch
	}

	return s.settle(ctx, req.RazorpayOrderID)
}

// HandleWebhook 处理网关推送的支付通知
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) (string, error) {
	if !s.gateway.VerifyWebhookSignature(body, signature) {
		log.Printf("[SECURITY] webhook signature mismatch")
		return "", ErrSignatureMismatch
	}

	event, err := razorpay.ParseWebhookEvent(body)
	if err != nil {
		return "", ErrInvalidPayload
	}

	// 与支付无关的事件确认收到但不处理
	if !event.IsPaid() {
		return dto.WebhookResultIgnored, nil
	}

	orderID := event.OrderID()
	if orderID == "" {
		return "", ErrInvalidPayload
	}

	return s.settle(ctx, orderID)
}

// settle 两条入口共用的结算路径。
// MarkPaid 的条件更新是唯一串行化点，CAS 落空即视为重复通知。
func (s *PaymentService) settle(ctx context.Context, razorpayOrderID string) (string, error) {
	order, err := s.orderRepo.GetByRazorpayOrderID(razorpayOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrOrderNotFound
		}
		return "", err
	}

	// 下架套餐的已有订单仍然有效，按 ID 直接读取
	plan, err := s.planRepo.GetByID(order.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrPlanNotFound
		}
		return "", err
	}

	now := time.Now()
	marked, err := s.orderRepo.MarkPaid(order.ID, now)
	if err != nil {
		return "", err
	}
	if !marked {
		return dto.WebhookResultAlreadyProcessed, nil
	}

	if err := s.apply(order, plan, now); err != nil {
		return "", err
	}

	// 支付状态已落库，入群链接是尽力而为的副作用，失败不回滚
	s.grantAccess(ctx, order)

	return dto.WebhookResultActivated, nil
}

// apply 延长现有订阅或新建订阅。
// 到期前续费在剩余时间上叠加；到期后（清理扫描前的宽限期内）续费从当前时间重新起算。
func (s *PaymentService) apply(order *model.Order, plan *model.Plan, now time.Time) error {
	sub, err := s.subRepo.GetActiveByUserAndCreator(order.UserID, order.CreatorID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return s.subRepo.Create(&model.Subscription{
			UserID:    order.UserID,
			CreatorID: order.CreatorID,
			PlanID:    plan.ID,
			StartDate: now,
			EndDate:   now.AddDate(0, 0, plan.DurationDays),
			IsActive:  true,
		})
	}

	base := sub.EndDate
	if base.Before(now) {
		base = now
	}
	return s.subRepo.Extend(sub.ID, plan.ID, base.AddDate(0, 0, plan.DurationDays))
}

// grantAccess 用创作者机器人生成一次性限时入群链接并私聊发给买家。
// 任何失败只记日志：订阅状态才是权威，链接可人工补发。
func (s *PaymentService) grantAccess(ctx context.Context, order *model.Order) {
	creator, err := s.creatorRepo.GetByID(order.CreatorID)
	if err != nil {
		log.Printf("Grant access: creator %d not found for order %d: %v", order.CreatorID, order.ID, err)
		return
	}

	token, err := s.vault.Decrypt(creator.BotTokenEncrypted)
	if err != nil {
		log.Printf("Grant access: failed to decrypt bot token for creator %d: %v", creator.ID, err)
		return
	}

	groupID, ok := creator.PrimaryGroupID()
	if !ok {
		log.Printf("Grant access: creator %d has no groups", creator.ID)
		return
	}

	expireHours := s.cfg.Reaper.InviteExpireHours
	if expireHours <= 0 {
		expireHours = 48
	}

	link, err := s.bot.CreateInviteLink(ctx, token, groupID, time.Now().Add(time.Duration(expireHours)*time.Hour))
	if err != nil {
		log.Printf("Grant access: failed to create invite link for order %d: %v", order.ID, err)
		return
	}

	text := fmt.Sprintf("感谢订阅！点击链接加入群组（%d小时内有效，仅限一次）：%s", expireHours, link)
	if err := s.bot.SendMessage(ctx, token, order.UserID, text); err != nil {
		log.Printf("Grant access: failed to send invite link for order %d: %v", order.ID, err)
	}
}
