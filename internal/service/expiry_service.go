package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/tgsub_go_server/internal/model"
	"github.com/qs3c/tgsub_go_server/internal/pkg/crypto"
	"github.com/qs3c/tgsub_go_server/internal/repository"
)

// ExpiryService 到期清理：把用户移出群组并让订阅失效。
// 订阅状态变更是权威的，踢人失败最多让访问多存活一个扫描周期。
type ExpiryService struct {
	subRepo     *repository.SubscriptionRepository
	creatorRepo *repository.CreatorRepository
	bot         BotGateway
	vault       *crypto.Vault
}

func NewExpiryService(
	subRepo *repository.SubscriptionRepository,
	creatorRepo *repository.CreatorRepository,
	bot BotGateway,
	vault *crypto.Vault,
) *ExpiryService {
	return &ExpiryService{
		subRepo:     subRepo,
		creatorRepo: creatorRepo,
		bot:         bot,
		vault:       vault,
	}
}

// Sweep 处理一轮到期订阅，返回本轮失效的数量。
// 单条失败只记日志，不中断整批。
func (s *ExpiryService) Sweep(ctx context.Context) (int, error) {
	now := time.Now()

	subs, err := s.subRepo.ListExpired(now)
	if err != nil {
		return 0, err
	}

	deactivated := 0
	for _, sub := range subs {
		if s.sweepOne(ctx, sub, now) {
			deactivated++
		}
	}

	if len(subs) > 0 {
		log.Printf("Expiry sweep: %d candidates, %d deactivated", len(subs), deactivated)
	}
	return deactivated, nil
}

func (s *ExpiryService) sweepOne(ctx context.Context, sub *model.Subscription, now time.Time) bool {
	creator, err := s.creatorRepo.GetByID(sub.CreatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 创作者记录丢失的孤儿订阅：跳过，留待人工处理
			log.Printf("Expiry sweep: creator %d missing for subscription %d, skipped", sub.CreatorID, sub.ID)
			return false
		}
		log.Printf("Expiry sweep: failed to load creator %d: %v", sub.CreatorID, err)
		return false
	}

	s.revokeAccess(ctx, creator, sub.UserID)

	// 条件更新：扫描期间刚续费的订阅不满足条件，静默保留
	ok, err := s.subRepo.Deactivate(sub.ID, now)
	if err != nil {
		log.Printf("Expiry sweep: failed to deactivate subscription %d: %v", sub.ID, err)
		return false
	}
	if ok {
		log.Printf("Expiry sweep: user %d removed, subscription %d deactivated", sub.UserID, sub.ID)
	}
	return ok
}

// revokeAccess 在创作者的每个群组里踢出用户（封禁后立即解封，允许日后重新加入）。
// 失败只记日志，不阻止订阅失效。
func (s *ExpiryService) revokeAccess(ctx context.Context, creator *model.Creator, userID int64) {
	token, err := s.vault.Decrypt(creator.BotTokenEncrypted)
	if err != nil {
		log.Printf("Expiry sweep: failed to decrypt bot token for creator %d: %v", creator.ID, err)
		return
	}

	for _, groupID := range creator.GroupIDList() {
		if err := s.bot.BanChatMember(ctx, token, groupID, userID); err != nil {
			log.Printf("Expiry sweep: failed to ban user %d in group %d: %v", userID, groupID, err)
			continue
		}
		if err := s.bot.UnbanChatMember(ctx, token, groupID, userID); err != nil {
			log.Printf("Expiry sweep: failed to unban user %d in group %d: %v", userID, groupID, err)
		}
	}
}
