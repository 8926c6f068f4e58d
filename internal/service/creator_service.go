package service

import (
	"errors"

	"github.com/qs3c/tgsub_go_server/internal/model"
	"github.com/qs3c/tgsub_go_server/internal/model/dto"
	"github.com/qs3c/tgsub_go_server/internal/pkg/crypto"
	"github.com/qs3c/tgsub_go_server/internal/repository"
)

var (
	ErrCreatorExists   = errors.New("创作者已注册")
	ErrCreatorNotFound = errors.New("创作者不存在")
	ErrNoGroups        = errors.New("至少需要一个群组")
)

type CreatorService struct {
	creatorRepo *repository.CreatorRepository
	vault       *crypto.Vault
}

func NewCreatorService(creatorRepo *repository.CreatorRepository, vault *crypto.Vault) *CreatorService {
	return &CreatorService{
		creatorRepo: creatorRepo,
		vault:       vault,
	}
}

// Register 注册创作者，bot token 加密后入库
func (s *CreatorService) Register(req *dto.RegisterCreatorRequest) (*dto.RegisterCreatorResponse, error) {
	if len(req.GroupIDs) == 0 {
		return nil, ErrNoGroups
	}

	exists, err := s.creatorRepo.ExistsByTelegramID(req.TelegramID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCreatorExists
	}

	encrypted, err := s.vault.Encrypt(req.BotToken)
	if err != nil {
		return nil, err
	}

	creator := &model.Creator{
		TelegramID:        req.TelegramID,
		Name:              req.Name,
		BotTokenEncrypted: encrypted,
		IsActive:          true,
	}
	if err := creator.SetGroupIDs(req.GroupIDs); err != nil {
		return nil, err
	}

	if err := s.creatorRepo.Create(creator); err != nil {
		return nil, err
	}

	return &dto.RegisterCreatorResponse{
		CreatorID: creator.ID,
	}, nil
}

// GetByID 根据 ID 获取创作者
func (s *CreatorService) GetByID(id int64) (*model.Creator, error) {
	return s.creatorRepo.GetByID(id)
}
