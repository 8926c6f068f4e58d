package service

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/tgsub_go_server/internal/model/dto"
	"github.com/qs3c/tgsub_go_server/internal/pkg/crypto"
	"github.com/qs3c/tgsub_go_server/internal/repository"
	"github.com/qs3c/tgsub_go_server/internal/testutil"
)

func testVault(t *testing.T) *crypto.Vault {
	t.Helper()

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	vault, err := crypto.NewVault(hex.EncodeToString(key))
	require.NoError(t, err)
	return vault
}

func setupCreatorService(t *testing.T) (*CreatorService, *gorm.DB, *crypto.Vault) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	vault := testVault(t)
	svc := NewCreatorService(repository.NewCreatorRepository(db), vault)
	return svc, db, vault
}

func TestCreatorService_Register(t *testing.T) {
	svc, db, vault := setupCreatorService(t)

	resp, err := svc.Register(&dto.RegisterCreatorRequest{
		TelegramID: 12345,
		Name:       "alice",
		BotToken:   "123456:ABC-token",
		GroupIDs:   []int64{-100111, -100222},
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.CreatorID)

	creator, err := repository.NewCreatorRepository(db).GetByID(resp.CreatorID)
	require.NoError(t, err)
	assert.True(t, creator.IsActive)
	assert.Equal(t, []int64{-100111, -100222}, creator.GroupIDList())

	// token 加密入库，且能用同一密钥还原
	assert.NotEqual(t, "123456:ABC-token", creator.BotTokenEncrypted)
	decrypted, err := vault.Decrypt(creator.BotTokenEncrypted)
	require.NoError(t, err)
	assert.Equal(t, "123456:ABC-token", decrypted)
}

func TestCreatorService_Register_Duplicate(t *testing.T) {
	svc, _, _ := setupCreatorService(t)

	req := &dto.RegisterCreatorRequest{
		TelegramID: 12345,
		Name:       "alice",
		BotToken:   "tok",
		GroupIDs:   []int64{-100111},
	}

	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.ErrorIs(t, err, ErrCreatorExists)
}

func TestCreatorService_Register_NoGroups(t *testing.T) {
	svc, _, _ := setupCreatorService(t)

	_, err := svc.Register(&dto.RegisterCreatorRequest{
		TelegramID: 12345,
		Name:       "alice",
		BotToken:   "tok",
		GroupIDs:   []int64{},
	})
	assert.ErrorIs(t, err, ErrNoGroups)
}
