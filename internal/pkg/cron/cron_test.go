package cron

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/tgsub_go_server/internal/model"
	"github.com/qs3c/tgsub_go_server/internal/pkg/crypto"
	"github.com/qs3c/tgsub_go_server/internal/repository"
	"github.com/qs3c/tgsub_go_server/internal/service"
	"github.com/qs3c/tgsub_go_server/internal/testutil"
)

type noopBot struct{}

func (noopBot) CreateInviteLink(ctx context.Context, botToken string, chatID int64, expireAt time.Time) (string, error) {
	return "https://t.me/+noop", nil
}

func (noopBot) SendMessage(ctx context.Context, botToken string, chatID int64, text string) error {
	return nil
}

func (noopBot) BanChatMember(ctx context.Context, botToken string, chatID, userID int64) error {
	return nil
}

func (noopBot) UnbanChatMember(ctx context.Context, botToken string, chatID, userID int64) error {
	return nil
}

func setupCronService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	key := make([]byte, 32)
	vault, err := crypto.NewVault(hex.EncodeToString(key))
	require.NoError(t, err)

	expiryService := service.NewExpiryService(
		repository.NewSubscriptionRepository(db),
		repository.NewCreatorRepository(db),
		noopBot{},
		vault,
	)

	return NewService(expiryService, nil, time.Minute), db
}

func TestNewService_DefaultInterval(t *testing.T) {
	svc := NewService(nil, nil, 0)
	assert.Equal(t, 5*time.Minute, svc.interval)
	assert.NotNil(t, svc.stopChan)
}

func TestService_StartAndStop(t *testing.T) {
	svc, _ := setupCronService(t)

	svc.Start()
	time.Sleep(10 * time.Millisecond)
	svc.Stop()
	time.Sleep(10 * time.Millisecond)
}

func TestService_StopBeforeStart(t *testing.T) {
	svc, _ := setupCronService(t)

	svc.Stop()
}

func TestService_RunNow(t *testing.T) {
	svc, db := setupCronService(t)

	creator := testutil.TestCreator(t, db)
	plan := testutil.TestPlan(t, db, creator.ID)
	sub := testutil.TestSubscription(t, db, 42, creator.ID, plan.ID,
		time.Now().Add(-time.Second), true)

	require.NoError(t, svc.RunNow())

	var updated model.Subscription
	require.NoError(t, db.First(&updated, sub.ID).Error)
	assert.False(t, updated.IsActive)
}

func TestService_RunNow_Empty(t *testing.T) {
	svc, _ := setupCronService(t)

	assert.NoError(t, svc.RunNow())
}
