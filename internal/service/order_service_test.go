package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/tgsub_go_server/internal/model"
	"github.com/qs3c/tgsub_go_server/internal/repository"
	"github.com/qs3c/tgsub_go_server/internal/testutil"
)

func setupOrderService(t *testing.T) (*OrderService, *gorm.DB, *fakeGateway) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	gateway := &fakeGateway{}
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewPlanRepository(db),
		repository.NewSubscriptionRepository(db),
		gateway,
	)
	svc.backoff = time.Millisecond
	return svc, db, gateway
}

func TestOrderService_CreateOrder(t *testing.T) {
	svc, db, gateway := setupOrderService(t)
	creator := testutil.TestCreator(t, db)
	plan := testutil.TestPlan(t, db, creator.ID, testutil.WithPrice(199))

	resp, err := svc.CreateOrder(context.Background(), plan.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, "order_fake1", resp.OrderID)
	assert.Equal(t, 19900, resp.Amount) // 卢比转派萨
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "key_test", resp.KeyID)
	assert.Equal(t, 19900, gateway.lastAmount)
	assert.NotEmpty(t, gateway.lastReceipt)

	// 订单落库：价格快照 + 冗余创作者
	order, err := repository.NewOrderRepository(db).GetByRazorpayOrderID("order_fake1")
	require.NoError(t, err)
	assert.Equal(t, 199, order.Amount)
	assert.Equal(t, creator.ID, order.CreatorID)
	assert.Equal(t, model.OrderStatusCreated, order.Status)
}

func TestOrderService_CreateOrder_PlanNotFound(t *testing.T) {
	svc, _, _ := setupOrderService(t)

	_, err := svc.CreateOrder(context.Background(), 99999, 42)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestOrderService_CreateOrder_InactivePlan(t *testing.T) {
	svc, db, _ := setupOrderService(t)
	creator := testutil.TestCreator(t, db)
	plan := testutil.TestPlan(t, db, creator.ID, testutil.WithInactivePlan())

	_, err := svc.CreateOrder(context.Background(), plan.ID, 42)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestOrderService_CreateOrder_AlreadySubscribed(t *testing.T) {
	svc, db, _ := setupOrderService(t)
	creator := testutil.TestCreator(t, db)
	plan := testutil.TestPlan(t, db, creator.ID)

	testutil.TestSubscription(t, db, 42, creator.ID, plan.ID, time.Now().AddDate(0, 0, 10), true)

	_, err := svc.CreateOrder(context.Background(), plan.ID, 42)
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestOrderService_CreateOrder_ExpiredButActiveSubscription(t *testing.T) {
	svc, db, _ := setupOrderService(t)
	creator := testutil.TestCreator(t, db)
	plan := testutil.TestPlan(t, db, creator.ID)

	// 已到期但清理还没跑：允许续费下单
	testutil.TestSubscription(t, db, 42, creator.ID, plan.ID, time.Now().Add(-time.Hour), true)

	resp, err := svc.CreateOrder(context.Background(), plan.ID, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.OrderID)
}

func TestOrderService_CreateOrder_ReusesPendingOrder(t *testing.T) {
	svc, db, gateway := setupOrderService(t)
	creator := testutil.TestCreator(t, db)
	plan := testutil.TestPlan(t, db, creator.ID)

	first, err := svc.CreateOrder(context.Background(), plan.ID, 42)
	require.NoError(t, err)

	// 重复点结账返回同一个支付订单，不重复调网关
	second, err := svc.CreateOrder(context.Background(), plan.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, 1, gateway.createCalls)
}

func TestOrderService_CreateOrder_ReplacesLegacyOrderWithoutArtifact(t *testing.T) {
	svc, db, _ := setupOrderService(t)
	creator := testutil.TestCreator(t, db)
	plan := testutil.TestPlan(t, db, creator.ID)

	orderRepo := repository.NewOrderRepository(db)

	// 缺少网关订单号的历史脏数据
	legacy := &model.Order{
		UserID:    42,
		PlanID:    plan.ID,
		CreatorID: creator.ID,
		Amount:    plan.Price,
		Status:    model.OrderStatusCreated,
	}
	require.NoError(t, orderRepo.Create(legacy))

	resp, err := svc.CreateOrder(context.Background(), plan.ID, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.OrderID)

	// 脏数据被删除，只剩新订单
	_, err = orderRepo.GetByID(legacy.ID)
	assert.Error(t, err)
}

func TestOrderService_CreateOrder_GatewayRetrySucceeds(t *testing.T) {
	svc, db, gateway := setupOrderService(t)
	creator := testutil.TestCreator(t, db)
	plan := testutil.TestPlan(t, db, creator.ID)

	gateway.failFirst = 2

	resp, err := svc.CreateOrder(context.Background(), plan.ID, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, 3, gateway.createCalls)
}

func TestOrderService_CreateOrder_GatewayUnavailable(t *testing.T) {
	svc, db, gateway := setupOrderService(t)
	creator := testutil.TestCreator(t, db)
	plan := testutil.TestPlan(t, db, creator.ID)

	gateway.failFirst = 3

	_, err := svc.CreateOrder(context.Background(), plan.ID, 42)
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.Equal(t, 3, gateway.createCalls)

	// 下单失败不落库
	var count int64
	require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}
