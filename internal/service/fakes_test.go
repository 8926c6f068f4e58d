package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/qs3c/tgsub_go_server/internal/pkg/razorpay"
)

// fakeGateway 可控的支付网关桩
type fakeGateway struct {
	mu          sync.Mutex
	createCalls int
	failFirst   int // 前 N 次下单失败
	lastAmount  int
	lastReceipt string
}

func (f *fakeGateway) KeyID() string { return "key_test" }

func (f *fakeGateway) CreateOrder(ctx context.Context, amountPaise int, currency, receipt string) (*razorpay.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.createCalls <= f.failFirst {
		return nil, errors.New("gateway down")
	}
	f.lastAmount = amountPaise
	f.lastReceipt = receipt
	return &razorpay.Order{
		ID:       fmt.Sprintf("order_fake%d", f.createCalls),
		Amount:   amountPaise,
		Currency: currency,
		Status:   "created",
	}, nil
}

func (f *fakeGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return signature == "valid"
}

func (f *fakeGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	return signature == "valid"
}

// fakeBot 记录调用的消息平台桩
type fakeBot struct {
	mu        sync.Mutex
	invites   []string // "token:group"
	messages  []string // "token:chat:text"
	bans      []string // "token:group:user"
	unbans    []string
	inviteErr error
	sendErr   error
	banErr    error
}

func (f *fakeBot) CreateInviteLink(ctx context.Context, botToken string, chatID int64, expireAt time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inviteErr != nil {
		return "", f.inviteErr
	}
	f.invites = append(f.invites, fmt.Sprintf("%s:%d", botToken, chatID))
	return "https://t.me/+fake", nil
}

func (f *fakeBot) SendMessage(ctx context.Context, botToken string, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sendErr != nil {
		return f.sendErr
	}
	f.messages = append(f.messages, fmt.Sprintf("%s:%d:%s", botToken, chatID, text))
	return nil
}

func (f *fakeBot) BanChatMember(ctx context.Context, botToken string, chatID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.banErr != nil {
		return f.banErr
	}
	f.bans = append(f.bans, fmt.Sprintf("%s:%d:%d", botToken, chatID, userID))
	return nil
}

func (f *fakeBot) UnbanChatMember(ctx context.Context, botToken string, chatID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.unbans = append(f.unbans, fmt.Sprintf("%s:%d:%d", botToken, chatID, userID))
	return nil
}
