package service

import (
	"context"
	"time"

	"github.com/qs3c/tgsub_go_server/internal/pkg/razorpay"
)

// PaymentGateway 支付网关协作方（生产实现为 razorpay.Client）
type PaymentGateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, amountPaise int, currency, receipt string) (*razorpay.Order, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
	VerifyWebhookSignature(body []byte, signature string) bool
}

// BotGateway 消息平台协作方（生产实现为 telegram.Client）
type BotGateway interface {
	CreateInviteLink(ctx context.Context, botToken string, chatID int64, expireAt time.Time) (string, error)
	SendMessage(ctx context.Context, botToken string, chatID int64, text string) error
	BanChatMember(ctx context.Context, botToken string, chatID, userID int64) error
	UnbanChatMember(ctx context.Context, botToken string, chatID, userID int64) error
}
