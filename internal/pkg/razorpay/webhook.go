package razorpay

import (
	"encoding/json"
	"fmt"
)

// 触发对账的事件类型
const (
	EventPaymentLinkPaid = "payment_link.paid"
	EventOrderPaid       = "order.paid"
)

// WebhookEvent webhook 推送的事件，只解析对账需要的字段
type WebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Order struct {
			Entity struct {
				ID     string `json:"id"`
				Amount int    `json:"amount"`
				Status string `json:"status"`
			} `json:"entity"`
		} `json:"order"`
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
		PaymentLink struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Notes   struct {
					UserID    string `json:"user_id"`
					PlanID    string `json:"plan_id"`
					CreatorID string `json:"creator_id"`
				} `json:"notes"`
			} `json:"entity"`
		} `json:"payment_link"`
	} `json:"payload"`
}

// ParseWebhookEvent 解析 webhook 事件体
func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook body: %w", err)
	}
	if event.Event == "" {
		return nil, fmt.Errorf("webhook body missing event type")
	}
	return &event, nil
}

// IsPaid 是否为支付完成事件
func (e *WebhookEvent) IsPaid() bool {
	return e.Event == EventPaymentLinkPaid || e.Event == EventOrderPaid
}

// OrderID 从事件中提取网关订单号，按 payment → order → payment_link 顺序取第一个非空值
func (e *WebhookEvent) OrderID() string {
	if id := e.Payload.Payment.Entity.OrderID; id != "" {
		return id
	}
	if id := e.Payload.Order.Entity.ID; id != "" {
		return id
	}
	return e.Payload.PaymentLink.Entity.OrderID
}

// PaymentID 网关支付号（可能为空）
func (e *WebhookEvent) PaymentID() string {
	return e.Payload.Payment.Entity.ID
}
