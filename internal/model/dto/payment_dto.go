package dto

type CreateOrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int    `json:"amount"` // 派萨（卢比 * 100），前端直接传给收银台
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// WebhookResult 对账结果
const (
	WebhookResultActivated        = "activated"
	WebhookResultAlreadyProcessed = "already_processed"
	WebhookResultIgnored          = "ignored"
)

type WebhookResponse struct {
	Status string `json:"status"`
}
