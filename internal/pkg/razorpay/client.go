package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client Razorpay Orders API 客户端
type Client struct {
	keyID         string
	keySecret     string
	webhookSecret string
	apiBase       string
	httpClient    *http.Client
}

// Order 网关返回的订单
type Order struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"` // 派萨
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func NewClient(keyID, keySecret, webhookSecret, apiBase string) *Client {
	return &Client{
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		apiBase:       apiBase,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// KeyID 前端收银台需要的公开 key
func (c *Client) KeyID() string {
	return c.keyID
}

// CreateOrder 创建支付订单，金额单位为派萨
func (c *Client) CreateOrder(ctx context.Context, amountPaise int, currency, receipt string) (*Order, error) {
	payload := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("razorpay api error (%d): %s", resp.StatusCode, string(respBody))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}

	return &order, nil
}

// VerifyPaymentSignature 校验支付回传签名。
// 摘要内容为 "orderID|paymentID"，密钥为 API key_secret，恒定时间比较。
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	expected := hmacSHA256([]byte(orderID+"|"+paymentID), []byte(c.keySecret))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature 校验 webhook 签名。
// 摘要内容为原始请求体字节，密钥为独立的 webhook secret。
func (c *Client) VerifyWebhookSignature(body []byte, signature string) bool {
	expected := hmacSHA256(body, []byte(c.webhookSecret))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func hmacSHA256(message, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}
