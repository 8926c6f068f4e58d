package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client Telegram Bot API 客户端。
// token 由调用方按次传入，每个创作者用自己的机器人身份操作。
type Client struct {
	apiBase    string
	httpClient *http.Client
}

func NewClient(apiBase string) *Client {
	return &Client{
		apiBase: apiBase,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

// CreateInviteLink 生成一次性限时入群链接
func (c *Client) CreateInviteLink(ctx context.Context, botToken string, chatID int64, expireAt time.Time) (string, error) {
	payload := map[string]interface{}{
		"chat_id":      chatID,
		"member_limit": 1,
		"expire_date":  expireAt.Unix(),
	}

	result, err := c.call(ctx, botToken, "createChatInviteLink", payload)
	if err != nil {
		return "", err
	}

	var invite struct {
		InviteLink string `json:"invite_link"`
	}
	if err := json.Unmarshal(result, &invite); err != nil {
		return "", fmt.Errorf("failed to decode invite link: %w", err)
	}

	return invite.InviteLink, nil
}

// SendMessage 给用户发送私聊消息
func (c *Client) SendMessage(ctx context.Context, botToken string, chatID int64, text string) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}

	_, err := c.call(ctx, botToken, "sendMessage", payload)
	return err
}

// BanChatMember 将用户移出群组
func (c *Client) BanChatMember(ctx context.Context, botToken string, chatID, userID int64) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"user_id": userID,
	}

	_, err := c.call(ctx, botToken, "banChatMember", payload)
	return err
}

// UnbanChatMember 解除封禁，配合 Ban 实现踢出而非永久拉黑
func (c *Client) UnbanChatMember(ctx context.Context, botToken string, chatID, userID int64) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"user_id": userID,
	}

	_, err := c.call(ctx, botToken, "unbanChatMember", payload)
	return err
}

func (c *Client) call(ctx context.Context, botToken, method string, payload map[string]interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiBase, botToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !apiResp.OK {
		return nil, fmt.Errorf("telegram api error: %s", apiResp.Description)
	}

	return apiResp.Result, nil
}
