package dto

type RegisterCreatorRequest struct {
	TelegramID int64   `json:"telegram_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	BotToken   string  `json:"bot_token" binding:"required"`
	GroupIDs   []int64 `json:"group_ids" binding:"required,min=1"`
}

type RegisterCreatorResponse struct {
	CreatorID int64 `json:"creator_id"`
}
