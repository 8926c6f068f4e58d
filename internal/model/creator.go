package model

import (
	"encoding/json"
	"time"
)

type Creator struct {
	ID                int64     `gorm:"primaryKey" json:"id"`
	TelegramID        int64     `gorm:"uniqueIndex;not null" json:"telegram_id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	BotTokenEncrypted string    `gorm:"size:500;not null" json:"-"`
	GroupIDs          string    `gorm:"size:1000;not null" json:"-"` // JSON 数组，保持注册顺序
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

func (Creator) TableName() string {
	return "creators"
}

// GroupIDList 解析群组 ID 列表
func (c *Creator) GroupIDList() []int64 {
	var ids []int64
	if err := json.Unmarshal([]byte(c.GroupIDs), &ids); err != nil {
		return nil
	}
	return ids
}

// SetGroupIDs 序列化群组 ID 列表
func (c *Creator) SetGroupIDs(ids []int64) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	c.GroupIDs = string(data)
	return nil
}

// PrimaryGroupID 主群组（列表第一个）
func (c *Creator) PrimaryGroupID() (int64, bool) {
	ids := c.GroupIDList()
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}
