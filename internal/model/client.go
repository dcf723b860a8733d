package model

import (
	"strings"
	"time"
)

type Client struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      *string   `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
}

// DisplayName возвращает имя клиента для уведомлений и списков.
func (c *Client) DisplayName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name != "" {
		return name
	}
	if c.Username != "" {
		return "@" + c.Username
	}
	return "клиент"
}
