package callbacks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// parseIDFromCallback извлекает числовой ID после префикса "prefix:id"
func parseIDFromCallback(data string) (int64, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed callback data: %q", data)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse callback id: %w", err)
	}
	return id, nil
}

// messageFromCallback достаёт сообщение, к которому прикреплена клавиатура
func messageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback == nil {
		return nil
	}
	return callback.Message.Message
}

// answerCallback закрывает "часики" на кнопке коротким тостом
func answerCallback(ctx context.Context, b *bot.Bot, callbackID, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
}

// answerCallbackAlert показывает модальное окно с текстом
func answerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}
