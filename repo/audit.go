package repo

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// Telegram rejects longer messages.
const maxMessageLength = 4096

type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramAudit posts operator notes to a Telegram channel or group.
type TelegramAudit struct {
	sender MessageSender
}

func NewTelegramAudit(sender MessageSender) *TelegramAudit {
	return &TelegramAudit{sender: sender}
}

// PostMessage accepts a numeric chat id or an @channel username.
func (t *TelegramAudit) PostMessage(ctx context.Context, channelID string, text string) error {
	if channelID == "" {
		return fmt.Errorf("audit channel id is empty")
	}
	runes := []rune(text)
	if len(runes) > maxMessageLength {
		text = string(runes[:maxMessageLength-3]) + "..."
	}
	_, err := t.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: channelID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("error posting audit message: %w", err)
	}
	return nil
}

// LogAudit writes audit notes to the log. Used when no audit channel is configured.
type LogAudit struct{}

func (LogAudit) PostMessage(ctx context.Context, channelID string, text string) error {
	log.Info().Str("channel", channelID).Msg(text)
	return nil
}
