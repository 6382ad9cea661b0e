package handler

import (
	"LeadBot/wizard"

	"github.com/go-telegram/bot/models"
)

func replyMarkup(kb wizard.Keyboard) models.ReplyMarkup {
	switch kb.Kind {
	case wizard.KeyboardInline:
		rows := make([][]models.InlineKeyboardButton, 0, len(kb.Rows))
		for _, row := range kb.Rows {
			buttons := make([]models.InlineKeyboardButton, 0, len(row))
			for _, b := range row {
				data := b.Data
				if data == "" {
					data = b.Label
				}
				buttons = append(buttons, models.InlineKeyboardButton{Text: b.Label, CallbackData: data})
			}
			rows = append(rows, buttons)
		}
		return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
	case wizard.KeyboardReply:
		rows := make([][]models.KeyboardButton, 0, len(kb.Rows))
		for _, row := range kb.Rows {
			buttons := make([]models.KeyboardButton, 0, len(row))
			for _, b := range row {
				buttons = append(buttons, models.KeyboardButton{Text: b.Label})
			}
			rows = append(rows, buttons)
		}
		return &models.ReplyKeyboardMarkup{
			Keyboard:        rows,
			ResizeKeyboard:  true,
			OneTimeKeyboard: true,
		}
	case wizard.KeyboardRemove:
		return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
	}
	return nil
}
