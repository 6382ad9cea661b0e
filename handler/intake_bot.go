package handler

import (
	"context"
	"fmt"
	"strings"

	"LeadBot/wizard"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

const seenUpdatesSize = 2048

const helpText = `Commands:
/start - Start a new request.
/menu - Go back to the service menu and start over.
/help - Show this message.`

// Sender is the part of *bot.Bot the handler uses.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

type Conversation interface {
	Handle(ctx context.Context, userID, chatID int64, ev wizard.Event) wizard.Prompt
}

type IntakeBotHandler struct {
	Conversation Conversation
	seen         *lru.Cache[int64, struct{}]
	onDuplicate  func()
}

type Option func(*IntakeBotHandler)

// WithDuplicateHook is called whenever a redelivered update is dropped.
func WithDuplicateHook(fn func()) Option {
	return func(h *IntakeBotHandler) { h.onDuplicate = fn }
}

func NewIntakeBotHandler(conversation Conversation, opts ...Option) (*IntakeBotHandler, error) {
	seen, err := lru.New[int64, struct{}](seenUpdatesSize)
	if err != nil {
		return nil, fmt.Errorf("error creating update cache: %w", err)
	}
	h := &IntakeBotHandler{
		Conversation: conversation,
		seen:         seen,
		onDuplicate:  func() {},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Handler is registered as the bot's default handler.
func (h *IntakeBotHandler) Handler(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.Handle(ctx, b, update)
}

func (h *IntakeBotHandler) Handle(ctx context.Context, sender Sender, update *models.Update) {
	if update == nil {
		return
	}
	if update.ID != 0 {
		if seen, _ := h.seen.ContainsOrAdd(update.ID, struct{}{}); seen {
			log.Debug().Int64("update_id", update.ID).Msg("ignoring duplicate update")
			h.onDuplicate()
			return
		}
	}

	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, sender, update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(ctx, sender, update.Message)
	}
}

func (h *IntakeBotHandler) handleCallback(ctx context.Context, sender Sender, cq *models.CallbackQuery) {
	_, err := sender.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cq.ID})
	if err != nil {
		log.Error().Err(err).Msg("error answering callback query")
	}

	userID := cq.From.ID
	chatID := userID
	switch {
	case cq.Message.Message != nil:
		chatID = cq.Message.Message.Chat.ID
	case cq.Message.InaccessibleMessage != nil:
		chatID = cq.Message.InaccessibleMessage.Chat.ID
	}

	log.Debug().Int64("user_id", userID).Str("data", cq.Data).Msg("callback")
	prompt := h.Conversation.Handle(ctx, userID, chatID, wizard.ServiceChoice(cq.Data))
	send(ctx, sender, chatID, prompt)
}

func (h *IntakeBotHandler) handleMessage(ctx context.Context, sender Sender, msg *models.Message) {
	if msg.From == nil {
		return
	}
	userID := msg.From.ID
	chatID := msg.Chat.ID

	log.Debug().Int64("user_id", userID).Str("username", msg.From.Username).Msg("message")

	var ev wizard.Event
	switch command(msg.Text) {
	case "/start":
		ev = wizard.Start()
	case "/menu", "/restart":
		ev = wizard.Menu()
	case "/help":
		send(ctx, sender, chatID, wizard.Prompt{Text: helpText})
		return
	default:
		ev = wizard.Text(msg.Text)
	}

	prompt := h.Conversation.Handle(ctx, userID, chatID, ev)
	send(ctx, sender, chatID, prompt)
}

// command returns the bot command in text without arguments or @botname, or "".
func command(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	return strings.ToLower(cmd)
}

func send(ctx context.Context, sender Sender, chatID int64, prompt wizard.Prompt) {
	text := prompt.Message()
	if text == "" {
		return
	}
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markup := replyMarkup(prompt.Keyboard); markup != nil {
		params.ReplyMarkup = markup
	}
	if _, err := sender.SendMessage(ctx, params); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("error sending message")
	}
}
