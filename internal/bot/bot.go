package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/terve/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

// API is the part of the Telegram Bot API the bot uses
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// UserStore finds and links the learner of a chat
type UserStore interface {
	GetByTelegramChatID(ctx context.Context, chatID int64) (*models.User, error)
	LinkTelegram(ctx context.Context, code string, chatID int64, now time.Time) (*models.User, error)
}

// DueCounter counts the learning cards due for review
type DueCounter interface {
	DueCount(ctx context.Context, userID int64) (int, error)
}

// Bot sends review reminders and answers a few commands over Telegram
type Bot struct {
	api    API
	users  UserStore
	cards  DueCounter
	config Config
}

// New connects to the Bot API with the given token
func New(token string, users UserStore, cards DueCounter, config Config) (*Bot, error) {
	if token == "" {
		return nil, errors.New("telegram token is not set")
	}
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create bot")
	}
	botAPI.Debug = config.Debug
	slog.Info("authorized on telegram", slog.String("account", botAPI.Self.UserName))

	return NewWithAPI(botAPI, users, cards, config), nil
}

// NewWithAPI creates a bot over an existing API client
func NewWithAPI(api API, users UserStore, cards DueCounter, config Config) *Bot {
	return &Bot{api: api, users: users, cards: cards, config: config}
}

// Run handles incoming updates until ctx is done
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.config.UpdateTimeout

	updates := b.api.GetUpdatesChan(updateConfig)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			slog.Info("telegram bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if err := b.HandleCommand(ctx, update.Message); err != nil {
				slog.Warn("failed to handle telegram command",
					slog.String("command", update.Message.Command()),
					slog.String("error", err.Error()))
			}
		}
	}
}

// NotifyDue implements the scheduler.Notifier interface
func (b *Bot) NotifyDue(_ context.Context, chatID int64, due int) error {
	msg := tgbotapi.NewMessage(chatID, reminderText(due))
	if url := b.config.flashcardsURL(); url != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("📚 Harjoittele nyt", url),
			),
		)
	}
	if err := b.sendMessage(msg); err != nil {
		return errors.Wrapf(err, "failed to send reminder to chat %d", chatID)
	}
	slog.Debug("sent reminder", slog.Int64("chat", chatID), slog.Int("due", due))
	return nil
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) error {
	_, err := b.api.Send(msg)
	return err
}

// reminderText formats the reminder for the number of due cards
func reminderText(due int) string {
	noun := "kortteja"
	if due == 1 {
		noun = "kortti"
	}
	return fmt.Sprintf("🔔 Sinulla on %d %s kerrattavana! You have %d flashcard(s) due for review.", due, noun, due)
}
