package bot

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/terve/internal/database"
	"github.com/example/terve/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

// HandleCommand handles bot commands
func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	if message == nil || message.Chat == nil {
		return errors.New("invalid message: required fields are missing")
	}

	switch message.Command() {
	case "start":
		return b.handleStart(ctx, message)
	case "help":
		return b.handleHelp(message)
	case "due":
		return b.handleDue(ctx, message)
	default:
		return b.reply(message, "Tuntematon komento. Use /help to see the available commands.")
	}
}

func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) error {
	code := strings.TrimSpace(message.CommandArguments())
	if code == "" {
		return b.reply(message, "👋 Terve!\n\n"+
			"I remind you when your Finnish flashcards are due.\n\n"+
			"To link this chat, create a link code in your terve profile and send /start <code> here.")
	}

	user, err := b.users.LinkTelegram(ctx, code, message.Chat.ID, time.Now().UTC())
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return b.reply(message, "⚠️ The link code is unknown or expired. Create a new one in your profile.")
	case errors.Is(err, database.ErrChatLinked):
		return b.reply(message, "⚠️ This chat is already linked to another terve account.")
	case err != nil:
		return err
	}

	slog.Info("linked telegram chat", slog.Int64("user", user.ID), slog.Int64("chat", message.Chat.ID))
	return b.reply(message, fmt.Sprintf("✅ Valmis! This chat is linked to %s. Reminders will arrive here.", displayName(user)))
}

func displayName(user *models.User) string {
	if user.Name != "" {
		return user.Name
	}
	return user.Email
}

func (b *Bot) handleHelp(message *tgbotapi.Message) error {
	text := "📖 Commands\n\n" +
		"/start <code> - Link this chat to your account\n" +
		"/due - Count the flashcards due now\n" +
		"/help - Show this help"
	return b.reply(message, text)
}

func (b *Bot) handleDue(ctx context.Context, message *tgbotapi.Message) error {
	user, err := b.users.GetByTelegramChatID(ctx, message.Chat.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return b.reply(message, "This chat is not linked yet. Send /start to see how.")
	}
	if err != nil {
		return err
	}

	due, err := b.cards.DueCount(ctx, user.ID)
	if err != nil {
		return err
	}
	if due == 0 {
		return b.reply(message, "🎉 Ei kerrattavaa! Nothing is due right now.")
	}
	return b.reply(message, reminderText(due))
}

func (b *Bot) reply(message *tgbotapi.Message, text string) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID
	return b.sendMessage(msg)
}
