package bot

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/example/terve/internal/database"
	"github.com/example/terve/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu      sync.Mutex
	sent    []tgbotapi.MessageConfig
	updates chan tgbotapi.Update
	sendErr error
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {}

type fakeUsers struct {
	chats map[int64]*models.User
	codes map[string]*models.User
}

func (f *fakeUsers) GetByTelegramChatID(_ context.Context, chatID int64) (*models.User, error) {
	if user, ok := f.chats[chatID]; ok {
		return user, nil
	}
	return nil, errors.Wrap(sql.ErrNoRows, "failed to get user")
}

func (f *fakeUsers) LinkTelegram(_ context.Context, code string, chatID int64, _ time.Time) (*models.User, error) {
	user, ok := f.codes[code]
	if !ok {
		return nil, errors.Wrap(sql.ErrNoRows, "failed to find link code")
	}
	if owner, ok := f.chats[chatID]; ok && owner.ID != user.ID {
		return nil, database.ErrChatLinked
	}
	delete(f.codes, code)
	f.chats[chatID] = user
	return user, nil
}

type fakeCards map[int64]int

func (f fakeCards) DueCount(_ context.Context, userID int64) (int, error) {
	return f[userID], nil
}

func command(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 7,
		Text:      text,
		Chat:      &tgbotapi.Chat{ID: chatID},
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])}},
	}
}

func newTestBot() (*Bot, *fakeAPI) {
	b, api, _ := newTestBotWithUsers()
	return b, api
}

func newTestBotWithUsers() (*Bot, *fakeAPI, *fakeUsers) {
	api := &fakeAPI{updates: make(chan tgbotapi.Update, 1)}
	users := &fakeUsers{
		chats: map[int64]*models.User{42: {ID: 1, Name: "Aino"}, 43: {ID: 2, Name: "Otto"}},
		codes: map[string]*models.User{"ville-code": {ID: 3, Email: "ville@example.com"}},
	}
	cards := fakeCards{1: 3}
	return NewWithAPI(api, users, cards, DefaultConfig("https://terve.example/")), api, users
}

func TestNotifyDue(t *testing.T) {
	b, api := newTestBot()
	require.NoError(t, b.NotifyDue(context.Background(), 42, 5))

	require.Len(t, api.sent, 1)
	msg := api.sent[0]
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Contains(t, msg.Text, "5 kortteja")

	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.NotNil(t, markup.InlineKeyboard[0][0].URL)
	assert.Equal(t, "https://terve.example/flashcards", *markup.InlineKeyboard[0][0].URL)
}

func TestNotifyDueSendError(t *testing.T) {
	b, api := newTestBot()
	api.sendErr = errors.New("blocked by user")
	assert.Error(t, b.NotifyDue(context.Background(), 42, 1))
}

func TestReminderText(t *testing.T) {
	assert.Contains(t, reminderText(1), "1 kortti ")
	assert.Contains(t, reminderText(12), "12 kortteja")
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		name   string
		chatID int64
		text   string
		want   string
	}{
		{"start explains linking", 99, "/start", "/start <code>"},
		{"start with unknown code", 99, "/start nope", "unknown or expired"},
		{"start with code of a linked chat", 42, "/start ville-code", "already linked"},
		{"start links chat", 99, "/start ville-code", "linked to ville@example.com"},
		{"help", 42, "/help", "/due"},
		{"due cards", 42, "/due", "3 kortteja"},
		{"nothing due", 43, "/due", "Nothing is due"},
		{"unlinked chat", 99, "/due", "not linked"},
		{"unknown command", 42, "/nope", "Tuntematon komento"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, api := newTestBot()
			require.NoError(t, b.HandleCommand(context.Background(), command(tt.chatID, tt.text)))
			require.Len(t, api.sent, 1)
			assert.Equal(t, tt.chatID, api.sent[0].ChatID)
			assert.Equal(t, 7, api.sent[0].ReplyToMessageID)
			assert.Contains(t, api.sent[0].Text, tt.want)
		})
	}
}

func TestRunStopsWithContext(t *testing.T) {
	b, api := newTestBot()
	ctx, cancel := context.WithCancel(context.Background())

	api.updates <- tgbotapi.Update{Message: command(42, "/help")}
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return api.count() == 1 }, time.Second, 10*time.Millisecond)
	cancel()
	<-done
}

func TestStartLinksOnlyItsOwnChat(t *testing.T) {
	b, api, users := newTestBotWithUsers()
	ctx := context.Background()

	require.NoError(t, b.HandleCommand(ctx, command(99, "/start ville-code")))
	assert.Equal(t, int64(3), users.chats[99].ID)

	// the consumed code cannot move another chat
	require.NoError(t, b.HandleCommand(ctx, command(100, "/start ville-code")))
	assert.NotContains(t, users.chats, int64(100))

	// an existing link is not taken over
	users.codes["otto-code"] = &models.User{ID: 2}
	require.NoError(t, b.HandleCommand(ctx, command(42, "/start otto-code")))
	assert.Equal(t, int64(1), users.chats[42].ID)

	require.Equal(t, 3, api.count())
	assert.Contains(t, api.sent[1].Text, "unknown or expired")
	assert.Contains(t, api.sent[2].Text, "already linked")
}
