package server

import (
	"net/http"
	"strings"
	"time"

	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/internal/reading"
	"github.com/example/terve/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"
)

// TelegramLinkTTL is how long a chat link code stays valid
const TelegramLinkTTL = 15 * time.Minute

type profileRequest struct {
	Name                 *string `json:"name"`
	CEFRLevel            *string `json:"cefrLevel"`
	PreferredStoryLength *string `json:"preferredStoryLength"`
	// only 0 is accepted, it unlinks the chat. Chats are linked through the bot.
	TelegramChatID *int64 `json:"telegramChatId"`
}

func (s *Server) getProfile(c echo.Context) error {
	user := currentUser(c)
	stats, err := s.services.Flashcards.Stats(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user": user, "flashcards": stats})
}

func (s *Server) updateProfile(c echo.Context) error {
	var req profileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user := *currentUser(c)
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.CEFRLevel != nil {
		level, ok := models.ParseLevel(*req.CEFRLevel)
		if !ok {
			return apperrors.InvalidInput("unknown CEFR level %q", *req.CEFRLevel)
		}
		user.CEFRLevel = level
	}
	if req.PreferredStoryLength != nil {
		length, err := reading.ParseLength(*req.PreferredStoryLength, user.PreferredStoryLength)
		if err != nil {
			return err
		}
		user.PreferredStoryLength = length
	}
	if req.TelegramChatID != nil {
		if *req.TelegramChatID != 0 {
			return apperrors.InvalidInput("link a telegram chat by sending /start <code> to the bot")
		}
		user.TelegramChatID = nil
	}

	if err := s.services.Users.Update(c.Request().Context(), &user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user": user})
}

// telegramLink issues a one-time code the learner sends to the bot as /start <code>
func (s *Server) telegramLink(c echo.Context) error {
	user := currentUser(c)
	code := shortuuid.New()
	expiresAt := s.now().Add(TelegramLinkTTL)
	if err := s.services.Users.SetTelegramLinkCode(c.Request().Context(), user.ID, code, expiresAt); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code":      code,
		"command":   "/start " + code,
		"expiresAt": expiresAt,
	})
}
