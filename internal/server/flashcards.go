package server

import (
	"net/http"

	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/pkg/models"
	"github.com/labstack/echo/v4"
)

type wordRequest struct {
	WordID int64 `json:"wordId" form:"wordId"`
}

type answerRequest struct {
	WordID  int64 `json:"wordId" form:"wordId"`
	Correct bool  `json:"correct" form:"correct"`
}

type moveRequest struct {
	WordID      int64           `json:"wordId" form:"wordId"`
	NewCategory models.Category `json:"newCategory" form:"newCategory"`
}

func (s *Server) flashcardStats(c echo.Context) error {
	user := currentUser(c)
	ctx := c.Request().Context()

	stats, err := s.services.Flashcards.Stats(ctx, user.ID)
	if err != nil {
		return err
	}
	due, err := s.services.Flashcards.DueCount(ctx, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"stats": stats, "due": due})
}

func (s *Server) flashcardPractice(c echo.Context) error {
	category := models.Category(c.QueryParam("category"))
	if category == "" {
		category = models.CategoryLearning
	}
	if !category.Valid() {
		return apperrors.InvalidInput("unknown category %q", category)
	}

	card, err := s.services.Flashcards.Practice(c.Request().Context(), currentUser(c).ID, category)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"card": card, "category": category})
}

func (s *Server) flashcardAnswer(c echo.Context) error {
	var req answerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.WordID <= 0 {
		return apperrors.InvalidInput("wordId is required")
	}

	lw, err := s.services.Flashcards.Answer(c.Request().Context(), currentUser(c).ID, req.WordID, req.Correct)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"mastery":      lw.MasteryPercentage(),
		"nextReviewAt": lw.NextReviewAt,
	})
}

func (s *Server) flashcardMove(c echo.Context) error {
	var req moveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.WordID <= 0 {
		return apperrors.InvalidInput("wordId is required")
	}

	if err := s.services.Flashcards.MoveCategory(c.Request().Context(), currentUser(c).ID, req.WordID, req.NewCategory); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// flashcardAdd serves both /flashcards/add and /reading/add-flashcard
func (s *Server) flashcardAdd(c echo.Context) error {
	var req wordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.WordID <= 0 {
		return apperrors.InvalidInput("wordId is required")
	}

	if err := s.services.Flashcards.AddWord(c.Request().Context(), currentUser(c).ID, req.WordID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Word added to your learning flashcards!",
	})
}
