package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/internal/reading"
	"github.com/example/terve/pkg/models"
	"github.com/labstack/echo/v4"
)

type generateRequest struct {
	Length   string `json:"length" form:"length"`
	Keywords string `json:"keywords" form:"keywords"` // comma separated
}

type comprehensionCheckRequest struct {
	StoryID string                 `json:"storyId" form:"storyId"`
	Answers map[string]interface{} `json:"answers"`
}

func (s *Server) readingGenerate(c echo.Context) error {
	var req generateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	keywords, err := reading.ParseKeywords(req.Keywords)
	if err != nil {
		return err
	}

	user := currentUser(c)
	result, err := s.services.Reading.Generate(c.Request().Context(), user, req.Length, keywords)
	if err != nil {
		return err
	}

	sess, err := s.session(c)
	if err != nil {
		return err
	}
	sess.Values[keyStoryID] = result.Story.ID
	sess.Values[keyStoryLevel] = string(result.Story.Level)
	if err := s.saveSession(c, sess); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"story":      result.Story,
		"vocabulary": result.Vocabulary,
		"keywords":   keywords,
	})
}

// storyLevel is the level of the last generated story when storyID names it,
// the learner's level otherwise. Stories are not stored.
func (s *Server) storyLevel(c echo.Context, storyID string) (models.Level, error) {
	sess, err := s.session(c)
	if err != nil {
		return "", err
	}
	if id, _ := sess.Values[keyStoryID].(string); id != "" && id == storyID {
		if level, ok := models.ParseLevel(fmt.Sprint(sess.Values[keyStoryLevel])); ok {
			return level, nil
		}
	}
	return currentUser(c).CEFRLevel, nil
}

func (s *Server) readingComprehension(c echo.Context) error {
	storyID := c.Param("storyId")
	level, err := s.storyLevel(c, storyID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"storyId":   storyID,
		"questions": reading.ComprehensionQuestionsFor(level),
	})
}

func (s *Server) readingCheck(c echo.Context) error {
	var req comprehensionCheckRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	answers, err := parseAnswers(req.Answers)
	if err != nil {
		return err
	}
	level, err := s.storyLevel(c, req.StoryID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reading.CheckComprehension(level, answers))
}

// parseAnswers turns {"1": 0, "2": "true"} into answers keyed by question ID
func parseAnswers(raw map[string]interface{}) (map[int]string, error) {
	answers := make(map[int]string, len(raw))
	for key, value := range raw {
		id, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, apperrors.InvalidInput("invalid question id %q", key)
		}
		if value == nil {
			continue
		}
		answers[id] = fmt.Sprint(value)
	}
	return answers, nil
}
