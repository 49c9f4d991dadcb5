package server

import (
	"net/http"
	"strconv"

	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/internal/exam"
	"github.com/example/terve/pkg/models"
	"github.com/labstack/echo/v4"
)

type beginRequest struct {
	Level string `json:"level" form:"level"`
}

type submitRequest struct {
	ExamID  string                 `json:"examId" form:"examId"`
	Answers map[string]interface{} `json:"answers"`
}

// targetLevel parses an exam level, defaulting to the learner's own
func targetLevel(c echo.Context, raw string) (models.Level, error) {
	if raw == "" {
		return currentUser(c).CEFRLevel.OrDefault(), nil
	}
	level, ok := models.ParseLevel(raw)
	if !ok {
		return "", apperrors.InvalidInput("unknown CEFR level %q", raw)
	}
	return level, nil
}

func (s *Server) examIndex(c echo.Context) error {
	user := currentUser(c)
	ctx := c.Request().Context()

	recent, err := s.services.Exams.Recent(ctx, user.ID, exam.RecentLimit)
	if err != nil {
		return err
	}
	averages, err := s.services.Exams.AverageScores(ctx, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"recentResults": recent,
		"averageScores": averages,
		"currentLevel":  user.CEFRLevel,
		"levels":        exam.AllLevelInfo(),
	})
}

func (s *Server) examStart(c echo.Context) error {
	level, err := targetLevel(c, c.QueryParam("level"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"targetLevel":   level,
		"levelInfo":     exam.LevelInfoFor(level),
		"timeLimit":     exam.TimeLimitFor(level),
		"questionCount": exam.QuestionCount,
	})
}

func (s *Server) examBegin(c echo.Context) error {
	var req beginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	level, err := targetLevel(c, req.Level)
	if err != nil {
		return err
	}

	inst, es, err := s.services.Exams.Begin(c.Request().Context(), currentUser(c).ID, level)
	if err != nil {
		return err
	}

	sess, err := s.session(c)
	if err != nil {
		return err
	}
	putExamSession(sess, es)
	if err := s.saveSession(c, sess); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"examId":    inst.ID,
		"questions": inst.PublicQuestions(),
		"sections":  inst.Sections,
		"timeLimit": inst.TimeLimit,
	})
}

func (s *Server) examSubmit(c echo.Context) error {
	var req submitRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	answers, err := parseAnswers(req.Answers)
	if err != nil {
		return err
	}

	sess, err := s.session(c)
	if err != nil {
		return err
	}
	es := examSession(sess)

	outcome, err := s.services.Exams.Submit(c.Request().Context(), currentUser(c).ID, es, req.ExamID, answers)
	if err != nil {
		// The stored exam is gone once the session expired
		if apperrors.IsCode(err, apperrors.CodeInvalidSessionState) && es.Active() && es.ExamID == req.ExamID {
			clearExamSession(sess)
			if saveErr := s.saveSession(c, sess); saveErr != nil {
				return saveErr
			}
		}
		return err
	}

	clearExamSession(sess)
	if err := s.saveSession(c, sess); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  outcome,
	})
}

func (s *Server) examResult(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.InvalidInput("invalid result id %q", c.Param("id"))
	}
	result, err := s.services.Exams.Result(c.Request().Context(), currentUser(c).ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"result":        result,
		"sectionScores": result.SectionScores(),
	})
}

func (s *Server) examHistory(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.InvalidInput("invalid page %q", raw)
		}
		page = p
	}
	history, err := s.services.Exams.History(c.Request().Context(), currentUser(c).ID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}

func (s *Server) examStats(c echo.Context) error {
	stats, err := s.services.Exams.DetailedStats(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
