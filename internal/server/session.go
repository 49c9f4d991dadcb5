package server

import (
	"net/http"
	"time"

	"github.com/example/terve/internal/config"
	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/internal/exam"
	"github.com/example/terve/pkg/models"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Session keys
const (
	keyUserID        = "user_id"
	keyOAuthState    = "oauth_state"
	keyExamID        = "exam_id"
	keyExamLevel     = "exam_target_level"
	keyExamStartedAt = "exam_start_time"
	keyStoryID       = "story_id"
	keyStoryLevel    = "story_level"
)

const contextUser = "user"

func newCookieStore(cfg *config.Config) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge / time.Second),
		HttpOnly: true,
		Secure:   !cfg.IsDev(),
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func (s *Server) session(c echo.Context) (*sessions.Session, error) {
	sess, err := s.store.Get(c.Request(), s.config.SessionName)
	if err != nil {
		// A cookie signed with an old secret still yields a fresh session
		if sess != nil {
			return sess, nil
		}
		return nil, errors.Wrap(err, "failed to read session")
	}
	return sess, nil
}

func (s *Server) saveSession(c echo.Context, sess *sessions.Session) error {
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return errors.Wrap(err, "failed to save session")
	}
	return nil
}

// requireUser loads the learner of the session or fails with Unauthorized
func (s *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := s.session(c)
		if err != nil {
			return err
		}
		id, ok := sess.Values[keyUserID].(int64)
		if !ok || id == 0 {
			return apperrors.Unauthorized("please log in")
		}
		user, err := s.services.Users.GetByID(c.Request().Context(), id)
		if err != nil {
			return apperrors.Unauthorized("please log in")
		}
		c.Set(contextUser, user)
		return next(c)
	}
}

func currentUser(c echo.Context) *models.User {
	user, _ := c.Get(contextUser).(*models.User)
	return user
}

// examSession reads the exam the learner is taking, or nil
func examSession(sess *sessions.Session) *exam.Session {
	id, _ := sess.Values[keyExamID].(string)
	level, _ := sess.Values[keyExamLevel].(string)
	started, _ := sess.Values[keyExamStartedAt].(int64)
	if id == "" && level == "" && started == 0 {
		return nil
	}
	es := &exam.Session{ExamID: id, TargetLevel: models.Level(level)}
	if started != 0 {
		es.StartedAt = time.UnixMilli(started).UTC()
	}
	return es
}

func putExamSession(sess *sessions.Session, es *exam.Session) {
	sess.Values[keyExamID] = es.ExamID
	sess.Values[keyExamLevel] = string(es.TargetLevel)
	sess.Values[keyExamStartedAt] = es.StartedAt.UnixMilli()
}

func clearExamSession(sess *sessions.Session) {
	delete(sess.Values, keyExamID)
	delete(sess.Values, keyExamLevel)
	delete(sess.Values, keyExamStartedAt)
}
