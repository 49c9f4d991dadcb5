package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/example/terve/internal/config"
	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/pkg/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// Identity is the account an OAuth provider vouches for
type Identity struct {
	ID    string
	Email string
	Name  string
}

// Provider is an OAuth 2 login provider
type Provider struct {
	Name        string
	OAuth       *oauth2.Config
	UserInfoURL string
	parse       func(body []byte) (*Identity, error)
}

// GoogleProvider logs learners in with a Google account
func GoogleProvider(clientID, clientSecret, redirectURL string) *Provider {
	return &Provider{
		Name: "google",
		OAuth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoints.Google,
		},
		UserInfoURL: "https://openidconnect.googleapis.com/v1/userinfo",
		parse: func(body []byte) (*Identity, error) {
			var info struct {
				Sub   string `json:"sub"`
				Email string `json:"email"`
				Name  string `json:"name"`
			}
			if err := json.Unmarshal(body, &info); err != nil {
				return nil, err
			}
			return &Identity{ID: info.Sub, Email: info.Email, Name: info.Name}, nil
		},
	}
}

// GitHubProvider logs learners in with a GitHub account
func GitHubProvider(clientID, clientSecret, redirectURL string) *Provider {
	return &Provider{
		Name: "github",
		OAuth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     endpoints.GitHub,
		},
		UserInfoURL: "https://api.github.com/user",
		parse: func(body []byte) (*Identity, error) {
			var info struct {
				ID    int64  `json:"id"`
				Login string `json:"login"`
				Name  string `json:"name"`
				Email string `json:"email"`
			}
			if err := json.Unmarshal(body, &info); err != nil {
				return nil, err
			}
			// Private emails are not part of the profile
			if info.Email == "" {
				info.Email = info.Login + "@users.noreply.github.com"
			}
			if info.Name == "" {
				info.Name = info.Login
			}
			return &Identity{ID: strconv.FormatInt(info.ID, 10), Email: info.Email, Name: info.Name}, nil
		},
	}
}

func providersFromConfig(cfg *config.Config) map[string]*Provider {
	providers := make(map[string]*Provider)
	if cfg.GoogleClientID != "" {
		providers["google"] = GoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.BaseURL+"/auth/google/callback")
	}
	if cfg.GitHubClientID != "" {
		providers["github"] = GitHubProvider(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.BaseURL+"/auth/github/callback")
	}
	return providers
}

// fetchIdentity asks the provider who owns the token
func (p *Provider) fetchIdentity(ctx context.Context, token *oauth2.Token) (*Identity, error) {
	resp, err := p.OAuth.Client(ctx, token).Get(p.UserInfoURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %s profile", p.Name)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s profile", p.Name)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("%s profile request returned %d", p.Name, resp.StatusCode)
	}

	identity, err := p.parse(body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s profile", p.Name)
	}
	if identity.ID == "" {
		return nil, errors.Errorf("%s profile has no id", p.Name)
	}
	return identity, nil
}

func (s *Server) provider(c echo.Context) (*Provider, error) {
	name := c.Param("provider")
	p, ok := s.providers[name]
	if !ok {
		return nil, apperrors.NotFound("login provider", name)
	}
	return p, nil
}

func (s *Server) showLogin(c echo.Context) error {
	type loginOption struct {
		Provider string `json:"provider"`
		URL      string `json:"url"`
	}
	options := make([]loginOption, 0, len(s.providers))
	for _, name := range []string{"google", "github"} {
		if _, ok := s.providers[name]; ok {
			options = append(options, loginOption{Provider: name, URL: "/auth/" + name + "/redirect"})
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"providers": options})
}

func (s *Server) logout(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	for key := range sess.Values {
		delete(sess.Values, key)
	}
	sess.Options.MaxAge = -1
	if err := s.saveSession(c, sess); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) oauthRedirect(c echo.Context) error {
	p, err := s.provider(c)
	if err != nil {
		return err
	}
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	state := uuid.NewString()
	sess.Values[keyOAuthState] = state
	if err := s.saveSession(c, sess); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, p.OAuth.AuthCodeURL(state))
}

func (s *Server) oauthCallback(c echo.Context) error {
	p, err := s.provider(c)
	if err != nil {
		return err
	}
	sess, err := s.session(c)
	if err != nil {
		return err
	}

	state, _ := sess.Values[keyOAuthState].(string)
	delete(sess.Values, keyOAuthState)
	if state == "" || c.QueryParam("state") != state {
		return apperrors.Unauthorized("invalid login state")
	}
	code := c.QueryParam("code")
	if code == "" {
		return apperrors.Unauthorized("login was cancelled")
	}

	ctx := c.Request().Context()
	token, err := p.OAuth.Exchange(ctx, code)
	if err != nil {
		slog.Warn("oauth exchange failed", slog.String("provider", p.Name), slog.String("error", err.Error()))
		return apperrors.Unauthorized("login failed")
	}
	identity, err := p.fetchIdentity(ctx, token)
	if err != nil {
		slog.Warn("oauth profile failed", slog.String("provider", p.Name), slog.String("error", err.Error()))
		return apperrors.Unauthorized("login failed")
	}

	user, err := s.findOrCreateUser(ctx, p.Name, identity)
	if err != nil {
		return err
	}

	sess.Values[keyUserID] = user.ID
	if err := s.saveSession(c, sess); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/flashcards")
}

// findOrCreateUser returns the learner of the identity. New learners start at A1 with a seeded pool.
func (s *Server) findOrCreateUser(ctx context.Context, provider string, identity *Identity) (*models.User, error) {
	user, err := s.services.Users.GetByOAuth(ctx, provider, identity.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	user = &models.User{
		Email:         identity.Email,
		Name:          identity.Name,
		OAuthProvider: provider,
		OAuthID:       identity.ID,
		CEFRLevel:     models.A1,
	}
	if err := s.services.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	seeded, err := s.services.Flashcards.SeedNewLearner(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to seed new learner")
	}
	slog.Info("new learner", slog.Int64("user", user.ID), slog.String("provider", provider), slog.Int("seeded", seeded))
	return user, nil
}
