package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infrastructure/backend"
	"agriconnect/internal/infrastructure/token"
	"agriconnect/pkg/logger"
	"agriconnect/pkg/response"
)

const sessionContextKey = "session"

// AuthMiddleware binds every request to its browser session: cookie, then
// signed session id, then the stored record. Unknown browsers get a new one.
type AuthMiddleware struct {
	tokens     *token.Manager
	sessions   repository.SessionRepository
	cookieName string
	secure     bool
	now        func() time.Time
}

func NewAuthMiddleware(tokens *token.Manager, sessions repository.SessionRepository, cookieName string, secure bool) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:     tokens,
		sessions:   sessions,
		cookieName: cookieName,
		secure:     secure,
		now:        time.Now,
	}
}

// Session resolves the session, puts its upstream credentials on the request
// context and persists it when it changed. Persisting happens right before
// the response headers go out, so a browser following the reply always finds
// the stored session.
func (m *AuthMiddleware) Session(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := req.Context()

		s, isNew := m.load(c)
		c.Set(sessionContextKey, s)
		c.SetRequest(req.WithContext(backend.WithCredentials(ctx, s)))

		if isNew {
			if err := m.issueCookie(c, s); err != nil {
				return response.Error(c, err)
			}
		}

		persisted := false
		persist := func() {
			if persisted {
				return
			}
			persisted = true
			if s.Ended() {
				m.clearCookie(c)
				return
			}
			if isNew || s.Dirty() {
				if err := m.sessions.Save(ctx, s); err != nil {
					logger.Error("%s failed to save session: %v", logger.Session(s.ID), err)
				}
			}
		}
		c.Response().Before(persist)

		err := next(c)

		if !c.Response().Committed {
			persist()
		}
		return err
	}
}

func (m *AuthMiddleware) load(c echo.Context) (*entity.Session, bool) {
	now := m.now()

	cookie, err := c.Cookie(m.cookieName)
	if err == nil && cookie.Value != "" {
		sid, err := m.tokens.Parse(cookie.Value)
		if err == nil {
			s, err := m.sessions.Get(c.Request().Context(), sid)
			if err == nil && !s.Expired(now) {
				return s, false
			}
			if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
				logger.Error("%s failed to load session: %v", logger.Session(sid), err)
			}
		} else {
			logger.Debug("rejected session cookie: %v", err)
		}
	}

	return entity.NewSession(uuid.NewString(), now, m.tokens.TTL()), true
}

func (m *AuthMiddleware) issueCookie(c echo.Context, s *entity.Session) error {
	signed, expires, err := m.tokens.Sign(s.ID)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *AuthMiddleware) clearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireAuth rejects requests whose session has no user, pointing the
// browser to the login page.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s := SessionFrom(c)
		if s == nil || !s.Authenticated() {
			return response.Unauthenticated(c, entity.PathLogin)
		}
		return next(c)
	}
}

func SessionFrom(c echo.Context) *entity.Session {
	s, _ := c.Get(sessionContextKey).(*entity.Session)
	return s
}

// CurrentUser is the logged-in user of the request, nil when anonymous.
func CurrentUser(c echo.Context) *entity.User {
	if s := SessionFrom(c); s != nil {
		return s.CurrentUser()
	}
	return nil
}

// WithSession is used by tests and by handlers invoked outside the chain.
func WithSession(c echo.Context, s *entity.Session) {
	c.Set(sessionContextKey, s)
	req := c.Request()
	c.SetRequest(req.WithContext(backend.WithCredentials(req.Context(), s)))
}
