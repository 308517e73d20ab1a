package entity

import (
	"net/http"
	"sync"
	"time"
)

// UpstreamCookie is a cookie set by the marketplace API and replayed on later
// calls made on behalf of the same browser.
type UpstreamCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Expires time.Time `json:"expires,omitempty"`
}

// Session is the server-side state of one browser: who is logged in and the
// credentials the backend handed out for them.
type Session struct {
	ID        string           `json:"id"`
	User      *User            `json:"user,omitempty"`
	Cookies   []UpstreamCookie `json:"cookies,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	ExpiresAt time.Time        `json:"expiresAt"`

	mu    sync.Mutex
	dirty bool
	ended bool
}

func NewSession(id string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

func (s *Session) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.User
}

func (s *Session) Authenticated() bool {
	return s.CurrentUser() != nil
}

func (s *Session) SetUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.User = u
	s.dirty = true
}

// Clear forgets the user and every upstream credential.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.User = nil
	s.Cookies = nil
	s.dirty = true
}

// End clears the session and marks it for removal instead of persistence.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.User = nil
	s.Cookies = nil
	s.ended = true
	s.dirty = false
}

func (s *Session) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// UpstreamCookies returns the cookies to send to the backend, skipping the
// ones that already expired.
func (s *Session) UpstreamCookies() []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	out := make([]*http.Cookie, 0, len(s.Cookies))
	for _, c := range s.Cookies {
		if !c.Expires.IsZero() && now.After(c.Expires) {
			continue
		}
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return out
}

// StoreUpstreamCookies merges Set-Cookie replies from the backend. A cookie
// with an empty value or a negative MaxAge deletes the stored one.
func (s *Session) StoreUpstreamCookies(cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cookies {
		kept := s.Cookies[:0]
		for _, existing := range s.Cookies {
			if existing.Name != c.Name {
				kept = append(kept, existing)
			}
		}
		s.Cookies = kept
		if c.Value == "" || c.MaxAge < 0 {
			continue
		}
		stored := UpstreamCookie{Name: c.Name, Value: c.Value, Expires: c.Expires}
		if c.MaxAge > 0 {
			stored.Expires = time.Now().Add(time.Duration(c.MaxAge) * time.Second)
		}
		s.Cookies = append(s.Cookies, stored)
	}
	s.dirty = true
}

// Dirty reports whether the session changed since it was loaded or saved.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *Session) MarkClean() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}

// Clone copies the persisted fields into a fresh, clean session.
func (s *Session) Clone() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := &Session{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		Cookies:   append([]UpstreamCookie(nil), s.Cookies...),
	}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}
