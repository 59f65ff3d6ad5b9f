package web

import (
	"sync"

	"github.com/gin-contrib/sessions"
	"github.com/taskzen/taskzen/internal/constants"
)

// cookieSession adapts the per-request gin session to apiclient.Session.
// Handlers fan out API calls, so access is serialized.
type cookieSession struct {
	mu      sync.Mutex
	session sessions.Session
}

func newCookieSession(s sessions.Session) *cookieSession {
	return &cookieSession{session: s}
}

func (s *cookieSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, _ := s.session.Get(constants.SessionKeyToken).(string)
	return token
}

func (s *cookieSession) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Set(constants.SessionKeyToken, token)
	return s.session.Save()
}

func (s *cookieSession) Invalidate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Clear()
	s.session.Options(sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true})
	return s.session.Save()
}
