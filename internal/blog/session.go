package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/bloglist/internal/blogapi"
	"github.com/five82/bloglist/internal/session"
)

// Login authenticates against the API. On success the session is saved
// durably, its token is attached to the API client and it is published to
// the session store. On failure a notification is shown, the session store
// is left untouched and the returned error wraps ErrAuth.
func (s *Service) Login(ctx context.Context, username, password string) (session.Session, error) {
	creds := credentials{Username: strings.TrimSpace(username), Password: password}
	if err := s.check(creds); err != nil {
		s.fail(MsgLoginFailed, err)
		return session.Session{}, fmt.Errorf("login: %w", errors.Join(ErrAuth, err))
	}

	resp, err := s.api.Login(ctx, blogapi.Credentials{Username: creds.Username, Password: creds.Password})
	if err != nil {
		s.fail(MsgLoginFailed, err, zap.String("username", creds.Username))
		return session.Session{}, fmt.Errorf("login: %w", errors.Join(ErrAuth, err))
	}

	sess := session.Session{
		Username: resp.Username,
		Name:     resp.Name,
		Token:    resp.Token,
	}
	if sess.Username == "" {
		sess.Username = creds.Username
	}
	if err := s.storage.Save(sess); err != nil {
		// The session still works for this run; it just won't survive a restart.
		s.log.Warn("persist session failed", zap.Error(err))
	}
	s.api.SetToken(sess.Token)
	s.stores.Session.Set(sess)
	s.log.Info("logged in", zap.String("username", sess.Username))
	return sess, nil
}

// Restore rehydrates a previously saved session without contacting the
// server. The token is trusted until a call fails.
func (s *Service) Restore() (session.Session, bool) {
	sess, ok, err := s.storage.Load()
	if err != nil {
		s.log.Warn("restore session failed", zap.Error(err))
		return session.Session{}, false
	}
	if !ok {
		return session.Session{}, false
	}
	s.api.SetToken(sess.Token)
	s.stores.Session.Set(sess)
	s.log.Debug("session restored", zap.String("username", sess.Username))
	return sess, true
}

// Logout clears durable storage, the client token and the session store. The
// in-memory state is always cleared, even when storage removal fails. The
// token is not revoked server-side.
func (s *Service) Logout() error {
	err := s.storage.Clear()
	s.api.SetToken("")
	s.stores.Session.Clear()
	if err != nil {
		s.log.Warn("clear session failed", zap.Error(err))
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info("logged out")
	return nil
}

// CurrentSession returns the logged-in session, if any.
func (s *Service) CurrentSession() (session.Session, bool) {
	return s.stores.Session.Current()
}
