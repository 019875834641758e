package store

import (
	"context"
	"sync"
	"time"

	"github.com/viant/postboard/internal/logging"
	"github.com/viant/postboard/schema"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Session represents a consistent snapshot of the client session
type Session struct {
	Token      string
	Identity   schema.Identity
	Expiry     time.Time
	RememberMe bool
}

// Authenticated returns true when a token is held
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store holds the current session
type Store struct {
	mu         sync.RWMutex
	session    Session
	preference Preference
	logger     *zap.Logger
	onLogout   []func()
}

type Option func(*Store)

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithPreference sets remember me persistence
func WithPreference(preference Preference) Option {
	return func(s *Store) {
		s.preference = preference
	}
}

// SetToken decodes raw token and replaces the session token and identity.
// On failure the session is left unchanged and the failure is logged.
func (s *Store) SetToken(raw string) Decoded {
	decoded := Decode(raw)
	if !decoded.OK() {
		s.logger.Warn("failed to decode access token", zap.Error(decoded.Err))
		return decoded
	}
	var expiry time.Time
	if decoded.Claims.ExpiresAt != nil {
		expiry = decoded.Claims.ExpiresAt.Time
	}
	s.mu.Lock()
	s.session.Token = decoded.Token
	s.session.Identity = decoded.Identity()
	s.session.Expiry = expiry
	s.mu.Unlock()
	s.logger.Debug("access token set", zap.String("user", decoded.Identity().Username))
	return decoded
}

// Logout clears token, identity and remember me, then runs logout hooks
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.session = Session{}
	hooks := append([]func(){}, s.onLogout...)
	s.mu.Unlock()
	if err := s.preference.Save(ctx, false); err != nil {
		s.logger.Warn("failed to persist remember me", zap.Error(err))
	}
	for _, hook := range hooks {
		hook()
	}
}

// ToggleRememberMe updates in-memory and persisted flag
func (s *Store) ToggleRememberMe(ctx context.Context, value bool) error {
	s.mu.Lock()
	s.session.RememberMe = value
	s.mu.Unlock()
	if err := s.preference.Save(ctx, value); err != nil {
		s.logger.Warn("failed to persist remember me", zap.Error(err))
		return err
	}
	return nil
}

// OnLogout registers a hook called after logout
func (s *Store) OnLogout(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, hook)
}

// Snapshot returns current session
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *Store) Token() string {
	return s.Snapshot().Token
}

func (s *Store) Identity() schema.Identity {
	return s.Snapshot().Identity
}

func (s *Store) RememberMe() bool {
	return s.Snapshot().RememberMe
}

func (s *Store) Authenticated() bool {
	return s.Snapshot().Authenticated()
}

// OAuth2Token returns current bearer token or nil when anonymous
func (s *Store) OAuth2Token() *oauth2.Token {
	session := s.Snapshot()
	if !session.Authenticated() {
		return nil
	}
	return &oauth2.Token{
		AccessToken: session.Token,
		TokenType:   "Bearer",
		Expiry:      session.Expiry,
	}
}

// New creates an empty store and loads remember me from the preference;
// remember me defaults to true when nothing was persisted.
func New(ctx context.Context, options ...Option) (*Store, error) {
	ret := &Store{}
	for _, opt := range options {
		opt(ret)
	}
	ret.logger = logging.OrNop(ret.logger)
	if ret.preference == nil {
		ret.preference = NewMemoryPreference()
	}
	rememberMe, found, err := ret.preference.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		rememberMe = true
		if err = ret.preference.Save(ctx, rememberMe); err != nil {
			ret.logger.Warn("failed to persist remember me", zap.Error(err))
		}
	}
	ret.session.RememberMe = rememberMe
	return ret, nil
}
