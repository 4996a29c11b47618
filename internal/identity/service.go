package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopwave/shopwave-backend/pkg/auth"
	"github.com/shopwave/shopwave-backend/pkg/auth/session"
	"github.com/shopwave/shopwave-backend/pkg/config"
	pkgerrors "github.com/shopwave/shopwave-backend/pkg/errors"
)

// Session is a freshly minted login.
type Session struct {
	Token string
	User  *Identity
}

// Service orchestrates logins against the external identity provider and the
// session store.
type Service interface {
	RedirectURL(ctx context.Context) (string, error)
	Login(ctx context.Context, code string) (*Session, error)
	Logout(ctx context.Context, sessionID string) error
}

type providerClient interface {
	GetRedirectURL(ctx context.Context) (string, error)
	ExchangeCode(ctx context.Context, code string) (*Identity, error)
}

type sessionStarter interface {
	Start(ctx context.Context, sessionID, userID string) error
	Revoke(ctx context.Context, sessionID string) error
}

type service struct {
	provider providerClient
	sessions sessionStarter
	cfg      config.SessionConfig
	now      func() time.Time
}

// NewService constructs an identity service instance.
func NewService(provider providerClient, sessions *session.Manager, cfg config.SessionConfig) (Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("identity provider client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &service{
		provider: provider,
		sessions: sessions,
		cfg:      cfg,
		now:      time.Now,
	}, nil
}

// RedirectURL proxies the provider's OAuth redirect URL.
func (s *service) RedirectURL(ctx context.Context) (string, error) {
	return s.provider.GetRedirectURL(ctx)
}

// Login exchanges the authorization code with the provider, opens a session
// in the store and mints the session token handed to the client.
func (s *service) Login(ctx context.Context, code string) (*Session, error) {
	if strings.TrimSpace(code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no authorization code provided")
	}

	user, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	sessionID := session.NewSessionID()
	if err := s.sessions.Start(ctx, sessionID, user.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "start session")
	}

	token, err := auth.MintSessionToken(s.cfg, s.now(), auth.SessionTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		JTI:    sessionID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}

	return &Session{Token: token, User: user}, nil
}

// Logout revokes the session. Revoking an already-dead session succeeds.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}
