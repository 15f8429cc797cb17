package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/stegavault/stegavault/internal/adapter"
	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/logger"
	"github.com/stegavault/stegavault/internal/store/schema"
)

const (
	// SessionIssuer is the iss claim of every session token
	SessionIssuer = "stegavault"

	DefaultSessionTTL   = 24 * time.Hour
	DefaultExpiryMargin = 10 * time.Minute
)

// AccountReader is the part of the ledger the authenticator needs
type AccountReader interface {
	GetAccount(ctx context.Context, id string) (*schema.Account, error)
}

// Authenticator resolves session tokens into principals
//
//go:generate mockgen -source=session.go -destination=../mocks/auth.go -package=mocks -mock_names=Authenticator=MockAuthenticator,SessionManager=MockSessionManager,AccountReader=MockAccountReader
type Authenticator interface {
	// Authenticate verifies a session token and returns the principal it names
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)
}

// SessionManager issues and verifies session tokens
type SessionManager interface {
	Authenticator
	// Issue mints a session token for an account and returns it with its expiry
	Issue(accountID string) (string, time.Time, error)
}

// Config holds session token configuration
type Config struct {
	// Secret is the HMAC key for session tokens, distinct from the claim signing secret
	Secret string
	// TTL is the lifetime of issued tokens
	TTL time.Duration
	// ExpiryMargin rejects tokens this close to expiry
	ExpiryMargin time.Duration
}

type sessionManager struct {
	secret   []byte
	ttl      time.Duration
	margin   time.Duration
	accounts AccountReader
	clock    adapter.Clock
	parser   *jwt.Parser
}

// NewSessionManager creates a new session manager
func NewSessionManager(cfg Config, accounts AccountReader, clock adapter.Clock) (SessionManager, error) {
	if cfg.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultSessionTTL
	}
	if cfg.ExpiryMargin < 0 {
		cfg.ExpiryMargin = 0
	}
	if cfg.TTL <= cfg.ExpiryMargin {
		return nil, fmt.Errorf("session ttl %s must exceed the expiry margin %s", cfg.TTL, cfg.ExpiryMargin)
	}

	return &sessionManager{
		secret:   []byte(cfg.Secret),
		ttl:      cfg.TTL,
		margin:   cfg.ExpiryMargin,
		accounts: accounts,
		clock:    clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuer(SessionIssuer),
			jwt.WithTimeFunc(clock.Now),
		),
	}, nil
}

// Issue mints a session token for an account and returns it with its expiry
func (m *sessionManager) Issue(accountID string) (string, time.Time, error) {
	if accountID == "" {
		return "", time.Time{}, domain.Validationf("account id is required")
	}

	now := m.clock.Now()
	expiresAt := now.Add(m.ttl)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    SessionIssuer,
		Subject:   accountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return token, expiresAt, nil
}

// Authenticate verifies a session token and returns the principal it names
func (m *sessionManager) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated.Wrap(errors.New("missing session token"))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := m.parser.ParseWithClaims(token, claims, func(_ *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired.Wrap(err)
		}
		return nil, domain.ErrUnauthenticated.Wrap(err)
	}

	if claims.Subject == "" {
		return nil, domain.ErrUnauthenticated.Wrap(errors.New("session token has no subject"))
	}

	expiresAt := claims.ExpiresAt.Time
	if expiresAt.Sub(m.clock.Now()) < m.margin {
		return nil, domain.ErrSessionExpired
	}

	account, err := m.accounts.GetAccount(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			logger.WarnCtx(ctx, "Session token names an unknown account", zap.String("accountID", claims.Subject))
			return nil, domain.ErrUnauthenticated.Wrap(err)
		}
		return nil, fmt.Errorf("failed to resolve session account: %w", err)
	}

	return &domain.Principal{
		AccountID: account.ID,
		ExpiresAt: expiresAt,
	}, nil
}

// TokenFromHeader extracts the token from an Authorization header.
// Both the "Bearer" and "Token" schemes are accepted.
func TokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", domain.ErrUnauthenticated.Wrap(errors.New("missing Authorization header"))
	}

	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return "", domain.ErrUnauthenticated.Wrap(errors.New("invalid Authorization header format"))
	}

	switch strings.ToLower(parts[0]) {
	case "bearer", "token":
		return strings.TrimSpace(parts[1]), nil
	default:
		return "", domain.ErrUnauthenticated.Wrap(fmt.Errorf("unsupported authorization type: %s", parts[0]))
	}
}
