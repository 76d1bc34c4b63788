package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tecknovice/blogapi/internal/errs"
	"github.com/tecknovice/blogapi/internal/models"
	"github.com/tecknovice/blogapi/internal/policy"
)

// UserStore is the slice of the identity store the token lifecycle
// needs. The users package satisfies it.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type Service struct {
	users    UserStore
	denylist Denylist
	secret   []byte
	ttl      time.Duration
}

func NewService(users UserStore, denylist Denylist, secret string, ttl time.Duration) *Service {
	return &Service{
		users:    users,
		denylist: denylist,
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

// Login verifies the credentials and issues a signed token. Unknown
// email and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", errs.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", errs.ErrInvalidCredentials
	}

	token, _, err := GenerateToken(user, s.secret, s.ttl)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Verify resolves a bearer token to an actor. Signature, expiry, the
// denylist, and the user record itself must all check out; any failure
// is ErrUnauthenticated.
func (s *Service) Verify(ctx context.Context, tokenStr string) (policy.Actor, error) {
	claims, err := ParseToken(tokenStr, s.secret)
	if err != nil {
		return policy.Anonymous(), errs.ErrUnauthenticated
	}

	revoked, err := s.denylist.Contains(ctx, claims.ID)
	if err != nil {
		return policy.Anonymous(), err
	}
	if revoked {
		return policy.Anonymous(), errs.ErrUnauthenticated
	}

	// Resolve against the identity store so a deleted user or a role
	// change takes effect before the token expires.
	user, err := s.users.GetByID(ctx, claims.SubjectInt())
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return policy.Anonymous(), errs.ErrUnauthenticated
		}
		return policy.Anonymous(), err
	}

	return policy.Authenticated(user.ID, user.Role), nil
}

// User loads the full record behind an actor, for /me style responses.
func (s *Service) User(ctx context.Context, actor policy.Actor) (*models.User, error) {
	if actor.Anonymous() {
		return nil, errs.ErrUnauthenticated
	}
	return s.users.GetByID(ctx, actor.ID())
}

// Revoke adds the token's jti to the denylist. Idempotent, and an
// already-expired token is still accepted so logout never fails on a
// stale client.
func (s *Service) Revoke(ctx context.Context, tokenStr string) error {
	claims, err := ParseTokenUnverifiedExpiry(tokenStr, s.secret)
	if err != nil {
		return errs.ErrUnauthenticated
	}

	expiresAt := time.Now().Add(s.ttl)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return s.denylist.Revoke(ctx, claims.ID, claims.SubjectInt(), expiresAt)
}
