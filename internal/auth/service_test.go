package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tecknovice/blogapi/internal/auth"
	"github.com/tecknovice/blogapi/internal/errs"
	"github.com/tecknovice/blogapi/internal/models"
	"github.com/tecknovice/blogapi/internal/users"
)

const testSecret = "test-secret"

func seedUser(t *testing.T, store *users.MemoryStore, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	u := &models.User{Email: email, Password: string(hash), Role: role}
	if err := store.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func newService(t *testing.T, ttl time.Duration) (*auth.Service, *users.MemoryStore) {
	t.Helper()
	store := users.NewMemoryStore()
	return auth.NewService(store, auth.NewMemoryDenylist(), testSecret, ttl), store
}

func TestLoginAndVerify(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, time.Hour)
	u := seedUser(t, store, "alice@example.com", "password123", models.RoleUser)

	user, token, err := svc.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != u.ID {
		t.Fatalf("login user id = %d, want %d", user.ID, u.ID)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	actor, err := svc.Verify(ctx, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if actor.Anonymous() || actor.ID() != u.ID || actor.Role() != models.RoleUser {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

// Unknown email and wrong password must be indistinguishable.
func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, time.Hour)
	seedUser(t, store, "alice@example.com", "password123", models.RoleUser)

	_, _, badPassword := svc.Login(ctx, "alice@example.com", "wrong")
	_, _, badEmail := svc.Login(ctx, "nobody@example.com", "password123")

	if !errors.Is(badPassword, errs.ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", badPassword)
	}
	if !errors.Is(badEmail, errs.ErrInvalidCredentials) {
		t.Fatalf("unknown email: %v", badEmail)
	}
	if badPassword.Error() != badEmail.Error() {
		t.Fatal("credential errors must not reveal which part was wrong")
	}
}

func TestRevokedTokenFailsVerify(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, time.Hour)
	seedUser(t, store, "alice@example.com", "password123", models.RoleUser)

	_, token, err := svc.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Verify(ctx, token); err != nil {
		t.Fatalf("verify before revoke: %v", err)
	}

	if err := svc.Revoke(ctx, token); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	// well before expiry, but revoked
	if _, err := svc.Verify(ctx, token); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Fatalf("verify after revoke = %v, want ErrUnauthenticated", err)
	}
}

func TestRevokeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, time.Hour)
	seedUser(t, store, "alice@example.com", "password123", models.RoleUser)

	_, token, err := svc.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Revoke(ctx, token); err != nil {
		t.Fatalf("first revoke: %v", err)
	}
	if err := svc.Revoke(ctx, token); err != nil {
		t.Fatalf("second revoke: %v", err)
	}
}

func TestExpiredTokenFailsVerify(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, -time.Minute)
	seedUser(t, store, "alice@example.com", "password123", models.RoleUser)

	_, token, err := svc.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Verify(ctx, token); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Fatalf("verify of expired token = %v, want ErrUnauthenticated", err)
	}

	// expired tokens can still be revoked
	if err := svc.Revoke(ctx, token); err != nil {
		t.Fatalf("revoke of expired token: %v", err)
	}
}

func TestVerifyDeletedUser(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, time.Hour)
	u := seedUser(t, store, "alice@example.com", "password123", models.RoleUser)

	_, token, err := svc.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := store.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := svc.Verify(ctx, token); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Fatalf("verify for deleted user = %v, want ErrUnauthenticated", err)
	}
}

func TestTamperedTokenFailsVerify(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, time.Hour)
	seedUser(t, store, "alice@example.com", "password123", models.RoleUser)

	_, token, err := svc.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	other := auth.NewService(store, auth.NewMemoryDenylist(), "another-secret", time.Hour)
	if _, err := other.Verify(ctx, token); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Fatalf("verify with wrong secret = %v, want ErrUnauthenticated", err)
	}
}

func TestDenylistPruneExpired(t *testing.T) {
	ctx := context.Background()
	dl := auth.NewMemoryDenylist()

	if err := dl.Revoke(ctx, "stale", 1, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := dl.Revoke(ctx, "live", 1, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	n, err := dl.PruneExpired(ctx)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Fatalf("pruned %d rows, want 1", n)
	}

	if ok, _ := dl.Contains(ctx, "stale"); ok {
		t.Fatal("stale jti should be gone")
	}
	if ok, _ := dl.Contains(ctx, "live"); !ok {
		t.Fatal("live jti must survive the prune")
	}
}
