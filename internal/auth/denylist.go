package auth

import (
	"context"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// Denylist is the persisted set of revoked token identifiers. A token
// whose jti is present here is invalid regardless of its expiry.
// Lifecycle: insert on logout, prune once the underlying token has
// expired on its own.
type Denylist interface {
	Revoke(ctx context.Context, jti string, userID int64, expiresAt time.Time) error
	Contains(ctx context.Context, jti string) (bool, error)
	PruneExpired(ctx context.Context) (int64, error)
}

type PostgresDenylist struct {
	db *sqlx.DB
}

func NewPostgresDenylist(db *sqlx.DB) *PostgresDenylist {
	return &PostgresDenylist{db: db}
}

func (d *PostgresDenylist) Revoke(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO revoked_tokens (jti, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (jti) DO NOTHING
	`, jti, userID, expiresAt)
	return err
}

func (d *PostgresDenylist) Contains(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := d.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti=$1)
	`, jti)
	return exists, err
}

func (d *PostgresDenylist) PruneExpired(ctx context.Context) (int64, error) {
	res, err := d.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MemoryDenylist backs tests and keeps the same semantics as the
// Postgres table.
type MemoryDenylist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // jti -> token expiry
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{revoked: make(map[string]time.Time)}
}

func (d *MemoryDenylist) Revoke(_ context.Context, jti string, _ int64, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.revoked[jti]; !ok {
		d.revoked[jti] = expiresAt
	}
	return nil
}

func (d *MemoryDenylist) Contains(_ context.Context, jti string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.revoked[jti]
	return ok, nil
}

func (d *MemoryDenylist) PruneExpired(_ context.Context) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var n int64
	now := time.Now()
	for jti, exp := range d.revoked {
		if exp.Before(now) {
			delete(d.revoked, jti)
			n++
		}
	}
	return n, nil
}
