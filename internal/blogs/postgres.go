package blogs

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tecknovice/blogapi/internal/errs"
	"github.com/tecknovice/blogapi/internal/models"
	"github.com/tecknovice/blogapi/internal/policy"
)

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, b *models.Blog) error {
	return s.db.QueryRowxContext(ctx, `
		INSERT INTO blogs (user_id, title, content, published)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, b.UserID, b.Title, b.Content, b.Published).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*models.Blog, error) {
	var b models.Blog
	err := s.db.GetContext(ctx, &b, `SELECT * FROM blogs WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *PostgresStore) List(ctx context.Context, scope policy.Scope) ([]models.Blog, error) {
	blogs := []models.Blog{}

	if scope.All() {
		err := s.db.SelectContext(ctx, &blogs, `
			SELECT * FROM blogs ORDER BY created_at DESC
		`)
		return blogs, err
	}
	if owner, ok := scope.Owner(); ok {
		err := s.db.SelectContext(ctx, &blogs, `
			SELECT * FROM blogs
			WHERE published = TRUE OR user_id = $1
			ORDER BY created_at DESC
		`, owner)
		return blogs, err
	}
	err := s.db.SelectContext(ctx, &blogs, `
		SELECT * FROM blogs WHERE published = TRUE ORDER BY created_at DESC
	`)
	return blogs, err
}

func (s *PostgresStore) Update(ctx context.Context, b *models.Blog) error {
	b.UpdatedAt = time.Now()
	res, err := s.db.ExecContext(ctx, `
		UPDATE blogs
		SET title=$1, content=$2, published=$3, updated_at=$4
		WHERE id=$5
	`, b.Title, b.Content, b.Published, b.UpdatedAt, b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blogs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteByOwner(ctx context.Context, ownerID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM blogs WHERE user_id=$1`, ownerID)
	return err
}
