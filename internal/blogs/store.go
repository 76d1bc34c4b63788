package blogs

import (
	"context"

	"github.com/tecknovice/blogapi/internal/models"
	"github.com/tecknovice/blogapi/internal/policy"
)

// Store persists blogs. List takes the policy scope so row visibility
// is decided before anything leaves storage. Lookups that miss return
// errs.ErrNotFound.
type Store interface {
	Create(ctx context.Context, b *models.Blog) error
	GetByID(ctx context.Context, id int64) (*models.Blog, error)
	List(ctx context.Context, scope policy.Scope) ([]models.Blog, error)
	Update(ctx context.Context, b *models.Blog) error
	Delete(ctx context.Context, id int64) error
	DeleteByOwner(ctx context.Context, ownerID int64) error
}
