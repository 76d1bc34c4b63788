package users

import (
	"context"
	"errors"

	"github.com/tecknovice/blogapi/internal/models"
)

// ErrDuplicateEmail is returned by Create/Update when the email is
// already taken. The service translates it into a validation error.
var ErrDuplicateEmail = errors.New("email already taken")

// Store is the identity store. Lookups that miss return
// errs.ErrNotFound.
type Store interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id int64) error
}
