package users

import (
	"context"
	"errors"
	"net/mail"

	"golang.org/x/crypto/bcrypt"

	"github.com/tecknovice/blogapi/internal/errs"
	"github.com/tecknovice/blogapi/internal/models"
	"github.com/tecknovice/blogapi/internal/policy"
)

// OwnedBlogs lets user deletion cascade to the user's blogs without
// this package importing the blogs one. The Postgres schema also
// cascades via FK; calling through here keeps the memory stores
// consistent with it.
type OwnedBlogs interface {
	DeleteByOwner(ctx context.Context, ownerID int64) error
}

type Service struct {
	store Store
	blogs OwnedBlogs
}

func NewService(store Store, blogs OwnedBlogs) *Service {
	return &Service{store: store, blogs: blogs}
}

type RegisterInput struct {
	Email                string  `json:"email"`
	Password             string  `json:"password"`
	PasswordConfirmation string  `json:"password_confirmation"`
	Name                 *string `json:"name"`
}

// Register creates a user with the default role. The role is never
// accepted from the outside here.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	v := errs.NewValidation()
	validateEmail(v, in.Email)
	validatePassword(v, in.Password, in.PasswordConfirmation)
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    in.Email,
		Password: string(hash),
		Role:     models.RoleUser,
		Name:     in.Name,
	}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			v.Add("email", "has already been taken")
			return nil, v.Err()
		}
		return nil, err
	}
	return user, nil
}

// Profile returns the actor's own record.
func (s *Service) Profile(ctx context.Context, actor policy.Actor) (*models.User, error) {
	if !policy.CanShowProfile(actor) {
		return nil, errs.ErrUnauthenticated
	}
	return s.store.GetByID(ctx, actor.ID())
}

type ProfileUpdate struct {
	Email                *string      `json:"email"`
	Name                 *string      `json:"name"`
	Bio                  *string      `json:"bio"`
	Avatar               *string      `json:"avatar"`
	Password             *string      `json:"password"`
	PasswordConfirmation *string      `json:"password_confirmation"`
	Role                 *models.Role `json:"role"`
}

// UpdateProfile applies a self-service update. A role field in the
// payload is rejected outright rather than silently dropped, so the
// attempt is visible to the caller.
func (s *Service) UpdateProfile(ctx context.Context, actor policy.Actor, in ProfileUpdate) (*models.User, error) {
	if actor.Anonymous() {
		return nil, errs.ErrUnauthenticated
	}
	if !policy.CanUpdateProfile(actor, actor.ID()) {
		return nil, errs.ErrForbidden
	}
	if in.Role != nil {
		return nil, errs.ErrForbidden
	}

	user, err := s.store.GetByID(ctx, actor.ID())
	if err != nil {
		return nil, err
	}

	v := errs.NewValidation()
	if in.Email != nil {
		validateEmail(v, *in.Email)
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			v.Add("password", "is too short (minimum is 8 characters)")
		}
		// confirmation is optional on the profile surface, but when
		// sent it has to match
		if in.PasswordConfirmation != nil && *in.PasswordConfirmation != *in.Password {
			v.Add("password_confirmation", "doesn't match password")
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = in.Name
	}
	if in.Bio != nil {
		user.Bio = in.Bio
	}
	if in.Avatar != nil {
		user.Avatar = in.Avatar
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.store.Update(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			v.Add("email", "has already been taken")
			return nil, v.Err()
		}
		return nil, err
	}
	return user, nil
}

// List returns every user for admins and an empty set for anyone
// else, mirroring the scoped index the product always had.
func (s *Service) List(ctx context.Context, actor policy.Actor) ([]models.User, error) {
	if !policy.CanListUsers(actor) {
		return []models.User{}, nil
	}
	return s.store.List(ctx)
}

// Get authorizes before touching the store so a forbidden caller
// learns nothing about whether the id exists.
func (s *Service) Get(ctx context.Context, actor policy.Actor, id int64) (*models.User, error) {
	if !policy.CanShowUser(actor, id) {
		return nil, errs.ErrForbidden
	}
	return s.store.GetByID(ctx, id)
}

type AdminUpdate struct {
	Email *string      `json:"email"`
	Role  *models.Role `json:"role"`
}

// Update applies an admin-surface update. Only email and role cross
// this boundary; profile fields are self-service only.
func (s *Service) Update(ctx context.Context, actor policy.Actor, id int64, in AdminUpdate) (*models.User, error) {
	if !policy.CanUpdateUser(actor, id) {
		return nil, errs.ErrForbidden
	}
	if in.Role != nil && !policy.CanUpdateRole(actor) {
		return nil, errs.ErrForbidden
	}

	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := errs.NewValidation()
	if in.Email != nil {
		validateEmail(v, *in.Email)
	}
	if in.Role != nil && !in.Role.Valid() {
		v.Add("role", "is not a valid role")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil {
		user.Role = *in.Role
	}

	if err := s.store.Update(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			v.Add("email", "has already been taken")
			return nil, v.Err()
		}
		return nil, err
	}
	return user, nil
}

// Destroy deletes a user and their blogs. Admin only.
func (s *Service) Destroy(ctx context.Context, actor policy.Actor, id int64) error {
	if !policy.CanDestroyUser(actor) {
		return errs.ErrForbidden
	}
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.blogs.DeleteByOwner(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func validateEmail(v *errs.ValidationError, email string) {
	if email == "" {
		v.Add("email", "can't be blank")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		v.Add("email", "must be a valid email address")
	}
}

func validatePassword(v *errs.ValidationError, password, confirmation string) {
	if password == "" {
		v.Add("password", "can't be blank")
		return
	}
	if len(password) < 8 {
		v.Add("password", "is too short (minimum is 8 characters)")
	}
	if confirmation != password {
		v.Add("password_confirmation", "doesn't match password")
	}
}
