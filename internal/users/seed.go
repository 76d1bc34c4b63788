package users

import (
	"context"
	"errors"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/tecknovice/blogapi/internal/errs"
	"github.com/tecknovice/blogapi/internal/models"
)

type seedFile struct {
	Admins []struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"admins"`
}

// SeedAdmins creates the admin accounts listed in a YAML file,
// skipping any email that already exists. Registration never produces
// an admin, so this is how the first one comes to be.
func SeedAdmins(ctx context.Context, store Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return err
	}

	for _, a := range sf.Admins {
		if a.Email == "" || a.Password == "" {
			continue
		}
		if _, err := store.GetByEmail(ctx, a.Email); err == nil {
			continue
		} else if !errors.Is(err, errs.ErrNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &models.User{
			Email:    a.Email,
			Password: string(hash),
			Role:     models.RoleAdmin,
		}
		if a.Name != "" {
			name := a.Name
			user.Name = &name
		}
		if err := store.Create(ctx, user); err != nil {
			return err
		}
	}
	return nil
}
