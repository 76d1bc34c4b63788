package blogs

import (
	"context"

	"github.com/tecknovice/blogapi/internal/errs"
	"github.com/tecknovice/blogapi/internal/models"
	"github.com/tecknovice/blogapi/internal/policy"
)

// Authors resolves blog owners for the public surface. The users
// store satisfies it.
type Authors interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type Service struct {
	store   Store
	authors Authors
}

func NewService(store Store, authors Authors) *Service {
	return &Service{store: store, authors: authors}
}

// load applies the read gate shared by every per-id operation. A row
// the actor may not see is indistinguishable from a missing one.
func (s *Service) load(ctx context.Context, actor policy.Actor, id int64) (*models.Blog, error) {
	blog, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanShowBlog(actor, *blog) {
		return nil, errs.ErrNotFound
	}
	return blog, nil
}

// loadForWrite layers the write gate on top: visible but not writable
// is Forbidden, not visible stays NotFound.
func (s *Service) loadForWrite(ctx context.Context, actor policy.Actor, id int64) (*models.Blog, error) {
	blog, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanUpdateBlog(actor, *blog) {
		return nil, errs.ErrForbidden
	}
	return blog, nil
}

// List returns the rows inside the actor's visibility scope.
func (s *Service) List(ctx context.Context, actor policy.Actor) ([]models.Blog, error) {
	return s.store.List(ctx, policy.BlogScope(actor))
}

func (s *Service) Get(ctx context.Context, actor policy.Actor, id int64) (*models.Blog, error) {
	return s.load(ctx, actor, id)
}

type CreateInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published *bool  `json:"published"`
}

func (s *Service) Create(ctx context.Context, actor policy.Actor, in CreateInput) (*models.Blog, error) {
	if !policy.CanCreateBlog(actor) {
		return nil, errs.ErrUnauthenticated
	}

	v := errs.NewValidation()
	if in.Title == "" {
		v.Add("title", "can't be blank")
	}
	if in.Content == "" {
		v.Add("content", "can't be blank")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	blog := &models.Blog{
		UserID:  actor.ID(),
		Title:   in.Title,
		Content: in.Content,
	}
	if in.Published != nil {
		blog.Published = *in.Published
	}
	if err := s.store.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

type UpdateInput struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

func (s *Service) Update(ctx context.Context, actor policy.Actor, id int64, in UpdateInput) (*models.Blog, error) {
	blog, err := s.loadForWrite(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	v := errs.NewValidation()
	if in.Title != nil && *in.Title == "" {
		v.Add("title", "can't be blank")
	}
	if in.Content != nil && *in.Content == "" {
		v.Add("content", "can't be blank")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if in.Title != nil {
		blog.Title = *in.Title
	}
	if in.Content != nil {
		blog.Content = *in.Content
	}
	if in.Published != nil {
		blog.Published = *in.Published
	}

	if err := s.store.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *Service) Destroy(ctx context.Context, actor policy.Actor, id int64) error {
	blog, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if !policy.CanDestroyBlog(actor, *blog) {
		return errs.ErrForbidden
	}
	return s.store.Delete(ctx, blog.ID)
}

// SetPublished backs the publish and unpublish actions. It takes no
// other input and touches no other field.
func (s *Service) SetPublished(ctx context.Context, actor policy.Actor, id int64, published bool) (*models.Blog, error) {
	blog, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanPublishBlog(actor, *blog) {
		return nil, errs.ErrForbidden
	}

	blog.Published = published
	if err := s.store.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// PublicList is the anonymous surface: published rows with their
// authors attached.
func (s *Service) PublicList(ctx context.Context) ([]models.PublicBlog, error) {
	blogs, err := s.store.List(ctx, policy.PublishedOnly())
	if err != nil {
		return nil, err
	}

	out := make([]models.PublicBlog, 0, len(blogs))
	for _, b := range blogs {
		author, err := s.authors.GetByID(ctx, b.UserID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.PublicBlog{Blog: b, User: author.Author()})
	}
	return out, nil
}

func (s *Service) PublicShow(ctx context.Context, id int64) (*models.PublicBlog, error) {
	blog, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !blog.Published {
		return nil, errs.ErrNotFound
	}

	author, err := s.authors.GetByID(ctx, blog.UserID)
	if err != nil {
		return nil, err
	}
	return &models.PublicBlog{Blog: *blog, User: author.Author()}, nil
}
