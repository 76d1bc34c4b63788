package blogs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tecknovice/blogapi/internal/blogs"
	"github.com/tecknovice/blogapi/internal/errs"
	"github.com/tecknovice/blogapi/internal/models"
	"github.com/tecknovice/blogapi/internal/policy"
	"github.com/tecknovice/blogapi/internal/users"
)

type fixture struct {
	svc       *blogs.Service
	store     *blogs.MemoryStore
	userStore *users.MemoryStore
	owner     policy.Actor
	other     policy.Actor
	admin     policy.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	userStore := users.NewMemoryStore()
	mkUser := func(email string, role models.Role) *models.User {
		u := &models.User{Email: email, Password: "x", Role: role}
		if err := userStore.Create(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
		return u
	}
	owner := mkUser("owner@example.com", models.RoleUser)
	other := mkUser("other@example.com", models.RoleUser)
	admin := mkUser("root@example.com", models.RoleAdmin)

	store := blogs.NewMemoryStore()
	return &fixture{
		svc:       blogs.NewService(store, userStore),
		store:     store,
		userStore: userStore,
		owner:     policy.Authenticated(owner.ID, owner.Role),
		other:     policy.Authenticated(other.ID, other.Role),
		admin:     policy.Authenticated(admin.ID, admin.Role),
	}
}

// The full lifecycle the product is built around: draft, invisible to
// the public, publish, visible, guarded against non-owners.
func TestBlogLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	blog, err := f.svc.Create(ctx, f.owner, blogs.CreateInput{Title: "T", Content: "body text"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if blog.Published {
		t.Fatal("new blogs default to unpublished")
	}
	if blog.UserID != f.owner.ID() {
		t.Fatalf("owner = %d, want %d", blog.UserID, f.owner.ID())
	}

	// invisible to anonymous and to the public surface while draft
	if _, err := f.svc.Get(ctx, policy.Anonymous(), blog.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("anonymous get of draft = %v, want ErrNotFound", err)
	}
	if _, err := f.svc.PublicShow(ctx, blog.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("public show of draft = %v, want ErrNotFound", err)
	}

	// owner and admin still see it
	if _, err := f.svc.Get(ctx, f.owner, blog.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := f.svc.Get(ctx, f.admin, blog.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}

	published, err := f.svc.SetPublished(ctx, f.owner, blog.ID, true)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !published.Published {
		t.Fatal("publish must set the flag")
	}
	if published.Title != "T" || published.Content != "body text" {
		t.Fatal("publish must touch nothing but the flag")
	}

	// now the public can read it
	pub, err := f.svc.PublicShow(ctx, blog.ID)
	if err != nil {
		t.Fatalf("public show after publish: %v", err)
	}
	if pub.User.Email != "owner@example.com" {
		t.Fatalf("public author email = %q", pub.User.Email)
	}

	// a different user may read but not touch it
	if _, err := f.svc.Update(ctx, f.other, blog.ID, blogs.UpdateInput{}); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("non-owner update = %v, want ErrForbidden", err)
	}

	// an admin may
	title := "Edited"
	if _, err := f.svc.Update(ctx, f.admin, blog.ID, blogs.UpdateInput{Title: &title}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Create(ctx, f.owner, blogs.CreateInput{})

	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields["title"]) == 0 || len(ve.Fields["content"]) == 0 {
		t.Fatalf("both blank fields must be reported: %v", ve.Fields)
	}

	if _, err := f.svc.Create(ctx, policy.Anonymous(), blogs.CreateInput{Title: "T", Content: "c"}); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Fatalf("anonymous create = %v, want ErrUnauthenticated", err)
	}
}

// An unpublished blog must be indistinguishable from a missing one for
// actors who cannot read it, even on write attempts.
func TestWriteOnInvisibleBlogIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	draft, err := f.svc.Create(ctx, f.owner, blogs.CreateInput{Title: "T", Content: "c"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.Update(ctx, f.other, draft.ID, blogs.UpdateInput{}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("update of invisible draft = %v, want ErrNotFound", err)
	}
	if err := f.svc.Destroy(ctx, f.other, draft.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("destroy of invisible draft = %v, want ErrNotFound", err)
	}
	if _, err := f.svc.SetPublished(ctx, f.other, draft.ID, true); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("publish of invisible draft = %v, want ErrNotFound", err)
	}
}

func TestListScopes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	published, _ := f.svc.Create(ctx, f.owner, blogs.CreateInput{Title: "pub", Content: "c"})
	if _, err := f.svc.SetPublished(ctx, f.owner, published.ID, true); err != nil {
		t.Fatalf("publish: %v", err)
	}
	ownDraft, _ := f.svc.Create(ctx, f.owner, blogs.CreateInput{Title: "draft", Content: "c"})
	otherDraft, _ := f.svc.Create(ctx, f.other, blogs.CreateInput{Title: "other draft", Content: "c"})

	ids := func(list []models.Blog) map[int64]bool {
		got := map[int64]bool{}
		for _, b := range list {
			got[b.ID] = true
		}
		return got
	}

	// anonymous: published rows only, never a draft
	list, err := f.svc.List(ctx, policy.Anonymous())
	if err != nil {
		t.Fatalf("anonymous list: %v", err)
	}
	got := ids(list)
	if !got[published.ID] || got[ownDraft.ID] || got[otherDraft.ID] {
		t.Fatalf("anonymous list = %v", got)
	}

	// owner: exactly published rows plus their own
	list, err = f.svc.List(ctx, f.owner)
	if err != nil {
		t.Fatalf("owner list: %v", err)
	}
	got = ids(list)
	if !got[published.ID] || !got[ownDraft.ID] || got[otherDraft.ID] {
		t.Fatalf("owner list = %v", got)
	}

	// admin: everything
	list, err = f.svc.List(ctx, f.admin)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("admin list = %d rows, want 3", len(list))
	}
}

func TestUnpublishHidesFromPublic(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	blog, _ := f.svc.Create(ctx, f.owner, blogs.CreateInput{Title: "T", Content: "c"})
	if _, err := f.svc.SetPublished(ctx, f.owner, blog.ID, true); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := f.svc.SetPublished(ctx, f.admin, blog.ID, false); err != nil {
		t.Fatalf("admin unpublish: %v", err)
	}
	if _, err := f.svc.PublicShow(ctx, blog.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("public show after unpublish = %v, want ErrNotFound", err)
	}

	pubs, err := f.svc.PublicList(ctx)
	if err != nil {
		t.Fatalf("public list: %v", err)
	}
	if len(pubs) != 0 {
		t.Fatalf("public list = %d rows, want 0", len(pubs))
	}
}

func TestDestroy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	blog, _ := f.svc.Create(ctx, f.owner, blogs.CreateInput{Title: "T", Content: "c"})
	if err := f.svc.Destroy(ctx, f.owner, blog.ID); err != nil {
		t.Fatalf("owner destroy: %v", err)
	}
	if _, err := f.svc.Get(ctx, f.owner, blog.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatal("blog should be gone")
	}
	if err := f.svc.Destroy(ctx, f.owner, blog.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("destroy of missing blog = %v, want ErrNotFound", err)
	}
}

func TestUpdateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	blog, _ := f.svc.Create(ctx, f.owner, blogs.CreateInput{Title: "T", Content: "c"})

	empty := ""
	_, err := f.svc.Update(ctx, f.owner, blog.ID, blogs.UpdateInput{Title: &empty, Content: &empty})

	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields["title"]) == 0 || len(ve.Fields["content"]) == 0 {
		t.Fatalf("both blank fields must be reported: %v", ve.Fields)
	}
}
