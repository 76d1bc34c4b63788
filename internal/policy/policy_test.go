package policy

import (
	"testing"

	"github.com/tecknovice/blogapi/internal/models"
)

func blog(owner int64, published bool) models.Blog {
	return models.Blog{ID: 1, UserID: owner, Published: published}
}

func TestCanShowBlog(t *testing.T) {
	owner := Authenticated(1, models.RoleUser)
	other := Authenticated(2, models.RoleUser)
	admin := Authenticated(3, models.RoleAdmin)

	cases := []struct {
		name  string
		actor Actor
		blog  models.Blog
		want  bool
	}{
		{"anonymous published", Anonymous(), blog(1, true), true},
		{"anonymous unpublished", Anonymous(), blog(1, false), false},
		{"owner unpublished", owner, blog(1, false), true},
		{"other unpublished", other, blog(1, false), false},
		{"other published", other, blog(1, true), true},
		{"admin unpublished", admin, blog(1, false), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanShowBlog(tc.actor, tc.blog); got != tc.want {
				t.Fatalf("CanShowBlog = %v, want %v", got, tc.want)
			}
		})
	}
}

// The product historically had a looser variant where any signed-in
// user could read any unpublished blog. That variant is superseded:
// being authenticated alone must not grant read access.
func TestShowUnpublishedDeniedToOtherUsers(t *testing.T) {
	other := Authenticated(42, models.RoleUser)
	if CanShowBlog(other, blog(1, false)) {
		t.Fatal("non-owner must not read an unpublished blog")
	}
}

func TestCanWriteBlog(t *testing.T) {
	owner := Authenticated(1, models.RoleUser)
	other := Authenticated(2, models.RoleUser)
	admin := Authenticated(3, models.RoleAdmin)

	for _, b := range []models.Blog{blog(1, false), blog(1, true)} {
		if !CanUpdateBlog(owner, b) || !CanDestroyBlog(owner, b) {
			t.Fatal("owner must be able to write own blog")
		}
		if CanUpdateBlog(other, b) || CanDestroyBlog(other, b) {
			t.Fatal("non-owner must not write someone else's blog")
		}
		if !CanUpdateBlog(admin, b) || !CanDestroyBlog(admin, b) {
			t.Fatal("admin must be able to write any blog")
		}
		if CanUpdateBlog(Anonymous(), b) {
			t.Fatal("anonymous must not write")
		}
		// publish/unpublish follow the update predicate exactly
		if CanPublishBlog(owner, b) != CanUpdateBlog(owner, b) ||
			CanPublishBlog(other, b) != CanUpdateBlog(other, b) {
			t.Fatal("publish permission must equal update permission")
		}
	}
}

func TestCanCreateBlog(t *testing.T) {
	if CanCreateBlog(Anonymous()) {
		t.Fatal("anonymous must not create")
	}
	if !CanCreateBlog(Authenticated(1, models.RoleUser)) {
		t.Fatal("any authenticated user may create")
	}
}

func TestBlogScope(t *testing.T) {
	rows := []models.Blog{
		{ID: 1, UserID: 1, Published: true},
		{ID: 2, UserID: 1, Published: false},
		{ID: 3, UserID: 2, Published: false},
	}

	filter := func(s Scope) []int64 {
		var ids []int64
		for _, b := range rows {
			if s.Allows(b) {
				ids = append(ids, b.ID)
			}
		}
		return ids
	}

	if got := filter(BlogScope(Anonymous())); len(got) != 1 || got[0] != 1 {
		t.Fatalf("anonymous scope = %v, want published only", got)
	}
	if got := filter(BlogScope(Authenticated(1, models.RoleUser))); len(got) != 2 {
		t.Fatalf("owner scope = %v, want published plus own", got)
	}
	if got := filter(BlogScope(Authenticated(3, models.RoleAdmin))); len(got) != 3 {
		t.Fatalf("admin scope = %v, want all rows", got)
	}
	if got := filter(PublishedOnly()); len(got) != 1 {
		t.Fatalf("public scope = %v, want published only", got)
	}
}

func TestUserRules(t *testing.T) {
	self := Authenticated(1, models.RoleUser)
	other := Authenticated(2, models.RoleUser)
	admin := Authenticated(3, models.RoleAdmin)

	if !CanShowUser(self, 1) || !CanShowUser(admin, 1) {
		t.Fatal("self and admin may view a user")
	}
	if CanShowUser(other, 1) || CanShowUser(Anonymous(), 1) {
		t.Fatal("other users and anonymous may not view a user")
	}

	if !CanUpdateProfile(self, 1) {
		t.Fatal("self may update own profile")
	}
	if CanUpdateProfile(admin, 1) {
		t.Fatal("profile updates are self-only, even for admins")
	}

	if CanUpdateRole(self) || CanUpdateRole(other) {
		t.Fatal("only admins may change roles")
	}
	if !CanUpdateRole(admin) {
		t.Fatal("admin may change roles")
	}

	if CanDestroyUser(self) || !CanDestroyUser(admin) {
		t.Fatal("only admins may destroy users")
	}
	if CanListUsers(self) || !CanListUsers(admin) {
		t.Fatal("only admins may list users")
	}
}
