package policy

import "github.com/tecknovice/blogapi/internal/models"

// ownsOrAdmin is the single owner-or-admin predicate every blog write
// rule goes through. The admin bypass lives here and nowhere else.
func ownsOrAdmin(a Actor, b models.Blog) bool {
	return a.Admin() || a.Is(b.UserID)
}

// CanShowBlog: published blogs are visible to everyone; unpublished
// ones only to their owner or an admin.
func CanShowBlog(a Actor, b models.Blog) bool {
	return b.Published || ownsOrAdmin(a, b)
}

// CanCreateBlog: any authenticated user.
func CanCreateBlog(a Actor) bool {
	return !a.Anonymous()
}

func CanUpdateBlog(a Actor, b models.Blog) bool {
	return ownsOrAdmin(a, b)
}

func CanDestroyBlog(a Actor, b models.Blog) bool {
	return ownsOrAdmin(a, b)
}

// CanPublishBlog gates publish and unpublish. They are specializations
// of update, not separate permissions.
func CanPublishBlog(a Actor, b models.Blog) bool {
	return CanUpdateBlog(a, b)
}

// Scope restricts which blog rows a list query may return. It is
// computed once per request and translated by each store
// implementation (a WHERE clause for Postgres, a filter in memory).
type Scope struct {
	all     bool
	owned   bool
	ownerID int64
}

// BlogScope resolves the visibility scope for an actor: admins see all
// rows, authenticated users see published rows plus their own, and
// anonymous callers see published rows only.
func BlogScope(a Actor) Scope {
	switch {
	case a.Admin():
		return Scope{all: true}
	case !a.Anonymous():
		return Scope{owned: true, ownerID: a.ID()}
	default:
		return Scope{}
	}
}

// PublishedOnly is the scope of the anonymous public surface.
func PublishedOnly() Scope {
	return Scope{}
}

func (s Scope) All() bool {
	return s.all
}

// Owner returns the owner id whose unpublished rows are visible in
// addition to published ones, and whether such an owner exists.
func (s Scope) Owner() (int64, bool) {
	return s.ownerID, s.owned
}

// Allows reports whether a single row falls inside the scope.
func (s Scope) Allows(b models.Blog) bool {
	if s.all || b.Published {
		return true
	}
	return s.owned && b.UserID == s.ownerID
}
