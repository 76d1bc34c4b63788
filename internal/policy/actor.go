// Package policy holds the authorization rules for the API as pure
// decision functions over an explicit actor. Nothing in here touches
// storage; callers load the record first and ask for a verdict.
package policy

import "github.com/tecknovice/blogapi/internal/models"

// Actor is the identity behind a request: either anonymous or an
// authenticated user carrying id and role. The zero value is anonymous.
type Actor struct {
	id      int64
	role    models.Role
	present bool
}

func Anonymous() Actor {
	return Actor{}
}

func Authenticated(id int64, role models.Role) Actor {
	return Actor{id: id, role: role, present: true}
}

func (a Actor) Anonymous() bool {
	return !a.present
}

func (a Actor) Admin() bool {
	return a.present && a.role == models.RoleAdmin
}

// ID returns the user id, valid only when the actor is not anonymous.
func (a Actor) ID() int64 {
	return a.id
}

func (a Actor) Role() models.Role {
	return a.role
}

// Is reports whether the actor is the authenticated user with the
// given id.
func (a Actor) Is(userID int64) bool {
	return a.present && a.id == userID
}
