package policy

// User rules take the target user id rather than the loaded record so
// they can run before any store access. Existence is never revealed to
// an actor the rule rejects.

// CanShowUser: self or admin.
func CanShowUser(a Actor, userID int64) bool {
	return a.Admin() || a.Is(userID)
}

// CanUpdateUser covers the non-role fields: self or admin.
func CanUpdateUser(a Actor, userID int64) bool {
	return a.Admin() || a.Is(userID)
}

// CanUpdateRole: only admins may change the role field, on any user.
func CanUpdateRole(a Actor) bool {
	return a.Admin()
}

func CanDestroyUser(a Actor) bool {
	return a.Admin()
}

// CanListUsers gates the admin user index. Non-admins are handed an
// empty set rather than an error; the caller checks this predicate to
// decide which.
func CanListUsers(a Actor) bool {
	return a.Admin()
}

// CanShowProfile: any signed-in user may view their own profile.
func CanShowProfile(a Actor) bool {
	return !a.Anonymous()
}

// CanUpdateProfile: strictly self. Admins edit other users through the
// admin surface, not the profile one.
func CanUpdateProfile(a Actor, userID int64) bool {
	return a.Is(userID)
}
