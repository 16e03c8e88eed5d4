// Package permissions holds the access-control decisions for the API. Every
// policy is a pure function over the principal, the requested action and
// (when relevant) the owning author of the target object, so the rules can be
// tested without a router or a database. A nil principal means the request is
// anonymous.
package permissions

import "reviewhub/internal/api/models"

// Action is what the caller is trying to do, independent of HTTP verbs.
type Action int

const (
	ActionList Action = iota
	ActionRetrieve
	ActionCreate
	ActionUpdate
	ActionPartialUpdate
	ActionDelete
)

// Safe reports whether the action is read-only (fetch-one or list).
func (a Action) Safe() bool {
	return a == ActionList || a == ActionRetrieve
}

// AdminOnly allows only authenticated admins or staff members. The decision
// is the same whether or not a target object is in play.
func AdminOnly(principal *models.User) bool {
	return principal != nil && (principal.IsAdmin() || principal.IsStaff)
}

// SuperuserOrReadOnly allows safe actions for everyone and mutating actions
// only for superusers.
func SuperuserOrReadOnly(principal *models.User, action Action) bool {
	if action.Safe() {
		return true
	}
	return principal != nil && principal.IsSuperuser
}

// AuthenticatedOrReadOnly allows safe actions for everyone and requires an
// authenticated principal for anything mutating. It gates AuthorOrManager:
// the object-level check only runs once this one has passed.
func AuthenticatedOrReadOnly(principal *models.User, action Action) bool {
	if action.Safe() {
		return true
	}
	return principal != nil
}

// AuthorOrManager allows safe actions for everyone; mutating an existing
// object takes the object's author, a moderator or an admin. authorID is the
// owning user of the target and may be empty when authorship was severed
// (e.g. a comment whose account was removed), in which case only managers
// pass.
func AuthorOrManager(principal *models.User, action Action, authorID string) bool {
	if action.Safe() {
		return true
	}
	if principal == nil {
		return false
	}
	if authorID != "" && principal.ID == authorID {
		return true
	}
	return principal.IsAdmin() || principal.IsModerator()
}

// IsAuthenticated is the plain gate used by the self-profile endpoint.
func IsAuthenticated(principal *models.User) bool {
	return principal != nil
}
