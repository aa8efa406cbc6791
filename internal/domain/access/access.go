// Package access decides who may create, read, update or delete a
// document. Every function is pure: the full context arrives as
// arguments and nothing shared is touched, so decisions are safe to
// recompute on every request.
package access

import (
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/entities"
)

// Actor is the authenticated user context attached to a request.
type Actor struct {
	ID     string
	RoleID int
	Tier   int
}

func ActorFromUser(u *entities.User) Actor {
	tier := -1
	if role, ok := entities.RoleByID(u.RoleID); ok {
		tier = role.Tier
	}
	return Actor{ID: u.ID, RoleID: u.RoleID, Tier: tier}
}

func (a Actor) Authenticated() bool {
	return a.ID != ""
}

func (a Actor) IsAdmin() bool {
	return a.Tier == entities.AdminTier
}

// CanCreate allows any authenticated actor to create documents.
func CanCreate(a Actor) bool {
	return a.Authenticated()
}

// CanRead allows reading public documents, role documents shared with
// the actor's role, and the actor's own documents. Admin gets no
// bypass here: an admin who is neither owner nor in the matching role
// cannot read a private document.
func CanRead(a Actor, doc *entities.Document) bool {
	if doc.Access == entities.AccessPublic {
		return true
	}
	if doc.Access == entities.AccessRole && a.RoleID == doc.OwnerRoleID {
		return true
	}
	return a.ID == doc.OwnerUserID
}

// CanUpdate is owner-only. Admin has no update bypass.
func CanUpdate(a Actor, doc *entities.Document) bool {
	return a.ID == doc.OwnerUserID
}

// CanDelete allows the owner or an admin. This is the single place
// where the admin tier overrides ownership.
func CanDelete(a Actor, doc *entities.Document) bool {
	return a.ID == doc.OwnerUserID || a.IsAdmin()
}

// Visible is the listing predicate: a document appears in search
// results exactly when the actor could read it directly.
func Visible(a Actor, doc *entities.Document) bool {
	return CanRead(a, doc)
}
