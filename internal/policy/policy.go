// Package policy is the single authorization decision point. Every
// predicate is a pure function of the caller and (where relevant) the
// request row: no storage access, no side effects. Handlers and
// services translate a false result into a 403.
package policy

import (
	"github.com/maintdesk/maintdesk/internal/models"
)

// IsPrivileged reports whether the user is an administrator or
// director. The two roles are equivalent for every authorization
// decision in the system.
func IsPrivileged(u *models.User) bool {
	return u.Role.Code == models.RoleAdministrator || u.Role.Code == models.RoleDirector
}

// CanViewAll reports whether the user may list requests without an
// ownership filter.
func CanViewAll(u *models.User) bool {
	return IsPrivileged(u)
}

// CanView reports whether the user may read a single request.
func CanView(u *models.User, r *models.Request) bool {
	return IsPrivileged(u) || isRequestor(u, r) || isResponsible(u, r)
}

// CanEdit reports whether the user may change content fields (title,
// description, priority, room, type, photos). The responsible assignee
// cannot edit content, only status.
func CanEdit(u *models.User, r *models.Request) bool {
	return IsPrivileged(u) || isRequestor(u, r)
}

// CanChangeStatus reports whether the user may transition the request
// to another status.
func CanChangeStatus(u *models.User, r *models.Request) bool {
	return IsPrivileged(u) || isRequestor(u, r) || isResponsible(u, r)
}

// CanRate reports whether the user may set or clear the rating.
func CanRate(u *models.User) bool {
	return IsPrivileged(u)
}

// CanDelete reports whether the user may delete the request.
func CanDelete(u *models.User, r *models.Request) bool {
	return IsPrivileged(u) || isRequestor(u, r)
}

// CanManageReferenceData reports whether the user may create, update or
// delete rooms and statuses. Request types have no write surface at all.
func CanManageReferenceData(u *models.User) bool {
	return IsPrivileged(u)
}

// CanManageUsers reports whether the user may list or create accounts.
func CanManageUsers(u *models.User) bool {
	return IsPrivileged(u)
}

func isRequestor(u *models.User, r *models.Request) bool {
	return r.RequestorID == u.ID
}

func isResponsible(u *models.User, r *models.Request) bool {
	return r.ResponsibleID != nil && *r.ResponsibleID == u.ID
}
