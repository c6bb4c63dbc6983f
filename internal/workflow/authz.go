package workflow

import "fixitfast/backend/internal/models"

// Authorization predicates. Each one is a pure function of the acting
// subject, its role, and the resource, so they can be unit-tested without
// any transport or storage in play.

// CanChangeStatus reports whether role may trigger a status transition.
func CanChangeStatus(role models.Role) bool {
	return role == models.RoleAdmin
}

// CanDelete reports whether subject may delete a complaint owned by ownerID
// currently in the given status. Owners may delete only while Pending;
// administrators may delete in any state.
func CanDelete(subject string, role models.Role, ownerID string, status models.Status) bool {
	if role == models.RoleAdmin {
		return true
	}
	return subject == ownerID && status == models.StatusPending
}

// CanView reports whether subject may read a complaint owned by ownerID.
func CanView(subject string, role models.Role, ownerID string) bool {
	return role == models.RoleAdmin || subject == ownerID
}

// CanViewDashboard reports whether subject may read ownerID's dashboard.
func CanViewDashboard(subject string, role models.Role, ownerID string) bool {
	return role == models.RoleAdmin || subject == ownerID
}
