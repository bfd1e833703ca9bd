package domain

import "github.com/estatehub/listing-service/internal/user"

// CanMutate reports whether the actor may update or delete a listing owned by
// ownerID. Ownership is compared by identity, and admins may mutate anything.
func CanMutate(actor *user.User, ownerID string) bool {
	if actor == nil {
		return false
	}
	return actor.ID == ownerID || actor.Role == user.RoleAdmin
}

// CanManage reports whether the actor holds a privileged role.
func CanManage(actor *user.User) bool {
	if actor == nil {
		return false
	}
	return actor.Role == user.RoleAgent || actor.Role == user.RoleAdmin
}
