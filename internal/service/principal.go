package service

import "github.com/rivalscott04/wastebank-sub000/internal/model"

// Principal is the authenticated caller of a workflow.
type Principal struct {
	UserID uint64
	Role   model.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == model.RoleAdmin
}

// owns reports whether p may see a row belonging to userID.
func (p Principal) owns(userID uint64) bool {
	return p.IsAdmin() || p.UserID == userID
}
