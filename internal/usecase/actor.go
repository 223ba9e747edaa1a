// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/service"
)

// Actor is the authenticated caller of an operation. A nil *Actor is an
// anonymous caller.
type Actor struct {
	UserID string
	Email  string
	Role   entity.Role
}

// ActorFromClaims converts verified token claims into an Actor.
func ActorFromClaims(claims *service.Claims) *Actor {
	if claims == nil {
		return nil
	}

	return &Actor{UserID: claims.UserID(), Email: claims.Email, Role: claims.Role}
}

// IsAdmin reports whether the actor has the admin role.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == entity.RoleAdmin
}

// CanAccess reports whether the actor is the owner of userID or an admin.
func (a *Actor) CanAccess(userID string) bool {
	return a != nil && (a.Role == entity.RoleAdmin || a.UserID == userID)
}
