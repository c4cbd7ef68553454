package shared

import (
	"context"

	"quickcourt/shared/constant"
)

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID string
	Email  string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == constant.RoleAdmin
}

func (a Actor) IsGuest() bool {
	return a.UserID == constant.Empty
}

// Name is the value recorded in created_by and modified_by.
func (a Actor) Name() string {
	if a.IsGuest() {
		return constant.ContextGuest
	}

	return a.UserID
}

// WithActor stores the caller in ctx under the keys the auth middleware uses.
func WithActor(ctx context.Context, actor Actor) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, actor.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, actor.Email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, actor.Role)
}

func ActorFromContext(ctx context.Context) Actor {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Actor{UserID: userID, Email: email, Role: role}
}
