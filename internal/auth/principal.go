package auth

import (
	"context"

	"tutordesk/internal/model"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	ID    string     `json:"id"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// IsTeacher reports whether the caller has the teacher role.
func (p Principal) IsTeacher() bool { return p.Role == model.RoleTeacher }

// IsParent reports whether the caller has the parent role.
func (p Principal) IsParent() bool { return p.Role == model.RoleParent }

// IsAdmin reports whether the caller has the admin role.
func (p Principal) IsAdmin() bool { return p.Role == model.RoleAdmin }

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored in ctx, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.ID == "" {
		return Principal{}, false
	}
	return p, true
}
