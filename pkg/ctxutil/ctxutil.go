package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

type ctxKey string

const (
	identityKey  ctxKey = "identity"
	requestIDKey ctxKey = "request_id"
)

// Identity is the authenticated caller: opaque user ID plus role set, as
// delivered by the external identity provider.
type Identity struct {
	UserID uuid.UUID
	Roles  []domain.Role
}

// HasRole reports whether the identity carries any of the given roles.
func (id Identity) HasRole(roles ...domain.Role) bool {
	for _, want := range roles {
		for _, have := range id.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Inspector reports whether the identity may run inspections: FLOOR_MANAGER
// or ADMIN.
func (id Identity) Inspector() bool {
	return id.HasRole(domain.RoleFloorManager, domain.RoleAdmin)
}

// WithIdentity stores the caller identity in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromCtx extracts the caller identity from the context.
// Returns false if the value is missing, has a nil user ID, or wrong type.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.UserID == uuid.Nil {
		return Identity{}, false
	}
	return id, true
}

// UserIDFromCtx extracts just the user ID from the context.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := IdentityFromCtx(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return id.UserID, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
