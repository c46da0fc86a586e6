package interceptors

import "context"

type contextKey struct{ name string }

var (
	userIDKey   = contextKey{"user_id"}
	roleCodeKey = contextKey{"role_code"}
)

// WithIdentity returns a context with user_id and role_code set.
// Handlers and guards can read these via GetUserID and GetRoleCode.
func WithIdentity(ctx context.Context, userID, roleCode string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, roleCodeKey, roleCode)
	return ctx
}

// GetUserID returns the user_id from context and true if set; otherwise "", false.
func GetUserID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok
}

// GetRoleCode returns the role_code from context and true if set; otherwise "", false.
func GetRoleCode(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(roleCodeKey).(string)
	return v, ok
}
