package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextUserKey ctxKey = "currentUser"

// CurrentUser is the authenticated principal of a request. Permissions is
// the effective set resolved from the user's roles for this request only.
type CurrentUser struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	EmployeeID  *int64   `json:"empleado_id,omitempty"`
	TokenID     string   `json:"-"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

func ContextWithUser(ctx context.Context, user *CurrentUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}

func UserFromContext(ctx context.Context) (*CurrentUser, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(ContextUserKey).(*CurrentUser)
	return user, ok && user != nil
}

// ActorIDFromContext returns the id of the authenticated user, or 0 for anonymous calls.
func ActorIDFromContext(ctx context.Context) int64 {
	if user, ok := UserFromContext(ctx); ok {
		return user.ID
	}
	return 0
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
