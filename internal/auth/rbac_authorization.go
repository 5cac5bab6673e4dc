package auth

import (
	"log/slog"
	"net/http"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/transport"
	"github.com/silcast/crane-admin/pkg/logger"
)

// RBACAuthorization gates routes on a single permission each.
type RBACAuthorization struct {
	*transport.BaseHandler
}

func NewRBACAuthorization(lg *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{BaseHandler: transport.NewBaseHandler(lg)}
}

// Require answers 401 when the request carries no user and 403 when the user
// lacks permission; the wrapped handler only runs when the check passes.
func (ra *RBACAuthorization) Require(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				logger.From(r.Context()).Warn("authorization check failed: user not found in context")
				ra.WriteAppError(w, internal.ErrMissingToken)
				return
			}

			if !Can(user, permission) {
				logger.From(r.Context()).Warn("access denied: insufficient permissions",
					"user_id", user.ID,
					"required_permission", permission,
					"roles", user.Roles)
				ra.WriteAppError(w, internal.ErrPermissionDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
