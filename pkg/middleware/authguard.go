package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/rvasanth/distributor-console/pkg/session"
)

// authFailure is the body sent when a protected request is refused. The UI
// navigates to Redirect instead of rendering anything.
type authFailure struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// AuthGuard refuses protected requests unless a live, role-matching session
// exists. The checks run before any handler work, so no data fetch is ever
// issued on an expired or mismatched session, and every failure forces a
// logout so no stale session survives.
func AuthGuard(sessions *session.Manager, want models.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Load()
			if err != nil {
				// Load already purged storage on a malformed token.
				refuse(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			if !sessions.IsValid(sess) {
				if err := sessions.Logout(); err != nil {
					slog.Error("failed to purge expired session", "error", err)
				}
				refuse(w, http.StatusUnauthorized, "session expired")
				return
			}

			if err := sessions.RequireRole(sess, want); err != nil {
				var mismatch *session.RoleMismatchError
				if errors.As(err, &mismatch) {
					if err := sessions.Logout(); err != nil {
						slog.Error("failed to purge mismatched session", "error", err)
					}
					refuse(w, http.StatusForbidden, mismatch.Error())
					return
				}
				refuse(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		}
		return http.HandlerFunc(fn)
	}
}

func refuse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(authFailure{Error: message, Redirect: "/login"})
}
