package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/rvasanth/distributor-console/pkg/session"
	"github.com/stretchr/testify/assert"
)

func guardToken(t *testing.T, role models.Role, expiresAt time.Time) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"sub":  "subj-1",
		"role": role,
		"exp":  expiresAt.Unix(),
	})
	assert.NoError(t, err)
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256"}`))
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func TestAuthGuard(t *testing.T) {
	protected := func() (http.Handler, *int) {
		calls := 0
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			sess := session.FromContext(r.Context())
			assert.NotNil(t, sess)
			w.WriteHeader(http.StatusOK)
		})
		return handler, &calls
	}

	t.Run("Live Session Passes", func(t *testing.T) {
		// Arrange
		store := session.NewMemoryStore()
		token := guardToken(t, models.RoleDistributor, time.Now().Add(time.Hour))
		assert.NoError(t, store.Save(token, models.RoleDistributor))
		sessions := session.NewManager(store, nil)

		handler, calls := protected()
		guarded := AuthGuard(sessions, models.RoleDistributor)(handler)

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		rr := httptest.NewRecorder()

		// Act
		guarded.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, *calls)
	})

	t.Run("No Session", func(t *testing.T) {
		// Arrange
		sessions := session.NewManager(session.NewMemoryStore(), nil)
		handler, calls := protected()
		guarded := AuthGuard(sessions, models.RoleDistributor)(handler)

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		rr := httptest.NewRecorder()

		// Act
		guarded.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, 0, *calls)
		assert.Contains(t, rr.Body.String(), "/login")
	})

	t.Run("Expired Session Is Refused Before Handler Runs", func(t *testing.T) {
		// Arrange: expired one second ago.
		store := session.NewMemoryStore()
		token := guardToken(t, models.RoleDistributor, time.Now().Add(-time.Second))
		assert.NoError(t, store.Save(token, models.RoleDistributor))
		sessions := session.NewManager(store, nil)

		handler, calls := protected()
		guarded := AuthGuard(sessions, models.RoleDistributor)(handler)

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		rr := httptest.NewRecorder()

		// Act
		guarded.ServeHTTP(rr, req)

		// Assert: refused, no handler call, and the stale token is purged.
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, 0, *calls)
		assert.Contains(t, rr.Body.String(), "session expired")
		_, loadErr := sessions.Load()
		assert.ErrorIs(t, loadErr, session.ErrNotAuthenticated)
	})

	t.Run("Role Mismatch Is Forbidden", func(t *testing.T) {
		// Arrange: a retailer token on a master-only console.
		store := session.NewMemoryStore()
		token := guardToken(t, models.RoleRetailer, time.Now().Add(time.Hour))
		assert.NoError(t, store.Save(token, models.RoleRetailer))
		sessions := session.NewManager(store, nil)

		handler, calls := protected()
		guarded := AuthGuard(sessions, models.RoleMaster)(handler)

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		rr := httptest.NewRecorder()

		// Act
		guarded.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, 0, *calls)
		_, loadErr := sessions.Load()
		assert.ErrorIs(t, loadErr, session.ErrNotAuthenticated)
	})

	t.Run("Malformed Token Is Purged", func(t *testing.T) {
		// Arrange
		store := session.NewMemoryStore()
		assert.NoError(t, store.Save("garbage", models.RoleDistributor))
		sessions := session.NewManager(store, nil)

		handler, calls := protected()
		guarded := AuthGuard(sessions, models.RoleDistributor)(handler)

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		rr := httptest.NewRecorder()

		// Act
		guarded.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, 0, *calls)
		_, _, storeErr := store.Load()
		assert.ErrorIs(t, storeErr, session.ErrNoToken)
	})
}
