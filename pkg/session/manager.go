package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rvasanth/distributor-console/pkg/ledger"
	"github.com/rvasanth/distributor-console/pkg/models"
)

// ErrNotAuthenticated is returned by Load when no token is persisted.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// ErrInvalidToken is returned when the persisted token cannot be decoded.
// Callers must treat it identically to ErrNotAuthenticated; the manager has
// already purged storage by the time it is returned.
var ErrInvalidToken = errors.New("session: invalid token")

// RoleMismatchError is returned when the session's role does not match the
// role a protected view requires. It forces a hard redirect, never a soft
// warning, because role-scoped pages assume a specific identity shape.
type RoleMismatchError struct {
	Want models.Role
	Got  models.Role
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("session: role mismatch: have %q, need %q", e.Got, e.Want)
}

// Manager is the single injected session service. No other component reads
// the raw token store directly.
type Manager struct {
	store TokenStore
	auth  ledger.Authenticator
	now   func() time.Time

	mu       sync.Mutex
	onLogout []func()
}

// NewManager creates a Manager over a token store and the ledger's login
// boundary.
func NewManager(store TokenStore, auth ledger.Authenticator) *Manager {
	return &Manager{
		store: store,
		auth:  auth,
		now:   time.Now,
	}
}

// Make sure we conform to the interface
var _ ledger.TokenSource = (*Manager)(nil)

// SetAuthenticator late-binds the login boundary. The ledger client reads
// its bearer token from the manager, so one of the two has to be wired
// after construction.
func (m *Manager) SetAuthenticator(auth ledger.Authenticator) {
	m.auth = auth
}

// Login exchanges credentials for a token, persists it and returns the
// decoded session.
func (m *Manager) Login(ctx context.Context, role models.Role, userID, password string) (*models.Session, error) {
	token, err := m.auth.Login(ctx, role, userID, password)
	if err != nil {
		return nil, err
	}

	sess, err := decodeToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if sess.SubjectRole == "" {
		sess.SubjectRole = role
	}

	if err := m.store.Save(token, sess.SubjectRole); err != nil {
		return nil, fmt.Errorf("failed to persist session token: %w", err)
	}
	return sess, nil
}

// Load reads the persisted token and decodes its claims. A malformed token
// purges storage and reports ErrInvalidToken; an absent one reports
// ErrNotAuthenticated.
func (m *Manager) Load() (*models.Session, error) {
	token, role, err := m.store.Load()
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	sess, err := decodeToken(token)
	if err != nil {
		// No stale token survives a decode failure.
		if logoutErr := m.Logout(); logoutErr != nil {
			return nil, fmt.Errorf("%w (logout also failed: %v)", ErrInvalidToken, logoutErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if sess.SubjectRole == "" {
		sess.SubjectRole = role
	}
	return sess, nil
}

// IsValid reports session liveness. It must be re-checked on every
// protected request, not only at login, because sessions expire mid-use.
func (m *Manager) IsValid(sess *models.Session) bool {
	if sess == nil || sess.ExpiresAt == 0 {
		return false
	}
	return time.Unix(sess.ExpiresAt, 0).After(m.now())
}

// RequireRole fails with *RoleMismatchError when the session's role does
// not match the expected one.
func (m *Manager) RequireRole(sess *models.Session, want models.Role) error {
	if sess == nil || sess.SubjectRole != want {
		got := models.Role("")
		if sess != nil {
			got = sess.SubjectRole
		}
		return &RoleMismatchError{Want: want, Got: got}
	}
	return nil
}

// Logout purges the persisted token and runs the registered cleanup hooks
// (cached balance, selector and workflow state). Safe to call twice.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return err
	}

	m.mu.Lock()
	hooks := make([]func(), len(m.onLogout))
	copy(hooks, m.onLogout)
	m.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
	return nil
}

// OnLogout registers a cleanup hook run on every logout.
func (m *Manager) OnLogout(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onLogout = append(m.onLogout, fn)
}

// Token implements ledger.TokenSource. It returns the raw persisted token;
// liveness is the guard's job, and the server's 401 is the backstop.
func (m *Manager) Token() string {
	token, _, err := m.store.Load()
	if err != nil {
		return ""
	}
	return token
}

// claimString accepts both string and numeric subject ids, since the
// ledger issues either depending on the tier.
type claimString string

func (s *claimString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = claimString(v)
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = claimString(b)
	return nil
}

// tokenClaims is the claim set embedded in the ledger's bearer token.
type tokenClaims struct {
	Sub  claimString `json:"sub"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
	Iat  int64       `json:"iat"`
	Exp  int64       `json:"exp"`
}

// decodeToken decodes the claims segment of a JWT-shaped token. The
// signature is not verified here; the ledger service owns verification and
// the console only needs the subject and expiry.
func decodeToken(token string) (*models.Session, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, errors.New("token is not in JWT form")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		payload, err = base64.URLEncoding.DecodeString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("claims segment is not base64url: %w", err)
		}
	}

	var claims tokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("claims segment is not JSON: %w", err)
	}
	if claims.Sub == "" || claims.Exp == 0 {
		return nil, errors.New("claims are missing sub or exp")
	}

	return &models.Session{
		Token:       token,
		SubjectID:   string(claims.Sub),
		SubjectName: claims.Name,
		SubjectRole: claims.Role,
		IssuedAt:    claims.Iat,
		ExpiresAt:   claims.Exp,
	}, nil
}
