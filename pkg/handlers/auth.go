package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rvasanth/distributor-console/pkg/session"
)

type loginPayload struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

type loginResponse struct {
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	SubjectRole string `json:"subject_role"`
	ExpiresAt   int64  `json:"expires_at"`
}

// HandleLogin exchanges credentials for a session scoped to the console's
// configured role.
func (c *Console) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if payload.UserID == "" || payload.Password == "" {
		http.Error(w, "user_id and password are required", http.StatusBadRequest)
		return
	}

	sess, err := c.Sessions.Login(r.Context(), c.Role, payload.UserID, payload.Password)
	if err != nil {
		c.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		SubjectID:   sess.SubjectID,
		SubjectName: sess.SubjectName,
		SubjectRole: string(sess.SubjectRole),
		ExpiresAt:   sess.ExpiresAt,
	})
}

// HandleLogout purges the session and all cached console state. Safe to
// call twice.
func (c *Console) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := c.Sessions.Logout(); err != nil {
		c.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"redirect": "/login"})
}

// HandleDashboard returns the acting subject and a fresh balance snapshot.
func (c *Console) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	snapshot := c.Balances.Fetch(r.Context(), sess.SubjectID, sess.SubjectRole)

	writeJSON(w, http.StatusOK, map[string]any{
		"subject": loginResponse{
			SubjectID:   sess.SubjectID,
			SubjectName: sess.SubjectName,
			SubjectRole: string(sess.SubjectRole),
			ExpiresAt:   sess.ExpiresAt,
		},
		"balance": snapshot,
	})
}
