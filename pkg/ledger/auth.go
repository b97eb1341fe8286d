package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rvasanth/distributor-console/pkg/models"
)

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// Login exchanges operator credentials for a bearer token via
// POST /{role}/login.
func (c *Client) Login(ctx context.Context, role models.Role, userID, password string) (string, error) {
	path := fmt.Sprintf("/%s/login", role)
	env, err := c.post(ctx, path, loginRequest{UserID: userID, Password: password}, "login")
	if err != nil {
		return "", err
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil || payload.AccessToken == "" {
		return "", &MalformedResponseError{Endpoint: path, Reason: "no access_token in login response"}
	}

	return payload.AccessToken, nil
}
