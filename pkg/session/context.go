package session

import (
	"context"

	"github.com/rvasanth/distributor-console/pkg/models"
)

type contextKey struct{}

// NewContext stashes the validated session for downstream handlers.
func NewContext(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session placed by the auth guard, or nil.
func FromContext(ctx context.Context) *models.Session {
	sess, _ := ctx.Value(contextKey{}).(*models.Session)
	return sess
}
