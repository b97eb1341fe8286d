package ledger

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rvasanth/distributor-console/pkg/models"
)

// ListEntities retrieves the entities of the given kind under a parent via
// GET /{kind}/get/{parentRole}/{parentId}. An empty list is a valid result,
// not an error.
func (c *Client) ListEntities(ctx context.Context, kind models.Role, parentRole models.Role, parentID string, limit, offset int) ([]models.Entity, error) {
	path := fmt.Sprintf("/%s/get/%s/%s", kind, parentRole, parentID)
	query := url.Values{
		"limit":  []string{strconv.Itoa(limit)},
		"offset": []string{strconv.Itoa(offset)},
	}

	env, err := c.get(ctx, path, query, "entity listing")
	if err != nil {
		return nil, err
	}
	return parseEntityList(path, kind, env.Data)
}

// GetEntity retrieves a single entity's detail record via
// GET /{kind}/get/{kind}/{id}. The detail endpoint exists because the list
// endpoint's balance snapshot can be minutes stale.
func (c *Client) GetEntity(ctx context.Context, kind models.Role, id string) (*models.Entity, error) {
	path := fmt.Sprintf("/%s/get/%s/%s", kind, kind, id)
	env, err := c.get(ctx, path, nil, "entity detail")
	if err != nil {
		return nil, err
	}
	return parseEntity(path, kind, env.Data)
}
