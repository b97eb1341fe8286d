package ledger

import (
	"context"
	"fmt"

	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/shopspring/decimal"
)

// WalletBalance retrieves the current balance of one wallet owner via
// GET /wallet/get/balance/{role}/{id}.
func (c *Client) WalletBalance(ctx context.Context, role models.Role, ownerID string) (decimal.Decimal, error) {
	path := fmt.Sprintf("/wallet/get/balance/%s/%s", role, ownerID)
	env, err := c.get(ctx, path, nil, "wallet balance")
	if err != nil {
		return decimal.Zero, err
	}
	return parseBalance(path, env.Data)
}
