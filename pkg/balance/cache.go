package balance

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rvasanth/distributor-console/pkg/ledger"
	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/shopspring/decimal"
)

// Cache holds the acting subject's current wallet balance. It is not a
// write-through cache: the value is always server-sourced, and a refresh
// happens strictly after a workflow's success response, never
// speculatively.
type Cache struct {
	reader ledger.BalanceReader
	now    func() time.Time

	mu        sync.Mutex
	last      models.WalletBalance
	ownerID   string
	ownerRole models.Role
	fetched   bool
}

// New creates a Cache over the ledger's balance endpoint.
func New(reader ledger.BalanceReader) *Cache {
	return &Cache{
		reader: reader,
		now:    time.Now,
	}
}

// Fetch retrieves the owner's balance. Any failure resolves to a zero
// amount rather than an error: treating "unknown" as "zero" blocks
// spending instead of enabling it, and the UI always has a renderable
// number.
func (c *Cache) Fetch(ctx context.Context, ownerID string, ownerRole models.Role) models.WalletBalance {
	amount, err := c.reader.WalletBalance(ctx, ownerRole, ownerID)
	if err != nil {
		slog.Warn("balance lookup failed, treating as zero", "owner_id", ownerID, "error", err)
		amount = decimal.Zero
	}

	snapshot := models.WalletBalance{
		OwnerID:   ownerID,
		OwnerRole: ownerRole,
		Amount:    amount,
		FetchedAt: c.now(),
	}

	c.mu.Lock()
	c.last = snapshot
	c.ownerID = ownerID
	c.ownerRole = ownerRole
	c.fetched = true
	c.mu.Unlock()

	return snapshot
}

// Refresh re-invokes Fetch with the last-used parameters. Before any fetch
// it returns a zero snapshot.
func (c *Cache) Refresh(ctx context.Context) models.WalletBalance {
	c.mu.Lock()
	ownerID, ownerRole, fetched := c.ownerID, c.ownerRole, c.fetched
	c.mu.Unlock()

	if !fetched {
		return models.WalletBalance{Amount: decimal.Zero}
	}
	return c.Fetch(ctx, ownerID, ownerRole)
}

// Current returns the latest snapshot without touching the network.
func (c *Cache) Current() models.WalletBalance {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.fetched {
		return models.WalletBalance{Amount: decimal.Zero}
	}
	return c.last
}

// Advisory returns the display-only post-movement estimate. It is never
// written back to the cache; the next Refresh replaces it with the
// authoritative value.
func (c *Cache) Advisory(spent decimal.Decimal) decimal.Decimal {
	remaining := c.Current().Amount.Sub(spent)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// Clear drops the cached snapshot. Registered as a logout hook.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = models.WalletBalance{}
	c.ownerID = ""
	c.ownerRole = ""
	c.fetched = false
}
