package ledger

import (
	"context"

	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/shopspring/decimal"
)

// Authenticator defines the login boundary of the ledger service.
type Authenticator interface {
	// Login exchanges operator credentials for a bearer token.
	Login(ctx context.Context, role models.Role, userID, password string) (string, error)
}

// BalanceReader defines the interface for reading wallet balances.
type BalanceReader interface {
	// WalletBalance retrieves the current balance of one wallet owner.
	WalletBalance(ctx context.Context, role models.Role, ownerID string) (decimal.Decimal, error)
}

// EntityDirectory defines the interface for listing and inspecting
// counterparties in the hierarchy.
type EntityDirectory interface {
	// ListEntities retrieves the entities of the given kind under a parent.
	ListEntities(ctx context.Context, kind models.Role, parentRole models.Role, parentID string, limit, offset int) ([]models.Entity, error)

	// GetEntity retrieves a single entity with its freshest balance.
	GetEntity(ctx context.Context, kind models.Role, id string) (*models.Entity, error)
}

// MoneyMover defines the fund-movement create operations.
type MoneyMover interface {
	// CreateTransfer submits a downward fund transfer and returns the
	// server's message.
	CreateTransfer(ctx context.Context, req *models.TransferRequest) (string, error)

	// CreateRevert submits a reversal and returns the server's message.
	CreateRevert(ctx context.Context, req *models.RevertRequest) (string, error)

	// CreateFundRequest records an upward request for funds.
	CreateFundRequest(ctx context.Context, req *models.FundRequest) (string, error)
}

// StatementReader defines the paginated statement listings backing the
// list-and-export views.
type StatementReader interface {
	ListFundRequests(ctx context.Context, role models.Role, ownerID string, q models.ListQuery) ([]models.FundRequest, int, error)
	ListTransactions(ctx context.Context, role models.Role, ownerID string, q models.ListQuery) ([]models.Transaction, int, error)
	ListTDSEntries(ctx context.Context, role models.Role, ownerID string, q models.ListQuery) ([]models.TDSEntry, int, error)
}

// API composes every ledger operation the console consumes. Components
// should depend on the granular interfaces instead of this one.
type API interface {
	Authenticator
	BalanceReader
	EntityDirectory
	MoneyMover
	StatementReader
}
