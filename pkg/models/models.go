package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role identifies a tier in the distribution hierarchy.
type Role string

const (
	RoleMaster      Role = "master"
	RoleDistributor Role = "distributor"
	RoleRetailer    Role = "retailer"
)

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	switch r {
	case RoleMaster, RoleDistributor, RoleRetailer:
		return true
	}
	return false
}

// Session is the decoded view of the bearer token issued by the ledger
// service. IssuedAt and ExpiresAt are epoch seconds, as carried in the token.
type Session struct {
	Token       string `json:"-"`
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	SubjectRole Role   `json:"subject_role"`
	IssuedAt    int64  `json:"issued_at"`
	ExpiresAt   int64  `json:"expires_at"`
}

// WalletBalance is a server-sourced balance snapshot. It is never mutated
// locally; a new snapshot replaces it after a successful money movement.
type WalletBalance struct {
	OwnerID   string          `json:"owner_id"`
	OwnerRole Role            `json:"owner_role"`
	Amount    decimal.Decimal `json:"amount"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Entity is a read-only snapshot of a counterparty (retailer or
// distributor). Staleness is expected; the ledger re-validates on submit.
type Entity struct {
	ID            string          `json:"id"`
	Role          Role            `json:"role"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	Blocked       bool            `json:"blocked"`
	ParentID      string          `json:"parent_id"`
}

// TransferRequest moves funds from the acting subject down to a
// counterparty. It exists only for the duration of the submit call.
type TransferRequest struct {
	FromID    string          `json:"from_id"`
	ToID      string          `json:"to_id"`
	Amount    decimal.Decimal `json:"amount"`
	Remarks   string          `json:"remarks"`
	ClientRef string          `json:"client_ref,omitempty"`
}

// RevertRequest pulls previously credited funds back out of a
// counterparty's wallet.
type RevertRequest struct {
	FromID    string          `json:"from_id"`
	OnID      string          `json:"on_id"`
	Amount    decimal.Decimal `json:"amount"`
	Remarks   string          `json:"remarks"`
	ClientRef string          `json:"client_ref,omitempty"`
}

// FundRequestStatus is the approval state of an upward fund request.
type FundRequestStatus string

const (
	FundRequestPending  FundRequestStatus = "PENDING"
	FundRequestApproved FundRequestStatus = "APPROVED"
	FundRequestRejected FundRequestStatus = "REJECTED"
)

// FundRequest is an upward request for funds, settled out-of-band (bank
// transfer) and recorded for approval by the admin tier.
type FundRequest struct {
	ID        string            `json:"id"`
	Amount    decimal.Decimal   `json:"amount"`
	Reference string            `json:"reference"`
	Remarks   string            `json:"remarks"`
	Status    FundRequestStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// Transaction is one row of the transaction history statement.
type Transaction struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	FromID    string          `json:"from_id"`
	ToID      string          `json:"to_id"`
	Amount    decimal.Decimal `json:"amount"`
	Remarks   string          `json:"remarks"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// TDSEntry is one row of the tax-deducted-at-source ledger.
type TDSEntry struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	TDS       decimal.Decimal `json:"tds"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
}

// ListQuery carries the server-side paging and filter parameters of a
// statement listing call.
type ListQuery struct {
	Limit  int
	Offset int
	From   time.Time
	To     time.Time
	Status string
}
