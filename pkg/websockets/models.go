package websockets

import (
	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/shopspring/decimal"
)

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeWalletUpdate is for messages that update wallet balances.
	MessageTypeWalletUpdate MessageType = "walletUpdate"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// WalletUpdatePayload is the payload for a walletUpdate message, pushed
// after a successful money movement so open console views re-render the
// authoritative balance without polling.
type WalletUpdatePayload struct {
	OwnerID    string          `json:"owner_id"`
	OwnerRole  models.Role     `json:"owner_role"`
	NewBalance decimal.Decimal `json:"new_balance"`
	Movement   string          `json:"movement"`
}
