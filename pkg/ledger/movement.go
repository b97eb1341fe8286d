package ledger

import (
	"context"

	"github.com/rvasanth/distributor-console/pkg/models"
)

// Amounts go out as fixed two-decimal strings; the ledger service treats
// them as exact decimals, never floats.

type transferPayload struct {
	FromID    string `json:"from_id"`
	ToID      string `json:"to_id"`
	Amount    string `json:"amount"`
	Remarks   string `json:"remarks"`
	ClientRef string `json:"client_ref,omitempty"`
}

type revertPayload struct {
	FromID    string `json:"from_id"`
	OnID      string `json:"on_id"`
	Amount    string `json:"amount"`
	Remarks   string `json:"remarks"`
	ClientRef string `json:"client_ref,omitempty"`
}

type fundRequestPayload struct {
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
	Remarks   string `json:"remarks"`
}

// CreateTransfer submits a downward fund transfer via
// POST /fund_transfer/create and returns the server's message.
func (c *Client) CreateTransfer(ctx context.Context, req *models.TransferRequest) (string, error) {
	payload := transferPayload{
		FromID:    req.FromID,
		ToID:      req.ToID,
		Amount:    req.Amount.StringFixed(2),
		Remarks:   req.Remarks,
		ClientRef: req.ClientRef,
	}
	env, err := c.post(ctx, "/fund_transfer/create", payload, "fund transfer")
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// CreateRevert submits a reversal via POST /revert/create and returns the
// server's message.
func (c *Client) CreateRevert(ctx context.Context, req *models.RevertRequest) (string, error) {
	payload := revertPayload{
		FromID:    req.FromID,
		OnID:      req.OnID,
		Amount:    req.Amount.StringFixed(2),
		Remarks:   req.Remarks,
		ClientRef: req.ClientRef,
	}
	env, err := c.post(ctx, "/revert/create", payload, "revert")
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// CreateFundRequest records an upward request for funds via
// POST /fund_request/create. Settlement happens out-of-band.
func (c *Client) CreateFundRequest(ctx context.Context, req *models.FundRequest) (string, error) {
	payload := fundRequestPayload{
		Amount:    req.Amount.StringFixed(2),
		Reference: req.Reference,
		Remarks:   req.Remarks,
	}
	env, err := c.post(ctx, "/fund_request/create", payload, "fund request")
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
