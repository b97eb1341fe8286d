package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/rvasanth/distributor-console/pkg/session"
	"github.com/rvasanth/distributor-console/pkg/workflow"
	"github.com/shopspring/decimal"
)

type movementPayload struct {
	Amount  string `json:"amount"`
	Remarks string `json:"remarks"`
}

type fundRequestPayload struct {
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
	Remarks   string `json:"remarks"`
}

// HandleTransfer submits a fund transfer to the selected counterparty.
func (c *Console) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	c.submitMovement(w, r, c.Transfer)
}

// HandleRevert submits a reversal against the selected counterparty.
func (c *Console) HandleRevert(w http.ResponseWriter, r *http.Request) {
	c.submitMovement(w, r, c.Revert)
}

func (c *Console) submitMovement(w http.ResponseWriter, r *http.Request, wf *workflow.MoneyMovement) {
	var payload movementPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	// Counterparty presence is checked before the amount so a bare form
	// reports the missing selection, not a malformed amount.
	if wf.Counterparty() == nil {
		c.respondError(w, workflow.ErrMissingCounterparty)
		return
	}
	if err := wf.SetAmount(payload.Amount); err != nil {
		c.respondError(w, err)
		return
	}
	wf.SetRemarks(payload.Remarks)

	sess := session.FromContext(r.Context())
	message, err := wf.Submit(r.Context(), sess.SubjectID, sess.SubjectRole)
	if err != nil {
		c.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": message,
		"balance": c.Balances.Current(),
	})
}

// HandleFundRequest records an upward fund request. Settlement happens
// out-of-band; the reference ties the request to the bank transfer.
func (c *Console) HandleFundRequest(w http.ResponseWriter, r *http.Request) {
	var payload fundRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(payload.Amount))
	if err != nil {
		c.respondError(w, &workflow.InvalidAmountError{Input: payload.Amount, Reason: "not a decimal number"})
		return
	}
	if !amount.IsPositive() {
		c.respondError(w, &workflow.InvalidAmountError{Input: payload.Amount, Reason: "must be greater than zero"})
		return
	}
	if amount.Exponent() < -2 {
		c.respondError(w, &workflow.InvalidAmountError{Input: payload.Amount, Reason: "more than two decimal places"})
		return
	}
	if strings.TrimSpace(payload.Reference) == "" {
		c.validationError(w, "reference is required")
		return
	}

	message, err := c.Ledger.CreateFundRequest(r.Context(), &models.FundRequest{
		Amount:    amount,
		Reference: strings.TrimSpace(payload.Reference),
		Remarks:   payload.Remarks,
	})
	if err != nil {
		c.respondError(w, err)
		return
	}

	if message == "" {
		message = "Fund request recorded"
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
