package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func listQueryValues(q models.ListQuery) url.Values {
	values := url.Values{
		"limit":  []string{strconv.Itoa(q.Limit)},
		"offset": []string{strconv.Itoa(q.Offset)},
	}
	if !q.From.IsZero() {
		values.Set("from", q.From.Format(dateLayout))
	}
	if !q.To.IsZero() {
		values.Set("to", q.To.Format(dateLayout))
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	return values
}

type fundRequestRow struct {
	ID        flexString      `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Reference flexString      `json:"reference"`
	UTR       flexString      `json:"utr"`
	Remarks   string          `json:"remarks"`
	Status    string          `json:"status"`
	CreatedAt apiTime         `json:"created_at"`
}

// ListFundRequests retrieves a page of the fund-request statement via
// GET /fund_request/get/{role}/{id}.
func (c *Client) ListFundRequests(ctx context.Context, role models.Role, ownerID string, q models.ListQuery) ([]models.FundRequest, int, error) {
	path := fmt.Sprintf("/fund_request/get/%s/%s", role, ownerID)
	env, err := c.get(ctx, path, listQueryValues(q), "fund request listing")
	if err != nil {
		return nil, 0, err
	}

	var payload struct {
		FundRequests []fundRequestRow `json:"fund_requests"`
		Total        int              `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, 0, &MalformedResponseError{Endpoint: path, Reason: "fund request list payload is not an object"}
	}

	rows := make([]models.FundRequest, len(payload.FundRequests))
	for i, row := range payload.FundRequests {
		reference := string(row.Reference)
		if reference == "" {
			reference = string(row.UTR)
		}
		rows[i] = models.FundRequest{
			ID:        string(row.ID),
			Amount:    row.Amount,
			Reference: reference,
			Remarks:   row.Remarks,
			Status:    models.FundRequestStatus(strings.ToUpper(row.Status)),
			CreatedAt: row.CreatedAt.Time,
		}
	}
	return rows, totalOrLen(payload.Total, len(rows), q), nil
}

type transactionRow struct {
	ID        flexString      `json:"id"`
	Kind      string          `json:"kind"`
	FromID    flexString      `json:"from_id"`
	ToID      flexString      `json:"to_id"`
	Amount    decimal.Decimal `json:"amount"`
	Remarks   string          `json:"remarks"`
	Status    string          `json:"status"`
	CreatedAt apiTime         `json:"created_at"`
}

// ListTransactions retrieves a page of the transaction history via
// GET /transactions/get/{role}/{id}.
func (c *Client) ListTransactions(ctx context.Context, role models.Role, ownerID string, q models.ListQuery) ([]models.Transaction, int, error) {
	path := fmt.Sprintf("/transactions/get/%s/%s", role, ownerID)
	env, err := c.get(ctx, path, listQueryValues(q), "transaction listing")
	if err != nil {
		return nil, 0, err
	}

	var payload struct {
		Transactions []transactionRow `json:"transactions"`
		Total        int              `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, 0, &MalformedResponseError{Endpoint: path, Reason: "transaction list payload is not an object"}
	}

	rows := make([]models.Transaction, len(payload.Transactions))
	for i, row := range payload.Transactions {
		rows[i] = models.Transaction{
			ID:        string(row.ID),
			Kind:      row.Kind,
			FromID:    string(row.FromID),
			ToID:      string(row.ToID),
			Amount:    row.Amount,
			Remarks:   row.Remarks,
			Status:    row.Status,
			CreatedAt: row.CreatedAt.Time,
		}
	}
	return rows, totalOrLen(payload.Total, len(rows), q), nil
}

type tdsRow struct {
	ID        flexString      `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	TDS       decimal.Decimal `json:"tds"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt apiTime         `json:"created_at"`
}

// ListTDSEntries retrieves a page of the TDS ledger via
// GET /tds/get/{role}/{id}.
func (c *Client) ListTDSEntries(ctx context.Context, role models.Role, ownerID string, q models.ListQuery) ([]models.TDSEntry, int, error) {
	path := fmt.Sprintf("/tds/get/%s/%s", role, ownerID)
	env, err := c.get(ctx, path, listQueryValues(q), "tds listing")
	if err != nil {
		return nil, 0, err
	}

	var payload struct {
		Entries []tdsRow `json:"tds_entries"`
		Total   int      `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, 0, &MalformedResponseError{Endpoint: path, Reason: "tds list payload is not an object"}
	}

	rows := make([]models.TDSEntry, len(payload.Entries))
	for i, row := range payload.Entries {
		rows[i] = models.TDSEntry{
			ID:        string(row.ID),
			Amount:    row.Amount,
			TDS:       row.TDS,
			Rate:      row.Rate,
			CreatedAt: row.CreatedAt.Time,
		}
	}
	return rows, totalOrLen(payload.Total, len(rows), q), nil
}

// totalOrLen falls back to a best-effort total when the server omits one.
func totalOrLen(total, pageLen int, q models.ListQuery) int {
	if total > 0 {
		return total
	}
	return q.Offset + pageLen
}
