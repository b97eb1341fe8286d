package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rvasanth/distributor-console/pkg/listctl"
	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/rvasanth/distributor-console/pkg/session"
)

// The fetchers read the acting subject from the request context, so every
// statement call is scoped to the logged-in operator.

func (c *Console) fetchFundRequests(ctx context.Context, q models.ListQuery) ([]models.FundRequest, int, error) {
	sess := session.FromContext(ctx)
	if sess == nil {
		return nil, 0, session.ErrNotAuthenticated
	}
	return c.Ledger.ListFundRequests(ctx, sess.SubjectRole, sess.SubjectID, q)
}

func (c *Console) fetchTransactions(ctx context.Context, q models.ListQuery) ([]models.Transaction, int, error) {
	sess := session.FromContext(ctx)
	if sess == nil {
		return nil, 0, session.ErrNotAuthenticated
	}
	return c.Ledger.ListTransactions(ctx, sess.SubjectRole, sess.SubjectID, q)
}

func (c *Console) fetchTDSEntries(ctx context.Context, q models.ListQuery) ([]models.TDSEntry, int, error) {
	sess := session.FromContext(ctx)
	if sess == nil {
		return nil, 0, session.ErrNotAuthenticated
	}
	return c.Ledger.ListTDSEntries(ctx, sess.SubjectRole, sess.SubjectID, q)
}

// HandleFundRequestStatement lists the operator's fund request history.
func (c *Console) HandleFundRequestStatement(w http.ResponseWriter, r *http.Request) {
	filters, err := statementFilters(r)
	if err != nil {
		c.validationError(w, err.Error())
		return
	}
	if err := c.FundRequests.Sync(r.Context(), filters); err != nil {
		c.respondError(w, err)
		return
	}
	writeStatement(w, c.FundRequests.Items(), c.FundRequests.Total(), c.FundRequests.Applied())
}

// HandleTransactionStatement lists the operator's transaction history.
func (c *Console) HandleTransactionStatement(w http.ResponseWriter, r *http.Request) {
	filters, err := statementFilters(r)
	if err != nil {
		c.validationError(w, err.Error())
		return
	}
	if err := c.Transactions.Sync(r.Context(), filters); err != nil {
		c.respondError(w, err)
		return
	}
	writeStatement(w, c.Transactions.Items(), c.Transactions.Total(), c.Transactions.Applied())
}

// HandleTDSStatement lists the operator's tax-deduction entries.
func (c *Console) HandleTDSStatement(w http.ResponseWriter, r *http.Request) {
	filters, err := statementFilters(r)
	if err != nil {
		c.validationError(w, err.Error())
		return
	}
	if err := c.TDS.Sync(r.Context(), filters); err != nil {
		c.respondError(w, err)
		return
	}
	writeStatement(w, c.TDS.Items(), c.TDS.Total(), c.TDS.Applied())
}

// statementFilters parses the shared listing query parameters. Dates are
// day-granular; an unparseable value is an error rather than silently
// dropped.
func statementFilters(r *http.Request) (listctl.Filters, error) {
	values := r.URL.Query()
	filters := listctl.Filters{
		Page:     1,
		PageSize: statementPageSize,
		Search:   values.Get("q"),
		Status:   values.Get("status"),
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return listctl.Filters{}, fmt.Errorf("page must be a positive integer, got %q", raw)
		}
		filters.Page = page
	}
	if raw := values.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return listctl.Filters{}, fmt.Errorf("page_size must be a positive integer, got %q", raw)
		}
		filters.PageSize = size
	}
	if raw := values.Get("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return listctl.Filters{}, fmt.Errorf("from must be YYYY-MM-DD, got %q", raw)
		}
		filters.From = from
	}
	if raw := values.Get("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return listctl.Filters{}, fmt.Errorf("to must be YYYY-MM-DD, got %q", raw)
		}
		filters.To = to
	}

	return filters, nil
}

func writeStatement[T any](w http.ResponseWriter, items []T, total int, applied listctl.Filters) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":     items,
		"total":     total,
		"page":      applied.Page,
		"page_size": applied.PageSize,
	})
}
