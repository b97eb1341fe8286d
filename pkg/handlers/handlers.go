package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rvasanth/distributor-console/pkg/balance"
	"github.com/rvasanth/distributor-console/pkg/ledger"
	"github.com/rvasanth/distributor-console/pkg/listctl"
	"github.com/rvasanth/distributor-console/pkg/middleware"
	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/rvasanth/distributor-console/pkg/selector"
	"github.com/rvasanth/distributor-console/pkg/session"
	"github.com/rvasanth/distributor-console/pkg/websockets"
	"github.com/rvasanth/distributor-console/pkg/workflow"
)

const statementPageSize = 10

// Console holds every stateful piece of one operator's console: session
// service, balance cache, selector tiers, the two movement workflows and
// the statement list controllers.
type Console struct {
	Role     models.Role
	Sessions *session.Manager
	Ledger   ledger.API
	Balances *balance.Cache
	Hub      *websockets.Hub

	// Distributors exists only on a master console; Retailers exists on
	// both (on a master it loads under the selected distributor).
	Distributors *selector.Selector
	Retailers    *selector.Selector

	Transfer *workflow.MoneyMovement
	Revert   *workflow.MoneyMovement

	FundRequests *listctl.Controller[models.FundRequest]
	Transactions *listctl.Controller[models.Transaction]
	TDS          *listctl.Controller[models.TDSEntry]

	mu sync.Mutex
	// counterpartyKind is the master console's "user type" tier: which
	// kind of counterparty the lower tiers operate on.
	counterpartyKind models.Role
}

// New wires a Console for the given operator role. The cascade is set up
// here: a parent-tier reset wipes every tier below it, down to the
// workflows' amount and remarks fields, and logout wipes everything.
func New(role models.Role, sessions *session.Manager, api ledger.API, balances *balance.Cache, hub *websockets.Hub) *Console {
	c := &Console{
		Role:             role,
		Sessions:         sessions,
		Ledger:           api,
		Balances:         balances,
		Hub:              hub,
		Retailers:        selector.New(api, models.RoleRetailer),
		Transfer:         workflow.NewTransfer(api, balances, hub),
		Revert:           workflow.NewRevert(api, balances, hub),
		counterpartyKind: defaultCounterpartyKind(role),
	}

	if role == models.RoleMaster {
		c.Distributors = selector.New(api, models.RoleDistributor)
		c.Distributors.OnReset(c.Retailers.Reset)
	}
	c.Retailers.OnReset(func() {
		c.Transfer.Reset()
		c.Revert.Reset()
	})

	c.FundRequests = listctl.New(c.fetchFundRequests, matchFundRequest, statementPageSize)
	c.Transactions = listctl.New(c.fetchTransactions, matchTransaction, statementPageSize)
	c.TDS = listctl.New(c.fetchTDSEntries, matchTDSEntry, statementPageSize)

	sessions.OnLogout(func() {
		balances.Clear()
		if c.Distributors != nil {
			c.Distributors.Reset()
		}
		c.Retailers.Reset()
		c.mu.Lock()
		c.counterpartyKind = defaultCounterpartyKind(role)
		c.mu.Unlock()
	})

	return c
}

func defaultCounterpartyKind(role models.Role) models.Role {
	if role == models.RoleMaster {
		return models.RoleDistributor
	}
	return models.RoleRetailer
}

// Routes mounts every console endpoint. Everything except login sits
// behind the auth guard.
func (c *Console) Routes(router chi.Router) {
	router.Post("/api/login", c.HandleLogin)

	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthGuard(c.Sessions, c.Role))
		r.Post("/api/logout", c.HandleLogout)
		r.Get("/api/dashboard", c.HandleDashboard)
		r.Post("/api/counterparties/kind", c.HandleSelectKind)
		r.Get("/api/counterparties", c.HandleListCounterparties)
		r.Post("/api/counterparties/select", c.HandleSelectCounterparty)
		r.Post("/api/transfer", c.HandleTransfer)
		r.Post("/api/revert", c.HandleRevert)
		r.Post("/api/fund-request", c.HandleFundRequest)
		r.Get("/api/statements/fund-requests", c.HandleFundRequestStatement)
		r.Get("/api/statements/transactions", c.HandleTransactionStatement)
		r.Get("/api/statements/tds", c.HandleTDSStatement)
		if c.Hub != nil {
			r.Get("/ws", c.Hub.HandleWS)
		}
	})
}

// errorKind labels let the UI distinguish the local advisory gate from a
// server-side rejection (the latter means the client's optimistic view was
// wrong).
type errorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Shortfall string `json:"shortfall,omitempty"`
	Redirect  string `json:"redirect,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// respondError converts any workflow/ledger/session error into the UI's
// error contract. Authorization failures force a logout first so no stale
// session survives, regardless of which call surfaced them.
func (c *Console) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, ledger.ErrUnauthorized) {
		if logoutErr := c.Sessions.Logout(); logoutErr != nil {
			slog.Error("failed to purge session after auth failure", "error", logoutErr)
		}
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:    "session is no longer valid",
			Kind:     "auth",
			Redirect: "/login",
		})
		return
	}

	var insufficient *workflow.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:     insufficient.Error(),
			Kind:      "validation",
			Shortfall: insufficient.Shortfall().StringFixed(2),
		})
		return
	}

	var invalidAmount *workflow.InvalidAmountError
	if errors.Is(err, workflow.ErrMissingCounterparty) ||
		errors.Is(err, workflow.ErrBlockedCounterparty) ||
		errors.Is(err, workflow.ErrSubmitInFlight) ||
		errors.Is(err, selector.ErrUnknownEntity) ||
		errors.As(err, &invalidAmount) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: "validation"})
		return
	}

	var netErr *ledger.NetworkError
	if errors.As(err, &netErr) {
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: err.Error(), Kind: "network"})
		return
	}

	var srvErr *ledger.ServerError
	if errors.As(err, &srvErr) {
		message := srvErr.Message
		if message == "" {
			message = "the ledger service rejected the request"
		}
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: message, Kind: "server"})
		return
	}

	var malformed *ledger.MalformedResponseError
	if errors.As(err, &malformed) {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Kind: "malformed_response"})
		return
	}

	if errors.Is(err, session.ErrNotAuthenticated) || errors.Is(err, session.ErrInvalidToken) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Kind: "auth", Redirect: "/login"})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error(), Kind: "internal"})
}

func matchFundRequest(row models.FundRequest, term string) bool {
	return containsFold(row.ID, term) || containsFold(row.Reference, term) ||
		containsFold(row.Remarks, term) || containsFold(string(row.Status), term)
}

func matchTransaction(row models.Transaction, term string) bool {
	return containsFold(row.ID, term) || containsFold(row.FromID, term) ||
		containsFold(row.ToID, term) || containsFold(row.Remarks, term)
}

func matchTDSEntry(row models.TDSEntry, term string) bool {
	return containsFold(row.ID, term)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
