package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rvasanth/distributor-console/pkg/ledger"
	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/rvasanth/distributor-console/pkg/websockets"
	"github.com/shopspring/decimal"
)

// Direction determines whose balance gates the movement.
type Direction int

const (
	// DebitSelf spends from the acting subject's wallet (fund transfer).
	DebitSelf Direction = iota
	// DebitCounterparty pulls funds back out of the counterparty's wallet
	// (revert), so the gate runs against the counterparty's balance.
	DebitCounterparty
)

// State is the workflow's position in its submit lifecycle. A failed
// submit returns to StateAmountEntered with fields intact; a successful
// one resets to StateIdle.
type State string

const (
	StateIdle                 State = "idle"
	StateCounterpartySelected State = "counterparty_selected"
	StateAmountEntered        State = "amount_entered"
	StateSubmitting           State = "submitting"
)

// Default remarks sent when the operator leaves the field blank.
const (
	DefaultTransferRemarks = "Fund transfer"
	DefaultRevertRemarks   = "Fund revert"
)

// Balances is the slice of the balance cache the workflow needs.
type Balances interface {
	Current() models.WalletBalance
	Refresh(ctx context.Context) models.WalletBalance
}

// MoneyMovement validates and submits one fund movement. Transfer and
// revert are the same machine distinguished only by direction, payload
// field names and default remarks.
type MoneyMovement struct {
	name           string
	direction      Direction
	mover          ledger.MoneyMover
	balances       Balances
	publisher      websockets.Publisher
	defaultRemarks string

	mu           sync.Mutex
	state        State
	counterparty *models.Entity
	amount       decimal.Decimal
	hasAmount    bool
	remarks      string
	inFlight     bool
}

// NewTransfer creates the downward fund-transfer workflow, gated on the
// acting subject's own balance.
func NewTransfer(mover ledger.MoneyMover, balances Balances, publisher websockets.Publisher) *MoneyMovement {
	return &MoneyMovement{
		name:           "transfer",
		direction:      DebitSelf,
		mover:          mover,
		balances:       balances,
		publisher:      publisher,
		defaultRemarks: DefaultTransferRemarks,
		state:          StateIdle,
	}
}

// NewRevert creates the reversal workflow, gated on the selected
// counterparty's balance.
func NewRevert(mover ledger.MoneyMover, balances Balances, publisher websockets.Publisher) *MoneyMovement {
	return &MoneyMovement{
		name:           "revert",
		direction:      DebitCounterparty,
		mover:          mover,
		balances:       balances,
		publisher:      publisher,
		defaultRemarks: DefaultRevertRemarks,
		state:          StateIdle,
	}
}

// Name returns "transfer" or "revert".
func (w *MoneyMovement) Name() string { return w.name }

// State returns the current lifecycle state.
func (w *MoneyMovement) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// InFlight reports whether a submit is pending.
func (w *MoneyMovement) InFlight() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}

// Counterparty returns the selected counterparty, or nil.
func (w *MoneyMovement) Counterparty() *models.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.counterparty
}

// Remarks returns the entered remarks text.
func (w *MoneyMovement) Remarks() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.remarks
}

// Amount returns the parsed amount and whether one has been entered.
func (w *MoneyMovement) Amount() (decimal.Decimal, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.amount, w.hasAmount
}

// SetCounterparty sets the selection and clears any previously entered
// amount and remarks: a selection change invalidates all downstream form
// state, not just the id.
func (w *MoneyMovement) SetCounterparty(entity *models.Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.counterparty = entity
	w.amount = decimal.Zero
	w.hasAmount = false
	w.remarks = ""
	if entity == nil {
		w.state = StateIdle
	} else {
		w.state = StateCounterpartySelected
	}
}

// SetAmount parses and stores the entered amount. It must be a positive
// decimal with at most two fraction digits.
func (w *MoneyMovement) SetAmount(text string) error {
	trimmed := strings.TrimSpace(text)
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return &InvalidAmountError{Input: text, Reason: "not a decimal number"}
	}
	if !amount.IsPositive() {
		return &InvalidAmountError{Input: text, Reason: "must be greater than zero"}
	}
	if amount.Exponent() < -2 {
		return &InvalidAmountError{Input: text, Reason: "more than two decimal places"}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.amount = amount
	w.hasAmount = true
	if w.counterparty != nil {
		w.state = StateAmountEntered
	}
	return nil
}

// SetRemarks stores the remarks text.
func (w *MoneyMovement) SetRemarks(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.remarks = text
}

// Validate runs the client-side gate in order: counterparty present and
// not blocked, amount entered and well-formed, amount within the gating
// balance. The gate is advisory; the server re-validates authoritatively.
func (w *MoneyMovement) Validate() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.validateLocked()
}

func (w *MoneyMovement) validateLocked() error {
	if w.counterparty == nil {
		return ErrMissingCounterparty
	}
	if w.counterparty.Blocked {
		return ErrBlockedCounterparty
	}
	if !w.hasAmount {
		return &InvalidAmountError{Input: "", Reason: "no amount entered"}
	}

	available := w.gatingBalanceLocked()
	if w.amount.GreaterThan(available) {
		return &InsufficientBalanceError{Available: available, Requested: w.amount}
	}
	return nil
}

func (w *MoneyMovement) gatingBalanceLocked() decimal.Decimal {
	if w.direction == DebitCounterparty {
		return w.counterparty.WalletBalance
	}
	return w.balances.Current().Amount
}

// CanSubmit reports whether the submit action should be enabled.
func (w *MoneyMovement) CanSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.inFlight && w.validateLocked() == nil
}

// Reset returns the workflow to its initial idle state. Registered as a
// selector reset hook and a logout hook.
func (w *MoneyMovement) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
}

func (w *MoneyMovement) resetLocked() {
	w.state = StateIdle
	w.counterparty = nil
	w.amount = decimal.Zero
	w.hasAmount = false
	w.remarks = ""
}

// Submit validates and sends the movement. The in-flight flag holds from
// the moment submit is accepted until the response lands, so rapid
// repeated submits issue exactly one network call. On success the workflow
// resets, the balance cache refreshes once, and a wallet update is
// published; on failure the fields stay intact for correction and retry.
func (w *MoneyMovement) Submit(ctx context.Context, subjectID string, subjectRole models.Role) (string, error) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return "", ErrSubmitInFlight
	}
	if err := w.validateLocked(); err != nil {
		w.mu.Unlock()
		return "", err
	}

	w.inFlight = true
	w.state = StateSubmitting
	counterpartyID := w.counterparty.ID
	amount := w.amount
	remarks := strings.TrimSpace(w.remarks)
	if remarks == "" {
		remarks = w.defaultRemarks
	}
	w.mu.Unlock()

	message, err := w.send(ctx, subjectID, counterpartyID, amount, remarks)

	w.mu.Lock()
	w.inFlight = false
	if err != nil {
		w.state = StateAmountEntered
		w.mu.Unlock()
		movementSubmits.WithLabelValues(w.name, outcomeLabel(err)).Inc()
		return "", err
	}
	w.resetLocked()
	w.mu.Unlock()
	movementSubmits.WithLabelValues(w.name, "success").Inc()

	// The client never trusts its own post-submit arithmetic: re-fetch the
	// authoritative balance, then tell any open console view about it.
	refreshed := w.balances.Refresh(ctx)
	if w.publisher != nil {
		update := websockets.Message{
			Type: websockets.MessageTypeWalletUpdate,
			Payload: websockets.WalletUpdatePayload{
				OwnerID:    subjectID,
				OwnerRole:  subjectRole,
				NewBalance: refreshed.Amount,
				Movement:   w.name,
			},
		}
		if err := w.publisher.Publish(ctx, update); err != nil {
			slog.Error("failed to publish wallet update", "workflow", w.name, "error", err)
		}
	}

	if message == "" {
		message = "Request processed successfully"
	}
	return message, nil
}

func (w *MoneyMovement) send(ctx context.Context, subjectID, counterpartyID string, amount decimal.Decimal, remarks string) (string, error) {
	// The ledger offers no idempotency key; client_ref at least makes
	// duplicates attributable server-side.
	clientRef := uuid.NewString()

	if w.direction == DebitCounterparty {
		return w.mover.CreateRevert(ctx, &models.RevertRequest{
			FromID:    subjectID,
			OnID:      counterpartyID,
			Amount:    amount,
			Remarks:   remarks,
			ClientRef: clientRef,
		})
	}
	return w.mover.CreateTransfer(ctx, &models.TransferRequest{
		FromID:    subjectID,
		ToID:      counterpartyID,
		Amount:    amount,
		Remarks:   remarks,
		ClientRef: clientRef,
	})
}

func outcomeLabel(err error) string {
	var netErr *ledger.NetworkError
	var srvErr *ledger.ServerError
	switch {
	case errors.Is(err, ledger.ErrUnauthorized):
		return "unauthorized"
	case errors.As(err, &netErr):
		return "network_error"
	case errors.As(err, &srvErr):
		return "server_rejected"
	default:
		return "error"
	}
}
