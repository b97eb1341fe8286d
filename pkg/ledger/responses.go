package ledger

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/shopspring/decimal"
)

// The ledger service's responses are duck-typed: the success flag is
// variously a bool, a string, or a number, balances appear under two
// different keys, and entity lists nest under the entity's plural name.
// Everything in this file exists to normalize those shapes into the fixed
// domain model, failing fast with *MalformedResponseError instead of
// propagating zero values.

// envelope is the common response wrapper.
type envelope struct {
	Status  statusFlag      `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// statusFlag accepts true, "true", "success", "ok" and 1 as success.
type statusFlag bool

func (s *statusFlag) UnmarshalJSON(b []byte) error {
	switch strings.ToLower(strings.Trim(string(b), `"`)) {
	case "true", "success", "ok", "1":
		*s = true
	default:
		*s = false
	}
	return nil
}

// flexString accepts both JSON strings and bare numbers, since entity ids
// arrive as either.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = flexString(string(b))
	return nil
}

// flexBool accepts true/false, 0/1 and their quoted forms.
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	switch strings.ToLower(strings.Trim(string(b), `"`)) {
	case "true", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

// apiTime accepts the handful of timestamp layouts the ledger emits.
type apiTime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *apiTime) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

// balancePayload holds both keys the balance endpoint is known to use.
type balancePayload struct {
	WalletBalance *decimal.Decimal `json:"wallet_balance"`
	Balance       *decimal.Decimal `json:"balance"`
}

// parseBalance normalizes a balance response, preferring wallet_balance
// when both keys are present.
func parseBalance(endpoint string, data json.RawMessage) (decimal.Decimal, error) {
	var payload balancePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return decimal.Zero, &MalformedResponseError{Endpoint: endpoint, Reason: "balance payload is not an object"}
	}
	switch {
	case payload.WalletBalance != nil:
		return *payload.WalletBalance, nil
	case payload.Balance != nil:
		return *payload.Balance, nil
	}
	return decimal.Zero, &MalformedResponseError{Endpoint: endpoint, Reason: "neither balance nor wallet_balance present"}
}

// entityPayload is the wire shape of a retailer/distributor record.
type entityPayload struct {
	ID            flexString       `json:"id"`
	Name          string           `json:"name"`
	Phone         flexString       `json:"phone"`
	WalletBalance *decimal.Decimal `json:"wallet_balance"`
	Balance       *decimal.Decimal `json:"balance"`
	Blocked       flexBool         `json:"blocked"`
	ParentID      flexString       `json:"parent_id"`
}

func (p *entityPayload) toEntity(kind models.Role) models.Entity {
	balance := decimal.Zero
	if p.WalletBalance != nil {
		balance = *p.WalletBalance
	} else if p.Balance != nil {
		balance = *p.Balance
	}
	return models.Entity{
		ID:            string(p.ID),
		Role:          kind,
		Name:          p.Name,
		Phone:         string(p.Phone),
		WalletBalance: balance,
		Blocked:       bool(p.Blocked),
		ParentID:      string(p.ParentID),
	}
}

// parseEntityList normalizes a counterparty listing. The list key is the
// requested kind's plural name first, then any other known plural.
func parseEntityList(endpoint string, kind models.Role, data json.RawMessage) ([]models.Entity, error) {
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, &MalformedResponseError{Endpoint: endpoint, Reason: "list payload is not an object"}
	}

	keys := []string{string(kind) + "s", "retailers", "distributors"}
	for _, key := range keys {
		raw, ok := keyed[key]
		if !ok {
			continue
		}
		var payloads []entityPayload
		if err := json.Unmarshal(raw, &payloads); err != nil {
			return nil, &MalformedResponseError{Endpoint: endpoint, Reason: "entity list under " + key + " is not an array"}
		}
		entities := make([]models.Entity, len(payloads))
		for i := range payloads {
			entities[i] = payloads[i].toEntity(kind)
		}
		return entities, nil
	}

	return nil, &MalformedResponseError{Endpoint: endpoint, Reason: "no entity list key present"}
}

// parseEntity normalizes a single-entity detail response. The record is
// sometimes flat and sometimes nested under the entity's singular name.
func parseEntity(endpoint string, kind models.Role, data json.RawMessage) (*models.Entity, error) {
	var payload entityPayload
	if err := json.Unmarshal(data, &payload); err == nil && payload.ID != "" {
		entity := payload.toEntity(kind)
		return &entity, nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, &MalformedResponseError{Endpoint: endpoint, Reason: "entity payload is not an object"}
	}
	if raw, ok := keyed[string(kind)]; ok {
		if err := json.Unmarshal(raw, &payload); err == nil && payload.ID != "" {
			entity := payload.toEntity(kind)
			return &entity, nil
		}
	}

	return nil, &MalformedResponseError{Endpoint: endpoint, Reason: "no entity record present"}
}
