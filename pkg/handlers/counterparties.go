package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/rvasanth/distributor-console/pkg/selector"
	"github.com/rvasanth/distributor-console/pkg/session"
)

type selectKindPayload struct {
	Kind models.Role `json:"kind"`
}

type selectCounterpartyPayload struct {
	Tier models.Role `json:"tier"`
	ID   string      `json:"id"`
}

// HandleSelectKind switches a master console between operating on
// distributors directly and reaching retailers through a distributor.
// Switching wipes both selector tiers and the workflow form state.
func (c *Console) HandleSelectKind(w http.ResponseWriter, r *http.Request) {
	if c.Role != models.RoleMaster {
		c.validationError(w, "only a master console can switch counterparty kind")
		return
	}

	var payload selectKindPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if payload.Kind != models.RoleDistributor && payload.Kind != models.RoleRetailer {
		c.validationError(w, fmt.Sprintf("kind must be %q or %q", models.RoleDistributor, models.RoleRetailer))
		return
	}

	c.mu.Lock()
	c.counterpartyKind = payload.Kind
	c.mu.Unlock()

	c.Distributors.Reset()

	writeJSON(w, http.StatusOK, map[string]string{"kind": string(payload.Kind)})
}

// HandleListCounterparties returns the (optionally searched) counterparty
// list for one tier, loading it on first access. The ?tier= parameter
// defaults to the console's target tier; a master in retailer mode passes
// tier=distributor to list the intermediate tier.
func (c *Console) HandleListCounterparties(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	tier := models.Role(r.URL.Query().Get("tier"))
	if tier == "" {
		tier = c.CounterpartyKind()
	}

	sel, parentRole, parentID, err := c.resolveTier(sess, tier)
	if err != nil {
		c.validationError(w, err.Error())
		return
	}

	if !sel.Loaded() {
		if err := sel.Load(r.Context(), parentRole, parentID); err != nil {
			c.respondError(w, err)
			return
		}
	}

	entities := sel.Search(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]any{
		"tier":     string(tier),
		"entities": entities,
		"selected": sel.Selected(),
	})
}

// HandleSelectCounterparty picks an entity on one tier. Selecting on the
// target tier arms both workflows with the fresh detail record; selecting
// an intermediate distributor loads the retailer list beneath it.
func (c *Console) HandleSelectCounterparty(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	var payload selectCounterpartyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if payload.ID == "" {
		c.validationError(w, "id is required")
		return
	}

	tier := payload.Tier
	if tier == "" {
		tier = c.CounterpartyKind()
	}

	sel, _, _, err := c.resolveTier(sess, tier)
	if err != nil {
		c.validationError(w, err.Error())
		return
	}

	entity, err := sel.Select(r.Context(), payload.ID)
	if err != nil {
		c.respondError(w, err)
		return
	}

	if tier == c.CounterpartyKind() {
		c.Transfer.SetCounterparty(entity)
		c.Revert.SetCounterparty(entity)
	} else if tier == models.RoleDistributor {
		// Intermediate tier on a master console in retailer mode: descend.
		if err := c.Retailers.Load(r.Context(), models.RoleDistributor, entity.ID); err != nil {
			c.respondError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tier":     string(tier),
		"selected": entity,
	})
}

// CounterpartyKind returns the active target tier.
func (c *Console) CounterpartyKind() models.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counterpartyKind
}

// resolveTier maps a tier to its selector and the parent the list loads
// under. On a master console in retailer mode the retailer tier hangs off
// the selected distributor, so a distributor must be picked first.
func (c *Console) resolveTier(sess *models.Session, tier models.Role) (*selector.Selector, models.Role, string, error) {
	switch {
	case c.Role == models.RoleDistributor:
		if tier != models.RoleRetailer {
			return nil, "", "", fmt.Errorf("a distributor console only lists retailers")
		}
		return c.Retailers, models.RoleDistributor, sess.SubjectID, nil

	case tier == models.RoleDistributor:
		return c.Distributors, models.RoleMaster, sess.SubjectID, nil

	case tier == models.RoleRetailer:
		if c.CounterpartyKind() != models.RoleRetailer {
			return nil, "", "", fmt.Errorf("switch counterparty kind to %q first", models.RoleRetailer)
		}
		parent := c.Distributors.Selected()
		if parent == nil {
			return nil, "", "", fmt.Errorf("select a distributor before listing its retailers")
		}
		return c.Retailers, models.RoleDistributor, parent.ID, nil

	default:
		return nil, "", "", fmt.Errorf("unknown tier %q", tier)
	}
}

func (c *Console) validationError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: message, Kind: "validation"})
}
