package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"freightdesk/engine"
	"freightdesk/models"
	"freightdesk/repository"
)

// PartyHandler drives the multi-step onboarding wizard and the party list.
type PartyHandler struct {
	Store *engine.Store
	Repo  repository.PartyRepository
}

type wizardResponse struct {
	WizardID   string             `json:"wizardId"`
	Step       string             `json:"step"`
	Party      *models.Party      `json:"party"`
	Violations []engine.Violation `json:"violations,omitempty"`
}

func respondWizard(w http.ResponseWriter, status int, wiz *engine.PartyWizard, violations []engine.Violation) {
	writeJSON(w, status, wizardResponse{
		WizardID:   wiz.ID,
		Step:       wiz.Step().String(),
		Party:      wiz.Draft,
		Violations: violations,
	})
}

// GetAllParties handler
func (h *PartyHandler) GetAllParties(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	for key, values := range q {
		if len(values) > 0 && values[0] != "" {
			if intVal, err := strconv.Atoi(values[0]); err == nil {
				filters[key] = intVal
			} else {
				filters[key] = values[0]
			}
		}
	}

	list, err := h.Repo.GetParties(filters, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []*models.Party{}
	}

	writeJSON(w, http.StatusOK, list)
}

// OpenWizard starts a fresh onboarding wizard.
func (h *PartyHandler) OpenWizard(w http.ResponseWriter, r *http.Request) {
	wiz := h.Store.OpenWizard()
	respondWizard(w, http.StatusCreated, wiz, nil)
}

// RouteWizard dispatches /parties/wizard/{id}/... requests.
func (h *PartyHandler) RouteWizard(w http.ResponseWriter, r *http.Request, trail string) {
	parts := strings.SplitN(strings.Trim(trail, "/"), "/", 2)
	if parts[0] == "" {
		http.Error(w, "missing wizard id", http.StatusBadRequest)
		return
	}

	wiz, err := h.Store.GetWizard(parts[0])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			respondWizard(w, http.StatusOK, wiz, nil)
		case http.MethodDelete:
			h.Store.CloseWizard(wiz.ID)
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	switch parts[1] {
	case "update":
		var patch map[string]any
		if err := decodeBody(r, &patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := wiz.Update(patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondWizard(w, http.StatusOK, wiz, nil)

	case "address":
		var addr models.PartyAddress
		if err := decodeBody(r, &addr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		wiz.AddAddress(addr)
		respondWizard(w, http.StatusOK, wiz, nil)

	case "contact":
		var c models.PartyContact
		if err := decodeBody(r, &c); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		wiz.AddContact(c)
		respondWizard(w, http.StatusOK, wiz, nil)

	case "next":
		if violations := wiz.Next(); len(violations) > 0 {
			respondWizard(w, http.StatusUnprocessableEntity, wiz, violations)
			return
		}
		respondWizard(w, http.StatusOK, wiz, nil)

	case "back":
		wiz.Back()
		respondWizard(w, http.StatusOK, wiz, nil)

	case "goto":
		var body struct {
			Step string `json:"step"`
		}
		if err := decodeBody(r, &body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		step, ok := engine.StepByName(body.Step)
		if !ok {
			http.Error(w, "unknown step", http.StatusBadRequest)
			return
		}
		if err := wiz.Goto(step); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		respondWizard(w, http.StatusOK, wiz, nil)

	case "complete":
		party, violations := wiz.Complete()
		if len(violations) > 0 {
			respondWizard(w, http.StatusUnprocessableEntity, wiz, violations)
			return
		}
		if err := h.Repo.CreateParty(party); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.Store.CloseWizard(wiz.ID)
		writeJSON(w, http.StatusCreated, party)

	default:
		http.Error(w, "unknown wizard action", http.StatusNotFound)
	}
}
