package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"freightdesk/config"
	"freightdesk/engine"
	"freightdesk/models"
	"freightdesk/repository"
)

// SessionHandler exposes the form session lifecycle: open a job draft, edit
// fields and collections through staged drafts, and submit the whole tree.
type SessionHandler struct {
	Store   *engine.Store
	JobRepo repository.JobRepository
	RefRepo repository.ReferenceRepository
	Cfg     *config.Config
}

// OpenSession starts a session over a new draft, or over an existing job
// when jobId is passed (edit mode).
func (h *SessionHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var session *engine.Session

	if jobIDStr := r.URL.Query().Get("jobId"); jobIDStr != "" {
		jobID, err := strconv.ParseInt(jobIDStr, 10, 64)
		if err != nil {
			http.Error(w, "invalid job id", http.StatusBadRequest)
			return
		}
		jobs, err := h.JobRepo.GetJobs(map[string]interface{}{"id": jobID}, true)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if len(jobs) == 0 {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		session = h.Store.OpenFor(jobs[0])
	} else {
		session = h.Store.Open(h.Cfg.CompanyID)
	}

	// Reference failures degrade to an empty list plus a toast; the rest of
	// the form stays usable.
	parties, err := h.RefRepo.Options(models.RefParties)
	if err != nil {
		parties = []models.Option{}
		session.Notify("Reference data unavailable", "party list failed to load", engine.VariantDestructive)
	}
	session.SetPartyOptions(parties)

	respondSession(w, http.StatusCreated, session, nil, nil)
}

// Route dispatches /session/{id}/... requests.
func (h *SessionHandler) Route(w http.ResponseWriter, r *http.Request, trail string) {
	parts := strings.SplitN(strings.Trim(trail, "/"), "/", 3)
	if parts[0] == "" {
		http.Error(w, "missing session id", http.StatusBadRequest)
		return
	}

	session, err := h.Store.Get(parts[0])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			respondSession(w, http.StatusOK, session, h.openDraft(session), nil)
		case http.MethodDelete:
			h.Store.Close(session.ID)
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

	action := parts[1]
	sub := ""
	if len(parts) == 3 {
		sub = parts[2]
	}

	switch action {
	case "fields":
		h.setFields(w, r, session)
	case "insurance-mode":
		h.setInsuranceMode(w, r, session)
	case "containers":
		h.containerAction(w, r, session, sub)
	case "invoices":
		h.invoiceAction(w, r, session, sub)
	case "items":
		h.itemAction(w, r, session, sub)
	case "submit":
		h.submit(w, session)
	default:
		http.Error(w, "unknown action", http.StatusNotFound)
	}
}

// openDraft reports whichever draft the session has open, innermost first.
func (h *SessionHandler) openDraft(s *engine.Session) any {
	if d := s.ItemDraft(); d != nil {
		return d
	}
	if d := s.InvoiceDraft(); d != nil {
		return d
	}
	if d := s.ContainerDraft(); d != nil {
		return d
	}
	return nil
}

func (h *SessionHandler) setFields(w http.ResponseWriter, r *http.Request, s *engine.Session) {
	var patch map[string]any
	if err := decodeBody(r, &patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.SetFields(patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondSession(w, http.StatusOK, s, h.openDraft(s), nil)
}

func (h *SessionHandler) setInsuranceMode(w http.ResponseWriter, r *http.Request, s *engine.Session) {
	var body struct {
		Mode string `json:"mode"`
	}
	if err := decodeBody(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	mode := engine.InsuranceMode(body.Mode)
	if mode != engine.InsuranceOnePercent && mode != engine.InsuranceCustom {
		http.Error(w, "mode must be 1percent or custom", http.StatusBadRequest)
		return
	}
	s.SetInsuranceMode(mode)
	respondSession(w, http.StatusOK, s, h.openDraft(s), nil)
}

type draftRequest struct {
	Index *int           `json:"index,omitempty"`
	Patch map[string]any `json:"patch,omitempty"`
}

func (h *SessionHandler) containerAction(w http.ResponseWriter, r *http.Request, s *engine.Session, sub string) {
	var req draftRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	switch sub {
	case "open":
		var draft *models.Container
		if req.Index != nil {
			draft = s.EditContainer(*req.Index)
			if draft == nil {
				http.Error(w, "container index out of range", http.StatusBadRequest)
				return
			}
		} else {
			draft = s.OpenContainerDraft()
		}
		respondSession(w, http.StatusOK, s, draft, nil)
	case "update":
		if err := s.UpdateContainerDraft(req.Patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondSession(w, http.StatusOK, s, s.ContainerDraft(), nil)
	case "confirm":
		if violations := s.ConfirmContainer(); len(violations) > 0 {
			respondSession(w, http.StatusUnprocessableEntity, s, s.ContainerDraft(), violations)
			return
		}
		respondSession(w, http.StatusOK, s, nil, nil)
	case "cancel":
		s.CancelContainer()
		respondSession(w, http.StatusOK, s, nil, nil)
	case "delete":
		if req.Index == nil || !s.DeleteContainer(*req.Index) {
			http.Error(w, "container index out of range", http.StatusBadRequest)
			return
		}
		respondSession(w, http.StatusOK, s, nil, nil)
	default:
		http.Error(w, "unknown container action", http.StatusNotFound)
	}
}

func (h *SessionHandler) invoiceAction(w http.ResponseWriter, r *http.Request, s *engine.Session, sub string) {
	var req draftRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	switch sub {
	case "open":
		var draft *models.Invoice
		if req.Index != nil {
			draft = s.EditInvoice(*req.Index)
			if draft == nil {
				http.Error(w, "invoice index out of range", http.StatusBadRequest)
				return
			}
		} else {
			draft = s.OpenInvoiceDraft()
		}
		respondSession(w, http.StatusOK, s, draft, nil)
	case "update":
		if err := s.UpdateInvoiceDraft(req.Patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondSession(w, http.StatusOK, s, s.InvoiceDraft(), nil)
	case "confirm":
		if violations := s.ConfirmInvoice(); len(violations) > 0 {
			respondSession(w, http.StatusUnprocessableEntity, s, s.InvoiceDraft(), violations)
			return
		}
		respondSession(w, http.StatusOK, s, nil, nil)
	case "cancel":
		s.CancelInvoice()
		respondSession(w, http.StatusOK, s, nil, nil)
	case "delete":
		if req.Index == nil || !s.DeleteInvoice(*req.Index) {
			http.Error(w, "invoice index out of range", http.StatusBadRequest)
			return
		}
		respondSession(w, http.StatusOK, s, nil, nil)
	default:
		http.Error(w, "unknown invoice action", http.StatusNotFound)
	}
}

func (h *SessionHandler) itemAction(w http.ResponseWriter, r *http.Request, s *engine.Session, sub string) {
	var req draftRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	switch sub {
	case "open":
		var draft *models.InvoiceItem
		var err error
		if req.Index != nil {
			draft, err = s.EditItem(*req.Index)
		} else {
			draft, err = s.OpenItemDraft()
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondSession(w, http.StatusOK, s, draft, nil)
	case "update":
		if err := s.UpdateItemDraft(req.Patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondSession(w, http.StatusOK, s, s.ItemDraft(), nil)
	case "confirm":
		if violations := s.ConfirmItem(); len(violations) > 0 {
			respondSession(w, http.StatusUnprocessableEntity, s, s.ItemDraft(), violations)
			return
		}
		respondSession(w, http.StatusOK, s, s.InvoiceDraft(), nil)
	case "cancel":
		s.CancelItem()
		respondSession(w, http.StatusOK, s, s.InvoiceDraft(), nil)
	case "delete":
		if req.Index == nil || !s.DeleteItem(*req.Index) {
			http.Error(w, "item index out of range", http.StatusBadRequest)
			return
		}
		respondSession(w, http.StatusOK, s, s.InvoiceDraft(), nil)
	default:
		http.Error(w, "unknown item action", http.StatusNotFound)
	}
}

// submit validates and persists the whole tree in one call. A failed write
// leaves the session draft untouched so the user can retry.
func (h *SessionHandler) submit(w http.ResponseWriter, s *engine.Session) {
	_, violations := s.Submit()
	if len(violations) > 0 {
		respondSession(w, http.StatusUnprocessableEntity, s, h.openDraft(s), violations)
		return
	}

	var err error
	if s.Job.JobID == 0 {
		err = h.JobRepo.CreateJob(s.Job)
	} else {
		err = h.JobRepo.UpdateJob(s.Job)
	}
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			s.Notify("Submit failed", "job was changed by someone else", engine.VariantDestructive)
			respondSession(w, http.StatusConflict, s, h.openDraft(s), nil)
			return
		}
		s.Notify("Submit failed", err.Error(), engine.VariantDestructive)
		respondSession(w, http.StatusInternalServerError, s, h.openDraft(s), nil)
		return
	}

	// The repo wrote ids and the new version back into the tree; swap the
	// canonical copy in and drop any open drafts.
	s.Replace(s.Job)
	s.Notify("Job submitted", "", engine.VariantSuccess)
	respondSession(w, http.StatusOK, s, nil, nil)
}
