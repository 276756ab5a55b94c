package handlers

import (
	"net/http"

	"freightdesk/models"
	"freightdesk/repository"
)

type ReferenceHandler struct {
	Repo repository.ReferenceRepository
}

// GetOptions serves one dropdown list. A backend failure degrades to an
// empty list with a warning flag rather than an error page, so unrelated
// tabs keep working.
func (h *ReferenceHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		http.Error(w, "missing kind", http.StatusBadRequest)
		return
	}

	options, err := h.Repo.Options(kind)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"options": []models.Option{},
			"warning": "failed to load " + kind,
		})
		return
	}
	if options == nil {
		options = []models.Option{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"options": options})
}

// SaveCompanyProfile stores the company identity used on PDF sheets.
func (h *ReferenceHandler) SaveCompanyProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.CompanyProfile
	if err := decodeBody(r, &profile); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repo.SaveCompanyProfile(&profile); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// GetCompanyProfile handler
func (h *ReferenceHandler) GetCompanyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Repo.GetCompanyProfile()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if profile == nil {
		http.Error(w, "company profile not set", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
