package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"freightdesk/engine"
	"freightdesk/models"
	"freightdesk/repository"
)

type JobHandler struct {
	Repo repository.JobRepository
}

// CreateJob accepts a wire-shaped job tree, validates it, and stores it
// atomically.
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	job, err := models.FromWireJSON(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if violations := engine.ValidateJob(job); len(violations) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"violations": violations})
		return
	}

	if err := h.Repo.CreateJob(job); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, models.ToWire(job))
}

// UpdateJob replaces an existing tree under the optimistic version check.
func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request, id string) {
	jobID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		http.Error(w, "invalid job ID", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	job, err := models.FromWireJSON(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	job.JobID = jobID

	if violations := engine.ValidateJob(job); len(violations) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"violations": violations})
		return
	}

	if err := h.Repo.UpdateJob(job); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.ToWire(job))
}

// GetAllJobs handler
func (h *JobHandler) GetAllJobs(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.Repo.GetJobs(filters, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	wire := make([]*models.WireJob, 0, len(list))
	for _, j := range list {
		wire = append(wire, models.ToWire(j))
	}

	writeJSON(w, http.StatusOK, wire)
}

// GetJobByID handler
func (h *JobHandler) GetJobByID(w http.ResponseWriter, r *http.Request, id string) {
	jobID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		http.Error(w, "invalid job ID", http.StatusBadRequest)
		return
	}

	filters := map[string]interface{}{"id": jobID}
	list, err := h.Repo.GetJobs(filters, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, models.ToWire(list[0]))
}

func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	jobIDStr := r.URL.Query().Get("id")
	if jobIDStr == "" {
		http.Error(w, "missing job id", http.StatusBadRequest)
		return
	}

	jobID, err := strconv.ParseInt(jobIDStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.DeleteJob(jobID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"success":true,"message":"Job deleted successfully"}`))
}

// decodeBody is shared by the session and party handlers.
func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
