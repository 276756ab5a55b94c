package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"freightdesk/repository"
	"freightdesk/utils"
)

type PDFHandler struct {
	Repo     *repository.PDFRepository
	SavePath string
	Logger   *zap.Logger
}

// JobOrderPDF handles the API request to generate and save a job order PDF
func (h *PDFHandler) JobOrderPDF(w http.ResponseWriter, r *http.Request) {
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

	saveDir := h.SavePath
	if saveDir == "" {
		saveDir = "./pdfs"
	}
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		http.Error(w, "failed to create save directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	pdfBytes, err := utils.GenerateJobOrderPDF(h.Repo, jobID)
	if err != nil {
		http.Error(w, "failed to generate PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(pdfBytes) == 0 {
		http.Error(w, "no job found", http.StatusNotFound)
		return
	}

	filename := fmt.Sprintf("job_order_%d_%d.pdf", jobID, time.Now().Unix())
	savePath := filepath.Join(saveDir, filename)

	if err := os.WriteFile(savePath, pdfBytes, 0644); err != nil {
		http.Error(w, "failed to save PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Upload is best effort: a local copy already exists.
	publicURL, err := utils.UploadToR2(pdfBytes, filename)
	if err != nil {
		h.Logger.Warn("pdf upload failed", zap.Int64("job_id", jobID), zap.Error(err))
		publicURL = ""
	}

	if err := h.Repo.JobRepo.UpdatePDFCreatedAt(jobID, time.Now(), savePath); err != nil {
		h.Logger.Warn("failed to update pdf_created_at", zap.Int64("job_id", jobID), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"file":    filename,
		"url":     publicURL,
	})
}
