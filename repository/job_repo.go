package repository

import (
	"time"

	"freightdesk/models"
)

// JobRepository persists whole job trees. Submit is atomic: the job header
// with all containers, invoices and items is written in one transaction (or
// one document), never incrementally.
type JobRepository interface {
	CreateJob(job *models.JobMaster) error
	// UpdateJob replaces the whole tree; the stored version must match the
	// job's version or ErrVersionConflict is returned.
	UpdateJob(job *models.JobMaster) error
	GetJobs(filters map[string]interface{}, single bool) ([]*models.JobMaster, error)
	DeleteJob(jobID int64) error
	UpdatePDFCreatedAt(jobID int64, t time.Time, path string) error
}
