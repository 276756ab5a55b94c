package repository

import "freightdesk/models"

// PDFRepository provides methods to fetch data for PDF generation
type PDFRepository struct {
	JobRepo       JobRepository
	ReferenceRepo ReferenceRepository
}

// GetJobForPDF fetches a single job by ID for PDF
func (r *PDFRepository) GetJobForPDF(id int64) (*models.JobMaster, error) {
	jobs, err := r.JobRepo.GetJobs(map[string]interface{}{"id": id}, true)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, nil
	}
	return jobs[0], nil
}

// GetCompanyForPDF fetches the company profile for the sheet header
func (r *PDFRepository) GetCompanyForPDF() (*models.CompanyProfile, error) {
	return r.ReferenceRepo.GetCompanyProfile()
}
