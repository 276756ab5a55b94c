package repository

import "freightdesk/models"

// ReferenceRepository serves the read-only dropdown lists and the company
// profile printed on job order sheets. Callers treat a failed Options load
// as an empty list plus a notification, never a crash.
type ReferenceRepository interface {
	Options(kind string) ([]models.Option, error)
	SaveCompanyProfile(profile *models.CompanyProfile) error
	GetCompanyProfile() (*models.CompanyProfile, error)
}
