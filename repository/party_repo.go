package repository

import "freightdesk/models"

// PartyRepository persists onboarded customers and vendors.
type PartyRepository interface {
	CreateParty(party *models.Party) error
	GetParties(filters map[string]interface{}, single bool) ([]*models.Party, error)
}
