package models

import "time"

// Party is a customer or vendor created through the onboarding wizard.
type Party struct {
	ID        int64   `json:"id" db:"id" bson:"_id,omitempty"`
	Name      string  `json:"name" db:"name" bson:"name"`
	PartyType string  `json:"partyType" db:"party_type" bson:"party_type"` // customer | vendor | both
	TaxID     *string `json:"taxId,omitempty" db:"tax_id" bson:"tax_id,omitempty"`
	Email     string  `json:"email" db:"email" bson:"email"`
	Phone     string  `json:"phone" db:"phone" bson:"phone"`

	BankName      string `json:"bankName" db:"bank_name" bson:"bank_name"`
	BankAccountNo string `json:"bankAccountNo" db:"bank_account_no" bson:"bank_account_no"`
	BankIBAN      string `json:"bankIban" db:"bank_iban" bson:"bank_iban"`

	Addresses []PartyAddress `json:"addresses" bson:"addresses"`
	Contacts  []PartyContact `json:"contacts" bson:"contacts"`

	Status    string    `json:"status" db:"status" bson:"status"` // draft | active
	CreatedAt time.Time `json:"createdAt" db:"created_at" bson:"created_at"`
}

type PartyAddress struct {
	ID          int64  `json:"id" db:"id" bson:"id"`
	PartyID     int64  `json:"partyId" db:"party_id" bson:"party_id"`
	AddressLine string `json:"addressLine" db:"address_line" bson:"address_line"`
	City        string `json:"city" db:"city" bson:"city"`
	Country     string `json:"country" db:"country" bson:"country"`
	PostalCode  string `json:"postalCode" db:"postal_code" bson:"postal_code"`
	IsDefault   bool   `json:"isDefault" db:"is_default" bson:"is_default"`
}

type PartyContact struct {
	ID          int64  `json:"id" db:"id" bson:"id"`
	PartyID     int64  `json:"partyId" db:"party_id" bson:"party_id"`
	Name        string `json:"name" db:"name" bson:"name"`
	Designation string `json:"designation" db:"designation" bson:"designation"`
	Email       string `json:"email" db:"email" bson:"email"`
	Phone       string `json:"phone" db:"phone" bson:"phone"`
}
