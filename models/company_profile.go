package models

import "time"

type PhoneEntry struct {
	Number string `json:"number" bson:"number" db:"number"`
	Label  string `json:"label" bson:"label" db:"label"`
}

// CompanyProfile is the forwarding company's own identity, printed on the
// job order sheet header.
type CompanyProfile struct {
	ID          int64        `json:"id" bson:"_id,omitempty" db:"id"`
	CompanyName string       `json:"companyName" bson:"name" db:"name"`
	Address     string       `json:"address" bson:"address" db:"address"`
	City        string       `json:"city" bson:"city" db:"city"`
	Country     string       `json:"country" bson:"country" db:"country"`
	TaxID       string       `json:"taxId" bson:"tax_id" db:"tax_id"`
	Footnote    string       `json:"footnote" bson:"footnote" db:"footnote"`
	Phones      []PhoneEntry `json:"phones" bson:"phones" db:"phones"`
	CreatedAt   time.Time    `json:"createdAt" bson:"created_at" db:"created_at"`
}
