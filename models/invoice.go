package models

// Invoice groups line items under a job, with LC and Form-E references.
// An invoice must hold at least one item before it can be committed.
type Invoice struct {
	ID                     int64  `json:"id" db:"id" bson:"id"`
	JobID                  int64  `json:"jobId" db:"job_id" bson:"job_id"`
	InvoiceNumber          string `json:"invoiceNumber" db:"invoice_number" bson:"invoice_number" validate:"required"`
	InvoiceDate            string `json:"invoiceDate" db:"invoice_date" bson:"invoice_date"`
	InvoiceIssuedByPartyID *int64 `json:"invoiceIssuedByPartyId" db:"invoice_issued_by_party_id" bson:"invoice_issued_by_party_id"`

	// Defaulted from the job's freight type for new drafts.
	ShippingTerm string `json:"shippingTerm" db:"shipping_term" bson:"shipping_term"`

	LCNumber       string  `json:"lcNumber" db:"lc_number" bson:"lc_number"`
	LCValue        float64 `json:"lcValue" db:"lc_value" bson:"lc_value"`
	LCDate         string  `json:"lcDate" db:"lc_date" bson:"lc_date"`
	LCIssuedByBank *int64  `json:"lcIssuedByBankId" db:"lc_issued_by_bank_id" bson:"lc_issued_by_bank_id"`
	LCCurrencyID   *int64  `json:"lcCurrencyId" db:"lc_currency_id" bson:"lc_currency_id"`

	FINumber     string `json:"fiNumber" db:"fi_number" bson:"fi_number"`
	FIDate       string `json:"fiDate" db:"fi_date" bson:"fi_date"`
	FIExpiryDate string `json:"fiExpiryDate" db:"fi_expiry_date" bson:"fi_expiry_date"`

	Items []InvoiceItem `json:"items" bson:"items"`
}

// InvoiceItem is one customs line. TotalValue is derived and never settable
// by the user.
type InvoiceItem struct {
	ID          int64   `json:"id" db:"id" bson:"id"`
	InvoiceID   int64   `json:"invoiceId" db:"invoice_id" bson:"invoice_id"`
	HSCodeID    *int64  `json:"hsCodeId" db:"hs_code_id" bson:"hs_code_id"`
	HSCode      string  `json:"hsCode" db:"hs_code" bson:"hs_code"`
	Description string  `json:"description" db:"description" bson:"description"`
	OriginID    *int64  `json:"originId" db:"origin_id" bson:"origin_id"`
	Quantity    float64 `json:"quantity" db:"quantity" bson:"quantity"`

	DutiableValue   float64 `json:"dutiableValue" db:"dutiable_value" bson:"dutiable_value"`
	AssessableValue float64 `json:"assessableValue" db:"assessable_value" bson:"assessable_value"`
	TotalValue      float64 `json:"totalValue" db:"total_value" bson:"total_value"`
}
