package models

// Option is one row of a reference-data list used to populate dropdowns.
// Metadata carries lookup extras such as an HS code's description.
type Option struct {
	Value    int64             `json:"value" db:"value" bson:"value"`
	Label    string            `json:"label" db:"label" bson:"label"`
	Metadata map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// Reference kinds served by the reference repository.
const (
	RefParties        = "parties"
	RefLocations      = "locations"
	RefCurrencies     = "currencies"
	RefContainerTypes = "container_types"
	RefContainerSizes = "container_sizes"
	RefHSCodes        = "hs_codes"
	RefBanks          = "banks"
	RefVessels        = "vessels"
)
