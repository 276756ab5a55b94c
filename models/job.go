package models

import "time"

// Operation enumerations. Stored as plain strings on the wire.
const (
	ModeSea  = "SEA"
	ModeAir  = "AIR"
	ModeRoad = "ROAD"
	ModeLand = "LAND"

	SubTypeFCL = "FCL"
	SubTypeLCL = "LCL"
	SubTypeBB  = "BB"

	DocTypeHouse  = "House"
	DocTypeMaster = "Master"

	FreightCollect = "COLLECT"
	FreightPrepaid = "PREPAID"
)

// JobMaster is the shipment header. Dates are kept as YYYY-MM-DD strings
// internally; the wire layer converts them to full instants.
type JobMaster struct {
	JobID     int64  `json:"jobId" db:"id" bson:"_id,omitempty"`
	JobNumber string `json:"jobNumber" db:"job_number" bson:"job_number" validate:"required"`
	CompanyID int64  `json:"companyId" db:"company_id" bson:"company_id"`
	Version   int64  `json:"version" db:"version" bson:"version"`

	OperationType   string `json:"operationType" db:"operation_type" bson:"operation_type"`
	OperationMode   string `json:"operationMode" db:"operation_mode" bson:"operation_mode"`
	JobSubType      string `json:"jobSubType" db:"job_sub_type" bson:"job_sub_type"`
	JobLoadType     string `json:"jobLoadType" db:"job_load_type" bson:"job_load_type"`
	JobDocumentType string `json:"jobDocumentType" db:"job_document_type" bson:"job_document_type"`
	ShippingType    string `json:"shippingType" db:"shipping_type" bson:"shipping_type"`

	HouseDocumentNumber  string `json:"houseDocumentNumber" db:"house_document_number" bson:"house_document_number"`
	MasterDocumentNumber string `json:"masterDocumentNumber" db:"master_document_number" bson:"master_document_number"`
	BLStatus             string `json:"blStatus" db:"bl_status" bson:"bl_status"`

	ShipperPartyID     *int64 `json:"shipperPartyId" db:"shipper_party_id" bson:"shipper_party_id"`
	ConsigneePartyID   *int64 `json:"consigneePartyId" db:"consignee_party_id" bson:"consignee_party_id"`
	CarrierPartyID     *int64 `json:"carrierPartyId" db:"carrier_party_id" bson:"carrier_party_id"`
	ProcessOwnerID     *int64 `json:"processOwnerId" db:"process_owner_id" bson:"process_owner_id"`
	OriginAgentID      *int64 `json:"originAgentId" db:"origin_agent_id" bson:"origin_agent_id"`
	DestinationAgentID *int64 `json:"destinationAgentId" db:"destination_agent_id" bson:"destination_agent_id"`

	POLID             *int64 `json:"polId" db:"pol_id" bson:"pol_id"`
	PODID             *int64 `json:"podId" db:"pod_id" bson:"pod_id"`
	PlaceOfDeliveryID *int64 `json:"placeOfDeliveryId" db:"place_of_delivery_id" bson:"place_of_delivery_id"`
	VesselID          *int64 `json:"vesselId" db:"vessel_id" bson:"vessel_id"`
	VoyageNumber      string `json:"voyageNumber" db:"voyage_number" bson:"voyage_number"`
	ETD               string `json:"etd" db:"etd" bson:"etd"`
	ETA               string `json:"eta" db:"eta" bson:"eta"`

	// Computed totals. GrossWeight is derived from containers while any exist.
	GrossWeight float64 `json:"grossWeight" db:"gross_weight" bson:"gross_weight"`
	NetWeight   float64 `json:"netWeight" db:"net_weight" bson:"net_weight"`

	FreightType    string  `json:"freightType" db:"freight_type" bson:"freight_type"`
	ExchangeRate   float64 `json:"exchangeRate" db:"exchange_rate" bson:"exchange_rate"`
	FreightCharges float64 `json:"freightCharges" db:"freight_charges" bson:"freight_charges"`
	OtherCharges   float64 `json:"otherCharges" db:"other_charges" bson:"other_charges"`
	Insurance      string  `json:"insurance" db:"insurance" bson:"insurance"`
	InsuranceValue float64 `json:"insuranceValue" db:"insurance_value" bson:"insurance_value"`
	SecurityValue  float64 `json:"securityValue" db:"security_value" bson:"security_value"`

	BillingPartiesInfo string `json:"billingPartiesInfo" db:"billing_parties_info" bson:"billing_parties_info"`
	Remarks            string `json:"remarks" db:"remarks" bson:"remarks"`

	Containers []Container `json:"containers" bson:"containers"`
	Invoices   []Invoice   `json:"invoices" bson:"invoices"`

	CreatedAt    time.Time  `json:"createdAt" db:"created_at" bson:"created_at"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" db:"updated_at" bson:"updated_at,omitempty"`
	PdfCreatedAt *time.Time `json:"pdfCreatedAt,omitempty" db:"pdf_created_at" bson:"pdf_created_at,omitempty"`
	PdfPath      *string    `json:"pdfPath,omitempty" db:"pdf_path" bson:"pdf_path,omitempty"`
}

// NewJobMaster returns a draft with the documented scalar defaults:
// numbers 0, strings empty, reference ids nil.
func NewJobMaster(companyID int64) *JobMaster {
	return &JobMaster{
		CompanyID:  companyID,
		Containers: []Container{},
		Invoices:   []Invoice{},
	}
}
