package models

import (
	"encoding/json"
	"time"
)

// Wire shapes mirror what the backend stores and returns. Field names are
// snake_case and dates are full ISO-8601 instants; the form model keeps
// date-only strings. ToWire and FromWire are inverses on the shared fields,
// and anything missing on one side maps to the default table: numbers to 0,
// strings to "", reference ids to nil.

type WireJob struct {
	JobID     int64  `json:"job_id,omitempty"`
	JobNumber string `json:"job_number"`
	CompanyID int64  `json:"company_id"`
	Version   int64  `json:"version"`

	OperationType   string `json:"operation_type"`
	OperationMode   string `json:"operation_mode"`
	JobSubType      string `json:"job_sub_type"`
	JobLoadType     string `json:"job_load_type"`
	JobDocumentType string `json:"job_document_type"`
	ShippingType    string `json:"shipping_type"`

	HouseDocumentNumber  string `json:"house_document_number"`
	MasterDocumentNumber string `json:"master_document_number"`
	BLStatus             string `json:"bl_status"`

	ShipperPartyID     *int64 `json:"shipper_party_id"`
	ConsigneePartyID   *int64 `json:"consignee_party_id"`
	CarrierPartyID     *int64 `json:"carrier_party_id"`
	ProcessOwnerID     *int64 `json:"process_owner_id"`
	OriginAgentID      *int64 `json:"origin_agent_id"`
	DestinationAgentID *int64 `json:"destination_agent_id"`

	POLID             *int64     `json:"pol_id"`
	PODID             *int64     `json:"pod_id"`
	PlaceOfDeliveryID *int64     `json:"place_of_delivery_id"`
	VesselID          *int64     `json:"vessel_id"`
	VoyageNumber      string     `json:"voyage_number"`
	ETD               *time.Time `json:"etd"`
	ETA               *time.Time `json:"eta"`

	GrossWeight float64 `json:"gross_weight"`
	NetWeight   float64 `json:"net_weight"`

	FreightType    string  `json:"freight_type"`
	ExchangeRate   float64 `json:"exchange_rate"`
	FreightCharges float64 `json:"freight_charges"`
	OtherCharges   float64 `json:"other_charges"`
	Insurance      string  `json:"insurance"`
	InsuranceValue float64 `json:"insurance_value"`
	SecurityValue  float64 `json:"security_value"`

	BillingPartiesInfo string `json:"billing_parties_info"`
	Remarks            string `json:"remarks"`

	Containers []WireContainer `json:"containers"`
	Invoices   []WireInvoice   `json:"invoices"`
}

type WireContainer struct {
	ID              int64      `json:"id,omitempty"`
	ContainerNo     string     `json:"container_no"`
	ContainerSizeID *int64     `json:"container_size_id"`
	ContainerTypeID *int64     `json:"container_type_id"`
	Weight          float64    `json:"weight"`
	SealNo          string     `json:"seal_no"`
	GateInDate      *time.Time `json:"gate_in_date"`
	GateOutDate     *time.Time `json:"gate_out_date"`
	EIRNumber       string     `json:"eir_number"`
	RentAmount      float64    `json:"rent_amount"`
	DamageAmount    float64    `json:"damage_amount"`
	RefundAmount    float64    `json:"refund_amount"`
}

type WireInvoice struct {
	ID                     int64      `json:"id,omitempty"`
	InvoiceNumber          string     `json:"invoice_number"`
	InvoiceDate            *time.Time `json:"invoice_date"`
	InvoiceIssuedByPartyID *int64     `json:"invoice_issued_by_party_id"`
	ShippingTerm           string     `json:"shipping_term"`
	LCNumber               string     `json:"lc_number"`
	LCValue                float64    `json:"lc_value"`
	LCDate                 *time.Time `json:"lc_date"`
	LCIssuedByBank         *int64     `json:"lc_issued_by_bank_id"`
	LCCurrencyID           *int64     `json:"lc_currency_id"`
	FINumber               string     `json:"fi_number"`
	FIDate                 *time.Time `json:"fi_date"`
	FIExpiryDate           *time.Time `json:"fi_expiry_date"`
	Items                  []WireItem `json:"items"`
}

type WireItem struct {
	ID              int64   `json:"id,omitempty"`
	HSCodeID        *int64  `json:"hs_code_id"`
	HSCode          string  `json:"hs_code"`
	Description     string  `json:"description"`
	OriginID        *int64  `json:"origin_id"`
	Quantity        float64 `json:"quantity"`
	DutiableValue   float64 `json:"dutiable_value"`
	AssessableValue float64 `json:"assessable_value"`
	TotalValue      float64 `json:"total_value"`
}

const dateLayout = "2006-01-02"

// wireDate lifts an internal date-only string to a UTC midnight instant.
// Empty or unparseable input maps to nil, never an error.
func wireDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// internalDate collapses a wire instant back to YYYY-MM-DD, nil to "".
func internalDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func ToWire(j *JobMaster) *WireJob {
	w := &WireJob{
		JobID:     j.JobID,
		JobNumber: j.JobNumber,
		CompanyID: j.CompanyID,
		Version:   j.Version,

		OperationType:   j.OperationType,
		OperationMode:   j.OperationMode,
		JobSubType:      j.JobSubType,
		JobLoadType:     j.JobLoadType,
		JobDocumentType: j.JobDocumentType,
		ShippingType:    j.ShippingType,

		HouseDocumentNumber:  j.HouseDocumentNumber,
		MasterDocumentNumber: j.MasterDocumentNumber,
		BLStatus:             j.BLStatus,

		ShipperPartyID:     j.ShipperPartyID,
		ConsigneePartyID:   j.ConsigneePartyID,
		CarrierPartyID:     j.CarrierPartyID,
		ProcessOwnerID:     j.ProcessOwnerID,
		OriginAgentID:      j.OriginAgentID,
		DestinationAgentID: j.DestinationAgentID,

		POLID:             j.POLID,
		PODID:             j.PODID,
		PlaceOfDeliveryID: j.PlaceOfDeliveryID,
		VesselID:          j.VesselID,
		VoyageNumber:      j.VoyageNumber,
		ETD:               wireDate(j.ETD),
		ETA:               wireDate(j.ETA),

		GrossWeight: j.GrossWeight,
		NetWeight:   j.NetWeight,

		FreightType:    j.FreightType,
		ExchangeRate:   j.ExchangeRate,
		FreightCharges: j.FreightCharges,
		OtherCharges:   j.OtherCharges,
		Insurance:      j.Insurance,
		InsuranceValue: j.InsuranceValue,
		SecurityValue:  j.SecurityValue,

		BillingPartiesInfo: j.BillingPartiesInfo,
		Remarks:            j.Remarks,

		Containers: make([]WireContainer, 0, len(j.Containers)),
		Invoices:   make([]WireInvoice, 0, len(j.Invoices)),
	}

	for _, c := range j.Containers {
		w.Containers = append(w.Containers, WireContainer{
			ID:              c.ID,
			ContainerNo:     c.ContainerNo,
			ContainerSizeID: c.ContainerSizeID,
			ContainerTypeID: c.ContainerTypeID,
			Weight:          c.Weight,
			SealNo:          c.SealNo,
			GateInDate:      wireDate(c.GateInDate),
			GateOutDate:     wireDate(c.GateOutDate),
			EIRNumber:       c.EIRNumber,
			RentAmount:      c.RentAmount,
			DamageAmount:    c.DamageAmount,
			RefundAmount:    c.RefundAmount,
		})
	}

	for _, inv := range j.Invoices {
		wi := WireInvoice{
			ID:                     inv.ID,
			InvoiceNumber:          inv.InvoiceNumber,
			InvoiceDate:            wireDate(inv.InvoiceDate),
			InvoiceIssuedByPartyID: inv.InvoiceIssuedByPartyID,
			ShippingTerm:           inv.ShippingTerm,
			LCNumber:               inv.LCNumber,
			LCValue:                inv.LCValue,
			LCDate:                 wireDate(inv.LCDate),
			LCIssuedByBank:         inv.LCIssuedByBank,
			LCCurrencyID:           inv.LCCurrencyID,
			FINumber:               inv.FINumber,
			FIDate:                 wireDate(inv.FIDate),
			FIExpiryDate:           wireDate(inv.FIExpiryDate),
			Items:                  make([]WireItem, 0, len(inv.Items)),
		}
		for _, it := range inv.Items {
			wi.Items = append(wi.Items, WireItem{
				ID:              it.ID,
				HSCodeID:        it.HSCodeID,
				HSCode:          it.HSCode,
				Description:     it.Description,
				OriginID:        it.OriginID,
				Quantity:        it.Quantity,
				DutiableValue:   it.DutiableValue,
				AssessableValue: it.AssessableValue,
				TotalValue:      it.TotalValue,
			})
		}
		w.Invoices = append(w.Invoices, wi)
	}

	return w
}

func FromWire(w *WireJob) *JobMaster {
	j := &JobMaster{
		JobID:     w.JobID,
		JobNumber: w.JobNumber,
		CompanyID: w.CompanyID,
		Version:   w.Version,

		OperationType:   w.OperationType,
		OperationMode:   w.OperationMode,
		JobSubType:      w.JobSubType,
		JobLoadType:     w.JobLoadType,
		JobDocumentType: w.JobDocumentType,
		ShippingType:    w.ShippingType,

		HouseDocumentNumber:  w.HouseDocumentNumber,
		MasterDocumentNumber: w.MasterDocumentNumber,
		BLStatus:             w.BLStatus,

		ShipperPartyID:     w.ShipperPartyID,
		ConsigneePartyID:   w.ConsigneePartyID,
		CarrierPartyID:     w.CarrierPartyID,
		ProcessOwnerID:     w.ProcessOwnerID,
		OriginAgentID:      w.OriginAgentID,
		DestinationAgentID: w.DestinationAgentID,

		POLID:             w.POLID,
		PODID:             w.PODID,
		PlaceOfDeliveryID: w.PlaceOfDeliveryID,
		VesselID:          w.VesselID,
		VoyageNumber:      w.VoyageNumber,
		ETD:               internalDate(w.ETD),
		ETA:               internalDate(w.ETA),

		GrossWeight: w.GrossWeight,
		NetWeight:   w.NetWeight,

		FreightType:    w.FreightType,
		ExchangeRate:   w.ExchangeRate,
		FreightCharges: w.FreightCharges,
		OtherCharges:   w.OtherCharges,
		Insurance:      w.Insurance,
		InsuranceValue: w.InsuranceValue,
		SecurityValue:  w.SecurityValue,

		BillingPartiesInfo: w.BillingPartiesInfo,
		Remarks:            w.Remarks,

		Containers: make([]Container, 0, len(w.Containers)),
		Invoices:   make([]Invoice, 0, len(w.Invoices)),
	}

	for _, c := range w.Containers {
		j.Containers = append(j.Containers, Container{
			ID:              c.ID,
			JobID:           w.JobID,
			ContainerNo:     c.ContainerNo,
			ContainerSizeID: c.ContainerSizeID,
			ContainerTypeID: c.ContainerTypeID,
			Weight:          c.Weight,
			SealNo:          c.SealNo,
			GateInDate:      internalDate(c.GateInDate),
			GateOutDate:     internalDate(c.GateOutDate),
			EIRNumber:       c.EIRNumber,
			RentAmount:      c.RentAmount,
			DamageAmount:    c.DamageAmount,
			RefundAmount:    c.RefundAmount,
		})
	}

	for _, wi := range w.Invoices {
		inv := Invoice{
			ID:                     wi.ID,
			JobID:                  w.JobID,
			InvoiceNumber:          wi.InvoiceNumber,
			InvoiceDate:            internalDate(wi.InvoiceDate),
			InvoiceIssuedByPartyID: wi.InvoiceIssuedByPartyID,
			ShippingTerm:           wi.ShippingTerm,
			LCNumber:               wi.LCNumber,
			LCValue:                wi.LCValue,
			LCDate:                 internalDate(wi.LCDate),
			LCIssuedByBank:         wi.LCIssuedByBank,
			LCCurrencyID:           wi.LCCurrencyID,
			FINumber:               wi.FINumber,
			FIDate:                 internalDate(wi.FIDate),
			FIExpiryDate:           internalDate(wi.FIExpiryDate),
			Items:                  make([]InvoiceItem, 0, len(wi.Items)),
		}
		for _, it := range wi.Items {
			inv.Items = append(inv.Items, InvoiceItem{
				ID:              it.ID,
				InvoiceID:       wi.ID,
				HSCodeID:        it.HSCodeID,
				HSCode:          it.HSCode,
				Description:     it.Description,
				OriginID:        it.OriginID,
				Quantity:        it.Quantity,
				DutiableValue:   it.DutiableValue,
				AssessableValue: it.AssessableValue,
				TotalValue:      it.TotalValue,
			})
		}
		j.Invoices = append(j.Invoices, inv)
	}

	return j
}

// wireAliases maps legacy wire keys that some backends emit to the canonical
// key. FromWireJSON folds them in before decoding.
var wireAliases = map[string]string{
	"blstatus":     "bl_status",
	"blStatus":     "bl_status",
	"jobSubtype":   "job_sub_type",
	"voyage_no":    "voyage_number",
	"house_doc_no": "house_document_number",
}

// FromWireJSON decodes a wire record, tolerating known alias keys, and maps
// it to the internal shape.
func FromWireJSON(data []byte) (*JobMaster, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for alias, canonical := range wireAliases {
		if v, ok := raw[alias]; ok {
			if _, exists := raw[canonical]; !exists {
				raw[canonical] = v
			}
			delete(raw, alias)
		}
	}
	merged, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var w WireJob
	if err := json.Unmarshal(merged, &w); err != nil {
		return nil, err
	}
	return FromWire(&w), nil
}
