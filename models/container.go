package models

// Container is job equipment, relevant only for FCL jobs. Weight is the tare
// weight and feeds the job's gross-weight total.
type Container struct {
	ID              int64  `json:"id" db:"id" bson:"id"`
	JobID           int64  `json:"jobId" db:"job_id" bson:"job_id"`
	ContainerNo     string `json:"containerNo" db:"container_no" bson:"container_no" validate:"required"`
	ContainerSizeID *int64 `json:"containerSizeId" db:"container_size_id" bson:"container_size_id"`
	ContainerTypeID *int64 `json:"containerTypeId" db:"container_type_id" bson:"container_type_id"`

	Weight float64 `json:"weight" db:"weight" bson:"weight"`
	SealNo string  `json:"sealNo" db:"seal_no" bson:"seal_no"`

	GateInDate  string `json:"gateInDate" db:"gate_in_date" bson:"gate_in_date"`
	GateOutDate string `json:"gateOutDate" db:"gate_out_date" bson:"gate_out_date"`
	EIRNumber   string `json:"eirNumber" db:"eir_number" bson:"eir_number"`

	RentAmount   float64 `json:"rentAmount" db:"rent_amount" bson:"rent_amount"`
	DamageAmount float64 `json:"damageAmount" db:"damage_amount" bson:"damage_amount"`
	RefundAmount float64 `json:"refundAmount" db:"refund_amount" bson:"refund_amount"`
}
