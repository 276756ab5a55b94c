package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleJob() *JobMaster {
	shipper := int64(10)
	job := NewJobMaster(1)
	job.JobID = 7
	job.JobNumber = "JOB-2026-001"
	job.Version = 3
	job.OperationType = "IMPORT"
	job.OperationMode = ModeSea
	job.JobSubType = SubTypeFCL
	job.JobDocumentType = DocTypeHouse
	job.HouseDocumentNumber = "HBL-001"
	job.ShipperPartyID = &shipper
	job.VoyageNumber = "V-088"
	job.ETD = "2026-09-15"
	job.ETA = "2026-10-02"
	job.GrossWeight = 1234.5678
	job.FreightType = FreightCollect
	job.Containers = []Container{
		{ID: 1, ContainerNo: "MSKU1234567", Weight: 1234.5678, SealNo: "SL-1", GateInDate: "2026-09-10"},
	}
	job.Invoices = []Invoice{
		{
			ID:            2,
			InvoiceNumber: "INV-1",
			InvoiceDate:   "2026-09-01",
			ShippingTerm:  "FOB",
			LCNumber:      "LC-778",
			LCValue:       100,
			LCDate:        "2026-08-20",
			Items: []InvoiceItem{
				{ID: 3, HSCode: "8471.30", Description: "Laptops", Quantity: 2, DutiableValue: 50, AssessableValue: 110, TotalValue: 100},
			},
		},
	}
	return job
}

func TestWireRoundTrip(t *testing.T) {
	job := sampleJob()
	got := FromWire(ToWire(job))

	// Child back-references are rewritten from the parent ids.
	job.Containers[0].JobID = job.JobID
	job.Invoices[0].JobID = job.JobID
	job.Invoices[0].Items[0].InvoiceID = job.Invoices[0].ID

	assert.Equal(t, job, got)
}

func TestWireDatesBecomeInstants(t *testing.T) {
	w := ToWire(sampleJob())

	require.NotNil(t, w.ETD)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), *w.ETD)
	require.NotNil(t, w.Invoices[0].LCDate)
	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), *w.Invoices[0].LCDate)

	// Empty internal dates map to nil, not zero instants.
	assert.Nil(t, w.Invoices[0].FIDate)
}

func TestWireUnparseableDateMapsToNil(t *testing.T) {
	job := sampleJob()
	job.ETD = "15/09/2026"
	w := ToWire(job)
	assert.Nil(t, w.ETD)
}

func TestInternalDateCollapsesToDateOnly(t *testing.T) {
	at := time.Date(2026, 9, 15, 17, 45, 3, 0, time.UTC)
	job := FromWire(&WireJob{JobNumber: "JOB-1", ETD: &at})
	assert.Equal(t, "2026-09-15", job.ETD)

	job = FromWire(&WireJob{JobNumber: "JOB-1"})
	assert.Equal(t, "", job.ETD)
}

func TestFromWireJSONAliasTolerance(t *testing.T) {
	data := []byte(`{
		"job_number": "JOB-2026-001",
		"blstatus": "SURRENDERED",
		"jobSubtype": "FCL",
		"voyage_no": "V-088",
		"house_doc_no": "HBL-001"
	}`)

	job, err := FromWireJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "SURRENDERED", job.BLStatus)
	assert.Equal(t, "FCL", job.JobSubType)
	assert.Equal(t, "V-088", job.VoyageNumber)
	assert.Equal(t, "HBL-001", job.HouseDocumentNumber)
}

func TestFromWireJSONCanonicalKeyWins(t *testing.T) {
	data := []byte(`{"job_number": "JOB-1", "bl_status": "ORIGINAL", "blstatus": "SURRENDERED"}`)
	job, err := FromWireJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "ORIGINAL", job.BLStatus)
}

func TestFromWireDefaultsForMissingFields(t *testing.T) {
	job, err := FromWireJSON([]byte(`{"job_number": "JOB-1"}`))
	require.NoError(t, err)

	assert.Equal(t, 0.0, job.GrossWeight)
	assert.Equal(t, "", job.Remarks)
	assert.Nil(t, job.ShipperPartyID)
	assert.NotNil(t, job.Containers)
	assert.NotNil(t, job.Invoices)
}
