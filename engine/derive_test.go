package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdesk/models"
)

func TestGrossWeightSumsContainers(t *testing.T) {
	eng := NewEngine()
	job := models.NewJobMaster(1)
	job.Containers = []models.Container{
		{ContainerNo: "MSKU1234567", Weight: 1000.1234},
		{ContainerNo: "MSKU7654321", Weight: 2500.5},
	}

	eng.Recompute(job, Env{}, "containers")
	assert.Equal(t, 3500.6234, job.GrossWeight)

	// Re-running must not drift the value.
	eng.Recompute(job, Env{}, "containers")
	eng.Recompute(job, Env{})
	assert.Equal(t, 3500.6234, job.GrossWeight)
}

func TestGrossWeightManualValueSurvivesUnrelatedRecompute(t *testing.T) {
	eng := NewEngine()
	job := models.NewJobMaster(1)
	job.GrossWeight = 420.5 // user-entered, no containers

	eng.Recompute(job, Env{}, "remarks")
	assert.Equal(t, 420.5, job.GrossWeight)

	// Removing the last container resets the total to zero.
	eng.Recompute(job, Env{}, "containers")
	assert.Equal(t, 0.0, job.GrossWeight)
}

func TestInsuranceOnePercentOfAssessable(t *testing.T) {
	eng := NewEngine()
	job := models.NewJobMaster(1)
	job.Invoices = []models.Invoice{
		{InvoiceNumber: "INV-1", Items: []models.InvoiceItem{
			{Quantity: 1, AssessableValue: 1200},
			{Quantity: 2, AssessableValue: 800},
		}},
	}

	env := Env{InsuranceMode: InsuranceOnePercent}
	eng.Recompute(job, env, "invoices")

	assert.Equal(t, 20.0, job.InsuranceValue)
	assert.Equal(t, "1%", job.Insurance)
}

func TestInsuranceCustomModeLeftAlone(t *testing.T) {
	eng := NewEngine()
	job := models.NewJobMaster(1)
	job.Insurance = "flat"
	job.InsuranceValue = 55
	job.Invoices = []models.Invoice{
		{InvoiceNumber: "INV-1", Items: []models.InvoiceItem{{Quantity: 1, AssessableValue: 9999}}},
	}

	eng.Recompute(job, Env{InsuranceMode: InsuranceCustom}, "invoices")

	assert.Equal(t, 55.0, job.InsuranceValue)
	assert.Equal(t, "flat", job.Insurance)
}

func TestBillingPartiesInfo(t *testing.T) {
	eng := NewEngine()
	job := models.NewJobMaster(1)
	shipper, consignee := int64(10), int64(20)
	job.ShipperPartyID = &shipper
	job.ConsigneePartyID = &consignee

	labels := map[int64]string{10: "Acme Exports", 20: "Globex Imports"}
	env := Env{Parties: func(id int64) (string, bool) {
		l, ok := labels[id]
		return l, ok
	}}

	eng.Recompute(job, env, "shipperPartyId")
	assert.Equal(t, "Shipper: Acme Exports | Consignee: Globex Imports", job.BillingPartiesInfo)

	// An unresolvable id clears the line rather than printing a partial one.
	unknown := int64(99)
	job.ConsigneePartyID = &unknown
	eng.Recompute(job, env, "consigneePartyId")
	assert.Equal(t, "", job.BillingPartiesInfo)
}

func TestRecomputeSkipsUntriggeredRules(t *testing.T) {
	eng := NewEngine()
	job := models.NewJobMaster(1)
	job.Containers = []models.Container{{ContainerNo: "MSKU1234567", Weight: 500}}
	job.GrossWeight = 1 // stale on purpose

	eng.Recompute(job, Env{}, "remarks")
	assert.Equal(t, 1.0, job.GrossWeight, "remarks must not trigger the weight rule")

	eng.Recompute(job, Env{}, "containers")
	assert.Equal(t, 500.0, job.GrossWeight)
}

func TestDefaultShippingTerm(t *testing.T) {
	assert.Equal(t, "FOB", DefaultShippingTerm(models.FreightCollect))
	assert.Equal(t, "DDP", DefaultShippingTerm(models.FreightPrepaid))
	assert.Equal(t, "", DefaultShippingTerm(""))
}

func TestItemTotal(t *testing.T) {
	assert.Equal(t, 10.0, ItemTotal(4, 2.5))
	assert.Equal(t, 0.3, ItemTotal(3, 0.1))

	// Rounded to 2 decimals, never truncated.
	require.Equal(t, 33.33, ItemTotal(1, 33.333))
}
