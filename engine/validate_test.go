package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdesk/models"
)

func hasViolation(violations []Violation, field string) bool {
	for _, v := range violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

func TestReconcileLC(t *testing.T) {
	inv := &models.Invoice{
		InvoiceNumber: "INV-1",
		LCValue:       100,
		Items: []models.InvoiceItem{
			{Quantity: 2, DutiableValue: 50},
		},
	}
	assert.Nil(t, ReconcileLC(inv), "2 x 50 matches LC 100")

	inv.LCValue = 150
	v := ReconcileLC(inv)
	require.NotNil(t, v)
	assert.Equal(t, "lcValue", v.Field)
	assert.Equal(t, "LC value 150.00 does not match item total 100.00 (difference 50.00)", v.Message)
}

func TestReconcileLCToleratesRoundingGap(t *testing.T) {
	inv := &models.Invoice{
		LCValue: 100.01,
		Items:   []models.InvoiceItem{{Quantity: 2, DutiableValue: 50}},
	}
	assert.Nil(t, ReconcileLC(inv), "one cent inside tolerance")

	inv.LCValue = 100.02
	assert.NotNil(t, ReconcileLC(inv), "two cents outside tolerance")
}

func TestReconcileLCSkipsWithoutLCValue(t *testing.T) {
	inv := &models.Invoice{Items: []models.InvoiceItem{{Quantity: 5, DutiableValue: 10}}}
	assert.Nil(t, ReconcileLC(inv))
}

func TestValidateItemDraft(t *testing.T) {
	it := &models.InvoiceItem{Quantity: 0, DutiableValue: 10}
	violations := ValidateItemDraft(it)
	require.True(t, hasViolation(violations, "quantity"))

	it.Quantity = 1.5
	assert.Empty(t, ValidateItemDraft(it))
}

func TestValidateInvoiceDraftNeedsItems(t *testing.T) {
	inv := &models.Invoice{InvoiceNumber: "INV-1"}
	violations := ValidateInvoiceDraft(inv)
	assert.True(t, hasViolation(violations, "items"))

	inv.Items = []models.InvoiceItem{{Quantity: 1, DutiableValue: 10}}
	assert.Empty(t, ValidateInvoiceDraft(inv))
}

func TestValidateInvoiceDraftRequiresNumber(t *testing.T) {
	inv := &models.Invoice{Items: []models.InvoiceItem{{Quantity: 1, DutiableValue: 10}}}
	violations := ValidateInvoiceDraft(inv)
	assert.True(t, hasViolation(violations, "invoiceNumber"))
}

func validJob() *models.JobMaster {
	job := models.NewJobMaster(1)
	job.JobNumber = "JOB-2026-001"
	job.OperationType = "IMPORT"
	job.OperationMode = models.ModeSea
	job.JobSubType = models.SubTypeFCL
	job.JobLoadType = "FULL"
	job.ShippingType = "CY-CY"
	job.JobDocumentType = models.DocTypeHouse
	job.HouseDocumentNumber = "HBL-001"
	return job
}

func TestValidateJobConditionalRequiredness(t *testing.T) {
	job := validJob()
	assert.Empty(t, ValidateJob(job))

	// SEA FCL requires shipping type and load type.
	job.ShippingType = ""
	job.JobLoadType = ""
	violations := ValidateJob(job)
	assert.True(t, hasViolation(violations, "shippingType"))
	assert.True(t, hasViolation(violations, "jobLoadType"))

	// The same fields are irrelevant for air jobs.
	job.OperationMode = models.ModeAir
	assert.Empty(t, ValidateJob(job))
}

func TestValidateJobDocumentNumberFollowsType(t *testing.T) {
	job := validJob()
	job.HouseDocumentNumber = ""
	assert.True(t, hasViolation(ValidateJob(job), "houseDocumentNumber"))

	job.JobDocumentType = models.DocTypeMaster
	violations := ValidateJob(job)
	assert.False(t, hasViolation(violations, "houseDocumentNumber"))
	assert.True(t, hasViolation(violations, "masterDocumentNumber"))

	job.MasterDocumentNumber = "MBL-001"
	assert.Empty(t, ValidateJob(job))
}

func TestValidateJobContainersOnlyForFCL(t *testing.T) {
	job := validJob()
	job.JobSubType = models.SubTypeLCL
	job.JobLoadType = ""
	job.ShippingType = ""
	job.Containers = []models.Container{{ContainerNo: "MSKU1234567"}}

	assert.True(t, hasViolation(ValidateJob(job), "containers"))

	job.Containers = nil
	assert.Empty(t, ValidateJob(job))
}

func TestValidateJobRollsUpInvoiceProblems(t *testing.T) {
	job := validJob()
	job.Invoices = []models.Invoice{
		{InvoiceNumber: "INV-1", Items: []models.InvoiceItem{{Quantity: 1, DutiableValue: 10}}},
		{InvoiceNumber: "INV-2"},
	}

	violations := ValidateJob(job)
	assert.True(t, hasViolation(violations, "invoices[1].items"))
	assert.False(t, hasViolation(violations, "invoices[0].items"))
}

func TestValidateJobRequiresJobNumber(t *testing.T) {
	job := validJob()
	job.JobNumber = ""
	assert.True(t, hasViolation(ValidateJob(job), "jobNumber"))
}
