package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdesk/models"
)

func newTestSession() *Session {
	return NewSession("test-session", 1)
}

func TestSetFieldsAppliesPatch(t *testing.T) {
	s := newTestSession()
	err := s.SetFields(map[string]any{
		"jobNumber":     "JOB-2026-001",
		"operationMode": "SEA",
		"exchangeRate":  278.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "JOB-2026-001", s.Job.JobNumber)
	assert.Equal(t, "SEA", s.Job.OperationMode)
	assert.Equal(t, 278.5, s.Job.ExchangeRate)
}

func TestSetFieldsDropsDerivedFields(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.SetFields(map[string]any{
		"billingPartiesInfo": "forged",
	}))
	assert.Equal(t, "", s.Job.BillingPartiesInfo)
}

func TestSetFieldsGrossWeightWritableOnlyWithoutContainers(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.SetFields(map[string]any{"grossWeight": 750.0}))
	assert.Equal(t, 750.0, s.Job.GrossWeight)

	s.OpenContainerDraft().ContainerNo = "MSKU1234567"
	s.ContainerDraft().Weight = 1200
	require.Empty(t, s.ConfirmContainer())
	assert.Equal(t, 1200.0, s.Job.GrossWeight)

	// With containers present the field is read-only.
	require.NoError(t, s.SetFields(map[string]any{"grossWeight": 1.0}))
	assert.Equal(t, 1200.0, s.Job.GrossWeight)
}

func TestSetFieldsRejectsWrongType(t *testing.T) {
	s := newTestSession()
	err := s.SetFields(map[string]any{"exchangeRate": "not a number"})
	assert.Error(t, err)
}

func TestContainerDeleteRecomputesWeight(t *testing.T) {
	s := newTestSession()
	for _, w := range []float64{100, 200} {
		d := s.OpenContainerDraft()
		d.ContainerNo = "MSKU1234567"
		d.Weight = w
		require.Empty(t, s.ConfirmContainer())
	}
	assert.Equal(t, 300.0, s.Job.GrossWeight)

	require.True(t, s.DeleteContainer(0))
	assert.Equal(t, 200.0, s.Job.GrossWeight)

	require.True(t, s.DeleteContainer(0))
	assert.Equal(t, 0.0, s.Job.GrossWeight, "last container gone resets the total")
}

func TestInvoiceCommonDefaultsSeedLaterDrafts(t *testing.T) {
	s := newTestSession()

	first := s.OpenInvoiceDraft()
	first.InvoiceNumber = "INV-1"
	first.LCNumber = "LC-778"
	first.LCValue = 10
	first.FINumber = "FI-12"

	item, err := s.OpenItemDraft()
	require.NoError(t, err)
	item.Quantity = 1
	item.DutiableValue = 10
	require.Empty(t, s.ConfirmItem())
	require.Empty(t, s.ConfirmInvoice())

	second := s.OpenInvoiceDraft()
	assert.Equal(t, "LC-778", second.LCNumber)
	assert.Equal(t, 10.0, second.LCValue)
	assert.Equal(t, "FI-12", second.FINumber)
	assert.Equal(t, "", second.InvoiceNumber, "identity fields never carry over")
	assert.Empty(t, second.Items, "items never carry over")
}

func TestFreightTypeDefaultsOpenDraftShippingTerm(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.SetFields(map[string]any{"freightType": "COLLECT"}))

	draft := s.OpenInvoiceDraft()
	assert.Equal(t, "FOB", draft.ShippingTerm)

	// Switching freight type rewrites the open draft only.
	require.NoError(t, s.SetFields(map[string]any{"freightType": "PREPAID"}))
	assert.Equal(t, "DDP", draft.ShippingTerm)

	draft.InvoiceNumber = "INV-1"
	item, err := s.OpenItemDraft()
	require.NoError(t, err)
	item.Quantity = 1
	item.DutiableValue = 5
	require.Empty(t, s.ConfirmItem())
	require.Empty(t, s.ConfirmInvoice())

	require.NoError(t, s.SetFields(map[string]any{"freightType": "COLLECT"}))
	assert.Equal(t, "DDP", s.Job.Invoices[0].ShippingTerm, "committed invoices keep their term")
}

func TestItemTotalDerivedOnUpdate(t *testing.T) {
	s := newTestSession()
	s.OpenInvoiceDraft()

	_, err := s.OpenItemDraft()
	require.NoError(t, err)

	require.NoError(t, s.UpdateItemDraft(map[string]any{
		"quantity":      3.0,
		"dutiableValue": 2.5,
		"totalValue":    999.0, // must be ignored
	}))
	assert.Equal(t, 7.5, s.ItemDraft().TotalValue)
}

func TestEditInvoiceDetachesItems(t *testing.T) {
	s := newTestSession()

	inv := s.OpenInvoiceDraft()
	inv.InvoiceNumber = "INV-1"
	item, err := s.OpenItemDraft()
	require.NoError(t, err)
	item.Quantity = 2
	item.DutiableValue = 10
	require.Empty(t, s.ConfirmItem())
	require.Empty(t, s.ConfirmInvoice())

	draft := s.EditInvoice(0)
	require.NotNil(t, draft)
	edited, err := s.EditItem(0)
	require.NoError(t, err)
	edited.DutiableValue = 999

	// Abandon the edit: the committed invoice must be unchanged.
	s.CancelInvoice()
	assert.Equal(t, 10.0, s.Job.Invoices[0].Items[0].DutiableValue)
}

func TestDeleteInvoiceUnderEditUnbindsItemEditor(t *testing.T) {
	s := newTestSession()
	inv := s.OpenInvoiceDraft()
	inv.InvoiceNumber = "INV-1"
	item, err := s.OpenItemDraft()
	require.NoError(t, err)
	item.Quantity = 1
	item.DutiableValue = 10
	require.Empty(t, s.ConfirmItem())
	require.Empty(t, s.ConfirmInvoice())

	s.EditInvoice(0)
	require.True(t, s.DeleteInvoice(0))

	assert.Nil(t, s.InvoiceDraft())
	assert.Nil(t, s.ItemDraft())
	_, err = s.OpenItemDraft()
	assert.Error(t, err, "item editor must not outlive the deleted invoice")
}

func TestDeleteOtherInvoiceKeepsItemEditor(t *testing.T) {
	s := newTestSession()
	for _, n := range []string{"INV-1", "INV-2"} {
		inv := s.OpenInvoiceDraft()
		inv.InvoiceNumber = n
		item, err := s.OpenItemDraft()
		require.NoError(t, err)
		item.Quantity = 1
		item.DutiableValue = 10
		require.Empty(t, s.ConfirmItem())
		require.Empty(t, s.ConfirmInvoice())
	}

	s.EditInvoice(1)
	require.True(t, s.DeleteInvoice(0))

	require.NotNil(t, s.InvoiceDraft())
	_, err := s.OpenItemDraft()
	assert.NoError(t, err)
}

func TestSetFieldsCannotReplaceCollections(t *testing.T) {
	s := newTestSession()
	d := s.OpenContainerDraft()
	d.ContainerNo = "MSKU1234567"
	d.Weight = 500
	require.Empty(t, s.ConfirmContainer())

	require.NoError(t, s.SetFields(map[string]any{
		"invoices":   []map[string]any{{"invoiceNumber": "INV-X", "items": []any{}}},
		"containers": []any{},
		"remarks":    "kept",
	}))

	assert.Empty(t, s.Job.Invoices, "invoices change only through their editor")
	require.Len(t, s.Job.Containers, 1, "containers change only through their editor")
	assert.Equal(t, 500.0, s.Job.GrossWeight)
	assert.Equal(t, "kept", s.Job.Remarks)
}

func TestItemDraftRequiresOpenInvoice(t *testing.T) {
	s := newTestSession()
	_, err := s.OpenItemDraft()
	assert.Error(t, err)
}

func TestLCMismatchRaisesStandingWarning(t *testing.T) {
	s := newTestSession()
	inv := s.OpenInvoiceDraft()
	inv.InvoiceNumber = "INV-1"
	inv.LCValue = 100

	item, err := s.OpenItemDraft()
	require.NoError(t, err)
	item.Quantity = 1
	item.DutiableValue = 40
	require.Empty(t, s.ConfirmItem())

	var found bool
	for _, n := range s.DrainNotifications() {
		if n.Title == "LC mismatch" {
			found = true
		}
	}
	assert.True(t, found)

	// A confirm with reconciling items raises nothing.
	item2, err := s.OpenItemDraft()
	require.NoError(t, err)
	item2.Quantity = 1
	item2.DutiableValue = 60
	require.Empty(t, s.ConfirmItem())
	for _, n := range s.DrainNotifications() {
		assert.NotEqual(t, "LC mismatch", n.Title)
	}
}

func TestInsuranceModeSwitch(t *testing.T) {
	s := newTestSession()
	inv := s.OpenInvoiceDraft()
	inv.InvoiceNumber = "INV-1"
	item, err := s.OpenItemDraft()
	require.NoError(t, err)
	item.Quantity = 1
	item.DutiableValue = 2000
	require.NoError(t, s.UpdateItemDraft(map[string]any{"assessableValue": 2000.0}))
	require.Empty(t, s.ConfirmItem())
	require.Empty(t, s.ConfirmInvoice())

	s.SetInsuranceMode(InsuranceOnePercent)
	assert.Equal(t, 20.0, s.Job.InsuranceValue)
	assert.Equal(t, "1%", s.Job.Insurance)

	// Manual writes are blocked while derived.
	require.NoError(t, s.SetFields(map[string]any{"insuranceValue": 5.0}))
	assert.Equal(t, 20.0, s.Job.InsuranceValue)

	// Switching back to custom keeps the derived value but frees the field.
	s.SetInsuranceMode(InsuranceCustom)
	assert.Equal(t, 20.0, s.Job.InsuranceValue)
	require.NoError(t, s.SetFields(map[string]any{"insuranceValue": 5.0}))
	assert.Equal(t, 5.0, s.Job.InsuranceValue)
}

func TestSubmitBlocksOnViolations(t *testing.T) {
	s := newTestSession()
	wire, violations := s.Submit()
	assert.Nil(t, wire)
	assert.NotEmpty(t, violations)
}

func TestSubmitReturnsWireRecord(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.SetFields(map[string]any{
		"jobNumber":       "JOB-2026-001",
		"operationType":   "IMPORT",
		"operationMode":   "AIR",
		"jobDocumentType": "Master",
	}))
	require.NoError(t, s.SetFields(map[string]any{"masterDocumentNumber": "MAWB-176-1234"}))

	wire, violations := s.Submit()
	require.Empty(t, violations)
	require.NotNil(t, wire)
	assert.Equal(t, "JOB-2026-001", wire.JobNumber)
	assert.Equal(t, "MAWB-176-1234", wire.MasterDocumentNumber)
}

func TestReplaceDropsDraftsAndRecomputes(t *testing.T) {
	s := newTestSession()
	s.OpenContainerDraft()

	job := models.NewJobMaster(1)
	job.JobNumber = "JOB-2026-002"
	job.Containers = []models.Container{{ContainerNo: "MSKU1234567", Weight: 800}}
	s.Replace(job)

	assert.Nil(t, s.ContainerDraft())
	assert.Equal(t, 800.0, s.Job.GrossWeight)
}

func TestPartyOptionsDriveBillingInfo(t *testing.T) {
	s := newTestSession()
	shipper, consignee := int64(1), int64(2)
	require.NoError(t, s.SetFields(map[string]any{"shipperPartyId": shipper, "consigneePartyId": consignee}))
	assert.Equal(t, "", s.Job.BillingPartiesInfo, "no reference list loaded yet")

	s.SetPartyOptions([]models.Option{
		{Value: 1, Label: "Acme Exports"},
		{Value: 2, Label: "Globex Imports"},
	})
	assert.Equal(t, "Shipper: Acme Exports | Consignee: Globex Imports", s.Job.BillingPartiesInfo)
}

func TestStoreLifecycle(t *testing.T) {
	st := NewStore()
	s := st.Open(1)
	require.NotEmpty(t, s.ID)

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	st.Close(s.ID)
	_, err = st.Get(s.ID)
	assert.Error(t, err)
}
