package engine

import (
	"encoding/json"
	"fmt"

	"freightdesk/models"
)

// Variant classifies a user-facing notification.
type Variant string

const (
	VariantSuccess     Variant = "success"
	VariantDestructive Variant = "destructive"
)

// Notification is the generic toast payload pushed at the user.
type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Session is one active job form: the entity tree, the open drafts, and the
// derivation state. All mutations on a session happen in a fixed synchronous
// sequence per triggering call; the HTTP layer serializes access.
type Session struct {
	ID  string
	Job *models.JobMaster

	engine        *Engine
	insuranceMode InsuranceMode
	partyLabels   map[int64]string

	containers *Editor[models.Container]
	invoices   *Editor[models.Invoice]
	items      *Editor[models.InvoiceItem]

	// LC/FI details of the first committed invoice, used to pre-populate
	// subsequent invoice drafts. Freely editable afterwards.
	commonDefaults *models.Invoice

	notes []Notification
}

// NewSession opens a session over a fresh draft job. The company id comes
// from explicit configuration, never ambient state.
func NewSession(id string, companyID int64) *Session {
	return newSession(id, models.NewJobMaster(companyID))
}

// NewSessionFor opens an edit-mode session over a job loaded from the
// backend.
func NewSessionFor(id string, job *models.JobMaster) *Session {
	s := newSession(id, job)
	s.Recompute() // loaded data gets a full derivation pass
	return s
}

func newSession(id string, job *models.JobMaster) *Session {
	s := &Session{
		ID:            id,
		Job:           job,
		engine:        NewEngine(),
		insuranceMode: InsuranceCustom,
		partyLabels:   map[int64]string{},
	}
	s.containers = NewEditor(&job.Containers, ValidateContainerDraft, nil)
	s.invoices = NewEditor(&job.Invoices, ValidateInvoiceDraft, s.invoiceCommitted)
	return s
}

func (s *Session) env() Env {
	return Env{
		InsuranceMode: s.insuranceMode,
		Parties: func(id int64) (string, bool) {
			label, ok := s.partyLabels[id]
			return label, ok
		},
	}
}

// Recompute re-runs derivations for the given changed fields; none means
// everything.
func (s *Session) Recompute(changed ...string) {
	s.engine.Recompute(s.Job, s.env(), changed...)
}

// Notify records a toast for the client to drain.
func (s *Session) Notify(title, description string, variant Variant) {
	s.notes = append(s.notes, Notification{Title: title, Description: description, Variant: variant})
}

// DrainNotifications returns and clears the pending toasts.
func (s *Session) DrainNotifications() []Notification {
	n := s.notes
	s.notes = nil
	return n
}

// SetPartyOptions installs the party reference list used to resolve billing
// labels. A failed reference load degrades to an empty list.
func (s *Session) SetPartyOptions(options []models.Option) {
	s.partyLabels = make(map[int64]string, len(options))
	for _, o := range options {
		s.partyLabels[o.Value] = o.Label
	}
	s.Recompute("parties")
}

// InsuranceMode reports the current mode.
func (s *Session) InsuranceMode() InsuranceMode { return s.insuranceMode }

// SetInsuranceMode switches between derived and user-maintained insurance.
// Switching to custom leaves the last derived value in place.
func (s *Session) SetInsuranceMode(mode InsuranceMode) {
	s.insuranceMode = mode
	s.Recompute("insuranceMode")
}

// derivedJobFields are never writable through SetFields.
var derivedJobFields = map[string]struct{}{
	"totalValue":         {},
	"billingPartiesInfo": {},
}

// SetFields merges a JSON-shaped patch into the job header and recomputes
// the derivations triggered by the touched fields. Derived fields are
// dropped from the patch; gross weight is writable only while no containers
// exist.
func (s *Session) SetFields(patch map[string]any) error {
	for field := range derivedJobFields {
		delete(patch, field)
	}
	// Collections change only through their staged editors; a raw patch
	// would skip every per-commit gate.
	delete(patch, "containers")
	delete(patch, "invoices")
	if len(s.Job.Containers) > 0 {
		delete(patch, "grossWeight")
	}
	if s.insuranceMode == InsuranceOnePercent {
		delete(patch, "insurance")
		delete(patch, "insuranceValue")
	}
	if len(patch) == 0 {
		return nil
	}

	freightBefore := s.Job.FreightType
	if err := applyPatch(s.Job, patch); err != nil {
		return err
	}

	changed := make([]string, 0, len(patch))
	for field := range patch {
		changed = append(changed, field)
	}
	s.Recompute(changed...)

	// Freight type defaults the shipping term of the open invoice draft
	// only; committed invoices keep theirs.
	if s.Job.FreightType != freightBefore {
		if draft := s.invoices.Draft(); draft != nil {
			draft.ShippingTerm = DefaultShippingTerm(s.Job.FreightType)
		}
	}
	return nil
}

// applyPatch round-trips the patch through JSON so field names and types
// follow the model's json tags.
func applyPatch(target any, patch map[string]any) error {
	raw, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("invalid field value: %w", err)
	}
	return nil
}

// ---- container drafts ----

func (s *Session) OpenContainerDraft() *models.Container { return s.containers.Add() }

func (s *Session) EditContainer(index int) *models.Container { return s.containers.Edit(index) }

func (s *Session) ContainerDraft() *models.Container { return s.containers.Draft() }

func (s *Session) UpdateContainerDraft(patch map[string]any) error {
	draft := s.containers.Draft()
	if draft == nil {
		return fmt.Errorf("no container draft open")
	}
	return applyPatch(draft, patch)
}

func (s *Session) ConfirmContainer() []Violation {
	violations := s.containers.Confirm()
	if len(violations) > 0 {
		s.Notify("Container not saved", violations[0].String(), VariantDestructive)
		return violations
	}
	s.Recompute("containers")
	s.Notify("Container saved", "", VariantSuccess)
	return nil
}

func (s *Session) CancelContainer() { s.containers.Cancel() }

func (s *Session) DeleteContainer(index int) bool {
	if !s.containers.Delete(index) {
		return false
	}
	s.Recompute("containers")
	return true
}

// ---- invoice drafts ----

// OpenInvoiceDraft opens a new invoice draft seeded with the common LC/FI
// defaults and the shipping term derived from the job's freight type.
func (s *Session) OpenInvoiceDraft() *models.Invoice {
	var seed models.Invoice
	if s.commonDefaults != nil {
		seed.LCNumber = s.commonDefaults.LCNumber
		seed.LCValue = s.commonDefaults.LCValue
		seed.LCDate = s.commonDefaults.LCDate
		seed.LCIssuedByBank = s.commonDefaults.LCIssuedByBank
		seed.LCCurrencyID = s.commonDefaults.LCCurrencyID
		seed.FINumber = s.commonDefaults.FINumber
		seed.FIDate = s.commonDefaults.FIDate
		seed.FIExpiryDate = s.commonDefaults.FIExpiryDate
	}
	seed.ShippingTerm = DefaultShippingTerm(s.Job.FreightType)
	seed.Items = []models.InvoiceItem{}

	draft := s.invoices.AddFrom(seed)
	s.bindItemEditor(draft)
	return draft
}

func (s *Session) EditInvoice(index int) *models.Invoice {
	draft := s.invoices.Edit(index)
	if draft != nil {
		// Detach the item list so edits to the draft cannot bleed into the
		// committed invoice through the shared backing array.
		draft.Items = append([]models.InvoiceItem(nil), draft.Items...)
		s.bindItemEditor(draft)
	}
	return draft
}

func (s *Session) bindItemEditor(draft *models.Invoice) {
	s.items = NewEditor(&draft.Items, ValidateItemDraft, nil)
}

func (s *Session) InvoiceDraft() *models.Invoice { return s.invoices.Draft() }

func (s *Session) UpdateInvoiceDraft(patch map[string]any) error {
	draft := s.invoices.Draft()
	if draft == nil {
		return fmt.Errorf("no invoice draft open")
	}
	delete(patch, "items") // items go through their own editor
	if err := applyPatch(draft, patch); err != nil {
		return err
	}
	if v := ReconcileLC(draft); v != nil {
		s.Notify("LC mismatch", v.Message, VariantDestructive)
	}
	return nil
}

func (s *Session) ConfirmInvoice() []Violation {
	violations := s.invoices.Confirm()
	if len(violations) > 0 {
		s.Notify("Invoice not saved", violations[0].String(), VariantDestructive)
		return violations
	}
	s.items = nil
	s.Recompute("invoices")
	s.Notify("Invoice saved", "", VariantSuccess)
	return nil
}

func (s *Session) invoiceCommitted(inv *models.Invoice, added bool) {
	if added && s.commonDefaults == nil {
		captured := *inv
		captured.Items = nil
		s.commonDefaults = &captured
	}
}

func (s *Session) CancelInvoice() {
	s.invoices.Cancel()
	s.items = nil
}

func (s *Session) DeleteInvoice(index int) bool {
	if !s.invoices.Delete(index) {
		return false
	}
	// Deleting the invoice under edit discards its draft; the item editor
	// must not outlive the invoice it was bound to.
	if s.invoices.Draft() == nil {
		s.items = nil
	}
	s.Recompute("invoices")
	return true
}

// ---- item drafts (inside the open invoice draft) ----

func (s *Session) OpenItemDraft() (*models.InvoiceItem, error) {
	if s.items == nil {
		return nil, fmt.Errorf("no invoice draft open")
	}
	return s.items.Add(), nil
}

func (s *Session) EditItem(index int) (*models.InvoiceItem, error) {
	if s.items == nil {
		return nil, fmt.Errorf("no invoice draft open")
	}
	draft := s.items.Edit(index)
	if draft == nil {
		return nil, fmt.Errorf("item index out of range")
	}
	return draft, nil
}

func (s *Session) ItemDraft() *models.InvoiceItem {
	if s.items == nil {
		return nil
	}
	return s.items.Draft()
}

// UpdateItemDraft merges a patch into the item draft and recomputes the
// line total. The total itself is never user-settable.
func (s *Session) UpdateItemDraft(patch map[string]any) error {
	if s.items == nil {
		return fmt.Errorf("no invoice draft open")
	}
	draft := s.items.Draft()
	if draft == nil {
		return fmt.Errorf("no item draft open")
	}
	delete(patch, "totalValue")
	if err := applyPatch(draft, patch); err != nil {
		return err
	}
	draft.TotalValue = ItemTotal(draft.Quantity, draft.DutiableValue)
	return nil
}

func (s *Session) ConfirmItem() []Violation {
	if s.items == nil {
		return []Violation{{Field: "", Message: "no invoice draft open"}}
	}
	if draft := s.items.Draft(); draft != nil {
		draft.TotalValue = ItemTotal(draft.Quantity, draft.DutiableValue)
	}
	violations := s.items.Confirm()
	if len(violations) > 0 {
		s.Notify("Item not saved", violations[0].String(), VariantDestructive)
		return violations
	}
	// Standing LC warning re-runs live as the item list changes.
	if draft := s.invoices.Draft(); draft != nil {
		if v := ReconcileLC(draft); v != nil {
			s.Notify("LC mismatch", v.Message, VariantDestructive)
		}
	}
	return nil
}

func (s *Session) CancelItem() {
	if s.items != nil {
		s.items.Cancel()
	}
}

func (s *Session) DeleteItem(index int) bool {
	if s.items == nil {
		return false
	}
	if !s.items.Delete(index) {
		return false
	}
	if draft := s.invoices.Draft(); draft != nil {
		if v := ReconcileLC(draft); v != nil {
			s.Notify("LC mismatch", v.Message, VariantDestructive)
		}
	}
	return true
}

// ---- submit ----

// Submit validates the whole tree and returns the wire record to persist.
// On violations the draft is left untouched for correction; the caller
// performs the actual write and feeds the canonical result back via
// Replace.
func (s *Session) Submit() (*models.WireJob, []Violation) {
	if violations := ValidateJob(s.Job); len(violations) > 0 {
		s.Notify("Job not submitted", fmt.Sprintf("%d validation problem(s)", len(violations)), VariantDestructive)
		return nil, violations
	}
	return models.ToWire(s.Job), nil
}

// Replace swaps in the canonical record the backend returned after a
// successful submit.
func (s *Session) Replace(job *models.JobMaster) {
	s.Job = job
	s.containers = NewEditor(&job.Containers, ValidateContainerDraft, nil)
	s.invoices = NewEditor(&job.Invoices, ValidateInvoiceDraft, s.invoiceCommitted)
	s.items = nil
	s.Recompute()
}
