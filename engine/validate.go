package engine

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"freightdesk/models"
)

// Violation is one user-correctable problem with a draft. These are values,
// not errors: they block a single commit and are surfaced for correction.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Field + ": " + v.Message
}

// lcTolerance is the allowed gap between an invoice's LC value and the sum
// of its line totals.
const lcTolerance = 0.01

var fieldValidator = validator.New(validator.WithRequiredStructEnabled())

// checkStruct runs tag-level required/format validation and translates the
// result into violations.
func checkStruct(v any) []Violation {
	err := fieldValidator.Struct(v)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Violation{{Field: "", Message: err.Error()}}
	}
	out := make([]Violation, 0, len(errs))
	for _, fe := range errs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		msg := "is required"
		if fe.Tag() != "required" {
			msg = "failed " + fe.Tag() + " check"
		}
		out = append(out, Violation{Field: field, Message: msg})
	}
	return out
}

// ValidateContainerDraft gates a container draft before commit.
func ValidateContainerDraft(c *models.Container) []Violation {
	return checkStruct(c)
}

// ValidateItemDraft gates an invoice item draft. Quantity must be strictly
// positive before the item may join the list.
func ValidateItemDraft(it *models.InvoiceItem) []Violation {
	violations := checkStruct(it)
	if it.Quantity <= 0 {
		violations = append(violations, Violation{
			Field:   "quantity",
			Message: "quantity must be greater than zero",
		})
	}
	return violations
}

// ReconcileLC compares the invoice's LC value with the sum of its line
// totals. Returns nil when they agree within tolerance or no LC value is
// set. Runs live as items change so the UI can show a standing warning.
func ReconcileLC(inv *models.Invoice) *Violation {
	if inv.LCValue <= 0 {
		return nil
	}
	var totalDv float64
	for _, it := range inv.Items {
		totalDv += mul2(it.Quantity, it.DutiableValue)
	}
	totalDv = round2(totalDv)
	if withinTolerance(inv.LCValue, totalDv, lcTolerance) {
		return nil
	}
	return &Violation{
		Field: "lcValue",
		Message: fmt.Sprintf("LC value %.2f does not match item total %.2f (difference %.2f)",
			inv.LCValue, totalDv, diff2(inv.LCValue, totalDv)),
	}
}

// ValidateInvoiceDraft gates an invoice draft before it is committed to the
// job. An invoice needs at least one item, and its LC value must reconcile.
func ValidateInvoiceDraft(inv *models.Invoice) []Violation {
	violations := checkStruct(inv)
	if len(inv.Items) == 0 {
		violations = append(violations, Violation{
			Field:   "items",
			Message: "invoice must contain at least one item",
		})
	}
	if v := ReconcileLC(inv); v != nil {
		violations = append(violations, *v)
	}
	return violations
}

// ValidateJob runs the submit-time checks over the whole tree. Requiredness
// of the conditional fields is evaluated against the current value of the
// controlling field, not a fixed schema.
func ValidateJob(job *models.JobMaster) []Violation {
	violations := checkStruct(job)

	for _, ref := range requiredFields(job) {
		if strings.TrimSpace(ref.value) == "" {
			violations = append(violations, Violation{Field: ref.field, Message: "is required"})
		}
	}

	if job.JobSubType != models.SubTypeFCL && len(job.Containers) > 0 {
		violations = append(violations, Violation{
			Field:   "containers",
			Message: "containers apply only to FCL jobs",
		})
	}

	for i := range job.Invoices {
		for _, v := range ValidateInvoiceDraft(&job.Invoices[i]) {
			violations = append(violations, Violation{
				Field:   fmt.Sprintf("invoices[%d].%s", i, v.Field),
				Message: v.Message,
			})
		}
	}

	return violations
}

type fieldRef struct {
	field string
	value string
}

// requiredFields builds the conditional requirement list for the job's
// current controlling values. Shipping type and load are irrelevant for air
// jobs; the house document number only exists on house documents.
func requiredFields(job *models.JobMaster) []fieldRef {
	refs := []fieldRef{
		{"operationType", job.OperationType},
		{"operationMode", job.OperationMode},
		{"jobDocumentType", job.JobDocumentType},
	}

	if job.OperationMode != models.ModeAir {
		if job.JobSubType == models.SubTypeFCL {
			refs = append(refs,
				fieldRef{"shippingType", job.ShippingType},
				fieldRef{"jobLoadType", job.JobLoadType},
			)
		}
	}

	switch job.JobDocumentType {
	case models.DocTypeHouse:
		refs = append(refs, fieldRef{"houseDocumentNumber", job.HouseDocumentNumber})
	case models.DocTypeMaster:
		refs = append(refs, fieldRef{"masterDocumentNumber", job.MasterDocumentNumber})
	}

	return refs
}
