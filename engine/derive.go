package engine

import (
	"fmt"

	"freightdesk/models"
)

// InsuranceMode selects how the job's insurance value is maintained.
type InsuranceMode string

const (
	InsuranceOnePercent InsuranceMode = "1percent"
	InsuranceCustom     InsuranceMode = "custom"
)

// PartyResolver resolves a party id to its display label against the
// reference list. A failed lookup reports ok=false, never an error.
type PartyResolver func(id int64) (string, bool)

// Env carries the non-entity inputs the derivation rules read.
type Env struct {
	InsuranceMode InsuranceMode
	Parties       PartyResolver
}

// fieldSet is the set of field names touched by the triggering mutation.
type fieldSet map[string]struct{}

func newFieldSet(fields []string) fieldSet {
	s := make(fieldSet, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

func (s fieldSet) hasAny(fields ...string) bool {
	if len(s) == 0 {
		return true // empty change set means "recompute everything"
	}
	for _, f := range fields {
		if _, ok := s[f]; ok {
			return true
		}
	}
	return false
}

// Rule is one derivation. Apply reads the pre-mutation snapshot and writes
// its outputs to out, so rules never observe each other's results within a
// single recompute pass.
type Rule struct {
	Name     string
	Triggers []string
	Apply    func(snap *models.JobMaster, out *models.JobMaster, env Env, changed fieldSet)
}

// Engine recomputes derived job fields. Rules are idempotent and evaluated
// independently off a snapshot; there is no rule chaining.
type Engine struct {
	rules []Rule
}

func NewEngine() *Engine {
	return &Engine{rules: []Rule{
		{
			Name:     "gross_weight",
			Triggers: []string{"containers"},
			Apply: func(snap, out *models.JobMaster, env Env, changed fieldSet) {
				if len(snap.Containers) == 0 {
					// Weight becomes user-editable again once the last
					// container is gone; zero it only on a container change.
					if _, ok := changed["containers"]; ok {
						out.GrossWeight = 0
					}
					return
				}
				var sum float64
				for _, c := range snap.Containers {
					sum += c.Weight
				}
				out.GrossWeight = round4(sum)
			},
		},
		{
			Name:     "insurance",
			Triggers: []string{"invoices", "insuranceMode"},
			Apply: func(snap, out *models.JobMaster, env Env, changed fieldSet) {
				if env.InsuranceMode != InsuranceOnePercent {
					return // custom mode: left to the user
				}
				var sum float64
				for _, inv := range snap.Invoices {
					for _, it := range inv.Items {
						sum += it.AssessableValue
					}
				}
				out.InsuranceValue = round2(0.01 * sum)
				out.Insurance = "1%"
			},
		},
		{
			Name:     "billing_parties",
			Triggers: []string{"shipperPartyId", "consigneePartyId", "parties"},
			Apply: func(snap, out *models.JobMaster, env Env, changed fieldSet) {
				out.BillingPartiesInfo = ""
				if snap.ShipperPartyID == nil || snap.ConsigneePartyID == nil || env.Parties == nil {
					return
				}
				shipper, ok1 := env.Parties(*snap.ShipperPartyID)
				consignee, ok2 := env.Parties(*snap.ConsigneePartyID)
				if ok1 && ok2 {
					out.BillingPartiesInfo = fmt.Sprintf("Shipper: %s | Consignee: %s", shipper, consignee)
				}
			},
		},
	}}
}

// Recompute applies every rule whose trigger set intersects the changed
// fields. An empty changed list re-runs all rules. Each rule reads a
// snapshot taken before any rule wrote, which keeps the pass cycle-free.
func (e *Engine) Recompute(job *models.JobMaster, env Env, changed ...string) {
	set := newFieldSet(changed)
	snap := *job
	for _, rule := range e.rules {
		if set.hasAny(rule.Triggers...) {
			rule.Apply(&snap, job, env, set)
		}
	}
}

// DefaultShippingTerm maps the job's freight type to the shipping term that
// pre-populates a newly opened invoice draft. Committed invoices are never
// rewritten retroactively.
func DefaultShippingTerm(freightType string) string {
	switch freightType {
	case models.FreightCollect:
		return "FOB"
	case models.FreightPrepaid:
		return "DDP"
	default:
		return ""
	}
}

// ItemTotal is the line total for an invoice item draft. The dutiable value
// is the multiplicand; it has to agree with the LC reconciliation check.
func ItemTotal(quantity, dutiableValue float64) float64 {
	return mul2(quantity, dutiableValue)
}
