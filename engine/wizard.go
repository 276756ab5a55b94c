package engine

import (
	"fmt"
	"strings"

	"freightdesk/models"
)

// WizardStep is one page of the party onboarding form.
type WizardStep int

const (
	StepBasic WizardStep = iota
	StepAddresses
	StepContacts
	StepBanking
	StepReview
)

var stepNames = map[WizardStep]string{
	StepBasic:     "basic",
	StepAddresses: "addresses",
	StepContacts:  "contacts",
	StepBanking:   "banking",
	StepReview:    "review",
}

func (s WizardStep) String() string { return stepNames[s] }

// StepByName resolves a step from its wire name.
func StepByName(name string) (WizardStep, bool) {
	for s, n := range stepNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// PartyWizard walks a party draft through the onboarding steps. Advancing
// is gated on the current step validating; going back is always allowed;
// jumping forward is allowed only onto steps already completed.
type PartyWizard struct {
	ID        string
	Draft     *models.Party
	step      WizardStep
	completed map[WizardStep]bool
}

func NewPartyWizard(id string) *PartyWizard {
	return &PartyWizard{
		ID: id,
		Draft: &models.Party{
			Status:    "draft",
			Addresses: []models.PartyAddress{},
			Contacts:  []models.PartyContact{},
		},
		step:      StepBasic,
		completed: map[WizardStep]bool{},
	}
}

func (w *PartyWizard) Step() WizardStep { return w.step }

func (w *PartyWizard) Completed(step WizardStep) bool { return w.completed[step] }

// Update merges a patch into the party draft.
func (w *PartyWizard) Update(patch map[string]any) error {
	return applyPatch(w.Draft, patch)
}

// AddAddress and AddContact append committed rows to the draft's lists.
func (w *PartyWizard) AddAddress(addr models.PartyAddress) {
	w.Draft.Addresses = append(w.Draft.Addresses, addr)
}

func (w *PartyWizard) AddContact(c models.PartyContact) {
	w.Draft.Contacts = append(w.Draft.Contacts, c)
}

func (w *PartyWizard) RemoveAddress(index int) bool {
	if index < 0 || index >= len(w.Draft.Addresses) {
		return false
	}
	w.Draft.Addresses = append(w.Draft.Addresses[:index], w.Draft.Addresses[index+1:]...)
	return true
}

func (w *PartyWizard) RemoveContact(index int) bool {
	if index < 0 || index >= len(w.Draft.Contacts) {
		return false
	}
	w.Draft.Contacts = append(w.Draft.Contacts[:index], w.Draft.Contacts[index+1:]...)
	return true
}

// ValidateStep checks only the fields the given step owns.
func (w *PartyWizard) ValidateStep(step WizardStep) []Violation {
	var violations []Violation
	p := w.Draft

	switch step {
	case StepBasic:
		if strings.TrimSpace(p.Name) == "" {
			violations = append(violations, Violation{Field: "name", Message: "is required"})
		}
		switch p.PartyType {
		case "customer", "vendor", "both":
		default:
			violations = append(violations, Violation{Field: "partyType", Message: "must be customer, vendor or both"})
		}
	case StepAddresses:
		if len(p.Addresses) == 0 {
			violations = append(violations, Violation{Field: "addresses", Message: "at least one address is required"})
		}
		for i, a := range p.Addresses {
			if strings.TrimSpace(a.AddressLine) == "" {
				violations = append(violations, Violation{
					Field:   fmt.Sprintf("addresses[%d].addressLine", i),
					Message: "is required",
				})
			}
		}
	case StepContacts:
		for i, c := range p.Contacts {
			if strings.TrimSpace(c.Name) == "" {
				violations = append(violations, Violation{
					Field:   fmt.Sprintf("contacts[%d].name", i),
					Message: "is required",
				})
			}
		}
	case StepBanking:
		// Banking details are optional but must come as a set.
		if p.BankAccountNo != "" && strings.TrimSpace(p.BankName) == "" {
			violations = append(violations, Violation{Field: "bankName", Message: "is required with an account number"})
		}
	case StepReview:
		for s := StepBasic; s < StepReview; s++ {
			violations = append(violations, w.ValidateStep(s)...)
		}
	}
	return violations
}

// Next advances to the following step if the current one validates.
func (w *PartyWizard) Next() []Violation {
	if violations := w.ValidateStep(w.step); len(violations) > 0 {
		return violations
	}
	w.completed[w.step] = true
	if w.step < StepReview {
		w.step++
	}
	return nil
}

// Back always succeeds.
func (w *PartyWizard) Back() {
	if w.step > StepBasic {
		w.step--
	}
}

// Goto jumps to a step. Forward jumps land only on completed steps.
func (w *PartyWizard) Goto(step WizardStep) error {
	if step < StepBasic || step > StepReview {
		return fmt.Errorf("unknown step")
	}
	if step > w.step && !w.completed[step] {
		return fmt.Errorf("step %s not reached yet", step)
	}
	w.step = step
	return nil
}

// Complete finalizes the wizard and returns the party for persistence.
func (w *PartyWizard) Complete() (*models.Party, []Violation) {
	if violations := w.ValidateStep(StepReview); len(violations) > 0 {
		return nil, violations
	}
	w.Draft.Status = "active"
	return w.Draft, nil
}
