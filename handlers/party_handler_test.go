package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdesk/engine"
	"freightdesk/models"
)

type fakePartyRepo struct {
	created []*models.Party
}

func (f *fakePartyRepo) CreateParty(p *models.Party) error {
	p.ID = int64(len(f.created) + 1)
	f.created = append(f.created, p)
	return nil
}

func (f *fakePartyRepo) GetParties(filters map[string]interface{}, single bool) ([]*models.Party, error) {
	return f.created, nil
}

func wizardPost(t *testing.T, h *PartyHandler, trail string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, "/parties/wizard/"+trail, &buf)
	rec := httptest.NewRecorder()
	h.RouteWizard(rec, req, trail)
	return rec
}

func TestWizardFullFlowOverHTTP(t *testing.T) {
	repo := &fakePartyRepo{}
	h := &PartyHandler{Store: engine.NewStore(), Repo: repo}

	rec := httptest.NewRecorder()
	h.OpenWizard(rec, httptest.NewRequest(http.MethodPost, "/parties/wizard", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp wizardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	id := resp.WizardID
	require.NotEmpty(t, id)
	assert.Equal(t, "basic", resp.Step)

	// Advancing an empty draft is blocked.
	rec = wizardPost(t, h, id+"/next", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = wizardPost(t, h, id+"/update", map[string]any{"name": "Acme Exports", "partyType": "customer"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = wizardPost(t, h, id+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = wizardPost(t, h, id+"/address", map[string]any{"addressLine": "12 Dock Rd", "city": "Karachi"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = wizardPost(t, h, id+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Contacts and banking are optional.
	rec = wizardPost(t, h, id+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = wizardPost(t, h, id+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = wizardPost(t, h, id+"/complete", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "active", repo.created[0].Status)

	// The wizard is gone once completed.
	_, err := h.Store.GetWizard(id)
	assert.Error(t, err)
}

func TestWizardGotoOverHTTP(t *testing.T) {
	repo := &fakePartyRepo{}
	h := &PartyHandler{Store: engine.NewStore(), Repo: repo}

	wiz := h.Store.OpenWizard()
	id := wiz.ID

	rec := wizardPost(t, h, id+"/update", map[string]any{"name": "Acme Exports", "partyType": "customer"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = wizardPost(t, h, id+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Jumping forward past uncompleted steps is rejected.
	rec = wizardPost(t, h, id+"/goto", map[string]any{"step": "banking"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = wizardPost(t, h, id+"/goto", map[string]any{"step": "no-such-step"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Jumping back is always allowed.
	rec = wizardPost(t, h, id+"/goto", map[string]any{"step": "basic"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp wizardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "basic", resp.Step)
}

func TestWizardCompleteBlockedEarly(t *testing.T) {
	repo := &fakePartyRepo{}
	h := &PartyHandler{Store: engine.NewStore(), Repo: repo}

	wiz := h.Store.OpenWizard()
	rec := wizardPost(t, h, wiz.ID+"/complete", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, repo.created)
}
