package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"freightdesk/models"
)

// Store holds the active form sessions. Each session is single-writer; the
// store only serializes lookup and lifecycle across HTTP requests.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	wizards  map[string]*PartyWizard
}

func NewStore() *Store {
	return &Store{
		sessions: map[string]*Session{},
		wizards:  map[string]*PartyWizard{},
	}
}

// Open creates a session over a fresh draft job.
func (st *Store) Open(companyID int64) *Session {
	s := NewSession(uuid.NewString(), companyID)
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// OpenFor creates an edit-mode session over a loaded job.
func (st *Store) OpenFor(job *models.JobMaster) *Session {
	s := NewSessionFor(uuid.NewString(), job)
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return s, nil
}

// Close discards a session. Navigating away drops the draft.
func (st *Store) Close(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// OpenWizard starts a party onboarding wizard.
func (st *Store) OpenWizard() *PartyWizard {
	w := NewPartyWizard(uuid.NewString())
	st.mu.Lock()
	st.wizards[w.ID] = w
	st.mu.Unlock()
	return w
}

func (st *Store) GetWizard(id string) (*PartyWizard, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	w, ok := st.wizards[id]
	if !ok {
		return nil, fmt.Errorf("wizard %s not found", id)
	}
	return w, nil
}

func (st *Store) CloseWizard(id string) {
	st.mu.Lock()
	delete(st.wizards, id)
	st.mu.Unlock()
}
