// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Election is the state of one running election.
type Election struct {
	ID        string
	Prompt    string
	StartedBy string
	StartedAt time.Time

	phase     Phase
	proposals *Registry
	ledger    *Ledger
}

// Result is the final tally of a concluded election.
type Result struct {
	ElectionID  string       `json:"election_id"`
	Prompt      string       `json:"prompt"`
	ConcludedAt time.Time    `json:"concluded_at"`
	Voters      int          `json:"voters"`
	Tally       []TallyEntry `json:"tally"`
}

// Status is a read-only summary of a machine.
type Status struct {
	Phase      Phase     `json:"phase"`
	ElectionID string    `json:"election_id,omitempty"`
	Prompt     string    `json:"prompt,omitempty"`
	StartedBy  string    `json:"started_by,omitempty"`
	StartedAt  time.Time `json:"started_at,omitzero"`
	Proposals  int       `json:"proposals"`
	Voters     int       `json:"voters"`
	MaxCredits int       `json:"max_credits"`
	VoteLimit  int       `json:"vote_limit"`
}

// Machine runs the election lifecycle for one community:
// Idle -> Proposing -> Voting -> Idle.
//
// A single RWMutex guards the whole election, so every command observes
// the registry and ledger together. Failed commands change nothing.
type Machine struct {
	mu      sync.RWMutex
	cfg     LedgerConfig
	current *Election
	final   *Result
	now     func() time.Time
}

func NewMachine(cfg LedgerConfig) *Machine {
	return &Machine{cfg: cfg.withDefaults(), now: time.Now}
}

func (m *Machine) Config() LedgerConfig {
	return m.cfg
}

func (m *Machine) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phaseLocked()
}

func (m *Machine) phaseLocked() Phase {
	if m.current == nil {
		return Idle
	}
	return m.current.phase
}

// Start opens a new election in the proposing phase. The previous result
// stays available from LastResult until the new election concludes.
func (m *Machine) Start(actor, prompt string) (Started, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return Started{}, ErrAlreadyActive
	}

	registry := NewRegistry()
	e := &Election{
		ID:        uuid.NewString(),
		Prompt:    strings.TrimSpace(prompt),
		StartedBy: actor,
		StartedAt: m.now(),
		phase:     Proposing,
		proposals: registry,
		ledger:    NewLedger(m.cfg, registry),
	}
	m.current = e

	return Started{ElectionID: e.ID, Prompt: e.Prompt}, nil
}

// Stop advances the current phase: Proposing moves to Voting and freezes
// the proposals, Voting concludes the election and returns the final tally.
func (m *Machine) Stop(actor string) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.current
	if e == nil {
		return nil, &PhaseError{Op: "stop", Phase: Idle}
	}

	switch e.phase {
	case Proposing:
		e.proposals.Freeze()
		e.phase = Voting
		return MovedToVoting{Proposals: e.proposals.List()}, nil

	case Voting:
		result := &Result{
			ElectionID:  e.ID,
			Prompt:      e.Prompt,
			ConcludedAt: m.now(),
			Voters:      e.ledger.Voters(),
			Tally:       e.ledger.Tally(e.proposals),
		}
		m.final = result
		m.current = nil
		return ElectionConcluded{Result: *result}, nil
	}

	return nil, &PhaseError{Op: "stop", Phase: e.phase}
}

// Propose registers a candidate idea and returns its index.
func (m *Machine) Propose(actor, text string) (int, error) {
	p, err := m.propose(actor, text)
	return p.Index, err
}

// propose returns the proposal as stored, read under the same lock as the
// insertion.
func (m *Machine) propose(actor, text string) (Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if phase := m.phaseLocked(); phase != Proposing {
		return Proposal{}, &PhaseError{Op: "propose", Phase: phase}
	}
	idx, err := m.current.proposals.Add(actor, text)
	if err != nil {
		return Proposal{}, err
	}
	return m.current.proposals.Get(idx)
}

// Vote sets actor's allocation on a proposal and returns the credits left.
func (m *Machine) Vote(actor string, proposal, votes int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if phase := m.phaseLocked(); phase != Voting {
		return 0, &PhaseError{Op: "vote", Phase: phase}
	}
	return m.current.ledger.Cast(actor, proposal, votes)
}

// Points returns actor's remaining credits in the active election.
func (m *Machine) Points(actor string) (int, error) {
	// Write lock: the first query opens the actor's account.
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return 0, ErrNoActiveElection
	}
	return m.current.ledger.RemainingCredits(actor), nil
}

// Allocations returns actor's own votes per proposal index.
func (m *Machine) Allocations(actor string) (map[int]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil, ErrNoActiveElection
	}
	return m.current.ledger.Allocations(actor), nil
}

// Ballot returns actor's remaining credits and allocations from one
// consistent view of the ledger. It does not open an account.
func (m *Machine) Ballot(actor string) (int, map[int]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return 0, nil, ErrNoActiveElection
	}
	remaining, alloc := m.current.ledger.Ballot(actor)
	return remaining, alloc, nil
}

// Proposals lists the current election's proposals in index order.
func (m *Machine) Proposals() ([]Proposal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil, ErrNoActiveElection
	}
	return m.current.proposals.List(), nil
}

// CurrentTally returns the live tally while voting, or the final tally of
// the last concluded election while idle.
func (m *Machine) CurrentTally() ([]TallyEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	switch m.phaseLocked() {
	case Voting:
		return m.current.ledger.Tally(m.current.proposals), nil
	case Proposing:
		return nil, &PhaseError{Op: "tally", Phase: Proposing}
	}

	if m.final == nil {
		return nil, ErrNoActiveElection
	}
	out := make([]TallyEntry, len(m.final.Tally))
	copy(out, m.final.Tally)
	return out, nil
}

// LastResult returns the result of the last concluded election, even after
// a new election has started.
func (m *Machine) LastResult() (Result, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.final == nil {
		return Result{}, false
	}
	r := *m.final
	r.Tally = append([]TallyEntry(nil), m.final.Tally...)
	return r, true
}

func (m *Machine) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Status{
		Phase:      m.phaseLocked(),
		MaxCredits: m.cfg.MaxCredits,
		VoteLimit:  m.cfg.VoteLimit(),
	}
	if e := m.current; e != nil {
		s.ElectionID = e.ID
		s.Prompt = e.Prompt
		s.StartedBy = e.StartedBy
		s.StartedAt = e.StartedAt
		s.Proposals = e.proposals.Len()
		s.Voters = e.ledger.Voters()
	}
	return s
}
