// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"strings"

	"golang.org/x/text/cases"
)

// Proposal is a candidate idea registered during the proposing phase.
type Proposal struct {
	Index    int    `json:"index"`
	Text     string `json:"text"`
	Proposer string `json:"proposer"`
}

// Registry is the append-only list of proposals for one election.
// It is not safe for concurrent use; Machine serializes access.
type Registry struct {
	proposals []Proposal
	seen      map[string]int // normalized text -> index
	frozen    bool
}

func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]int)}
}

// normalize trims and case-folds text for duplicate comparison only.
// Interior runs of whitespace collapse to a single space.
func normalize(text string) string {
	return cases.Fold().String(strings.Join(strings.Fields(text), " "))
}

// Add registers text and returns its index. Stored text keeps the
// proposer's casing, minus surrounding whitespace.
func (r *Registry) Add(actor, text string) (int, error) {
	if r.frozen {
		return 0, ErrFrozen
	}

	key := normalize(text)
	if key == "" {
		return 0, ErrEmptyText
	}
	if idx, ok := r.seen[key]; ok {
		return 0, &ProposalError{Err: ErrDuplicateProposal, Index: idx, Text: strings.TrimSpace(text)}
	}

	idx := len(r.proposals)
	r.proposals = append(r.proposals, Proposal{
		Index:    idx,
		Text:     strings.TrimSpace(text),
		Proposer: actor,
	})
	r.seen[key] = idx

	return idx, nil
}

// Freeze makes the registry immutable.
func (r *Registry) Freeze() {
	r.frozen = true
}

func (r *Registry) Frozen() bool {
	return r.frozen
}

// Get returns the proposal at index.
func (r *Registry) Get(index int) (Proposal, error) {
	if !r.Has(index) {
		return Proposal{}, &ProposalError{Err: ErrUnknownProposal, Index: index}
	}
	return r.proposals[index], nil
}

func (r *Registry) Has(index int) bool {
	return index >= 0 && index < len(r.proposals)
}

func (r *Registry) Len() int {
	return len(r.proposals)
}

// List returns a copy of the proposals in insertion order.
func (r *Registry) List() []Proposal {
	out := make([]Proposal, len(r.proposals))
	copy(out, r.proposals)
	return out
}
