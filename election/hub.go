// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"strings"
	"sync"
)

// Hub holds one Machine per governed community.
type Hub struct {
	mu       sync.RWMutex
	cfg      LedgerConfig
	approved map[string]bool // nil: any community
	machines map[string]*Machine
}

// NewHub creates a hub. When approved is non-empty, only those communities
// may hold elections.
func NewHub(cfg LedgerConfig, approved []string) *Hub {
	h := &Hub{
		cfg:      cfg.withDefaults(),
		machines: make(map[string]*Machine),
	}
	for _, id := range approved {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if h.approved == nil {
			h.approved = make(map[string]bool)
		}
		h.approved[id] = true
	}
	return h
}

// Machine returns the machine for community, creating it on first use.
func (h *Hub) Machine(community string) (*Machine, error) {
	if community == "" || (h.approved != nil && !h.approved[community]) {
		return nil, ErrUnknownCommunity
	}

	h.mu.RLock()
	m, ok := h.machines[community]
	h.mu.RUnlock()
	if ok {
		return m, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.machines[community]; ok {
		return m, nil
	}
	m = NewMachine(h.cfg)
	h.machines[community] = m
	return m, nil
}

// Execute routes cmd to the community's machine.
func (h *Hub) Execute(community string, cmd Command) (Outcome, error) {
	m, err := h.Machine(community)
	if err != nil {
		return nil, err
	}
	return m.Execute(cmd)
}
