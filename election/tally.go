// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "sort"

// TallyEntry aggregates all votes cast on one proposal. Voter identities
// are never included.
type TallyEntry struct {
	Index        int    `json:"index"`
	Text         string `json:"text"`
	TotalVotes   int    `json:"total_votes"`
	CreditsSpent int    `json:"credits_spent"`
}

// Tally ranks every proposal in the registry, including those without
// votes. Ordering is by total votes descending, then by index ascending so
// the earliest proposal wins ties.
func (l *Ledger) Tally(registry *Registry) []TallyEntry {
	entries := make([]TallyEntry, registry.Len())
	for i, p := range registry.List() {
		entries[i] = TallyEntry{Index: p.Index, Text: p.Text}
	}

	for _, acct := range l.accounts {
		for idx, votes := range acct.Allocations {
			if idx < 0 || idx >= len(entries) {
				continue
			}
			entries[idx].TotalVotes += votes
			entries[idx].CreditsSpent += cost(votes)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalVotes != b.TotalVotes {
			return a.TotalVotes > b.TotalVotes
		}
		return a.Index < b.Index
	})

	return entries
}

// Winners returns at most n leading entries of an already ranked tally.
func Winners(tally []TallyEntry, n int) []TallyEntry {
	if n < 0 || n > len(tally) {
		n = len(tally)
	}
	out := make([]TallyEntry, n)
	copy(out, tally[:n])
	return out
}
