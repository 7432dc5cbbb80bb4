// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

const (
	DefaultMaxCredits      = 100
	DefaultMaxVotesPerCast = 10
)

// LedgerConfig bounds the credits available to each actor.
type LedgerConfig struct {
	MaxCredits      int
	MaxVotesPerCast int
}

// DefaultLedgerConfig returns 100 credits and at most 10 votes per cast.
func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		MaxCredits:      DefaultMaxCredits,
		MaxVotesPerCast: DefaultMaxVotesPerCast,
	}
}

// withDefaults replaces non-positive fields with their defaults.
func (c LedgerConfig) withDefaults() LedgerConfig {
	if c.MaxCredits <= 0 {
		c.MaxCredits = DefaultMaxCredits
	}
	if c.MaxVotesPerCast <= 0 {
		c.MaxVotesPerCast = DefaultMaxVotesPerCast
	}
	return c
}

// VoteLimit is the largest vote count a single cast may carry: the smaller
// of MaxVotesPerCast and floor(sqrt(MaxCredits)).
func (c LedgerConfig) VoteLimit() int {
	c = c.withDefaults()
	return min(c.MaxVotesPerCast, isqrt(c.MaxCredits))
}

// Candidates reports which proposal indices may receive votes.
type Candidates interface {
	Has(index int) bool
}

// Account is one actor's credit balance within an election.
type Account struct {
	Remaining   int
	Allocations map[int]int // proposal index -> votes, never zero
}

// Spent returns the quadratic cost of all current allocations.
func (a *Account) Spent() int {
	total := 0
	for _, votes := range a.Allocations {
		total += cost(votes)
	}
	return total
}

// Ledger tracks per-actor credits for one election.
// It is not safe for concurrent use; Machine serializes access.
type Ledger struct {
	cfg        LedgerConfig
	candidates Candidates
	accounts   map[string]*Account
}

func NewLedger(cfg LedgerConfig, candidates Candidates) *Ledger {
	return &Ledger{
		cfg:        cfg.withDefaults(),
		candidates: candidates,
		accounts:   make(map[string]*Account),
	}
}

func (l *Ledger) Config() LedgerConfig {
	return l.cfg
}

func (l *Ledger) account(actor string) *Account {
	acct, ok := l.accounts[actor]
	if !ok {
		acct = &Account{Remaining: l.cfg.MaxCredits, Allocations: make(map[int]int)}
		l.accounts[actor] = acct
	}
	return acct
}

// Cast sets actor's allocation on proposal to votes, refunding whatever the
// previous allocation cost. It returns the remaining credits. On error
// nothing changes; a first-time actor gets no account.
func (l *Ledger) Cast(actor string, proposal, votes int) (int, error) {
	if limit := l.cfg.VoteLimit(); votes < 0 || votes > limit {
		return 0, &VoteCountError{Votes: votes, Max: limit}
	}
	if l.candidates == nil || !l.candidates.Has(proposal) {
		return 0, &ProposalError{Err: ErrUnknownProposal, Index: proposal}
	}

	balance, old := l.cfg.MaxCredits, 0
	if acct, ok := l.accounts[actor]; ok {
		balance, old = acct.Remaining, acct.Allocations[proposal]
	}
	remaining, err := recast(balance, old, votes)
	if err != nil {
		return balance, err
	}

	acct := l.account(actor)
	acct.Remaining = remaining
	if votes == 0 {
		delete(acct.Allocations, proposal)
	} else {
		acct.Allocations[proposal] = votes
	}

	return acct.Remaining, nil
}

// recast computes the balance after replacing oldVotes with newVotes:
// the old cost is released before the new one is charged.
func recast(remaining, oldVotes, newVotes int) (int, error) {
	available := remaining + cost(oldVotes)
	required := cost(newVotes)
	if required > available {
		return 0, &CreditError{Available: available, Required: required}
	}
	return available - required, nil
}

// Ballot returns actor's balance and a copy of their allocations without
// opening an account.
func (l *Ledger) Ballot(actor string) (int, map[int]int) {
	return l.peek(actor), l.Allocations(actor)
}

func (l *Ledger) peek(actor string) int {
	if acct, ok := l.accounts[actor]; ok {
		return acct.Remaining
	}
	return l.cfg.MaxCredits
}

// RemainingCredits returns actor's balance, opening an account if needed.
func (l *Ledger) RemainingCredits(actor string) int {
	return l.account(actor).Remaining
}

// Allocations returns a copy of actor's current allocations. It does not
// open an account.
func (l *Ledger) Allocations(actor string) map[int]int {
	out := make(map[int]int)
	if acct, ok := l.accounts[actor]; ok {
		for idx, votes := range acct.Allocations {
			out[idx] = votes
		}
	}
	return out
}

// Voters counts accounts holding at least one allocation.
func (l *Ledger) Voters() int {
	n := 0
	for _, acct := range l.accounts {
		if len(acct.Allocations) > 0 {
			n++
		}
	}
	return n
}

func cost(votes int) int {
	return votes * votes
}

// isqrt returns floor(sqrt(n)) for n >= 0.
func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
