// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "fmt"

// Command is one of Start, Stop, Propose, Vote, Points or Tally. The set is
// closed: only this package can add variants.
type Command interface {
	command()
}

type Start struct {
	Actor  string
	Prompt string
}

type Stop struct {
	Actor string
}

type Propose struct {
	Actor string
	Text  string
}

type Vote struct {
	Actor    string
	Proposal int
	Votes    int
}

type Points struct {
	Actor string
}

type Tally struct {
	Actor string
}

func (Start) command()   {}
func (Stop) command()    {}
func (Propose) command() {}
func (Vote) command()    {}
func (Points) command()  {}
func (Tally) command()   {}

// Outcome is the successful result of a Command.
type Outcome interface {
	outcome()
}

// Started is returned by Start.
type Started struct {
	ElectionID string
	Prompt     string
}

// MovedToVoting is returned by Stop during the proposing phase.
type MovedToVoting struct {
	Proposals []Proposal
}

// ElectionConcluded is returned by Stop during the voting phase.
type ElectionConcluded struct {
	Result Result
}

// Proposed is returned by Propose. Text is the stored proposal text.
type Proposed struct {
	Index int
	Text  string
}

// Balance is returned by Vote and Points.
type Balance struct {
	RemainingCredits int
}

// Standings is returned by Tally.
type Standings struct {
	Entries []TallyEntry
}

func (Started) outcome()           {}
func (MovedToVoting) outcome()     {}
func (ElectionConcluded) outcome() {}
func (Proposed) outcome()          {}
func (Balance) outcome()           {}
func (Standings) outcome()         {}

// Execute applies cmd to the machine.
func (m *Machine) Execute(cmd Command) (Outcome, error) {
	switch c := cmd.(type) {
	case Start:
		started, err := m.Start(c.Actor, c.Prompt)
		if err != nil {
			return nil, err
		}
		return started, nil
	case Stop:
		return m.Stop(c.Actor)
	case Propose:
		p, err := m.propose(c.Actor, c.Text)
		if err != nil {
			return nil, err
		}
		return Proposed{Index: p.Index, Text: p.Text}, nil
	case Vote:
		remaining, err := m.Vote(c.Actor, c.Proposal, c.Votes)
		if err != nil {
			return nil, err
		}
		return Balance{RemainingCredits: remaining}, nil
	case Points:
		remaining, err := m.Points(c.Actor)
		if err != nil {
			return nil, err
		}
		return Balance{RemainingCredits: remaining}, nil
	case Tally:
		entries, err := m.CurrentTally()
		if err != nil {
			return nil, err
		}
		return Standings{Entries: entries}, nil
	}
	return nil, fmt.Errorf("unsupported command %T", cmd)
}
