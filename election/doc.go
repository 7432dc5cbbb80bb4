// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements quadratic-voting elections.

# Lifecycle

Each governed community has one Machine, which moves through three phases:

	Idle --Start--> Proposing --Stop--> Voting --Stop--> Idle

Proposals are collected while proposing. Stop freezes them (an empty set is
allowed) and opens voting. The second Stop computes the final tally and
discards the election. The final tally stays readable from CurrentTally
until the next Start, and from LastResult until the next conclusion.

# Credits

Every actor starts each election with MaxCredits voice credits (default
100). Casting n votes on a proposal costs n² credits. Casting again on the
same proposal replaces the earlier allocation: its cost is refunded before
the new cost is charged, so for every account

	Remaining + Σ votes² == MaxCredits

A single cast may carry at most min(MaxVotesPerCast, ⌊√MaxCredits⌋) votes.
Casting zero votes withdraws the allocation.

# Tally

Tally entries aggregate total votes and credits spent per proposal. They
are ordered by total votes descending; ties go to the lower index, i.e.
the earlier proposal.

# Commands

Callers either use the typed methods (Start, Stop, Propose, Vote, Points,
CurrentTally) or build a Command and call Execute:

	out, err := hub.Execute("guild-1", election.Vote{Actor: "ana", Proposal: 0, Votes: 3})

Errors are comparable with errors.Is against the Err* sentinels; Kind maps
them to stable codes. The package does no permission checks and no I/O.
*/
package election
