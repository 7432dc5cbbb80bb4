// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

// Phase governs which commands are legal.
type Phase int

const (
	Idle Phase = iota
	Proposing
	Voting
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Proposing:
		return "proposing"
	case Voting:
		return "voting"
	default:
		return "unknown"
	}
}

// MarshalText lets phases appear by name in JSON responses.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
