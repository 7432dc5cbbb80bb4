// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quadratic-vote/election"
	"github.com/danielhkuo/quadratic-vote/models"
)

var ErrNoSnapshot = errors.New("no archived result")

// SnapshotStore archives the final result of each community's last
// election. Saving replaces the previous row; no history is kept.
type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save stores result as the community's latest snapshot and returns it.
func (s *SnapshotStore) Save(ctx context.Context, communityID string, result election.Result) (models.ResultSnapshot, error) {
	payload, err := json.Marshal(result.Tally)
	if err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to encode tally: %w", err)
	}

	snap := models.ResultSnapshot{
		ID:          uuid.NewString(),
		CommunityID: communityID,
		ElectionID:  result.ElectionID,
		Prompt:      result.Prompt,
		Voters:      result.Voters,
		ConcludedAt: result.ConcludedAt.UTC(),
		Tally:       result.Tally,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO result_snapshot (community_id, id, election_id, prompt, voters, concluded_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (community_id) DO UPDATE SET
			id = excluded.id,
			election_id = excluded.election_id,
			prompt = excluded.prompt,
			voters = excluded.voters,
			concluded_at = excluded.concluded_at,
			payload = excluded.payload
	`, snap.CommunityID, snap.ID, snap.ElectionID, snap.Prompt, snap.Voters, snap.ConcludedAt, string(payload))
	if err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to save snapshot: %w", err)
	}

	return snap, nil
}

// Latest returns the community's archived snapshot or ErrNoSnapshot.
func (s *SnapshotStore) Latest(ctx context.Context, communityID string) (models.ResultSnapshot, error) {
	var snap models.ResultSnapshot
	var payload string
	var concludedAt time.Time

	err := s.db.QueryRowContext(ctx, `
		SELECT community_id, id, election_id, prompt, voters, concluded_at, payload
		FROM result_snapshot
		WHERE community_id = $1
	`, communityID).Scan(
		&snap.CommunityID, &snap.ID, &snap.ElectionID, &snap.Prompt,
		&snap.Voters, &concludedAt, &payload,
	)
	if err == sql.ErrNoRows {
		return models.ResultSnapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to query snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &snap.Tally); err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to parse snapshot payload: %w", err)
	}
	snap.ConcludedAt = concludedAt.UTC()

	return snap, nil
}
