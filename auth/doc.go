// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth resolves who may do what before a command reaches an election.

# Admin Keys

Starting and stopping elections requires a community admin key. Keys use
HMAC-SHA256 over the community ID:

	adminKey := auth.GenerateAdminKey(communityID, salt)
	err := auth.ValidateAdminKey(communityID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same community ID and salt always produce the same key, so nothing has to
be stored. Print one with:

	quadratic-vote --print-admin-key guild-1

# Actors

Every request names its actor in the X-Actor-ID header. NormalizeActor trims
it and rejects empty IDs. Members need no key: anyone named may propose, vote
and query their own points.

# Actor Hashing

Vote logs carry a salted hash instead of the actor ID:

	hash := auth.HashActor(actor, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
