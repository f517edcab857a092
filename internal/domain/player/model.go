package player

import (
	"errors"
	"time"
)

// ErrAlreadyExists reports a create with a duplicate nft identifier.
var ErrAlreadyExists = errors.New("player already exists")

// Player is one NFT player token tracked by the scoring table. Points never
// go below zero; admin decrements are clamped.
type Player struct {
	NFTIdentifier string
	Name          string
	Collection    string
	Points        int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClampPoints applies a signed delta with a zero floor.
func ClampPoints(current, delta int64) int64 {
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}
