package roster

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Position is one of the five fixed roster slots.
type Position string

const (
	PositionGK   Position = "GK"
	PositionDEF1 Position = "DEF1"
	PositionDEF2 Position = "DEF2"
	PositionATT1 Position = "ATT1"
	PositionATT2 Position = "ATT2"
)

// AllPositions is the fixed slot set every submitted roster must cover.
var AllPositions = map[Position]struct{}{
	PositionGK:   {},
	PositionDEF1: {},
	PositionDEF2: {},
	PositionATT1: {},
	PositionATT2: {},
}

// RequiredPositions returns the slot set in sorted order.
func RequiredPositions() []Position {
	out := make([]Position, 0, len(AllPositions))
	for pos := range AllPositions {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var (
	ErrWrongSlotCount    = errors.New("roster must contain exactly 5 players")
	ErrUnknownPosition   = errors.New("unknown roster position")
	ErrDuplicatePosition = errors.New("duplicate roster position")
	ErrMissingPlayerID   = errors.New("player nft identifier is required")
)

// Slot is one (position, player) pair of a submission payload.
type Slot struct {
	Position    Position
	PlayerNFTID string
}

// Entry is a persisted roster row for one wallet and position.
type Entry struct {
	WalletAddress string
	Position      Position
	PlayerNFTID   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateSlots checks a submission covers the fixed position set exactly once
// with a player assigned to every slot.
func ValidateSlots(slots []Slot) error {
	if len(slots) != len(AllPositions) {
		return fmt.Errorf("%w: got %d", ErrWrongSlotCount, len(slots))
	}

	seen := make(map[Position]struct{}, len(slots))
	for _, slot := range slots {
		if _, ok := AllPositions[slot.Position]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPosition, slot.Position)
		}
		if _, ok := seen[slot.Position]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatePosition, slot.Position)
		}
		seen[slot.Position] = struct{}{}

		if strings.TrimSpace(slot.PlayerNFTID) == "" {
			return fmt.Errorf("%w: position %s", ErrMissingPlayerID, slot.Position)
		}
	}

	return nil
}
