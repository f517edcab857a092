package roster

import (
	"errors"
	"testing"
)

func validSlots() []Slot {
	return []Slot{
		{Position: PositionGK, PlayerNFTID: "FOOT-9e4e8c-01"},
		{Position: PositionDEF1, PlayerNFTID: "FOOT-9e4e8c-02"},
		{Position: PositionDEF2, PlayerNFTID: "FOOT-9e4e8c-03"},
		{Position: PositionATT1, PlayerNFTID: "FOOT-9e4e8c-04"},
		{Position: PositionATT2, PlayerNFTID: "FOOT-9e4e8c-05"},
	}
}

func TestValidateSlots_Valid(t *testing.T) {
	if err := ValidateSlots(validSlots()); err != nil {
		t.Fatalf("expected valid slots, got %v", err)
	}
}

func TestValidateSlots_WrongCount(t *testing.T) {
	if err := ValidateSlots(validSlots()[:4]); !errors.Is(err, ErrWrongSlotCount) {
		t.Fatalf("expected ErrWrongSlotCount, got %v", err)
	}

	six := append(validSlots(), Slot{Position: PositionGK, PlayerNFTID: "FOOT-9e4e8c-06"})
	if err := ValidateSlots(six); !errors.Is(err, ErrWrongSlotCount) {
		t.Fatalf("expected ErrWrongSlotCount for 6 slots, got %v", err)
	}
}

func TestValidateSlots_DuplicatePosition(t *testing.T) {
	slots := validSlots()
	// Two goalkeepers, no DEF1.
	slots[1].Position = PositionGK
	if err := ValidateSlots(slots); !errors.Is(err, ErrDuplicatePosition) {
		t.Fatalf("expected ErrDuplicatePosition, got %v", err)
	}
}

func TestValidateSlots_UnknownPosition(t *testing.T) {
	slots := validSlots()
	slots[2].Position = "MID1"
	if err := ValidateSlots(slots); !errors.Is(err, ErrUnknownPosition) {
		t.Fatalf("expected ErrUnknownPosition, got %v", err)
	}
}

func TestValidateSlots_MissingPlayer(t *testing.T) {
	slots := validSlots()
	slots[4].PlayerNFTID = "  "
	if err := ValidateSlots(slots); !errors.Is(err, ErrMissingPlayerID) {
		t.Fatalf("expected ErrMissingPlayerID, got %v", err)
	}
}

func TestRequiredPositions_Sorted(t *testing.T) {
	got := RequiredPositions()
	want := []Position{PositionATT1, PositionATT2, PositionDEF1, PositionDEF2, PositionGK}
	if len(got) != len(want) {
		t.Fatalf("expected %d positions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v at index %d, got %v", want[i], i, got[i])
		}
	}
}
