package usecase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/chainfoot/nft-fantasy/internal/domain/roster"
	"github.com/chainfoot/nft-fantasy/internal/infrastructure/repository/memory"
)

func testFeeConfig() FeeConfig {
	return FeeConfig{
		PerSlotFee:        big.NewInt(200),
		TeamNameCreateFee: big.NewInt(1000),
		TeamNameEditFee:   big.NewInt(5000),
		GasReserve:        big.NewInt(50),
	}
}

func slotsFor(playerIDs [5]string) []roster.Slot {
	positions := roster.RequiredPositions()
	slots := make([]roster.Slot, 0, len(positions))
	for i, pos := range positions {
		slots = append(slots, roster.Slot{Position: pos, PlayerNFTID: playerIDs[i]})
	}
	return slots
}

func TestFeeService_QuoteSubmission_FirstSubmissionChargesAllSlots(t *testing.T) {
	service := NewFeeService(memory.NewRosterRepository(nil), &fakeChain{}, testFeeConfig(), discardLogger())

	quote, err := service.QuoteSubmission(t.Context(), "erd1abc", slotsFor([5]string{"a", "b", "c", "d", "e"}))
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if len(quote.ChangedSlots) != 5 {
		t.Fatalf("expected 5 changed slots, got %d", len(quote.ChangedSlots))
	}
	if quote.Fee.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("expected fee 1000, got %s", quote.Fee)
	}
}

func TestFeeService_QuoteSubmission_ChargesOnlyChangedSlots(t *testing.T) {
	rosterRepo := memory.NewRosterRepository(fullRoster("erd1abc", [5]string{"a", "b", "c", "d", "e"}))
	service := NewFeeService(rosterRepo, &fakeChain{}, testFeeConfig(), discardLogger())

	quote, err := service.QuoteSubmission(t.Context(), "erd1abc", slotsFor([5]string{"a", "b", "x", "d", "y"}))
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if len(quote.ChangedSlots) != 2 {
		t.Fatalf("expected 2 changed slots, got %v", quote.ChangedSlots)
	}
	if quote.Fee.Cmp(big.NewInt(400)) != 0 {
		t.Fatalf("expected fee 400, got %s", quote.Fee)
	}
}

func TestFeeService_QuoteSubmission_IdenticalRosterIsFree(t *testing.T) {
	rosterRepo := memory.NewRosterRepository(fullRoster("erd1abc", [5]string{"a", "b", "c", "d", "e"}))
	service := NewFeeService(rosterRepo, &fakeChain{}, testFeeConfig(), discardLogger())

	quote, err := service.QuoteSubmission(t.Context(), "erd1abc", slotsFor([5]string{"a", "b", "c", "d", "e"}))
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if len(quote.ChangedSlots) != 0 || quote.Fee.Sign() != 0 {
		t.Fatalf("expected free quote, got slots=%v fee=%s", quote.ChangedSlots, quote.Fee)
	}
}

func TestFeeService_QuoteSubmission_RejectsInvalidSlots(t *testing.T) {
	service := NewFeeService(memory.NewRosterRepository(nil), &fakeChain{}, testFeeConfig(), discardLogger())

	slots := slotsFor([5]string{"a", "b", "c", "d", "e"})[:4]
	if _, err := service.QuoteSubmission(t.Context(), "erd1abc", slots); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestFeeService_EnsureAffordable(t *testing.T) {
	chain := &fakeChain{balance: big.NewInt(1050)}
	service := NewFeeService(memory.NewRosterRepository(nil), chain, testFeeConfig(), discardLogger())

	if err := service.EnsureAffordable(t.Context(), "erd1abc", big.NewInt(1000)); err != nil {
		t.Fatalf("expected affordable with exact balance, got %v", err)
	}

	if err := service.EnsureAffordable(t.Context(), "erd1abc", big.NewInt(1001)); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// Zero fee never touches the chain.
	broken := &fakeChain{balanceErr: errors.New("chain down")}
	free := NewFeeService(memory.NewRosterRepository(nil), broken, testFeeConfig(), discardLogger())
	if err := free.EnsureAffordable(t.Context(), "erd1abc", big.NewInt(0)); err != nil {
		t.Fatalf("expected zero fee to skip balance check, got %v", err)
	}
}
