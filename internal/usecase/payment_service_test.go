package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"
)

const treasuryAddress = "erd1u5p4njlv9rxvzvmhsxjypa69t2dran33x9ttpx0ghft7tt35wpfsxgynw4"

func newPaymentService(chain ChainGateway, maxAttempts int) *PaymentService {
	service := NewPaymentService(chain, PaymentConfig{
		ReceiverAddress: treasuryAddress,
		PollInterval:    time.Second,
		MaxAttempts:     maxAttempts,
	}, discardLogger())
	service.sleep = func(context.Context, time.Duration) error { return nil }
	return service
}

func TestPaymentService_Confirm_Success(t *testing.T) {
	chain := &fakeChain{txResponses: map[string][]txResponse{
		"tx1": {{tx: confirmedTx("tx1", "erd1abc", treasuryAddress, 1000, TxStatusSuccess)}},
	}}

	if err := newPaymentService(chain, 5).Confirm(t.Context(), "tx1", big.NewInt(1000)); err != nil {
		t.Fatalf("expected confirmation, got %v", err)
	}
}

func TestPaymentService_Confirm_ExecutedCountsAsSuccess(t *testing.T) {
	chain := &fakeChain{txResponses: map[string][]txResponse{
		"tx1": {{tx: confirmedTx("tx1", "erd1abc", treasuryAddress, 1000, TxStatusExecuted)}},
	}}

	if err := newPaymentService(chain, 5).Confirm(t.Context(), "tx1", big.NewInt(1000)); err != nil {
		t.Fatalf("expected executed status accepted, got %v", err)
	}
}

func TestPaymentService_Confirm_PendingThenSuccess(t *testing.T) {
	chain := &fakeChain{txResponses: map[string][]txResponse{
		"tx1": {
			{tx: confirmedTx("tx1", "erd1abc", treasuryAddress, 1000, TxStatusPending)},
			{tx: confirmedTx("tx1", "erd1abc", treasuryAddress, 1000, TxStatusPending)},
			{tx: confirmedTx("tx1", "erd1abc", treasuryAddress, 1000, TxStatusSuccess)},
		},
	}}

	if err := newPaymentService(chain, 5).Confirm(t.Context(), "tx1", big.NewInt(1000)); err != nil {
		t.Fatalf("expected confirmation after pending, got %v", err)
	}
	if chain.txCalls != 3 {
		t.Fatalf("expected 3 polls, got %d", chain.txCalls)
	}
}

func TestPaymentService_Confirm_FetchErrorRetried(t *testing.T) {
	chain := &fakeChain{txResponses: map[string][]txResponse{
		"tx1": {
			{err: fmt.Errorf("%w: chain api 502", ErrDependencyUnavailable)},
			{tx: confirmedTx("tx1", "erd1abc", treasuryAddress, 1000, TxStatusSuccess)},
		},
	}}

	if err := newPaymentService(chain, 5).Confirm(t.Context(), "tx1", big.NewInt(1000)); err != nil {
		t.Fatalf("expected retry after fetch error, got %v", err)
	}
}

func TestPaymentService_Confirm_TerminalFailure(t *testing.T) {
	chain := &fakeChain{txResponses: map[string][]txResponse{
		"tx1": {{tx: confirmedTx("tx1", "erd1abc", treasuryAddress, 1000, TxStatusFail)}},
	}}

	err := newPaymentService(chain, 5).Confirm(t.Context(), "tx1", big.NewInt(1000))
	if !errors.Is(err, ErrPaymentFailed) {
		t.Fatalf("expected ErrPaymentFailed, got %v", err)
	}
	if chain.txCalls != 1 {
		t.Fatalf("expected terminal status to stop polling, got %d calls", chain.txCalls)
	}
}

func TestPaymentService_Confirm_AttemptsExhausted(t *testing.T) {
	chain := &fakeChain{txResponses: map[string][]txResponse{
		"tx1": {{tx: confirmedTx("tx1", "erd1abc", treasuryAddress, 1000, TxStatusPending)}},
	}}

	err := newPaymentService(chain, 3).Confirm(t.Context(), "tx1", big.NewInt(1000))
	if !errors.Is(err, ErrPaymentNotConfirmed) {
		t.Fatalf("expected ErrPaymentNotConfirmed, got %v", err)
	}
	if chain.txCalls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", chain.txCalls)
	}
}

func TestPaymentService_Confirm_WrongReceiver(t *testing.T) {
	chain := &fakeChain{txResponses: map[string][]txResponse{
		"tx1": {{tx: confirmedTx("tx1", "erd1abc", "erd1somebodyelse", 1000, TxStatusSuccess)}},
	}}

	err := newPaymentService(chain, 5).Confirm(t.Context(), "tx1", big.NewInt(1000))
	if !errors.Is(err, ErrPaymentMismatch) {
		t.Fatalf("expected ErrPaymentMismatch, got %v", err)
	}
}

func TestPaymentService_Confirm_Underpaid(t *testing.T) {
	chain := &fakeChain{txResponses: map[string][]txResponse{
		"tx1": {{tx: confirmedTx("tx1", "erd1abc", treasuryAddress, 999, TxStatusSuccess)}},
	}}

	err := newPaymentService(chain, 5).Confirm(t.Context(), "tx1", big.NewInt(1000))
	if !errors.Is(err, ErrPaymentMismatch) {
		t.Fatalf("expected ErrPaymentMismatch, got %v", err)
	}
}

func TestPaymentService_Confirm_ValidatesInput(t *testing.T) {
	service := newPaymentService(&fakeChain{}, 5)

	if err := service.Confirm(t.Context(), "", big.NewInt(1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty hash, got %v", err)
	}
	if err := service.Confirm(t.Context(), "tx1", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for nil amount, got %v", err)
	}
}
