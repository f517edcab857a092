package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/chainfoot/nft-fantasy/internal/domain/roster"
)

// FeeConfig carries the submission pricing in the chain's smallest
// denomination (10^18 units per native coin).
type FeeConfig struct {
	// PerSlotFee is charged for every roster slot that changes player.
	PerSlotFee *big.Int
	// TeamNameCreateFee is charged the first time a wallet names its team.
	TeamNameCreateFee *big.Int
	// TeamNameEditFee is charged for every rename afterwards.
	TeamNameEditFee *big.Int
	// GasReserve must remain in the wallet on top of the fee so the
	// transaction itself can be paid for.
	GasReserve *big.Int
}

// SubmissionQuote prices one proposed roster submission.
type SubmissionQuote struct {
	ChangedSlots []roster.Position
	Fee          *big.Int
}

// FeeService prices team submissions and checks the wallet can afford them.
// A first submission changes all five slots by definition.
type FeeService struct {
	rosterRepo roster.Repository
	chain      ChainGateway
	cfg        FeeConfig
	logger     *slog.Logger
}

func NewFeeService(rosterRepo roster.Repository, chain ChainGateway, cfg FeeConfig, logger *slog.Logger) *FeeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeeService{
		rosterRepo: rosterRepo,
		chain:      chain,
		cfg:        cfg,
		logger:     logger,
	}
}

// QuoteSubmission diffs the proposed slots against the stored roster and
// prices the change. Slots keeping their player are free.
func (s *FeeService) QuoteSubmission(ctx context.Context, walletAddress string, slots []roster.Slot) (SubmissionQuote, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeeService.QuoteSubmission")
	defer span.End()

	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return SubmissionQuote{}, fmt.Errorf("%w: wallet address is required", ErrInvalidInput)
	}
	if err := roster.ValidateSlots(slots); err != nil {
		return SubmissionQuote{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	current, err := s.rosterRepo.ListByWallet(ctx, walletAddress)
	if err != nil {
		return SubmissionQuote{}, fmt.Errorf("list current roster: %w", err)
	}

	currentByPosition := make(map[roster.Position]string, len(current))
	for _, entry := range current {
		currentByPosition[entry.Position] = entry.PlayerNFTID
	}

	changed := make([]roster.Position, 0, len(slots))
	for _, slot := range slots {
		if currentByPosition[slot.Position] != slot.PlayerNFTID {
			changed = append(changed, slot.Position)
		}
	}

	fee := new(big.Int).Mul(s.cfg.PerSlotFee, big.NewInt(int64(len(changed))))

	return SubmissionQuote{ChangedSlots: changed, Fee: fee}, nil
}

// EnsureAffordable rejects the submission up front when the wallet balance
// cannot cover the fee plus the gas reserve.
func (s *FeeService) EnsureAffordable(ctx context.Context, walletAddress string, fee *big.Int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeeService.EnsureAffordable")
	defer span.End()

	if fee == nil || fee.Sign() == 0 {
		return nil
	}

	balance, err := s.chain.GetAccountBalance(ctx, walletAddress)
	if err != nil {
		return fmt.Errorf("get account balance: %w", err)
	}

	required := new(big.Int).Add(fee, s.cfg.GasReserve)
	if balance.Cmp(required) < 0 {
		return fmt.Errorf("%w: balance=%s required=%s", ErrInsufficientFunds, balance.String(), required.String())
	}

	return nil
}

// TeamNameCreateFee exposes the first-naming price for quote responses.
func (s *FeeService) TeamNameCreateFee() *big.Int {
	return copyFee(s.cfg.TeamNameCreateFee)
}

// TeamNameEditFee exposes the rename price for quote responses.
func (s *FeeService) TeamNameEditFee() *big.Int {
	return copyFee(s.cfg.TeamNameEditFee)
}

func copyFee(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
