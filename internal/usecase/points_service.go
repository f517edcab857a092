package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chainfoot/nft-fantasy/internal/domain/player"
	"github.com/chainfoot/nft-fantasy/internal/domain/roster"
	"github.com/chainfoot/nft-fantasy/internal/domain/user"
)

// PointsService recomputes a wallet's materialized total from its current
// roster. Players that were removed from the catalog contribute zero.
type PointsService struct {
	userRepo   user.Repository
	rosterRepo roster.Repository
	playerRepo player.Repository
	logger     *slog.Logger
	now        func() time.Time
}

func NewPointsService(
	userRepo user.Repository,
	rosterRepo roster.Repository,
	playerRepo player.Repository,
	logger *slog.Logger,
) *PointsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PointsService{
		userRepo:   userRepo,
		rosterRepo: rosterRepo,
		playerRepo: playerRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// RecalculateForWallet sums the wallet's roster player points and stores the
// total. A wallet with no roster keeps its stored total untouched.
func (s *PointsService) RecalculateForWallet(ctx context.Context, walletAddress string) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.RecalculateForWallet")
	defer span.End()

	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return 0, fmt.Errorf("%w: wallet address is required", ErrInvalidInput)
	}

	entries, err := s.rosterRepo.ListByWallet(ctx, walletAddress)
	if err != nil {
		return 0, fmt.Errorf("list roster entries: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.PlayerNFTID)
	}

	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("get roster players: %w", err)
	}

	pointsByID := make(map[string]int64, len(players))
	for _, p := range players {
		pointsByID[p.NFTIdentifier] = p.Points
	}

	var total int64
	for _, entry := range entries {
		total += pointsByID[entry.PlayerNFTID]
	}

	if err := s.userRepo.UpdateTotalPoints(ctx, walletAddress, total, s.now()); err != nil {
		return 0, fmt.Errorf("update total points: %w", err)
	}

	s.logger.DebugContext(ctx, "recalculated wallet points",
		"wallet_address", walletAddress,
		"total_points", total,
		"roster_size", len(entries),
	)

	return total, nil
}
