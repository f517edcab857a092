package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/chainfoot/nft-fantasy/internal/domain/player"
	"github.com/chainfoot/nft-fantasy/internal/domain/roster"
)

const defaultAdjustWorkers = 8

// AdjustPointsInput applies a signed delta to one player's points.
type AdjustPointsInput struct {
	PlayerNFTID string
	Delta       int64
	// MaxWorkers caps the recalculation fan-out; zero uses the default.
	MaxWorkers int
}

// AdjustPointsResult reports the player's new score and how the wallet
// fan-out went. Failed wallets keep stale totals until their next
// recalculation.
type AdjustPointsResult struct {
	Player          player.Player
	WalletsTotal    int
	WalletsUpdated  int
	WalletsFailed   int
}

// AdminService manages the player catalog. Point adjustments fan out a total
// recalculation to every wallet rostering the player.
type AdminService struct {
	playerRepo player.Repository
	rosterRepo roster.Repository
	points     *PointsService
	logger     *slog.Logger
	now        func() time.Time
}

func NewAdminService(
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	points *PointsService,
	logger *slog.Logger,
) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		points:     points,
		logger:     logger,
		now:        time.Now,
	}
}

// ListPlayers returns the whole player catalog.
func (s *AdminService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// CreatePlayer registers an NFT in the catalog with zero points.
func (s *AdminService) CreatePlayer(ctx context.Context, nftID, name, collection string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CreatePlayer")
	defer span.End()

	nftID = strings.TrimSpace(nftID)
	name = strings.TrimSpace(name)
	collection = strings.TrimSpace(collection)
	if nftID == "" {
		return player.Player{}, fmt.Errorf("%w: nft identifier is required", ErrInvalidInput)
	}
	if name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if collection == "" {
		return player.Player{}, fmt.Errorf("%w: collection is required", ErrInvalidInput)
	}

	now := s.now()
	created := player.Player{
		NFTIdentifier: nftID,
		Name:          name,
		Collection:    collection,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.playerRepo.Create(ctx, created); err != nil {
		if errors.Is(err, player.ErrAlreadyExists) {
			return player.Player{}, fmt.Errorf("%w: player=%s already exists", ErrInvalidInput, nftID)
		}
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	return created, nil
}

// DeletePlayer removes an NFT from the catalog. Roster entries referencing it
// survive and score zero until replaced.
func (s *AdminService) DeletePlayer(ctx context.Context, nftID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.DeletePlayer")
	defer span.End()

	nftID = strings.TrimSpace(nftID)
	if nftID == "" {
		return fmt.Errorf("%w: nft identifier is required", ErrInvalidInput)
	}

	_, found, err := s.playerRepo.GetByID(ctx, nftID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: player=%s", ErrNotFound, nftID)
	}

	if err := s.playerRepo.Delete(ctx, nftID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	return nil
}

// AdjustPlayerPoints applies the delta (clamped at zero), then recalculates
// every affected wallet concurrently. The player update is authoritative;
// wallet failures are reported, not rolled back.
func (s *AdminService) AdjustPlayerPoints(ctx context.Context, input AdjustPointsInput) (AdjustPointsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.AdjustPlayerPoints")
	defer span.End()

	nftID := strings.TrimSpace(input.PlayerNFTID)
	if nftID == "" {
		return AdjustPointsResult{}, fmt.Errorf("%w: nft identifier is required", ErrInvalidInput)
	}
	if input.Delta == 0 {
		return AdjustPointsResult{}, fmt.Errorf("%w: delta must be non-zero", ErrInvalidInput)
	}

	current, found, err := s.playerRepo.GetByID(ctx, nftID)
	if err != nil {
		return AdjustPointsResult{}, fmt.Errorf("get player: %w", err)
	}
	if !found {
		return AdjustPointsResult{}, fmt.Errorf("%w: player=%s", ErrNotFound, nftID)
	}

	newPoints := player.ClampPoints(current.Points, input.Delta)
	updated, err := s.playerRepo.UpdatePoints(ctx, nftID, newPoints, s.now())
	if err != nil {
		return AdjustPointsResult{}, fmt.Errorf("update player points: %w", err)
	}

	wallets, err := s.rosterRepo.DistinctWalletsWithPlayer(ctx, nftID)
	if err != nil {
		return AdjustPointsResult{}, fmt.Errorf("list affected wallets: %w", err)
	}

	result := AdjustPointsResult{Player: updated, WalletsTotal: len(wallets)}
	if len(wallets) == 0 {
		return result, nil
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultAdjustWorkers
	}
	if workerCount > len(wallets) {
		workerCount = len(wallets)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return AdjustPointsResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var updatedCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, wallet := range wallets {
		wallet := wallet
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if _, recalcErr := s.points.RecalculateForWallet(ctx, wallet); recalcErr != nil {
				failedCount.Add(1)
				s.logger.ErrorContext(ctx, "wallet recalculation failed",
					"wallet_address", wallet,
					"player", nftID,
					"error", recalcErr,
				)
				return
			}
			updatedCount.Add(1)
		}); err != nil {
			workers.Done()
			return AdjustPointsResult{}, fmt.Errorf("submit wallet to worker pool: %w", err)
		}
	}
	workers.Wait()

	result.WalletsUpdated = int(updatedCount.Load())
	result.WalletsFailed = int(failedCount.Load())

	s.logger.InfoContext(ctx, "player points adjusted",
		"player", nftID,
		"delta", input.Delta,
		"new_points", newPoints,
		"wallets_total", result.WalletsTotal,
		"wallets_failed", result.WalletsFailed,
	)

	return result, nil
}
