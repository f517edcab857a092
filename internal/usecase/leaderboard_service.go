package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chainfoot/nft-fantasy/internal/domain/user"
	"github.com/chainfoot/nft-fantasy/internal/platform/cache"
)

const (
	defaultLeaderboardLimit = 100
	maxLeaderboardLimit     = 500

	leaderboardCacheKey = "leaderboard"
	statsCacheKey       = "stats"
)

// Stats are the public landing-page counters.
type Stats struct {
	RegisteredUsers int
	SubmittedTeams  int
	CatalogPlayers  int
	TotalPoints     int64
}

// LeaderboardService builds the ranked standings projection. Ranks in the
// bulk listing are dense output positions; ties share points but not rank.
type LeaderboardService struct {
	userRepo   user.Repository
	rosterRepo rosterCounter
	playerRepo playerCounter
	store      *cache.Store
	logger     *slog.Logger
}

type rosterCounter interface {
	CountWalletsWithEntries(ctx context.Context) (int, error)
}

type playerCounter interface {
	Count(ctx context.Context) (int, error)
	SumPoints(ctx context.Context) (int64, error)
}

// NewLeaderboardService builds the service. store may be nil to disable
// caching; marketplace data never goes through it.
func NewLeaderboardService(
	userRepo user.Repository,
	rosterRepo rosterCounter,
	playerRepo playerCounter,
	store *cache.Store,
	logger *slog.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardService{
		userRepo:   userRepo,
		rosterRepo: rosterRepo,
		playerRepo: playerRepo,
		store:      store,
		logger:     logger,
	}
}

// List returns the top wallets holding a roster, ordered by total points
// descending, rank assigned by position starting at 1.
func (s *LeaderboardService) List(ctx context.Context, limit int) ([]user.LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.List")
	defer span.End()

	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	load := func(ctx context.Context) (any, error) {
		return s.buildEntries(ctx, limit)
	}

	if s.store == nil {
		entries, err := s.buildEntries(ctx, limit)
		if err != nil {
			return nil, err
		}
		return entries, nil
	}

	key := fmt.Sprintf("%s:%d", leaderboardCacheKey, limit)
	cached, err := s.store.GetOrLoad(ctx, key, load)
	if err != nil {
		return nil, err
	}
	entries, ok := cached.([]user.LeaderboardEntry)
	if !ok {
		return nil, fmt.Errorf("unexpected cached leaderboard type %T", cached)
	}
	return entries, nil
}

// Invalidate drops cached projections after a write that changes standings.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.store == nil {
		return
	}
	s.store.Delete(ctx, statsCacheKey)
	// Listings are keyed per limit, so drop the whole keyspace.
	s.store.DeletePrefix(ctx, leaderboardCacheKey+":")
}

// Stats returns the public counters.
func (s *LeaderboardService) Stats(ctx context.Context) (Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Stats")
	defer span.End()

	if s.store == nil {
		return s.buildStats(ctx)
	}

	cached, err := s.store.GetOrLoad(ctx, statsCacheKey, func(ctx context.Context) (any, error) {
		return s.buildStats(ctx)
	})
	if err != nil {
		return Stats{}, err
	}
	stats, ok := cached.(Stats)
	if !ok {
		return Stats{}, fmt.Errorf("unexpected cached stats type %T", cached)
	}
	return stats, nil
}

func (s *LeaderboardService) buildEntries(ctx context.Context, limit int) ([]user.LeaderboardEntry, error) {
	users, err := s.userRepo.ListTopWithRoster(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list top users: %w", err)
	}

	entries := make([]user.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, user.LeaderboardEntry{
			WalletAddress: u.WalletAddress,
			TeamName:      u.TeamName,
			TotalPoints:   u.TotalPoints,
			Rank:          i + 1,
			SubmittedAt:   u.SubmittedAt,
		})
	}

	return entries, nil
}

func (s *LeaderboardService) buildStats(ctx context.Context) (Stats, error) {
	registered, err := s.userRepo.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count users: %w", err)
	}
	submitted, err := s.rosterRepo.CountWalletsWithEntries(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count submitted wallets: %w", err)
	}
	players, err := s.playerRepo.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count players: %w", err)
	}
	totalPoints, err := s.playerRepo.SumPoints(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("sum player points: %w", err)
	}

	return Stats{
		RegisteredUsers: registered,
		SubmittedTeams:  submitted,
		CatalogPlayers:  players,
		TotalPoints:     totalPoints,
	}, nil
}
