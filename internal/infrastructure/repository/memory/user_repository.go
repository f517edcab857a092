package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chainfoot/nft-fantasy/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.User

	// rosterRepo answers "does this wallet hold roster entries" for the
	// leaderboard projection. Optional; nil means every user qualifies.
	rosterRepo *RosterRepository
}

func NewUserRepository(users []user.User, rosterRepo *RosterRepository) *UserRepository {
	items := make(map[string]user.User, len(users))
	for _, u := range users {
		items[u.WalletAddress] = u
	}
	return &UserRepository{items: items, rosterRepo: rosterRepo}
}

func (r *UserRepository) GetByWallet(_ context.Context, walletAddress string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[walletAddress]
	if !ok {
		return user.User{}, false, nil
	}
	return u, true, nil
}

func (r *UserRepository) UpsertTeamName(_ context.Context, walletAddress, teamName string, now time.Time) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[walletAddress]
	if !ok {
		u = user.User{WalletAddress: walletAddress, CreatedAt: now}
	}
	u.TeamName = teamName
	u.UpdatedAt = now
	r.items[walletAddress] = u

	return u, nil
}

func (r *UserRepository) UpsertSubmission(_ context.Context, walletAddress, teamName string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[walletAddress]
	if !ok {
		u = user.User{WalletAddress: walletAddress, CreatedAt: now}
	}
	u.TeamName = teamName
	submittedAt := now
	u.SubmittedAt = &submittedAt
	u.UpdatedAt = now
	r.items[walletAddress] = u

	return nil
}

func (r *UserRepository) UpdateTotalPoints(_ context.Context, walletAddress string, totalPoints int64, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[walletAddress]
	if !ok {
		return nil
	}
	u.TotalPoints = totalPoints
	u.UpdatedAt = now
	r.items[walletAddress] = u

	return nil
}

func (r *UserRepository) CountWithMorePoints(_ context.Context, totalPoints int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, u := range r.items {
		if u.TotalPoints > totalPoints {
			count++
		}
	}
	return count, nil
}

func (r *UserRepository) ListTopWithRoster(ctx context.Context, limit int) ([]user.User, error) {
	r.mu.RLock()
	out := make([]user.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, u)
	}
	r.mu.RUnlock()

	if r.rosterRepo != nil {
		filtered := out[:0]
		for _, u := range out {
			entries, err := r.rosterRepo.ListByWallet(ctx, u.WalletAddress)
			if err != nil {
				return nil, err
			}
			if len(entries) > 0 {
				filtered = append(filtered, u)
			}
		}
		out = filtered
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return out[i].WalletAddress < out[j].WalletAddress
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}
