package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chainfoot/nft-fantasy/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	for _, p := range players {
		items[p.NFTIdentifier] = p
	}
	return &PlayerRepository{items: items}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NFTIdentifier < out[j].NFTIdentifier })

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, nftID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[nftID]
	if !ok {
		return player.Player{}, false, nil
	}
	return p, true, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, nftIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(nftIDs))
	seen := make(map[string]struct{}, len(nftIDs))
	for _, id := range nftIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := r.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[p.NFTIdentifier]; ok {
		return fmt.Errorf("player %s: %w", p.NFTIdentifier, player.ErrAlreadyExists)
	}
	r.items[p.NFTIdentifier] = p

	return nil
}

func (r *PlayerRepository) UpdatePoints(_ context.Context, nftID string, points int64, now time.Time) (player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[nftID]
	if !ok {
		return player.Player{}, fmt.Errorf("player %s not found", nftID)
	}
	p.Points = points
	p.UpdatedAt = now
	r.items[nftID] = p

	return p, nil
}

func (r *PlayerRepository) Delete(_ context.Context, nftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, nftID)
	return nil
}

func (r *PlayerRepository) SumPoints(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, p := range r.items {
		total += p.Points
	}

	return total, nil
}

func (r *PlayerRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}
