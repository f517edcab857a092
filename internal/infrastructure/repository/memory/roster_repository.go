package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chainfoot/nft-fantasy/internal/domain/roster"
)

type RosterRepository struct {
	mu    sync.RWMutex
	items map[string][]roster.Entry
}

func NewRosterRepository(entries []roster.Entry) *RosterRepository {
	items := make(map[string][]roster.Entry)
	for _, e := range entries {
		items[e.WalletAddress] = append(items[e.WalletAddress], e)
	}
	return &RosterRepository{items: items}
}

func (r *RosterRepository) ListByWallet(_ context.Context, walletAddress string) ([]roster.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.items[walletAddress]
	out := make([]roster.Entry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })

	return out, nil
}

func (r *RosterRepository) Replace(_ context.Context, walletAddress string, slots []roster.Slot, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]roster.Entry, 0, len(slots))
	for _, slot := range slots {
		entries = append(entries, roster.Entry{
			WalletAddress: walletAddress,
			Position:      slot.Position,
			PlayerNFTID:   slot.PlayerNFTID,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	r.items[walletAddress] = entries

	return nil
}

func (r *RosterRepository) DistinctWalletsWithPlayer(_ context.Context, playerNFTID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wallets := make([]string, 0)
	for wallet, entries := range r.items {
		for _, e := range entries {
			if e.PlayerNFTID == playerNFTID {
				wallets = append(wallets, wallet)
				break
			}
		}
	}
	sort.Strings(wallets)

	return wallets, nil
}

func (r *RosterRepository) CountWalletsWithEntries(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, entries := range r.items {
		if len(entries) > 0 {
			count++
		}
	}
	return count, nil
}
