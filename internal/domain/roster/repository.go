package roster

import (
	"context"
	"time"
)

// Repository describes roster persistence needs from use cases.
type Repository interface {
	ListByWallet(ctx context.Context, walletAddress string) ([]Entry, error)
	// Replace removes every entry for the wallet and writes the given slots,
	// atomically where the backing store supports it.
	Replace(ctx context.Context, walletAddress string, slots []Slot, now time.Time) error
	DistinctWalletsWithPlayer(ctx context.Context, playerNFTID string) ([]string, error)
	CountWalletsWithEntries(ctx context.Context) (int, error)
}
