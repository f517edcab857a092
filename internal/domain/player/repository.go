package player

import (
	"context"
	"time"
)

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, nftIdentifier string) (Player, bool, error)
	GetByIDs(ctx context.Context, nftIdentifiers []string) ([]Player, error)
	Create(ctx context.Context, p Player) error
	UpdatePoints(ctx context.Context, nftIdentifier string, points int64, now time.Time) (Player, error)
	Delete(ctx context.Context, nftIdentifier string) error
	Count(ctx context.Context) (int, error)
	SumPoints(ctx context.Context) (int64, error)
}
