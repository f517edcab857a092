package memory

import (
	"time"

	"github.com/chainfoot/nft-fantasy/internal/domain/player"
)

const SeedCollection = "FOOT-9e4e8c"

// SeedPlayers is the in-memory catalog used when the service runs without a
// database (local development, demos).
func SeedPlayers() []player.Player {
	created := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	mk := func(nonce, name string, points int64) player.Player {
		return player.Player{
			NFTIdentifier: SeedCollection + "-" + nonce,
			Name:          name,
			Collection:    SeedCollection,
			Points:        points,
			CreatedAt:     created,
			UpdatedAt:     created,
		}
	}

	return []player.Player{
		mk("01", "Iron Keeper", 12),
		mk("02", "Stone Wall", 9),
		mk("03", "Quick Sweeper", 7),
		mk("04", "Night Striker", 15),
		mk("05", "Silver Finisher", 11),
		mk("06", "Golden Glove", 8),
		mk("07", "Back Anchor", 6),
		mk("08", "Side Runner", 10),
		mk("09", "Box Poacher", 14),
		mk("0a", "Long Ranger", 5),
	}
}
