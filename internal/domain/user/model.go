package user

import "time"

// User is one wallet's account record. TotalPoints is a materialized cache of
// the roster's summed player points, recomputed by the points service; it can
// lag behind a player-points change until the next recomputation.
type User struct {
	WalletAddress string
	TeamName      string
	SubmittedAt   *time.Time
	TotalPoints   int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LeaderboardEntry is one row of the bulk leaderboard projection. Rank is
// assigned by output position, not stored.
type LeaderboardEntry struct {
	WalletAddress string
	TeamName      string
	TotalPoints   int64
	Rank          int
	SubmittedAt   *time.Time
}
