package user

import (
	"context"
	"time"
)

// Repository describes user persistence needs from use cases.
type Repository interface {
	GetByWallet(ctx context.Context, walletAddress string) (User, bool, error)
	// UpsertTeamName creates the user on first save and updates the team name
	// in place afterwards. Conflict target is the wallet address.
	UpsertTeamName(ctx context.Context, walletAddress, teamName string, now time.Time) (User, error)
	// UpsertSubmission is the submission-path upsert: team name plus the
	// submitted-at marker.
	UpsertSubmission(ctx context.Context, walletAddress, teamName string, now time.Time) error
	UpdateTotalPoints(ctx context.Context, walletAddress string, totalPoints int64, now time.Time) error
	// CountWithMorePoints counts users across the whole table with strictly
	// greater total points. The per-wallet rank formula depends on it.
	CountWithMorePoints(ctx context.Context, totalPoints int64) (int, error)
	// ListTopWithRoster returns users holding at least one roster entry,
	// ordered by total points descending.
	ListTopWithRoster(ctx context.Context, limit int) ([]User, error)
	Count(ctx context.Context) (int, error)
}
