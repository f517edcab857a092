package postgres

import (
	"time"

	"github.com/chainfoot/nft-fantasy/internal/domain/user"
)

type userTableModel struct {
	WalletAddress string     `db:"wallet_address"`
	TeamName      *string    `db:"team_name"`
	SubmittedAt   *time.Time `db:"submitted_at"`
	TotalPoints   int64      `db:"total_points"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (m userTableModel) toDomain() user.User {
	out := user.User{
		WalletAddress: m.WalletAddress,
		SubmittedAt:   m.SubmittedAt,
		TotalPoints:   m.TotalPoints,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.TeamName != nil {
		out.TeamName = *m.TeamName
	}
	return out
}
