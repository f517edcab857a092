package postgres

import (
	"time"

	"github.com/chainfoot/nft-fantasy/internal/domain/roster"
)

type rosterTableModel struct {
	WalletAddress string    `db:"wallet_address"`
	Position      string    `db:"position"`
	PlayerNFTID   string    `db:"player_nft_identifier"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (m rosterTableModel) toDomain() roster.Entry {
	return roster.Entry{
		WalletAddress: m.WalletAddress,
		Position:      roster.Position(m.Position),
		PlayerNFTID:   m.PlayerNFTID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
