package postgres

import (
	"time"

	"github.com/chainfoot/nft-fantasy/internal/domain/player"
)

type playerTableModel struct {
	NFTIdentifier string    `db:"nft_identifier"`
	Name          string    `db:"name"`
	Collection    string    `db:"collection"`
	Points        int64     `db:"points"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		NFTIdentifier: m.NFTIdentifier,
		Name:          m.Name,
		Collection:    m.Collection,
		Points:        m.Points,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
