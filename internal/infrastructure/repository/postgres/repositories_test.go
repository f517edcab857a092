package postgres

import (
	"github.com/chainfoot/nft-fantasy/internal/domain/player"
	"github.com/chainfoot/nft-fantasy/internal/domain/roster"
	"github.com/chainfoot/nft-fantasy/internal/domain/user"
)

var (
	_ user.Repository   = (*UserRepository)(nil)
	_ roster.Repository = (*RosterRepository)(nil)
	_ player.Repository = (*PlayerRepository)(nil)
)
