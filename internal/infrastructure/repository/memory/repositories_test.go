package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/chainfoot/nft-fantasy/internal/domain/player"
	"github.com/chainfoot/nft-fantasy/internal/domain/roster"
	"github.com/chainfoot/nft-fantasy/internal/domain/user"
)

var (
	_ user.Repository   = (*UserRepository)(nil)
	_ roster.Repository = (*RosterRepository)(nil)
	_ player.Repository = (*PlayerRepository)(nil)
)

func TestPlayerRepository_CreateRejectsDuplicate(t *testing.T) {
	repo := NewPlayerRepository(nil)

	p := player.Player{
		NFTIdentifier: "FOOT-9e4e8c-01",
		Name:          "Testa",
		Collection:    "FOOT-9e4e8c",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := repo.Create(t.Context(), p); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if err := repo.Create(t.Context(), p); !errors.Is(err, player.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	got, ok, err := repo.GetByID(t.Context(), p.NFTIdentifier)
	if err != nil || !ok {
		t.Fatalf("get created player: ok=%v err=%v", ok, err)
	}
	if got.Name != "Testa" {
		t.Fatalf("unexpected player name %q", got.Name)
	}
}
