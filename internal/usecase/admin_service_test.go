package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/chainfoot/nft-fantasy/internal/domain/player"
	"github.com/chainfoot/nft-fantasy/internal/domain/user"
	"github.com/chainfoot/nft-fantasy/internal/infrastructure/repository/memory"
)

type adminFixture struct {
	service    *AdminService
	userRepo   *memory.UserRepository
	playerRepo *memory.PlayerRepository
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	playerRepo := memory.NewPlayerRepository([]player.Player{
		{NFTIdentifier: "FOOT-01", Points: 10},
		{NFTIdentifier: "FOOT-02", Points: 5},
		{NFTIdentifier: "FOOT-03", Points: 0},
		{NFTIdentifier: "FOOT-04", Points: 0},
		{NFTIdentifier: "FOOT-05", Points: 0},
	})
	rosterRepo := memory.NewRosterRepository(append(
		fullRoster("erd1abc", [5]string{"FOOT-01", "FOOT-02", "FOOT-03", "FOOT-04", "FOOT-05"}),
		fullRoster("erd1def", [5]string{"FOOT-01", "FOOT-03", "FOOT-04", "FOOT-05", "FOOT-02"})...,
	))
	userRepo := memory.NewUserRepository([]user.User{
		{WalletAddress: "erd1abc", TotalPoints: 15},
		{WalletAddress: "erd1def", TotalPoints: 15},
		{WalletAddress: "erd1empty"},
	}, rosterRepo)

	logger := discardLogger()
	points := NewPointsService(userRepo, rosterRepo, playerRepo, logger)
	service := NewAdminService(playerRepo, rosterRepo, points, logger)
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }
	points.now = service.now

	return &adminFixture{service: service, userRepo: userRepo, playerRepo: playerRepo}
}

func TestAdminService_AdjustPlayerPoints_FansOutToRosteringWallets(t *testing.T) {
	fx := newAdminFixture(t)

	result, err := fx.service.AdjustPlayerPoints(t.Context(), AdjustPointsInput{
		PlayerNFTID: "FOOT-01",
		Delta:       2,
	})
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if result.Player.Points != 12 {
		t.Fatalf("expected player at 12, got %d", result.Player.Points)
	}
	if result.WalletsTotal != 2 || result.WalletsUpdated != 2 || result.WalletsFailed != 0 {
		t.Fatalf("unexpected fan-out result %+v", result)
	}

	for _, wallet := range []string{"erd1abc", "erd1def"} {
		account, _, err := fx.userRepo.GetByWallet(t.Context(), wallet)
		if err != nil {
			t.Fatalf("get user: %v", err)
		}
		if account.TotalPoints != 17 {
			t.Fatalf("expected %s at 17, got %d", wallet, account.TotalPoints)
		}
	}

	untouched, _, _ := fx.userRepo.GetByWallet(t.Context(), "erd1empty")
	if untouched.TotalPoints != 0 {
		t.Fatalf("expected unaffected wallet untouched, got %d", untouched.TotalPoints)
	}
}

func TestAdminService_AdjustPlayerPoints_ClampsAtZero(t *testing.T) {
	fx := newAdminFixture(t)

	result, err := fx.service.AdjustPlayerPoints(t.Context(), AdjustPointsInput{
		PlayerNFTID: "FOOT-02",
		Delta:       -100,
	})
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if result.Player.Points != 0 {
		t.Fatalf("expected clamp at zero, got %d", result.Player.Points)
	}

	account, _, _ := fx.userRepo.GetByWallet(t.Context(), "erd1abc")
	if account.TotalPoints != 10 {
		t.Fatalf("expected total 10 after clamp, got %d", account.TotalPoints)
	}
}

func TestAdminService_AdjustPlayerPoints_Validation(t *testing.T) {
	fx := newAdminFixture(t)

	if _, err := fx.service.AdjustPlayerPoints(t.Context(), AdjustPointsInput{PlayerNFTID: "FOOT-01"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero delta, got %v", err)
	}
	if _, err := fx.service.AdjustPlayerPoints(t.Context(), AdjustPointsInput{PlayerNFTID: "FOOT-99", Delta: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdminService_CreatePlayer(t *testing.T) {
	fx := newAdminFixture(t)

	created, err := fx.service.CreatePlayer(t.Context(), "FOOT-06", "New Signing", "FOOT-9e4e8c")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Points != 0 {
		t.Fatalf("expected new player at zero points, got %d", created.Points)
	}

	if _, err := fx.service.CreatePlayer(t.Context(), "FOOT-06", "Dup", "FOOT-9e4e8c"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for duplicate, got %v", err)
	}
}

func TestAdminService_DeletePlayer(t *testing.T) {
	fx := newAdminFixture(t)

	if err := fx.service.DeletePlayer(t.Context(), "FOOT-05"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := fx.service.DeletePlayer(t.Context(), "FOOT-05"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
