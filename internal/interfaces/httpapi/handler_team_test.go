package httpapi

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/chainfoot/nft-fantasy/internal/domain/market"
	"github.com/chainfoot/nft-fantasy/internal/domain/player"
	"github.com/chainfoot/nft-fantasy/internal/infrastructure/repository/memory"
	"github.com/chainfoot/nft-fantasy/internal/usecase"
)

const handlerTestReceiver = "erd1u5p4njlv9rxvzvmhsxjypa69t2dran33x9ttpx0ghft7tt35wpfsxgynw4"

// stubChain confirms every transaction instantly with the configured
// receiver and value.
type stubChain struct {
	value *big.Int
}

func (s *stubChain) GetTransaction(_ context.Context, hash string) (usecase.ChainTransaction, error) {
	return usecase.ChainTransaction{
		Hash:     hash,
		Receiver: handlerTestReceiver,
		Value:    s.value,
		Status:   usecase.TxStatusSuccess,
	}, nil
}

func (s *stubChain) GetAccountBalance(context.Context, string) (*big.Int, error) {
	return big.NewInt(1_000_000), nil
}

func (s *stubChain) GetOffers(context.Context) ([]market.Offer, error) {
	return nil, nil
}

func (s *stubChain) GetOfferAvailability(context.Context, uint64) (uint32, error) {
	return 0, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	chain := &stubChain{value: big.NewInt(1000)}

	playerRepo := memory.NewPlayerRepository([]player.Player{
		{NFTIdentifier: "FOOT-01", Name: "Iron Keeper", Collection: "FOOT-9e4e8c", Points: 10},
		{NFTIdentifier: "FOOT-02", Name: "Stone Wall", Collection: "FOOT-9e4e8c", Points: 5},
		{NFTIdentifier: "FOOT-03", Name: "Quick Sweeper", Collection: "FOOT-9e4e8c"},
		{NFTIdentifier: "FOOT-04", Name: "Night Striker", Collection: "FOOT-9e4e8c"},
		{NFTIdentifier: "FOOT-05", Name: "Silver Finisher", Collection: "FOOT-9e4e8c"},
	})
	rosterRepo := memory.NewRosterRepository(nil)
	userRepo := memory.NewUserRepository(nil, rosterRepo)

	points := usecase.NewPointsService(userRepo, rosterRepo, playerRepo, logger)
	fees := usecase.NewFeeService(rosterRepo, chain, usecase.FeeConfig{
		PerSlotFee:        big.NewInt(200),
		TeamNameCreateFee: big.NewInt(1000),
		TeamNameEditFee:   big.NewInt(5000),
		GasReserve:        big.NewInt(50),
	}, logger)
	payments := usecase.NewPaymentService(chain, usecase.PaymentConfig{
		ReceiverAddress: handlerTestReceiver,
		PollInterval:    time.Millisecond,
		MaxAttempts:     2,
	}, logger)
	teamService := usecase.NewTeamService(userRepo, rosterRepo, playerRepo, fees, payments, points, logger)
	adminService := usecase.NewAdminService(playerRepo, rosterRepo, points, logger)
	leaderboardService := usecase.NewLeaderboardService(userRepo, rosterRepo, playerRepo, nil, logger)
	marketService := usecase.NewMarketService(chain, "FOOT-9e4e8c", logger)

	handler := NewHandler(teamService, fees, adminService, leaderboardService, marketService, logger)

	return NewRouter(handler, logger, []string{"*"}, "admin-secret")
}

func TestSubmitTeamEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"wallet_address": "erd1abc",
		"team_name": "Chain Breakers",
		"tx_hash": "tx1",
		"slots": [
			{"position": "GK", "player_nft_identifier": "FOOT-01"},
			{"position": "DEF1", "player_nft_identifier": "FOOT-02"},
			{"position": "DEF2", "player_nft_identifier": "FOOT-03"},
			{"position": "ATT1", "player_nft_identifier": "FOOT-04"},
			{"position": "ATT2", "player_nft_identifier": "FOOT-05"}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/v1/teams/submit", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data submitTeamResponse `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.ChangedSlots) != 5 {
		t.Fatalf("expected 5 changed slots, got %v", envelope.Data.ChangedSlots)
	}
	if envelope.Data.TotalPoints != 15 {
		t.Fatalf("expected total 15, got %d", envelope.Data.TotalPoints)
	}

	// The team page now reflects the submission.
	getReq := httptest.NewRequest(http.MethodGet, "/v1/teams?wallet_address=erd1abc", nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getRec.Code)
	}
	var teamEnvelope struct {
		Data teamViewResponse `json:"data"`
	}
	if err := sonic.Unmarshal(getRec.Body.Bytes(), &teamEnvelope); err != nil {
		t.Fatalf("decode team response: %v", err)
	}
	if teamEnvelope.Data.TeamName != "Chain Breakers" || teamEnvelope.Data.Rank != 1 {
		t.Fatalf("unexpected team view %+v", teamEnvelope.Data)
	}
	if len(teamEnvelope.Data.Roster) != 5 {
		t.Fatalf("expected 5 roster entries, got %d", len(teamEnvelope.Data.Roster))
	}
}

func TestSubmitTeam_RejectsMalformedPayload(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"unknown field", `{"wallet_address":"erd1abc","team_name":"x","nope":1,"slots":[]}`},
		{"wrong slot count", `{"wallet_address":"erd1abc","team_name":"x","slots":[{"position":"GK","player_nft_identifier":"FOOT-01"}]}`},
		{"bad position", `{"wallet_address":"erd1abc","team_name":"x","slots":[
			{"position":"MID1","player_nft_identifier":"FOOT-01"},
			{"position":"DEF1","player_nft_identifier":"FOOT-02"},
			{"position":"DEF2","player_nft_identifier":"FOOT-03"},
			{"position":"ATT1","player_nft_identifier":"FOOT-04"},
			{"position":"ATT2","player_nft_identifier":"FOOT-05"}
		]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/teams/submit", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetTeam_UnknownWallet(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/teams?wallet_address=erd1ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/players", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	authed := httptest.NewRequest(http.MethodGet, "/v1/admin/players", nil)
	authed.Header.Set("X-Admin-Token", "admin-secret")
	authedRec := httptest.NewRecorder()
	router.ServeHTTP(authedRec, authed)
	if authedRec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", authedRec.Code)
	}
}
