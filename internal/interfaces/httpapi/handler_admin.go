package httpapi

import (
	"net/http"
	"time"

	"github.com/chainfoot/nft-fantasy/internal/domain/player"
	"github.com/chainfoot/nft-fantasy/internal/usecase"
)

type createPlayerRequest struct {
	NFTIdentifier string `json:"nft_identifier" validate:"required,max=64"`
	Name          string `json:"name" validate:"required,max=100"`
	Collection    string `json:"collection" validate:"required,max=32"`
}

type adjustPointsRequest struct {
	NFTIdentifier string `json:"nft_identifier" validate:"required,max=64"`
	Delta         int64  `json:"points_change" validate:"required"`
}

type playerItem struct {
	NFTIdentifier string    `json:"nft_identifier"`
	Name          string    `json:"name"`
	Collection    string    `json:"collection"`
	Points        int64     `json:"points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type adjustPointsResponse struct {
	Player         playerItem `json:"player"`
	WalletsTotal   int        `json:"wallets_total"`
	WalletsUpdated int        `json:"wallets_updated"`
	WalletsFailed  int        `json:"wallets_failed"`
}

func playerToItem(p player.Player) playerItem {
	return playerItem{
		NFTIdentifier: p.NFTIdentifier,
		Name:          p.Name,
		Collection:    p.Collection,
		Points:        p.Points,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.adminService.ListPlayers(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]playerItem, 0, len(players))
	for _, p := range players {
		items = append(items, playerToItem(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.adminService.CreatePlayer(ctx, req.NFTIdentifier, req.Name, req.Collection)
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "nft_identifier", req.NFTIdentifier, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToItem(created))
}

func (h *Handler) AdjustPlayerPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdjustPlayerPoints")
	defer span.End()

	var req adjustPointsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.adminService.AdjustPlayerPoints(ctx, usecase.AdjustPointsInput{
		PlayerNFTID: req.NFTIdentifier,
		Delta:       req.Delta,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "adjust player points failed", "nft_identifier", req.NFTIdentifier, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.leaderboardService.Invalidate(ctx)

	writeSuccess(ctx, w, http.StatusOK, adjustPointsResponse{
		Player:         playerToItem(result.Player),
		WalletsTotal:   result.WalletsTotal,
		WalletsUpdated: result.WalletsUpdated,
		WalletsFailed:  result.WalletsFailed,
	})
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	nftID := r.PathValue("nftID")
	if err := h.adminService.DeletePlayer(ctx, nftID); err != nil {
		writeError(ctx, w, err)
		return
	}

	h.leaderboardService.Invalidate(ctx)

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": nftID})
}
