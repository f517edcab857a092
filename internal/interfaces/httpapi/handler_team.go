package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/chainfoot/nft-fantasy/internal/domain/roster"
	"github.com/chainfoot/nft-fantasy/internal/usecase"
)

type rosterSlotRequest struct {
	Position    string `json:"position" validate:"required,oneof=GK DEF1 DEF2 ATT1 ATT2"`
	PlayerNFTID string `json:"player_nft_identifier" validate:"required"`
}

type submitTeamRequest struct {
	WalletAddress string              `json:"wallet_address" validate:"required"`
	TeamName      string              `json:"team_name" validate:"required,max=50"`
	TxHash        string              `json:"tx_hash" validate:"omitempty,max=128"`
	Slots         []rosterSlotRequest `json:"slots" validate:"required,len=5,dive"`
}

type quoteSubmissionRequest struct {
	WalletAddress string              `json:"wallet_address" validate:"required"`
	Slots         []rosterSlotRequest `json:"slots" validate:"required,len=5,dive"`
}

type saveTeamNameRequest struct {
	WalletAddress string `json:"wallet_address" validate:"required"`
	TeamName      string `json:"team_name" validate:"required,max=50"`
	TxHash        string `json:"tx_hash" validate:"omitempty,max=128"`
}

type submitTeamResponse struct {
	ChangedSlots []string `json:"changed_slots"`
	TotalPoints  int64    `json:"total_points"`
	PointsStale  bool     `json:"points_stale"`
}

type teamViewResponse struct {
	WalletAddress string            `json:"wallet_address"`
	TeamName      string            `json:"team_name"`
	TotalPoints   int64             `json:"total_points"`
	Rank          int               `json:"rank"`
	SubmittedAt   *time.Time        `json:"submitted_at,omitempty"`
	Roster        []rosterEntryItem `json:"roster"`
}

type rosterEntryItem struct {
	Position    string `json:"position"`
	PlayerNFTID string `json:"player_nft_identifier"`
}

type rosterPlayerItem struct {
	Position      string `json:"position"`
	NFTIdentifier string `json:"nft_identifier"`
	Name          string `json:"name"`
	Collection    string `json:"collection"`
	Points        int64  `json:"points"`
}

type submissionQuoteResponse struct {
	ChangedSlots      []string `json:"changed_slots"`
	Fee               string   `json:"fee"`
	TeamNameCreateFee string   `json:"team_name_create_fee"`
	TeamNameEditFee   string   `json:"team_name_edit_fee"`
}

type userResponse struct {
	WalletAddress string     `json:"wallet_address"`
	TeamName      string     `json:"team_name"`
	TotalPoints   int64      `json:"total_points"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
}

func toSlots(items []rosterSlotRequest) []roster.Slot {
	slots := make([]roster.Slot, 0, len(items))
	for _, item := range items {
		slots = append(slots, roster.Slot{
			Position:    roster.Position(item.Position),
			PlayerNFTID: item.PlayerNFTID,
		})
	}
	return slots
}

func positionsToStrings(positions []roster.Position) []string {
	out := make([]string, 0, len(positions))
	for _, pos := range positions {
		out = append(out, string(pos))
	}
	return out
}

func (h *Handler) SubmitTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitTeam")
	defer span.End()

	var req submitTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.teamService.SubmitTeam(ctx, usecase.SubmitTeamInput{
		WalletAddress: req.WalletAddress,
		TeamName:      req.TeamName,
		Slots:         toSlots(req.Slots),
		TxHash:        req.TxHash,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit team failed", "wallet_address", req.WalletAddress, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.leaderboardService.Invalidate(ctx)

	writeSuccess(ctx, w, http.StatusOK, submitTeamResponse{
		ChangedSlots: positionsToStrings(result.ChangedSlots),
		TotalPoints:  result.TotalPoints,
		PointsStale:  result.PointsStale,
	})
}

func (h *Handler) QuoteSubmission(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.QuoteSubmission")
	defer span.End()

	var req quoteSubmissionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	quote, err := h.feeService.QuoteSubmission(ctx, req.WalletAddress, toSlots(req.Slots))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.feeService.EnsureAffordable(ctx, req.WalletAddress, quote.Fee); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, submissionQuoteResponse{
		ChangedSlots:      positionsToStrings(quote.ChangedSlots),
		Fee:               quote.Fee.String(),
		TeamNameCreateFee: h.feeService.TeamNameCreateFee().String(),
		TeamNameEditFee:   h.feeService.TeamNameEditFee().String(),
	})
}

func (h *Handler) SaveTeamName(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveTeamName")
	defer span.End()

	var req saveTeamNameRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.teamService.SaveTeamName(ctx, req.WalletAddress, req.TeamName, req.TxHash)
	if err != nil {
		h.logger.WarnContext(ctx, "save team name failed", "wallet_address", req.WalletAddress, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userResponse{
		WalletAddress: saved.WalletAddress,
		TeamName:      saved.TeamName,
		TotalPoints:   saved.TotalPoints,
		SubmittedAt:   saved.SubmittedAt,
	})
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	wallet, err := walletFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.teamService.GetTeam(ctx, wallet)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries := make([]rosterEntryItem, 0, len(view.Entries))
	for _, entry := range view.Entries {
		entries = append(entries, rosterEntryItem{
			Position:    string(entry.Position),
			PlayerNFTID: entry.PlayerNFTID,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, teamViewResponse{
		WalletAddress: view.User.WalletAddress,
		TeamName:      view.User.TeamName,
		TotalPoints:   view.User.TotalPoints,
		Rank:          view.Rank,
		SubmittedAt:   view.User.SubmittedAt,
		Roster:        entries,
	})
}

func (h *Handler) ListRosterPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRosterPlayers")
	defer span.End()

	wallet, err := walletFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	byPosition, err := h.teamService.ListRosterPlayers(ctx, wallet)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]rosterPlayerItem, 0, len(byPosition))
	for _, pos := range roster.RequiredPositions() {
		p, ok := byPosition[pos]
		if !ok {
			continue
		}
		items = append(items, rosterPlayerItem{
			Position:      string(pos),
			NFTIdentifier: p.NFTIdentifier,
			Name:          p.Name,
			Collection:    p.Collection,
			Points:        p.Points,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, errInvalidLimit)
			return
		}
		limit = parsed
	}

	entries, err := h.leaderboardService.List(ctx, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, leaderboardEntryItem{
			Rank:          entry.Rank,
			WalletAddress: entry.WalletAddress,
			TeamName:      entry.TeamName,
			TotalPoints:   entry.TotalPoints,
			SubmittedAt:   entry.SubmittedAt,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStats")
	defer span.End()

	stats, err := h.leaderboardService.Stats(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsResponse{
		RegisteredUsers: stats.RegisteredUsers,
		SubmittedTeams:  stats.SubmittedTeams,
		CatalogPlayers:  stats.CatalogPlayers,
		TotalPoints:     stats.TotalPoints,
	})
}

type leaderboardEntryItem struct {
	Rank          int        `json:"rank"`
	WalletAddress string     `json:"wallet_address"`
	TeamName      string     `json:"team_name"`
	TotalPoints   int64      `json:"total_points"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
}

type statsResponse struct {
	RegisteredUsers int   `json:"registered_users"`
	SubmittedTeams  int   `json:"submitted_teams"`
	CatalogPlayers  int   `json:"catalog_players"`
	TotalPoints     int64 `json:"total_points"`
}
