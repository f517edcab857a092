package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/chainfoot/nft-fantasy/internal/usecase"
)

type Handler struct {
	teamService        *usecase.TeamService
	feeService         *usecase.FeeService
	adminService       *usecase.AdminService
	leaderboardService *usecase.LeaderboardService
	marketService      *usecase.MarketService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	feeService *usecase.FeeService,
	adminService *usecase.AdminService,
	leaderboardService *usecase.LeaderboardService,
	marketService *usecase.MarketService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		teamService:        teamService,
		feeService:         feeService,
		adminService:       adminService,
		leaderboardService: leaderboardService,
		marketService:      marketService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, target any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, target)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

var errInvalidLimit = fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput)

func walletFromQuery(r *http.Request) (string, error) {
	wallet := strings.TrimSpace(r.URL.Query().Get("wallet_address"))
	if wallet == "" {
		return "", fmt.Errorf("%w: wallet_address query parameter is required", usecase.ErrInvalidInput)
	}
	return wallet, nil
}
