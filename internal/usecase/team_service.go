package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chainfoot/nft-fantasy/internal/domain/player"
	"github.com/chainfoot/nft-fantasy/internal/domain/roster"
	"github.com/chainfoot/nft-fantasy/internal/domain/user"
	"github.com/chainfoot/nft-fantasy/internal/platform/locking"
)

const maxTeamNameLength = 50

// SubmitTeamInput is the incoming payload for a roster submission.
type SubmitTeamInput struct {
	WalletAddress string
	TeamName      string
	Slots         []roster.Slot
	// TxHash references the on-chain fee payment. Required whenever the
	// submission changes at least one slot.
	TxHash string
}

// SubmitTeamResult reports what the submission changed and the wallet's new
// total. TotalPoints is best effort: a failed recalculation leaves the stale
// value and sets PointsStale.
type SubmitTeamResult struct {
	ChangedSlots []roster.Position
	TotalPoints  int64
	PointsStale  bool
}

// TeamView is the wallet's team as shown on the team page: account record,
// roster entries, and the wallet's live rank.
type TeamView struct {
	User    user.User
	Entries []roster.Entry
	Rank    int
}

// TeamService owns the submission workflow: validate, price, confirm the fee
// payment, replace the roster, refresh the total. Submissions for one wallet
// are serialized so concurrent requests cannot interleave their
// delete/insert pairs.
type TeamService struct {
	userRepo   user.Repository
	rosterRepo roster.Repository
	playerRepo player.Repository
	fees       *FeeService
	payments   *PaymentService
	points     *PointsService
	locks      *locking.KeyedMutex
	logger     *slog.Logger
	now        func() time.Time
}

func NewTeamService(
	userRepo user.Repository,
	rosterRepo roster.Repository,
	playerRepo player.Repository,
	fees *FeeService,
	payments *PaymentService,
	points *PointsService,
	logger *slog.Logger,
) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TeamService{
		userRepo:   userRepo,
		rosterRepo: rosterRepo,
		playerRepo: playerRepo,
		fees:       fees,
		payments:   payments,
		points:     points,
		locks:      locking.NewKeyedMutex(),
		logger:     logger,
		now:        time.Now,
	}
}

// SubmitTeam validates and prices the submission, waits for the fee payment
// to confirm, then replaces the roster atomically. The roster write happens
// only after the payment is verified, so an unpaid submission never lands.
func (s *TeamService) SubmitTeam(ctx context.Context, input SubmitTeamInput) (SubmitTeamResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SubmitTeam")
	defer span.End()

	walletAddress := strings.TrimSpace(input.WalletAddress)
	if walletAddress == "" {
		return SubmitTeamResult{}, fmt.Errorf("%w: wallet address is required", ErrInvalidInput)
	}
	teamName := strings.TrimSpace(input.TeamName)
	if teamName == "" {
		return SubmitTeamResult{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if len(teamName) > maxTeamNameLength {
		return SubmitTeamResult{}, fmt.Errorf("%w: team name exceeds %d characters", ErrInvalidInput, maxTeamNameLength)
	}
	if err := roster.ValidateSlots(input.Slots); err != nil {
		return SubmitTeamResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	unlock := s.locks.Lock(walletAddress)
	defer unlock()

	quote, err := s.fees.QuoteSubmission(ctx, walletAddress, input.Slots)
	if err != nil {
		return SubmitTeamResult{}, err
	}

	if quote.Fee.Sign() > 0 {
		txHash := strings.TrimSpace(input.TxHash)
		if txHash == "" {
			return SubmitTeamResult{}, fmt.Errorf("%w: transaction hash is required for a paid submission", ErrInvalidInput)
		}
		if err := s.payments.Confirm(ctx, txHash, quote.Fee); err != nil {
			return SubmitTeamResult{}, err
		}
	}

	now := s.now()
	if err := s.userRepo.UpsertSubmission(ctx, walletAddress, teamName, now); err != nil {
		return SubmitTeamResult{}, fmt.Errorf("upsert user submission: %w", err)
	}
	if err := s.rosterRepo.Replace(ctx, walletAddress, input.Slots, now); err != nil {
		return SubmitTeamResult{}, fmt.Errorf("replace roster: %w", err)
	}

	result := SubmitTeamResult{ChangedSlots: quote.ChangedSlots}

	total, err := s.points.RecalculateForWallet(ctx, walletAddress)
	if err != nil {
		// The submission already succeeded; the total catches up on the
		// next recalculation.
		result.PointsStale = true
		s.logger.ErrorContext(ctx, "points recalculation failed after submission",
			"wallet_address", walletAddress,
			"error", err,
		)
	} else {
		result.TotalPoints = total
	}

	s.logger.InfoContext(ctx, "team submitted",
		"wallet_address", walletAddress,
		"changed_slots", len(quote.ChangedSlots),
		"fee", quote.Fee.String(),
	)

	return result, nil
}

// SaveTeamName creates or renames the wallet's team. Renames are paid; saving
// the identical name is a no-op and free.
func (s *TeamService) SaveTeamName(ctx context.Context, walletAddress, teamName, txHash string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SaveTeamName")
	defer span.End()

	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return user.User{}, fmt.Errorf("%w: wallet address is required", ErrInvalidInput)
	}
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return user.User{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if len(teamName) > maxTeamNameLength {
		return user.User{}, fmt.Errorf("%w: team name exceeds %d characters", ErrInvalidInput, maxTeamNameLength)
	}

	unlock := s.locks.Lock(walletAddress)
	defer unlock()

	existing, found, err := s.userRepo.GetByWallet(ctx, walletAddress)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if found && existing.TeamName == teamName {
		return existing, nil
	}

	// First naming charges the creation fee, later renames the edit fee.
	fee := s.fees.TeamNameCreateFee()
	if found && existing.TeamName != "" {
		fee = s.fees.TeamNameEditFee()
	}
	if fee.Sign() > 0 {
		txHash = strings.TrimSpace(txHash)
		if txHash == "" {
			return user.User{}, fmt.Errorf("%w: transaction hash is required to set a team name", ErrInvalidInput)
		}
		if err := s.payments.Confirm(ctx, txHash, fee); err != nil {
			return user.User{}, err
		}
	}

	saved, err := s.userRepo.UpsertTeamName(ctx, walletAddress, teamName, s.now())
	if err != nil {
		return user.User{}, fmt.Errorf("upsert team name: %w", err)
	}

	s.logger.InfoContext(ctx, "team name saved", "wallet_address", walletAddress)

	return saved, nil
}

// GetTeam returns the wallet's account, roster, and rank. The rank counts
// every registered user with strictly more points, rostered or not.
func (s *TeamService) GetTeam(ctx context.Context, walletAddress string) (TeamView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return TeamView{}, fmt.Errorf("%w: wallet address is required", ErrInvalidInput)
	}

	account, found, err := s.userRepo.GetByWallet(ctx, walletAddress)
	if err != nil {
		return TeamView{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return TeamView{}, fmt.Errorf("%w: wallet=%s", ErrNotFound, walletAddress)
	}

	entries, err := s.rosterRepo.ListByWallet(ctx, walletAddress)
	if err != nil {
		return TeamView{}, fmt.Errorf("list roster entries: %w", err)
	}

	ahead, err := s.userRepo.CountWithMorePoints(ctx, account.TotalPoints)
	if err != nil {
		return TeamView{}, fmt.Errorf("count users ahead: %w", err)
	}

	return TeamView{User: account, Entries: entries, Rank: ahead + 1}, nil
}

// ListRosterPlayers resolves the wallet's roster entries to player records,
// keyed by position. Positions whose player left the catalog are omitted.
func (s *TeamService) ListRosterPlayers(ctx context.Context, walletAddress string) (map[roster.Position]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListRosterPlayers")
	defer span.End()

	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return nil, fmt.Errorf("%w: wallet address is required", ErrInvalidInput)
	}

	entries, err := s.rosterRepo.ListByWallet(ctx, walletAddress)
	if err != nil {
		return nil, fmt.Errorf("list roster entries: %w", err)
	}
	if len(entries) == 0 {
		return map[roster.Position]player.Player{}, nil
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.PlayerNFTID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get roster players: %w", err)
	}

	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.NFTIdentifier] = p
	}

	out := make(map[roster.Position]player.Player, len(entries))
	for _, entry := range entries {
		if p, ok := byID[entry.PlayerNFTID]; ok {
			out[entry.Position] = p
		}
	}

	return out, nil
}
