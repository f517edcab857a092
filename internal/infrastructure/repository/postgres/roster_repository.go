package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chainfoot/nft-fantasy/internal/domain/roster"
	qb "github.com/chainfoot/nft-fantasy/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListByWallet(ctx context.Context, walletAddress string) ([]roster.Entry, error) {
	query, args, err := qb.Select("*").From("roster_entries").
		Where(qb.Eq("wallet_address", walletAddress)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster query: %w", err)
	}

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster entries: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// Replace swaps the wallet's roster in one transaction so readers never see a
// partially submitted team.
func (r *RosterRepository) Replace(ctx context.Context, walletAddress string, slots []roster.Slot, now time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin roster replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("roster_entries").
		Where(qb.Eq("wallet_address", walletAddress)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete roster query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete roster entries: %w", err)
	}

	insert := qb.InsertInto("roster_entries").
		Columns("wallet_address", "position", "player_nft_identifier", "created_at", "updated_at")
	for _, slot := range slots {
		insert = insert.Values(walletAddress, string(slot.Position), slot.PlayerNFTID, now, now)
	}
	insertQuery, insertArgs, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert roster query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("insert roster entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster replace: %w", err)
	}

	return nil
}

func (r *RosterRepository) DistinctWalletsWithPlayer(ctx context.Context, playerNFTID string) ([]string, error) {
	query, args, err := qb.Select("DISTINCT wallet_address").From("roster_entries").
		Where(qb.Eq("player_nft_identifier", playerNFTID)).
		OrderBy("wallet_address").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build distinct wallets query: %w", err)
	}

	var wallets []string
	if err := r.db.SelectContext(ctx, &wallets, query, args...); err != nil {
		return nil, fmt.Errorf("select wallets with player: %w", err)
	}

	return wallets, nil
}

func (r *RosterRepository) CountWalletsWithEntries(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(DISTINCT wallet_address)").From("roster_entries").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count wallets query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count wallets with entries: %w", err)
	}

	return count, nil
}
