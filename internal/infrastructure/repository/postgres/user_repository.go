package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chainfoot/nft-fantasy/internal/domain/user"
	qb "github.com/chainfoot/nft-fantasy/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByWallet(ctx context.Context, walletAddress string) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(qb.Eq("wallet_address", walletAddress)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by wallet: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *UserRepository) UpsertTeamName(ctx context.Context, walletAddress, teamName string, now time.Time) (user.User, error) {
	query, args, err := qb.InsertInto("users").
		Columns("wallet_address", "team_name", "created_at", "updated_at").
		Values(walletAddress, teamName, now, now).
		Suffix(`ON CONFLICT (wallet_address)
			DO UPDATE SET team_name = EXCLUDED.team_name, updated_at = EXCLUDED.updated_at
			RETURNING *`).
		ToSQL()
	if err != nil {
		return user.User{}, fmt.Errorf("build upsert team name query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return user.User{}, fmt.Errorf("upsert team name: %w", err)
	}

	return row.toDomain(), nil
}

func (r *UserRepository) UpsertSubmission(ctx context.Context, walletAddress, teamName string, now time.Time) error {
	query, args, err := qb.InsertInto("users").
		Columns("wallet_address", "team_name", "submitted_at", "created_at", "updated_at").
		Values(walletAddress, teamName, now, now, now).
		Suffix(`ON CONFLICT (wallet_address)
			DO UPDATE SET team_name = EXCLUDED.team_name, submitted_at = EXCLUDED.submitted_at, updated_at = EXCLUDED.updated_at`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert submission query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert submission: %w", err)
	}

	return nil
}

func (r *UserRepository) UpdateTotalPoints(ctx context.Context, walletAddress string, totalPoints int64, now time.Time) error {
	query, args, err := qb.Update("users").
		Set("total_points", totalPoints).
		Set("updated_at", now).
		Where(qb.Eq("wallet_address", walletAddress)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update total points query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update total points: %w", err)
	}

	return nil
}

func (r *UserRepository) CountWithMorePoints(ctx context.Context, totalPoints int64) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("users").
		Where(qb.Gt("total_points", totalPoints)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count users ahead query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count users ahead: %w", err)
	}

	return count, nil
}

func (r *UserRepository) ListTopWithRoster(ctx context.Context, limit int) ([]user.User, error) {
	query, args, err := qb.Select("u.*").From("users u").
		Where(qb.Expr("EXISTS (SELECT 1 FROM roster_entries re WHERE re.wallet_address = u.wallet_address)")).
		OrderBy("u.total_points DESC, u.wallet_address ASC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build leaderboard query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leaderboard users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("users").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count users query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}
