package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chainfoot/nft-fantasy/internal/domain/player"
	qb "github.com/chainfoot/nft-fantasy/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		OrderBy("nft_identifier").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, nftID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("nft_identifier", nftID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, nftIDs []string) ([]player.Player, error) {
	if len(nftIDs) == 0 {
		return []player.Player{}, nil
	}

	ids := make([]any, 0, len(nftIDs))
	for _, id := range nftIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").From("players").
		Where(qb.In("nft_identifier", ids)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	query, args, err := qb.InsertInto("players").
		Columns("nft_identifier", "name", "collection", "points", "created_at", "updated_at").
		Values(p.NFTIdentifier, p.Name, p.Collection, p.Points, p.CreatedAt, p.UpdatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("player %s: %w", p.NFTIdentifier, player.ErrAlreadyExists)
		}
		return fmt.Errorf("insert player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) UpdatePoints(ctx context.Context, nftID string, points int64, now time.Time) (player.Player, error) {
	query, args, err := qb.Update("players").
		Set("points", points).
		Set("updated_at", now).
		Where(qb.Eq("nft_identifier", nftID)).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build update player points query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("update player points: %w", err)
	}

	return row.toDomain(), nil
}

func (r *PlayerRepository) Delete(ctx context.Context, nftID string) error {
	query, args, err := qb.DeleteFrom("players").
		Where(qb.Eq("nft_identifier", nftID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) SumPoints(ctx context.Context) (int64, error) {
	query, args, err := qb.Select("COALESCE(SUM(points), 0)").From("players").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build sum player points query: %w", err)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("sum player points: %w", err)
	}

	return total, nil
}

func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("players").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}

	return count, nil
}
