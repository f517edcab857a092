package querybuilder

import "testing"

func TestSelect_WhereOrderLimit(t *testing.T) {
	sql, args, err := Select("wallet_address", "total_points").
		From("users").
		Where(Eq("wallet_address", "erd1abc")).
		OrderBy("total_points DESC").
		Limit(100).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT wallet_address, total_points FROM users WHERE wallet_address = $1 ORDER BY total_points DESC LIMIT 100"
	if sql != want {
		t.Fatalf("unexpected sql:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 1 || args[0] != "erd1abc" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_InAndGt(t *testing.T) {
	sql, args, err := Select("nft_identifier", "points").
		From("players").
		Where(
			In("nft_identifier", []any{"a", "b"}),
			Gt("points", int64(0)),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT nft_identifier, points FROM players WHERE nft_identifier IN ($1, $2) AND points > $3"
	if sql != want {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
}

func TestSelect_EmptyInMatchesNothing(t *testing.T) {
	sql, args, err := Select("wallet_address").
		From("roster_entries").
		Where(In("player_nft_identifier", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "SELECT wallet_address FROM roster_entries WHERE player_nft_identifier IN (NULL)" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestInsert_MultiRowWithSuffix(t *testing.T) {
	sql, args, err := InsertInto("roster_entries").
		Columns("wallet_address", "position", "player_nft_identifier").
		Values("erd1abc", "GK", "FOOT-01").
		Values("erd1abc", "DEF1", "FOOT-02").
		Suffix("RETURNING created_at").
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INSERT INTO roster_entries (wallet_address, position, player_nft_identifier) VALUES ($1, $2, $3), ($4, $5, $6) RETURNING created_at"
	if sql != want {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 6 {
		t.Fatalf("expected 6 args, got %d", len(args))
	}
}

func TestInsert_RowArityMismatch(t *testing.T) {
	_, _, err := InsertInto("roster_entries").
		Columns("wallet_address", "position").
		Values("erd1abc").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for row arity mismatch")
	}
}

func TestUpdate_SetWhere(t *testing.T) {
	sql, args, err := Update("users").
		Set("total_points", int64(15)).
		Set("updated_at", "now").
		Where(Eq("wallet_address", "erd1abc")).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "UPDATE users SET total_points = $1, updated_at = $2 WHERE wallet_address = $3"
	if sql != want {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
}

func TestDelete_RequiresConditions(t *testing.T) {
	if _, _, err := DeleteFrom("roster_entries").ToSQL(); err == nil {
		t.Fatal("expected error for unconditional delete")
	}

	sql, args, err := DeleteFrom("roster_entries").
		Where(Eq("wallet_address", "erd1abc")).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "DELETE FROM roster_entries WHERE wallet_address = $1" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %v", args)
	}
}

func TestExpr_PlaceholderRewrite(t *testing.T) {
	sql, args, err := Select("COUNT(*)").
		From("users").
		Where(Expr("total_points > ? AND submitted_at IS NOT NULL", int64(100))).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "SELECT COUNT(*) FROM users WHERE total_points > $1 AND submitted_at IS NOT NULL" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %v", args)
	}
}
