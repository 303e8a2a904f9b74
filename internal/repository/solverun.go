package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vancomm/maze-server/internal/driver"
)

type SolveRun struct {
	SolveRunID uuid.UUID `db:"solve_run_id" json:"id"`
	Rows       int       `db:"rows" json:"rows"`
	Cols       int       `db:"cols" json:"cols"`
	Mode       string    `db:"mode" json:"mode"`
	Moves      int       `db:"moves" json:"moves"`
	PathLength int       `db:"path_length" json:"path_length"`
	Ticks      int       `db:"ticks" json:"ticks"`
	TreeWeight int64     `db:"tree_weight" json:"tree_weight"`
	StartedAt  time.Time `db:"started_at" json:"started_at"`
	SolvedAt   time.Time `db:"solved_at" json:"solved_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

const solveRunColumns = `solve_run_id, "rows", cols, mode, moves, path_length, ticks,
	tree_weight, started_at, solved_at, created_at`

func (q Queries) CreateSolveRun(ctx context.Context, run driver.Run) (*SolveRun, error) {
	args := pgx.NamedArgs{
		"solve_run_id": run.ID,
		"rows":         run.Rows,
		"cols":         run.Cols,
		"mode":         run.Mode.String(),
		"moves":        run.Moves,
		"path_length":  run.PathLength,
		"ticks":        run.Ticks,
		"tree_weight":  run.TreeWeight,
		"started_at":   run.StartedAt,
		"solved_at":    run.SolvedAt,
	}
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO solve_run (
			solve_run_id, "rows", cols, mode, moves, path_length, ticks,
			tree_weight, started_at, solved_at
		)
		VALUES (
			@solve_run_id, @rows, @cols, @mode, @moves, @path_length, @ticks,
			@tree_weight, @started_at, @solved_at
		)
		RETURNING `+solveRunColumns,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[SolveRun])
}

// RecordRun stores a finished run. [Queries] implements [driver.Recorder].
func (q Queries) RecordRun(ctx context.Context, run driver.Run) error {
	_, err := q.CreateSolveRun(ctx, run)
	return err
}

func (q Queries) FetchSolveRun(ctx context.Context, id uuid.UUID) (*SolveRun, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT "+solveRunColumns+" FROM solve_run WHERE solve_run_id = $1",
		id,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[SolveRun])
}

type SolveRunFilter struct {
	Mode  *string
	Rows  *int
	Cols  *int
	Limit int
}

func (f SolveRunFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Mode != nil {
		clauses = append(clauses, "mode = @mode")
		args["mode"] = *f.Mode
	}
	if f.Rows != nil {
		clauses = append(clauses, `"rows" = @rows`)
		args["rows"] = *f.Rows
	}
	if f.Cols != nil {
		clauses = append(clauses, "cols = @cols")
		args["cols"] = *f.Cols
	}
	return strings.Join(clauses, " AND "), args
}

// ListSolveRuns returns runs matching f, fewest moves first.
func (q Queries) ListSolveRuns(ctx context.Context, f SolveRunFilter) ([]SolveRun, error) {
	query := "SELECT " + solveRunColumns + " FROM solve_run"

	whereClause, args := f.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY moves, solved_at"

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	query += " LIMIT @limit"
	args["limit"] = limit

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[SolveRun])
}
