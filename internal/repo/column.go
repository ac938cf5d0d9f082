package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cdiksha/Smart-ToDo/internal/model"
)

type ColumnRepo struct {
	pool *pgxpool.Pool
}

func NewColumnRepo(pool *pgxpool.Pool) *ColumnRepo {
	return &ColumnRepo{
		pool: pool,
	}
}

func (r *ColumnRepo) Create(ctx context.Context, c model.Column) (model.Column, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO columns (name, position, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, position, user_id, created_at
	`, c.Name, c.Position, c.UserID).Scan(
		&c.ID, &c.Name, &c.Position, &c.UserID, &c.CreatedAt,
	)
	return c, mapError(err)
}

func (r *ColumnRepo) Get(ctx context.Context, id int64) (model.Column, error) {
	var c model.Column
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, position, user_id, created_at
		FROM columns
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Position, &c.UserID, &c.CreatedAt)

	if err == pgx.ErrNoRows {
		return c, ErrorNotFound
	}
	return c, err
}

func (r *ColumnRepo) ListByUser(ctx context.Context, userID int64) ([]model.Column, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, position, user_id, created_at
		FROM columns
		WHERE user_id = $1
		ORDER BY position, id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make([]model.Column, 0)
	for rows.Next() {
		var c model.Column
		if err := rows.Scan(&c.ID, &c.Name, &c.Position, &c.UserID, &c.CreatedAt); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (r *ColumnRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM columns WHERE user_id = $1
	`, userID).Scan(&count)
	return count, err
}

func (r *ColumnRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM columns WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}
