package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"launchboard/internal/domain/vote"
)

type VoteRepo struct {
	db *sql.DB
}

func NewVoteRepo(db *sql.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

// applyDeltaQuery clamps at zero and increments in one statement so
// concurrent voters never lose updates to a read-modify-write race.
const applyDeltaQuery = `
    UPDATE products
    SET vote_count = GREATEST(0, vote_count + $1), updated_at = now()
    WHERE id = $2
    RETURNING vote_count
`

func (r *VoteRepo) ApplyDelta(ctx context.Context, productID uuid.UUID, delta int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, applyDeltaQuery, delta, productID).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, vote.ErrProductNotFound
		}
		return 0, err
	}
	return count, nil
}

func (r *VoteRepo) CastVote(ctx context.Context, productID uuid.UUID, userID int64) (int64, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
        INSERT INTO product_votes (product_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (product_id, user_id) DO NOTHING
    `, productID, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, false, vote.ErrProductNotFound
		}
		return 0, false, err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}

	var count int64
	if inserted == 0 {
		err = tx.QueryRowContext(ctx,
			`SELECT vote_count FROM products WHERE id = $1`, productID).Scan(&count)
	} else {
		err = tx.QueryRowContext(ctx, applyDeltaQuery, int64(1), productID).Scan(&count)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, vote.ErrProductNotFound
		}
		return 0, false, err
	}

	if err := tx.Commit(); err != nil {
		return 0, false, err
	}
	return count, inserted == 1, nil
}

func (r *VoteRepo) RetractVote(ctx context.Context, productID uuid.UUID, userID int64) (int64, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM product_votes WHERE product_id = $1 AND user_id = $2`, productID, userID)
	if err != nil {
		return 0, false, err
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}

	var count int64
	if removed == 0 {
		err = tx.QueryRowContext(ctx,
			`SELECT vote_count FROM products WHERE id = $1`, productID).Scan(&count)
	} else {
		err = tx.QueryRowContext(ctx, applyDeltaQuery, int64(-1), productID).Scan(&count)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, vote.ErrProductNotFound
		}
		return 0, false, err
	}

	if err := tx.Commit(); err != nil {
		return 0, false, err
	}
	return count, removed == 1, nil
}

func (r *VoteRepo) HasVoted(ctx context.Context, productID uuid.UUID, userID int64) (bool, error) {
	var voted bool
	err := r.db.QueryRowContext(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM product_votes WHERE product_id = $1 AND user_id = $2
        )
    `, productID, userID).Scan(&voted)
	return voted, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
