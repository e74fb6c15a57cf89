package postgres

import (
	"context"
	"database/sql"

	"launchboard/internal/domain/user"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *user.User, orgName string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO organizations (name) VALUES ($1) RETURNING id`, orgName,
	).Scan(&u.OrganizationID)
	if err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx, `
        INSERT INTO users (email, password_hash, role, organization_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `, u.Email, u.PasswordHash, u.Role, u.OrganizationID).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return err
	}

	return tx.Commit()
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u := &user.User{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, email, password_hash, role, organization_id, created_at
        FROM users WHERE email = $1
    `, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.OrganizationID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u := &user.User{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, email, password_hash, role, organization_id, created_at
        FROM users WHERE id = $1
    `, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.OrganizationID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}
