package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/domain"
)

func (r *Repos) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users(id, username, password_hash, name, role, must_change_password)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Username, u.PasswordHash, u.Name, u.Role, u.MustChangePassword)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateUser
	}
	return err
}

func (r *Repos) UserByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u,
		`SELECT id, username, password_hash, name, role, must_change_password, created_at, updated_at
		 FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repos) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u,
		`SELECT id, username, password_hash, name, role, must_change_password, created_at, updated_at
		 FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repos) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, username, password_hash, name, role, must_change_password, created_at, updated_at
		 FROM users ORDER BY created_at`)
	return out, err
}

func (r *Repos) SetPassword(ctx context.Context, id, hash string, mustChange bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, must_change_password = $2, updated_at = now() WHERE id = $3`,
		hash, mustChange, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes the user's appliances and then the user itself.
// The two deletes run in one transaction; readings are intentionally
// left in place as orphaned history.
func (r *Repos) DeleteUser(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM appliances WHERE user_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return tx.Commit()
}
