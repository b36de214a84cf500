package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/evergreenmedia/podcast-api/internal/model"
	"github.com/evergreenmedia/podcast-api/internal/utils"
)

const userCols = "id, name, email, password_hash, role, created_at"

// UserRepo manages persistence for user accounts.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func scanUser(s rowScanner) (*model.User, error) {
	var u model.User
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user with a generated id and returns the persisted row.
// A duplicate email yields ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*model.User, error) {
	id, err := utils.NewID()
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, role) VALUES (?, ?, ?, ?, ?)",
		id, name, email, passwordHash, role)
	if err != nil {
		if isDupEntry(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email = ? LIMIT 1", email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id = ? LIMIT 1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdatePassword replaces a user's password hash. Hashes are salted, so the
// new hash always differs from the stored one and zero affected rows means
// the user does not exist.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user account. Show associations referencing the user's
// partner record are removed first so no orphaned rows remain; that cleanup
// step is best-effort because having no associations is not an error. The
// user delete itself is not: zero affected rows means ErrNotFound.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, _ = r.db.ExecContext(ctx,
		`DELETE sp FROM show_partners sp
		 JOIN partners p ON p.id = sp.partner_id
		 WHERE p.user_id = ?`, id)
	_, _ = r.db.ExecContext(ctx, "DELETE FROM partners WHERE user_id = ?", id)

	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
