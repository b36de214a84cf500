package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserGetByEmailNormalizes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT " + userCols + " FROM users WHERE email = ? LIMIT 1").
		WithArgs("admin@evergreen.com").
		WillReturnRows(userRows("u1", "Admin", "admin@evergreen.com", "admin"))

	u, err := repo.GetByEmail(context.Background(), "  Admin@Evergreen.COM ")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdatePasswordNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("UPDATE users SET password_hash = ? WHERE id = ?").
		WithArgs("newhash", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), "missing", "newhash")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserDeleteCascades(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	// Association cleanup runs first and its outcome is ignored.
	mock.ExpectExec(`DELETE sp FROM show_partners sp
		 JOIN partners p ON p.id = sp.partner_id
		 WHERE p.user_id = ?`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM partners WHERE user_id = ?").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM users WHERE id = ?").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDeleteCleanupFailureIsSwallowed(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	// A failing cleanup step must not abort the primary delete.
	mock.ExpectExec(`DELETE sp FROM show_partners sp
		 JOIN partners p ON p.id = sp.partner_id
		 WHERE p.user_id = ?`).
		WithArgs("u1").
		WillReturnError(errors.New("boom"))
	mock.ExpectExec("DELETE FROM partners WHERE user_id = ?").
		WithArgs("u1").
		WillReturnError(errors.New("boom"))
	mock.ExpectExec("DELETE FROM users WHERE id = ?").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDeleteNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(`DELETE sp FROM show_partners sp
		 JOIN partners p ON p.id = sp.partner_id
		 WHERE p.user_id = ?`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM partners WHERE user_id = ?").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM users WHERE id = ?").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT " + userCols + " FROM users WHERE id = ? LIMIT 1").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
