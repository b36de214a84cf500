package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreenmedia/podcast-api/internal/model"
)

func userRows(id, name, email, role string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}).
		AddRow(id, name, email, "$2a$10$hash", role, time.Now().UTC())
}

func TestCreatePartnerTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartnerRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users (id, name, email, password_hash, role) VALUES (?, ?, ?, ?, ?)").
		WithArgs(sqlmock.AnyArg(), "P", "p@example.com", "$2a$10$hash", model.RolePartner).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO partners (id, user_id) VALUES (?, ?)").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT " + userCols + " FROM users WHERE id = ? LIMIT 1").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(userRows("u1", "P", "p@example.com", model.RolePartner))

	u, err := repo.CreatePartner(context.Background(), "P", "p@example.com", "$2a$10$hash")
	require.NoError(t, err)
	assert.Equal(t, model.RolePartner, u.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePartnerDuplicateEmailRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartnerRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users (id, name, email, password_hash, role) VALUES (?, ?, ?, ?, ?)").
		WithArgs(sqlmock.AnyArg(), "P", "p@example.com", "hash", model.RolePartner).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate"})
	mock.ExpectRollback()

	_, err := repo.CreatePartner(context.Background(), "P", "p@example.com", "hash")
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssociateClassifiesDriverErrors(t *testing.T) {
	tests := []struct {
		name    string
		execErr error
		want    error
	}{
		{"duplicate pair", &mysql.MySQLError{Number: 1062, Message: "dup"}, ErrConflict},
		{"unknown show or partner", &mysql.MySQLError{Number: 1452, Message: "fk"}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewPartnerRepo(db)

			mock.ExpectExec("INSERT INTO show_partners (id, show_id, partner_id) VALUES (?, ?, ?)").
				WithArgs(sqlmock.AnyArg(), "s1", "p1").
				WillReturnError(tt.execErr)

			_, err := repo.Associate(context.Background(), "s1", "p1")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAssociateSuccess(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartnerRepo(db)

	mock.ExpectExec("INSERT INTO show_partners (id, show_id, partner_id) VALUES (?, ?, ?)").
		WithArgs(sqlmock.AnyArg(), "s1", "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	sp, err := repo.Associate(context.Background(), "s1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "s1", sp.ShowID)
	assert.Equal(t, "p1", sp.PartnerID)
	assert.Len(t, sp.ID, 32)
}

func TestUnassociateNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartnerRepo(db)

	mock.ExpectExec("DELETE FROM show_partners WHERE show_id = ? AND partner_id = ?").
		WithArgs("s1", "p1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Unassociate(context.Background(), "s1", "p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShowsForPartnerEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartnerRepo(db)

	q := "SELECT " + prefixCols("s", showCols) + ` FROM shows s
		JOIN show_partners sp ON s.id = sp.show_id
		WHERE sp.partner_id = ?`
	mock.ExpectQuery(q).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(showColNames()))

	shows, err := repo.ShowsForPartner(context.Background(), "p1")
	require.NoError(t, err)
	assert.NotNil(t, shows)
	assert.Empty(t, shows)
}
