// This file implements persistence for partner records and the
// show↔partner association table. Partner creation spans two inserts and is
// wrapped in a transaction so a failure never leaves a user row without its
// partner row.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/evergreenmedia/podcast-api/internal/model"
	"github.com/evergreenmedia/podcast-api/internal/utils"
)

// PartnerRepo manages partner records and show associations.
type PartnerRepo struct {
	db *sql.DB
}

func NewPartnerRepo(db *sql.DB) *PartnerRepo { return &PartnerRepo{db: db} }

// CreatePartner creates a user with role partner plus its partners row in a
// single transaction, then re-selects and returns the user. A duplicate
// email yields ErrEmailExists.
func (r *PartnerRepo) CreatePartner(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	userID, err := utils.NewID()
	if err != nil {
		return nil, err
	}
	partnerID, err := utils.NewID()
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, role) VALUES (?, ?, ?, ?, ?)",
		userID, name, email, passwordHash, model.RolePartner)
	if err != nil {
		if isDupEntry(err) {
			err = ErrEmailExists
		}
		return nil, err
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO partners (id, user_id) VALUES (?, ?)", partnerID, userID)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id = ? LIMIT 1", userID))
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID fetches a partner row by its id.
func (r *PartnerRepo) GetByID(ctx context.Context, id string) (*model.Partner, error) {
	var p model.Partner
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id FROM partners WHERE id = ? LIMIT 1", id).
		Scan(&p.ID, &p.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByUserID resolves the partner row belonging to a user account. It is
// used by the self-service route to map the authenticated user onto their
// partner id.
func (r *PartnerRepo) GetByUserID(ctx context.Context, userID string) (*model.Partner, error) {
	var p model.Partner
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id FROM partners WHERE user_id = ? LIMIT 1", userID).
		Scan(&p.ID, &p.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Associate inserts a show_partners row linking a show to a partner.
// A duplicate (show, partner) pair yields ErrConflict; an unknown show or
// partner trips the foreign keys and yields ErrNotFound.
func (r *PartnerRepo) Associate(ctx context.Context, showID, partnerID string) (*model.ShowPartner, error) {
	id, err := utils.NewID()
	if err != nil {
		return nil, err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO show_partners (id, show_id, partner_id) VALUES (?, ?, ?)",
		id, showID, partnerID)
	if err != nil {
		if isDupEntry(err) {
			return nil, ErrConflict
		}
		if isFKViolation(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &model.ShowPartner{ID: id, ShowID: showID, PartnerID: partnerID}, nil
}

// Unassociate removes the association between a show and a partner.
// ErrNotFound is returned when no such association exists.
func (r *PartnerRepo) Unassociate(ctx context.Context, showID, partnerID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM show_partners WHERE show_id = ? AND partner_id = ?",
		showID, partnerID)
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

// ShowsForPartner returns every show associated with the given partner,
// empty when there are none.
func (r *PartnerRepo) ShowsForPartner(ctx context.Context, partnerID string) ([]model.Show, error) {
	q := "SELECT " + prefixCols("s", showCols) + ` FROM shows s
		JOIN show_partners sp ON s.id = sp.show_id
		WHERE sp.partner_id = ?`
	rows, err := r.db.QueryContext(ctx, q, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := []model.Show{}
	for rows.Next() {
		sh, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, *sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shows, nil
}
