package model

import "time"

// Roles stored in users.role. Admins manage the catalog; partners may only
// see the shows they are associated with.
const (
	RoleAdmin   = "admin"
	RolePartner = "partner"
)

// User mirrors the `users` table. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`             // users.id
	Name         string    `json:"name"`           // users.name
	Email        string    `json:"email"`          // users.email (unique)
	PasswordHash string    `json:"-"`              // users.password_hash
	Role         string    `json:"role"`           // users.role (admin | partner)
	CreatedAt    time.Time `json:"created_at"`     // users.created_at
}

// Partner mirrors the `partners` table, linking a partner record to its
// user account.
type Partner struct {
	ID     string `json:"id"`      // partners.id
	UserID string `json:"user_id"` // partners.user_id (references users.id)
}

// ShowPartner mirrors the `show_partners` join table. A row associates one
// show with one partner; the (show_id, partner_id) pair is unique.
type ShowPartner struct {
	ID        string `json:"id"`         // show_partners.id
	ShowID    string `json:"show_id"`    // show_partners.show_id
	PartnerID string `json:"partner_id"` // show_partners.partner_id
}
