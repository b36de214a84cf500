// Package queue defines message payloads published to the message broker.
package queue

// Event kinds published to the catalog.events queue.
const (
	EventShowCreated        = "show.created"
	EventShowUpdated        = "show.updated"
	EventShowDeleted        = "show.deleted"
	EventPartnerCreated     = "partner.created"
	EventPartnerAssociated  = "partner.associated"
	EventPartnerDissociated = "partner.dissociated"
	EventUserDeleted        = "user.deleted"
)

// CatalogEvent describes a catalog mutation for downstream consumers
// (audit logs, analytics) without them having to query the primary
// database. Fields not relevant to a given kind are left empty.
type CatalogEvent struct {
	Kind       string `json:"kind"`
	ShowID     string `json:"show_id,omitempty"`
	ShowTitle  string `json:"show_title,omitempty"`
	PartnerID  string `json:"partner_id,omitempty"`
	UserID     string `json:"user_id,omitempty"`
	ActorEmail string `json:"actor_email,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
