package domain

import "time"

// Estados conocidos de una declaración; el proveedor puede introducir otros.
const (
	TaxReturnStatusCreated    = "created"
	TaxReturnStatusInProgress = "in_progress"
	TaxReturnStatusSubmitted  = "submitted"
	TaxReturnStatusRejected   = "rejected"
)

// TaxReturn representa una declaración gestionada por el proveedor externo.
// ExternalReturnID es la clave natural para el upsert idempotente.
type TaxReturn struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	ExternalReturnID string    `json:"external_return_id"`
	TaxYear          int       `json:"tax_year"`
	Status           string    `json:"status"`
	LastEventType    string    `json:"last_event_type"`
	LastEventID      string    `json:"last_event_id"`
	LastEventAt      time.Time `json:"last_event_at"`
	Payload          []byte    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
