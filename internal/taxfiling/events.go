package taxfiling

// Tipos de evento emitidos por el proveedor de declaraciones.
const (
	EventReturnCreated       = "t1_return.created"
	EventReturnStatusChanged = "t1_return.status_changed"
	EventWebhookTest         = "webhook.test"
)

// EventUser identifica al usuario en un evento del webhook. ExternalID es
// el user_id que este sistema le entregó al proveedor.
type EventUser struct {
	ExternalID string `json:"external_id"`
	ID         string `json:"id"`
	Email      string `json:"email"`
}

// EventReturn es la sección t1_return de un evento del webhook.
type EventReturn struct {
	ID        string  `json:"id"`
	Year      int     `json:"year"`
	OldStatus *string `json:"old_status,omitempty"`
	NewStatus string  `json:"new_status,omitempty"`
}

// Event es la unión etiquetada de eventos del webhook, discriminada por Type.
// Los campos User y T1Return sólo están presentes en los eventos t1_return.*.
type Event struct {
	Type     string       `json:"type"`
	ID       string       `json:"id"`
	Created  int64        `json:"created"`
	User     *EventUser   `json:"user,omitempty"`
	T1Return *EventReturn `json:"t1_return,omitempty"`
}
