package entity

import "time"

const (
	ReasonSaved   = "reason.saved"
	ReasonDeleted = "reason.deleted"
)

// ReasonEvent is the JSON payload put on the reason queue after every write.
type ReasonEvent struct {
	Type          string        `json:"type"`
	DigitalUserID DigitalUserID `json:"idUsuarioDigital"`
	Reason        string        `json:"motivo,omitempty"`
	At            time.Time     `json:"at"`
}
