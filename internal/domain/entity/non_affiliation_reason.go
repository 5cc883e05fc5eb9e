package entity

import "time"

// NonAffiliationReason is the only entity written by this service.
// At most one row exists per DigitalUserID.
type NonAffiliationReason struct {
	DigitalUserID DigitalUserID
	Reason        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
