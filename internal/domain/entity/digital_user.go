package entity

import "time"

// DigitalUserID is the opaque key of a digital user. Reason annotations use the
// same type so both tables are joined without any numeric coercion.
type DigitalUserID string

func (id DigitalUserID) String() string { return string(id) }

// DigitalUser is owned by the enrollment system; this service only reads it.
// Foreign references are nil until the related record is linked.
type DigitalUser struct {
	ID             DigitalUserID
	CreatedAt      time.Time
	LastLoginAt    *time.Time
	PreferredName  string
	ContactID      *string
	EmailID        *string
	EmailValidated bool
	PhoneID        *string
	PhoneValidated bool
	PhotoRef       *string
}

// Contact holds the legal identity of a digital user
type Contact struct {
	ID       string
	FullName string
	IDNumber string
	IDType   string
}

type Email struct {
	ID    string
	Value string
}

type Phone struct {
	ID    string
	Value string
}

// AuthProvider is linked to DigitalUser through credencial_usuario.
// The report role cannot read that table, so queries never traverse it.
type AuthProvider struct {
	ID   string
	Name string
}
