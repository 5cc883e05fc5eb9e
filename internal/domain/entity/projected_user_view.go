package entity

import (
	"strings"
	"time"
)

// ProjectedUserView is the flattened read model returned by the user queries:
// DigitalUser plus left-joined Contact, Email and Phone. Every joined field is
// independently nullable.
type ProjectedUserView struct {
	ID             DigitalUserID `json:"idUsuarioDigital"`
	CreatedAt      time.Time     `json:"fechaCreacion"`
	LastLoginAt    *time.Time    `json:"fechaUltimoLogin"`
	PreferredName  string        `json:"nombrePreferido"`
	ContactID      *string       `json:"idContacto"`
	EmailID        *string       `json:"idEmail"`
	EmailValidated bool          `json:"emailValidado"`
	PhoneID        *string       `json:"idTelefono"`
	PhoneValidated bool          `json:"telefonoValidado"`
	PhotoRef       *string       `json:"fotoPerfil"`

	FullName *string `json:"nombreCompleto"`
	IDNumber *string `json:"numeroIdentificacion"`
	IDType   *string `json:"tipoIdentificacion"`
	Email    *string `json:"email"`
	Phone    *string `json:"telefono"`

	// AuthMethod is always nil: the credential link table is not readable by
	// the report role.
	AuthMethod *string `json:"authMethod"`
}

// MissingContact reports whether the row has no linked contact. A blank
// reference counts as missing.
func (v ProjectedUserView) MissingContact() bool {
	return v.ContactID == nil || strings.TrimSpace(*v.ContactID) == ""
}

// FromDigitalUser projects a bare DigitalUser with all joined fields nil
func FromDigitalUser(u DigitalUser) ProjectedUserView {
	return ProjectedUserView{
		ID:             u.ID,
		CreatedAt:      u.CreatedAt,
		LastLoginAt:    u.LastLoginAt,
		PreferredName:  u.PreferredName,
		ContactID:      u.ContactID,
		EmailID:        u.EmailID,
		EmailValidated: u.EmailValidated,
		PhoneID:        u.PhoneID,
		PhoneValidated: u.PhoneValidated,
		PhotoRef:       u.PhotoRef,
	}
}
