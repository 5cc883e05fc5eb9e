package repository

import (
	"context"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

// DigitalUserRepository defines read access to digital users and their joined relations.
type DigitalUserRepository interface {
	// ListProjected returns DigitalUser rows left-joined with contact, email and phone,
	// ordered by (creation date, preferred name).
	ListProjected(ctx context.Context, r entity.DateRange) ([]entity.ProjectedUserView, error)
	// ListBasic applies the same filter and order without any join.
	ListBasic(ctx context.Context, r entity.DateRange) ([]entity.DigitalUser, error)
	// PhotoRef returns the profile photo reference; found is false when the user does not exist.
	PhotoRef(ctx context.Context, id entity.DigitalUserID) (ref *string, found bool, err error)
}
