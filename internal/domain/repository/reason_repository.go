package repository

import (
	"context"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

// ReasonRepository persists non-affiliation reasons keyed by digital user.
type ReasonRepository interface {
	// Upsert inserts the reason or overwrites the existing one for the same user atomically.
	Upsert(ctx context.Context, id entity.DigitalUserID, reason string) (*entity.NonAffiliationReason, error)
	List(ctx context.Context) ([]entity.NonAffiliationReason, error)
	// Delete removes the reason; deleted is false when no row existed.
	Delete(ctx context.Context, id entity.DigitalUserID) (deleted bool, err error)
}
