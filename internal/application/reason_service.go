package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
	repo "github.com/oksasatya/digital-user-report/internal/domain/repository"
)

// EventPublisher is satisfied by helpers.RabbitPublisher
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type ReasonService struct {
	Repo   repo.ReasonRepository
	Pub    EventPublisher
	Index  *ReasonIndex
	Logger *logrus.Logger
	now    func() time.Time
}

func NewReasonService(r repo.ReasonRepository, pub EventPublisher, index *ReasonIndex, logger *logrus.Logger) *ReasonService {
	return &ReasonService{Repo: r, Pub: pub, Index: index, Logger: logger, now: time.Now}
}

// SaveReason stores text as the only reason of id, replacing any previous one.
func (s *ReasonService) SaveReason(ctx context.Context, id entity.DigitalUserID, text string) (*entity.NonAffiliationReason, error) {
	id = entity.DigitalUserID(strings.TrimSpace(id.String()))
	if id == "" || strings.TrimSpace(text) == "" {
		return nil, ErrInvalidReason
	}
	saved, err := s.Repo.Upsert(ctx, id, text)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id.String()).Error("save reason failed")
		}
		return nil, ErrReasonWriteFailed
	}
	s.publish(ctx, entity.ReasonEvent{Type: entity.ReasonSaved, DigitalUserID: id, Reason: text, At: s.now().UTC()})
	return saved, nil
}

// ListReasons maps user id to reason text. A storage failure yields an empty
// map so the report never fails because of its annotation overlay.
func (s *ReasonService) ListReasons(ctx context.Context) map[string]string {
	rows, err := s.Repo.List(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("list reasons failed, returning no annotations")
		}
		return map[string]string{}
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.DigitalUserID.String()] = r.Reason
	}
	return out
}

// DeleteReason removes the reason of id and reports whether one existed.
// Deleting a missing reason is not an error.
func (s *ReasonService) DeleteReason(ctx context.Context, id entity.DigitalUserID) (bool, error) {
	id = entity.DigitalUserID(strings.TrimSpace(id.String()))
	if id == "" {
		return false, ErrInvalidReason
	}
	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id.String()).Error("delete reason failed")
		}
		return false, ErrReasonWriteFailed
	}
	if deleted {
		s.publish(ctx, entity.ReasonEvent{Type: entity.ReasonDeleted, DigitalUserID: id, At: s.now().UTC()})
	}
	return deleted, nil
}

// SearchReasons runs a full-text search over indexed annotations
func (s *ReasonService) SearchReasons(ctx context.Context, q string, size int) ([]ReasonHit, error) {
	if s.Index == nil {
		return []ReasonHit{}, nil
	}
	return s.Index.Search(ctx, q, size)
}

// publish is best effort: the write already succeeded.
func (s *ReasonService) publish(ctx context.Context, ev entity.ReasonEvent) {
	if s.Pub == nil {
		return
	}
	if err := s.Pub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", ev.DigitalUserID.String()).WithField("type", ev.Type).Warn("publish reason event failed")
	}
}
