package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
	repo "github.com/oksasatya/digital-user-report/internal/domain/repository"
	"github.com/oksasatya/digital-user-report/pkg/helpers"
)

type UserQueryService struct {
	Repo   repo.DigitalUserRepository
	Logger *logrus.Logger
}

func NewUserQueryService(r repo.DigitalUserRepository, logger *logrus.Logger) *UserQueryService {
	return &UserQueryService{Repo: r, Logger: logger}
}

func rangeFields(r entity.DateRange) logrus.Fields {
	f := logrus.Fields{}
	if r.From != nil {
		f["from"] = entity.FormatDate(*r.From)
	}
	if r.To != nil {
		f["to"] = entity.FormatDate(*r.To)
	}
	return f
}

func (s *UserQueryService) logFailure(op string, r entity.DateRange, err error) {
	if s.Logger == nil {
		return
	}
	fields := rangeFields(r)
	fields["op"] = op
	helpers.LogError(s.Logger, "user query failed", err, fields)
}

// FetchUsers returns digital users created within r, joined with their contact,
// email and phone, ordered by (creation date, preferred name).
func (s *UserQueryService) FetchUsers(ctx context.Context, r entity.DateRange) ([]entity.ProjectedUserView, error) {
	rows, err := s.Repo.ListProjected(ctx, r)
	if err != nil {
		s.logFailure("fetch_users", r, err)
		return nil, ErrRecordsUnavailable
	}
	return rows, nil
}

// FetchUsersOnDate is FetchUsers restricted to a single calendar date
func (s *UserQueryService) FetchUsersOnDate(ctx context.Context, day time.Time) ([]entity.ProjectedUserView, error) {
	return s.FetchUsers(ctx, entity.SingleDay(day))
}

// FetchUsersBasic skips every join so the report keeps working when the
// related tables are unavailable. Joined fields are nil.
func (s *UserQueryService) FetchUsersBasic(ctx context.Context, r entity.DateRange) ([]entity.ProjectedUserView, error) {
	users, err := s.Repo.ListBasic(ctx, r)
	if err != nil {
		s.logFailure("fetch_users_basic", r, err)
		return nil, ErrRecordsUnavailable
	}
	out := make([]entity.ProjectedUserView, 0, len(users))
	for _, u := range users {
		out = append(out, entity.FromDigitalUser(u))
	}
	return out, nil
}

// PhotoRef returns the stored profile photo reference of a user
func (s *UserQueryService) PhotoRef(ctx context.Context, id entity.DigitalUserID) (string, error) {
	ref, found, err := s.Repo.PhotoRef(ctx, id)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id.String()).Error("photo lookup failed")
		}
		return "", ErrRecordsUnavailable
	}
	if !found {
		return "", ErrUserNotFound
	}
	if ref == nil || *ref == "" {
		return "", ErrPhotoNotFound
	}
	return *ref, nil
}
