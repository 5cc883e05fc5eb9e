package application

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

// PhotoStore opens stored objects; helpers.GCSObjectStore implements it.
type PhotoStore interface {
	Open(ctx context.Context, object string) (io.ReadCloser, string, error)
}

// Photo is either a redirect to an absolute URI or an object body to stream.
type Photo struct {
	RedirectURL string
	Body        io.ReadCloser
	ContentType string
}

type PhotoService struct {
	Users  *UserQueryService
	Store  PhotoStore
	Logger *logrus.Logger
}

func NewPhotoService(users *UserQueryService, store PhotoStore, logger *logrus.Logger) *PhotoService {
	return &PhotoService{Users: users, Store: store, Logger: logger}
}

func isURI(ref string) bool {
	l := strings.ToLower(ref)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Open resolves the profile photo reference of id
func (s *PhotoService) Open(ctx context.Context, id entity.DigitalUserID) (*Photo, error) {
	ref, err := s.Users.PhotoRef(ctx, id)
	if err != nil {
		return nil, err
	}
	if isURI(ref) {
		return &Photo{RedirectURL: ref}, nil
	}
	if s.Store == nil {
		return nil, ErrPhotoUnavailable
	}
	body, contentType, err := s.Store.Open(ctx, strings.TrimPrefix(ref, "/"))
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id.String()).WithField("object", ref).Warn("open photo failed")
		}
		return nil, ErrPhotoNotFound
	}
	return &Photo{Body: body, ContentType: contentType}, nil
}
