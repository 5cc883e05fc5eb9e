package application

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestFetchUsersReturnsRepositoryRows(t *testing.T) {
	repo := new(MockUserRepo)
	rows := []entity.ProjectedUserView{{ID: "1", PreferredName: "Ana"}, {ID: "2", PreferredName: "Bruno"}}
	r := entity.DateRange{}
	repo.On("ListProjected", mock.Anything, r).Return(rows, nil)

	svc := NewUserQueryService(repo, quietLogger())
	got, err := svc.FetchUsers(context.Background(), r)

	require.NoError(t, err)
	assert.Equal(t, rows, got)
	repo.AssertExpectations(t)
}

func TestFetchUsersHidesStorageError(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("ListProjected", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp 10.0.0.5:5432: password authentication failed for user report"))

	svc := NewUserQueryService(repo, quietLogger())
	_, err := svc.FetchUsers(context.Background(), entity.DateRange{})

	assert.Same(t, ErrRecordsUnavailable, err)
	assert.Equal(t, "failed to retrieve records", err.Error())
}

func TestFetchUsersOnDateUsesSameBounds(t *testing.T) {
	repo := new(MockUserRepo)
	day := mustDay("2024-05-02")
	repo.On("ListProjected", mock.Anything, mock.MatchedBy(func(r entity.DateRange) bool {
		return r.From != nil && r.To != nil && r.From.Equal(day) && r.To.Equal(day) && r.SameDay()
	})).Return([]entity.ProjectedUserView{}, nil)

	svc := NewUserQueryService(repo, quietLogger())
	_, err := svc.FetchUsersOnDate(context.Background(), day)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestFetchUsersBasicProjectsWithoutJoins(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("ListBasic", mock.Anything, mock.Anything).Return([]entity.DigitalUser{
		{ID: "7", PreferredName: "Carla", ContactID: strPtr("c7")},
	}, nil)

	svc := NewUserQueryService(repo, quietLogger())
	got, err := svc.FetchUsersBasic(context.Background(), entity.DateRange{})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entity.DigitalUserID("7"), got[0].ID)
	assert.Equal(t, "c7", *got[0].ContactID)
	assert.Nil(t, got[0].FullName)
	assert.Nil(t, got[0].Email)
	assert.Nil(t, got[0].AuthMethod)
}

func TestFetchUsersBasicHidesStorageError(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("ListBasic", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := NewUserQueryService(repo, quietLogger()).FetchUsersBasic(context.Background(), entity.DateRange{})
	assert.ErrorIs(t, err, ErrRecordsUnavailable)
}

func TestPhotoRef(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("PhotoRef", mock.Anything, entity.DigitalUserID("missing")).Return(nil, false, nil)
	repo.On("PhotoRef", mock.Anything, entity.DigitalUserID("nophoto")).Return(nil, true, nil)
	repo.On("PhotoRef", mock.Anything, entity.DigitalUserID("ok")).Return(strPtr("fotos/ok.jpg"), true, nil)
	repo.On("PhotoRef", mock.Anything, entity.DigitalUserID("boom")).Return(nil, false, errors.New("conn reset"))

	svc := NewUserQueryService(repo, quietLogger())
	ctx := context.Background()

	_, err := svc.PhotoRef(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.PhotoRef(ctx, "nophoto")
	assert.ErrorIs(t, err, ErrPhotoNotFound)
	_, err = svc.PhotoRef(ctx, "boom")
	assert.ErrorIs(t, err, ErrRecordsUnavailable)
	ref, err := svc.PhotoRef(ctx, "ok")
	require.NoError(t, err)
	assert.Equal(t, "fotos/ok.jpg", ref)
}
