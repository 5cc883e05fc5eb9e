package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

func TestClientReportMergesReasonsAndFlags(t *testing.T) {
	users := new(MockUserRepo)
	users.On("ListProjected", mock.Anything, mock.Anything).Return([]entity.ProjectedUserView{
		{ID: "1", PreferredName: "Ana", ContactID: strPtr("c1"), CreatedAt: time.Date(2024, 3, 15, 13, 4, 5, 0, time.UTC)},
		{ID: "2", PreferredName: "Bruno", ContactID: nil, CreatedAt: time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)},
		{ID: "3", PreferredName: "Carla", ContactID: strPtr("  "), CreatedAt: time.Date(2024, 3, 15, 15, 0, 0, 0, time.UTC)},
	}, nil)

	reasons := newMemReasonRepo()
	_, _ = reasons.Upsert(context.Background(), "2", "sin documento")

	svc := NewClientReportService(
		NewUserQueryService(users, quietLogger()),
		NewReasonService(reasons, nil, nil, quietLogger()),
		time.FixedZone("CLT", -3*3600),
	)
	report, err := svc.List(context.Background(), entity.DateRange{})
	require.NoError(t, err)

	require.Len(t, report.Rows, 3)
	assert.Equal(t, 2, report.MissingContactCount)
	assert.True(t, report.Rows[2].MissingContact)
	assert.False(t, report.Rows[0].MissingContact)
	assert.Nil(t, report.Rows[0].Reason)
	assert.Equal(t, "15/03/2024, 10:04:05", report.Rows[0].CreatedAtText)
	assert.True(t, report.Rows[1].MissingContact)
	require.NotNil(t, report.Rows[1].Reason)
	assert.Equal(t, "sin documento", *report.Rows[1].Reason)
}

func TestClientReportSurvivesReasonFailure(t *testing.T) {
	users := new(MockUserRepo)
	users.On("ListProjected", mock.Anything, mock.Anything).Return([]entity.ProjectedUserView{{ID: "1"}}, nil)
	reasons := newMemReasonRepo()
	reasons.listErr = errors.New("boom")

	svc := NewClientReportService(NewUserQueryService(users, quietLogger()), NewReasonService(reasons, nil, nil, quietLogger()), nil)
	report, err := svc.List(context.Background(), entity.DateRange{})

	require.NoError(t, err)
	assert.Len(t, report.Rows, 1)
	assert.Nil(t, report.Rows[0].Reason)
}

func TestClientReportPropagatesUserFailure(t *testing.T) {
	users := new(MockUserRepo)
	users.On("ListProjected", mock.Anything, mock.Anything).Return(nil, errors.New("pool exhausted"))

	svc := NewClientReportService(NewUserQueryService(users, quietLogger()), NewReasonService(newMemReasonRepo(), nil, nil, quietLogger()), nil)
	_, err := svc.List(context.Background(), entity.DateRange{})

	assert.ErrorIs(t, err, ErrRecordsUnavailable)
}
