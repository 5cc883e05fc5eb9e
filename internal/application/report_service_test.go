package application

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
	"github.com/oksasatya/digital-user-report/internal/infrastructure/reportapi"
)

type MockReportFetcher struct{ mock.Mock }

func (m *MockReportFetcher) Fetch(ctx context.Context, endpoint reportapi.Endpoint, params url.Values) (*reportapi.Envelope, error) {
	args := m.Called(ctx, endpoint, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportapi.Envelope), args.Error(1)
}

func TestReportServiceForwardsDateParams(t *testing.T) {
	api := new(MockReportFetcher)
	env := &reportapi.Envelope{Success: true, Data: json.RawMessage(`[]`)}
	api.On("Fetch", mock.Anything, reportapi.Retries, url.Values{
		"fechaInicio": {"2024-01-01"},
		"fechaFin":    {"2024-01-31"},
	}).Return(env, nil)

	from, to := mustDay("2024-01-01"), mustDay("2024-01-31")
	svc := NewReportService(api, nil, 0, quietLogger())
	got, err := svc.Fetch(context.Background(), reportapi.Retries, entity.DateRange{From: &from, To: &to})

	require.NoError(t, err)
	assert.Same(t, env, got)
	api.AssertExpectations(t)
}

func TestReportServiceWrapsUpstreamError(t *testing.T) {
	api := new(MockReportFetcher)
	api.On("Fetch", mock.Anything, reportapi.AffiliationPhotos, url.Values{}).
		Return(nil, &reportapi.UpstreamError{StatusCode: 500, Body: "kaput"})

	svc := NewReportService(api, nil, 0, quietLogger())
	_, err := svc.Fetch(context.Background(), reportapi.AffiliationPhotos, entity.DateRange{})

	assert.ErrorIs(t, err, ErrUpstream)
	var ue *reportapi.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, 500, ue.StatusCode)
}

func TestReportCacheKey(t *testing.T) {
	from := mustDay("2024-01-01")
	assert.Equal(t, "reintentos:2024-01-01:", reportCacheKey(reportapi.Retries, entity.DateRange{From: &from}))
	assert.Equal(t, "reintentos::", reportCacheKey(reportapi.Retries, entity.DateRange{}))
}
