package application

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
	"github.com/oksasatya/digital-user-report/internal/infrastructure/reportapi"
	"github.com/oksasatya/digital-user-report/pkg/helpers"
	"github.com/oksasatya/digital-user-report/pkg/metrics"
)

// ReportFetcher is satisfied by reportapi.Client
type ReportFetcher interface {
	Fetch(ctx context.Context, endpoint reportapi.Endpoint, params url.Values) (*reportapi.Envelope, error)
}

// ReportService proxies the upstream reports, caching successful responses in Redis.
type ReportService struct {
	API    ReportFetcher
	Cache  *helpers.JSONCache
	Logger *logrus.Logger
}

// NewReportService disables caching when rdb is nil or ttl is not positive
func NewReportService(api ReportFetcher, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *ReportService {
	return &ReportService{API: api, Cache: helpers.NewJSONCache(rdb, "report", ttl), Logger: logger}
}

func reportCacheKey(endpoint reportapi.Endpoint, r entity.DateRange) string {
	key := string(endpoint) + ":"
	if r.From != nil {
		key += entity.FormatDate(*r.From)
	}
	key += ":"
	if r.To != nil {
		key += entity.FormatDate(*r.To)
	}
	return key
}

func rangeParams(r entity.DateRange) url.Values {
	params := url.Values{}
	if r.From != nil {
		params.Set("fechaInicio", entity.FormatDate(*r.From))
	}
	if r.To != nil {
		params.Set("fechaFin", entity.FormatDate(*r.To))
	}
	return params
}

// Fetch returns the upstream envelope for endpoint filtered by r.
// Failures are wrapped in ErrUpstream; a *reportapi.UpstreamError stays reachable via errors.As.
func (s *ReportService) Fetch(ctx context.Context, endpoint reportapi.Endpoint, r entity.DateRange) (*reportapi.Envelope, error) {
	key := reportCacheKey(endpoint, r)
	if s.Cache != nil {
		var cached reportapi.Envelope
		ok, err := s.Cache.Get(ctx, key, &cached)
		switch {
		case err != nil:
			metrics.ProxyCacheTotal.WithLabelValues("error").Inc()
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("key", s.Cache.Key(key)).Warn("report cache read failed")
			}
		case ok:
			metrics.ProxyCacheTotal.WithLabelValues("hit").Inc()
			return &cached, nil
		default:
			metrics.ProxyCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	env, err := s.API.Fetch(ctx, endpoint, rangeParams(r))
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("endpoint", string(endpoint)).WithFields(rangeFields(r)).Error("upstream report failed")
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	if s.Cache != nil {
		if cErr := s.Cache.Set(ctx, key, env); cErr != nil && s.Logger != nil {
			s.Logger.WithError(cErr).WithField("key", s.Cache.Key(key)).Warn("report cache write failed")
		}
	}
	return env, nil
}
