package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

// MockUserRepo mocks repository.DigitalUserRepository
type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) ListProjected(ctx context.Context, r entity.DateRange) ([]entity.ProjectedUserView, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProjectedUserView), args.Error(1)
}

func (m *MockUserRepo) ListBasic(ctx context.Context, r entity.DateRange) ([]entity.DigitalUser, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DigitalUser), args.Error(1)
}

func (m *MockUserRepo) PhotoRef(ctx context.Context, id entity.DigitalUserID) (*string, bool, error) {
	args := m.Called(ctx, id)
	var ref *string
	if v := args.Get(0); v != nil {
		ref = v.(*string)
	}
	return ref, args.Bool(1), args.Error(2)
}

// memReasonRepo keeps one row per user, like the unique constraint does
type memReasonRepo struct {
	mu      sync.Mutex
	rows    map[entity.DigitalUserID]entity.NonAffiliationReason
	listErr error
	saveErr error
}

func newMemReasonRepo() *memReasonRepo {
	return &memReasonRepo{rows: map[entity.DigitalUserID]entity.NonAffiliationReason{}}
}

func (r *memReasonRepo) Upsert(_ context.Context, id entity.DigitalUserID, reason string) (*entity.NonAffiliationReason, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	now := time.Now()
	row, ok := r.rows[id]
	if !ok {
		row = entity.NonAffiliationReason{DigitalUserID: id, CreatedAt: now}
	}
	row.Reason = reason
	row.UpdatedAt = now
	r.rows[id] = row
	return &row, nil
}

func (r *memReasonRepo) List(context.Context) ([]entity.NonAffiliationReason, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]entity.NonAffiliationReason, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DigitalUserID < out[j].DigitalUserID })
	return out, nil
}

func (r *memReasonRepo) Delete(_ context.Context, id entity.DigitalUserID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return false, r.saveErr
	}
	_, ok := r.rows[id]
	delete(r.rows, id)
	return ok, nil
}

// MockPublisher mocks EventPublisher
type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishJSON(ctx context.Context, body any) error {
	args := m.Called(ctx, body)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func mustDay(s string) time.Time {
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
