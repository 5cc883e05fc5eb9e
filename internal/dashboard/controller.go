package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

// API is the backend used by the controller; APIClient implements it over HTTP.
type API interface {
	FetchUsers(ctx context.Context, f Filter) ([]Row, error)
	ListReasons(ctx context.Context) (map[string]string, error)
	SaveReason(ctx context.Context, id entity.DigitalUserID, text string) error
}

// Controller owns the current State and applies reducer results as fetches complete.
type Controller struct {
	api      API
	mu       sync.Mutex
	state    State
	onChange func(State)
}

func NewController(api API, now time.Time, onChange func(State)) *Controller {
	return &Controller{api: api, state: NewState(now), onChange: onChange}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) dispatch(fn func(State) State) State {
	c.mu.Lock()
	c.state = fn(c.state)
	s := c.state
	c.mu.Unlock()
	if c.onChange != nil {
		c.onChange(s)
	}
	return s
}

// Refresh fetches users and reasons concurrently for the current filter.
// Each completion is applied on its own; the returned channel closes when both are done.
func (c *Controller) Refresh(ctx context.Context) <-chan struct{} {
	var seq uint64
	s := c.dispatch(func(s State) State {
		s, seq = RequestIssued(s)
		return s
	})
	filter := s.Filter

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		rows, err := c.api.FetchUsers(ctx, filter)
		if err != nil {
			c.dispatch(func(s State) State { return UsersFailed(s, seq, err) })
			return
		}
		c.dispatch(func(s State) State { return UsersLoaded(s, seq, rows) })
	}()
	go func() {
		defer wg.Done()
		reasons, err := c.api.ListReasons(ctx)
		if err != nil {
			// the overlay is optional; keep the previous one
			return
		}
		c.dispatch(func(s State) State { return ReasonsLoaded(s, seq, reasons) })
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}

// SetFilter changes the range and refreshes
func (c *Controller) SetFilter(ctx context.Context, f Filter) <-chan struct{} {
	c.dispatch(func(s State) State { return SetFilter(s, f) })
	return c.Refresh(ctx)
}

func (c *Controller) SetSortColumn(col Column) State {
	return c.dispatch(func(s State) State { return SetSortColumn(s, col) })
}

func (c *Controller) OpenModal(row Row) State {
	return c.dispatch(func(s State) State { return OpenModal(s, row) })
}

func (c *Controller) SetDraft(text string) State {
	return c.dispatch(func(s State) State { return SetDraft(s, text) })
}

func (c *Controller) CloseModal() State {
	return c.dispatch(CloseModal)
}

// Save writes the modal draft. The local state is updated even when the
// write fails; the returned error tells the caller the edit may not persist.
func (c *Controller) Save(ctx context.Context) error {
	s := c.State()
	if !s.Modal.Open {
		return nil
	}
	id, text := s.Modal.Row.ID, s.Modal.Draft
	err := c.api.SaveReason(ctx, id, text)
	c.dispatch(func(s State) State { return ReasonSaved(s, id, text) })
	return err
}
