package dashboard

import (
	"maps"
	"time"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

// Filter holds the YYYY-MM-DD inputs of the date range
type Filter struct {
	From string
	To   string
}

// TodayFilter is the initial filter: today to today
func TodayFilter(now time.Time) Filter {
	d := entity.FormatDate(now)
	return Filter{From: d, To: d}
}

type Sort struct {
	Column Column
	Desc   bool
}

type Modal struct {
	Open  bool
	Row   Row
	Draft string
}

// State is an immutable snapshot of the dashboard. Reducers return a new
// State and never modify the one they receive, including its Rows and Reasons.
type State struct {
	Filter    Filter
	Rows      []Row
	Loading   bool
	Err       string
	Sort      Sort
	Reasons   map[string]string
	Modal     Modal
	LatestSeq uint64
}

func NewState(now time.Time) State {
	return State{Filter: TodayFilter(now), Reasons: map[string]string{}}
}

// RequestIssued starts a new fetch round and returns its sequence number.
// Responses carrying an older number are ignored by the loaders below.
func RequestIssued(s State) (State, uint64) {
	s.LatestSeq++
	s.Loading = true
	s.Err = ""
	return s, s.LatestSeq
}

func UsersLoaded(s State, seq uint64, rows []Row) State {
	if seq != s.LatestSeq {
		return s
	}
	s.Rows = rows
	s.Loading = false
	s.Err = ""
	return s
}

// UsersFailed records the error and shows the sample dataset so the table is never empty.
func UsersFailed(s State, seq uint64, err error) State {
	if seq != s.LatestSeq {
		return s
	}
	s.Loading = false
	s.Err = "failed to retrieve records"
	if err != nil {
		s.Err = err.Error()
	}
	s.Rows = SampleRows()
	return s
}

func ReasonsLoaded(s State, seq uint64, reasons map[string]string) State {
	if seq != s.LatestSeq {
		return s
	}
	if reasons == nil {
		s.Reasons = map[string]string{}
	} else {
		s.Reasons = maps.Clone(reasons)
	}
	return s
}

func SetFilter(s State, f Filter) State {
	s.Filter = f
	return s
}

// SetSortColumn toggles direction on the current column, otherwise sorts the new column ascending.
func SetSortColumn(s State, col Column) State {
	if s.Sort.Column == col {
		s.Sort.Desc = !s.Sort.Desc
		return s
	}
	s.Sort = Sort{Column: col}
	return s
}

// OpenModal selects row for annotation with its current reason as draft
func OpenModal(s State, row Row) State {
	s.Modal = Modal{Open: true, Row: row, Draft: s.Reasons[row.ID.String()]}
	return s
}

func SetDraft(s State, text string) State {
	if !s.Modal.Open {
		return s
	}
	s.Modal.Draft = text
	return s
}

// CloseModal discards the draft (Escape or cancel)
func CloseModal(s State) State {
	s.Modal = Modal{}
	return s
}

// ReasonSaved applies an annotation locally and closes the modal. It is used
// both after a successful write and as the fallback when the write failed.
func ReasonSaved(s State, id entity.DigitalUserID, text string) State {
	reasons := make(map[string]string, len(s.Reasons)+1)
	maps.Copy(reasons, s.Reasons)
	reasons[id.String()] = text
	s.Reasons = reasons
	s.Modal = Modal{}
	return s
}
