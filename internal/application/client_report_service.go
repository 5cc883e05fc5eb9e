package application

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

// ClientRow is a projected user with its annotation overlay and display flags
type ClientRow struct {
	entity.ProjectedUserView
	CreatedAtText  string  `json:"fechaCreacionTexto"`
	Reason         *string `json:"motivo"`
	MissingContact bool    `json:"sinContacto"`
}

type ClientReport struct {
	Rows                []ClientRow
	MissingContactCount int
}

// ClientReportService merges the user query and the reason overlay into one listing.
type ClientReportService struct {
	Users    *UserQueryService
	Reasons  *ReasonService
	Location *time.Location
}

func NewClientReportService(users *UserQueryService, reasons *ReasonService, loc *time.Location) *ClientReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ClientReportService{Users: users, Reasons: reasons, Location: loc}
}

// List fetches users and reasons concurrently; a reason failure only drops the overlay.
func (s *ClientReportService) List(ctx context.Context, r entity.DateRange) (*ClientReport, error) {
	var (
		wg      sync.WaitGroup
		rows    []entity.ProjectedUserView
		err     error
		reasons map[string]string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		rows, err = s.Users.FetchUsers(ctx, r)
	}()
	go func() {
		defer wg.Done()
		reasons = s.Reasons.ListReasons(ctx)
	}()
	wg.Wait()
	if err != nil {
		return nil, err
	}

	out := &ClientReport{Rows: make([]ClientRow, 0, len(rows))}
	for _, v := range rows {
		row := ClientRow{
			ProjectedUserView: v,
			CreatedAtText:     v.CreatedAt.In(s.Location).Format(entity.DisplayLayout),
			MissingContact:    v.MissingContact(),
		}
		if text, ok := reasons[v.ID.String()]; ok {
			t := text
			row.Reason = &t
		}
		if row.MissingContact {
			out.MissingContactCount++
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}
