package dashboard

import (
	"time"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

// Row is one table line: the projected user plus its rendered creation time.
type Row struct {
	entity.ProjectedUserView
	CreatedAtText string
}

func NewRow(v entity.ProjectedUserView, loc *time.Location) Row {
	if loc == nil {
		loc = time.UTC
	}
	return Row{ProjectedUserView: v, CreatedAtText: v.CreatedAt.In(loc).Format(entity.DisplayLayout)}
}

func MissingContactCount(rows []Row) int {
	n := 0
	for _, r := range rows {
		if r.MissingContact() {
			n++
		}
	}
	return n
}

func sampleRow(id, name, created string, contact, fullName, email, phone *string) Row {
	return Row{
		ProjectedUserView: entity.ProjectedUserView{
			ID:            entity.DigitalUserID(id),
			PreferredName: name,
			ContactID:     contact,
			FullName:      fullName,
			Email:         email,
			Phone:         phone,
		},
		CreatedAtText: created,
	}
}

func ptr(s string) *string { return &s }

// SampleRows is the fixed dataset shown when the user fetch fails.
func SampleRows() []Row {
	return []Row{
		sampleRow("demo-1", "Ana", "01/03/2024, 09:15:00", ptr("c-1"), ptr("Ana María Rojas"), ptr("ana@example.com"), ptr("+56911111111")),
		sampleRow("demo-2", "bruno", "01/03/2024, 11:42:10", nil, nil, ptr("bruno@example.com"), nil),
		sampleRow("demo-3", "Carla", "02/03/2024, 08:05:33", ptr("c-3"), ptr("Carla Fuentes"), nil, ptr("+56933333333")),
	}
}
