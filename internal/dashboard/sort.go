package dashboard

import (
	"slices"
	"strings"
	"time"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

// Column names a sortable table column by its JSON field name
type Column string

const (
	ColID        Column = "idUsuarioDigital"
	ColCreatedAt Column = "fechaCreacion"
	ColName      Column = "nombrePreferido"
	ColFullName  Column = "nombreCompleto"
	ColIDNumber  Column = "numeroIdentificacion"
	ColEmail     Column = "email"
	ColPhone     Column = "telefono"
	ColContact   Column = "idContacto"
	ColReason    Column = "motivo"
)

var Columns = []Column{ColID, ColCreatedAt, ColName, ColFullName, ColIDNumber, ColEmail, ColPhone, ColContact, ColReason}

func ParseColumn(s string) (Column, bool) {
	for _, c := range Columns {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// value returns the display text of col; nulls are "".
func value(r Row, col Column, reasons map[string]string) string {
	switch col {
	case ColID:
		return r.ID.String()
	case ColCreatedAt:
		return r.CreatedAtText
	case ColName:
		return r.PreferredName
	case ColFullName:
		return deref(r.FullName)
	case ColIDNumber:
		return deref(r.IDNumber)
	case ColEmail:
		return deref(r.Email)
	case ColPhone:
		return deref(r.Phone)
	case ColContact:
		return deref(r.ContactID)
	case ColReason:
		return reasons[r.ID.String()]
	}
	return ""
}

// parseDisplayTime reads a rendered creation time back; unparsable text sorts first.
func parseDisplayTime(s string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation(entity.DisplayLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Sorted returns the rows of s ordered by the current sort. s.Rows is not modified.
func Sorted(s State, loc *time.Location) []Row {
	out := slices.Clone(s.Rows)
	if s.Sort.Column == "" {
		return out
	}
	if loc == nil {
		loc = time.UTC
	}
	col := s.Sort.Column
	slices.SortStableFunc(out, func(a, b Row) int {
		var c int
		if col == ColCreatedAt {
			c = parseDisplayTime(a.CreatedAtText, loc).Compare(parseDisplayTime(b.CreatedAtText, loc))
		} else {
			c = strings.Compare(
				strings.ToLower(value(a, col, s.Reasons)),
				strings.ToLower(value(b, col, s.Reasons)),
			)
		}
		if s.Sort.Desc {
			return -c
		}
		return c
	})
	return out
}

// Value is the display text of one cell
func Value(s State, r Row, col Column) string {
	return value(r, col, s.Reasons)
}
