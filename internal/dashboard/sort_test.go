package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ids(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID.String())
	}
	return out
}

func TestSortedDoesNotMutateRows(t *testing.T) {
	s := NewState(time.Now())
	s.Rows = []Row{row("1", "b", "", nil), row("2", "a", "", nil)}
	s = SetSortColumn(s, ColName)

	assert.Equal(t, []string{"2", "1"}, ids(Sorted(s, time.UTC)))
	assert.Equal(t, []string{"1", "2"}, ids(s.Rows))

	s = SetSortColumn(s, ColName)
	assert.Equal(t, []string{"1", "2"}, ids(Sorted(s, time.UTC)))
}

func TestSortToggleAndResortAreStable(t *testing.T) {
	cases := []struct {
		name string
		col  Column
		rows []Row
		asc  []string
		desc []string
	}{
		{
			name: "name with equal keys",
			col:  ColName,
			rows: []Row{row("1", "b", "", nil), row("2", "a", "", nil), row("3", "B", "", nil), row("4", "a", "", nil)},
			asc:  []string{"2", "4", "1", "3"},
			desc: []string{"1", "3", "2", "4"},
		},
		{
			name: "creation time with equal keys",
			col:  ColCreatedAt,
			rows: []Row{
				row("1", "", "02/01/2024, 08:00:00", nil),
				row("2", "", "10/12/2023, 23:59:59", nil),
				row("3", "", "02/01/2024, 08:00:00", nil),
				row("4", "", "", nil),
			},
			asc:  []string{"4", "2", "1", "3"},
			desc: []string{"1", "3", "2", "4"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState(time.Now())
			s.Rows = tc.rows

			s = SetSortColumn(s, tc.col)
			first := ids(Sorted(s, time.UTC))
			assert.Equal(t, tc.asc, first)

			s = SetSortColumn(s, tc.col)
			assert.True(t, s.Sort.Desc)
			assert.Equal(t, tc.desc, ids(Sorted(s, time.UTC)))

			s = SetSortColumn(s, tc.col)
			assert.Equal(t, Sort{Column: tc.col}, s.Sort)
			assert.Equal(t, first, ids(Sorted(s, time.UTC)))

			// sorting an already sorted table changes nothing
			s.Rows = Sorted(s, time.UTC)
			assert.Equal(t, ids(s.Rows), ids(Sorted(s, time.UTC)))

			s = SetSortColumn(s, tc.col)
			s.Rows = Sorted(s, time.UTC)
			assert.Equal(t, tc.desc, ids(s.Rows))
			assert.Equal(t, ids(s.Rows), ids(Sorted(s, time.UTC)))
		})
	}
}

func TestSortedCaseInsensitiveNullsFirst(t *testing.T) {
	email := func(s string) *string { return &s }
	s := NewState(time.Now())
	a, b, c := row("1", "", "", nil), row("2", "", "", nil), row("3", "", "", nil)
	a.Email = email("Zed@x.com")
	b.Email = nil
	c.Email = email("alice@x.com")
	s.Rows = []Row{a, b, c}
	s = SetSortColumn(s, ColEmail)

	assert.Equal(t, []string{"2", "3", "1"}, ids(Sorted(s, time.UTC)))
}

func TestSortedByCreationParsesDisplayTime(t *testing.T) {
	s := NewState(time.Now())
	// lexical order would put "02/01/2024" before "10/12/2023"
	s.Rows = []Row{
		row("jan", "", "02/01/2024, 08:00:00", nil),
		row("dec", "", "10/12/2023, 23:59:59", nil),
		row("jan-late", "", "02/01/2024, 18:30:00", nil),
	}
	s = SetSortColumn(s, ColCreatedAt)
	assert.Equal(t, []string{"dec", "jan", "jan-late"}, ids(Sorted(s, time.UTC)))

	s = SetSortColumn(s, ColCreatedAt)
	assert.Equal(t, []string{"jan-late", "jan", "dec"}, ids(Sorted(s, time.UTC)))
}

func TestSortedByReasonUsesOverlay(t *testing.T) {
	s := NewState(time.Now())
	s.Rows = []Row{row("1", "", "", nil), row("2", "", "", nil), row("3", "", "", nil)}
	s = ReasonSaved(s, "1", "zeta")
	s = ReasonSaved(s, "3", "Alpha")
	s = SetSortColumn(s, ColReason)

	assert.Equal(t, []string{"2", "3", "1"}, ids(Sorted(s, time.UTC)))
}

func TestSortedWithoutColumnKeepsOrder(t *testing.T) {
	s := NewState(time.Now())
	s.Rows = []Row{row("b", "", "", nil), row("a", "", "", nil)}
	assert.Equal(t, []string{"b", "a"}, ids(Sorted(s, nil)))
}

func TestParseColumn(t *testing.T) {
	c, ok := ParseColumn("FechaCreacion")
	assert.True(t, ok)
	assert.Equal(t, ColCreatedAt, c)
	_, ok = ParseColumn("nope")
	assert.False(t, ok)
}

func TestNewRowFormatsInLocation(t *testing.T) {
	loc := time.FixedZone("CLT", -3*3600)
	r := NewRow(row("1", "", "", nil).ProjectedUserView, loc)
	r2 := NewRow(r.ProjectedUserView, loc)
	assert.Equal(t, r.CreatedAtText, r2.CreatedAtText)

	v := r.ProjectedUserView
	v.CreatedAt = time.Date(2024, 3, 1, 2, 30, 0, 0, time.UTC)
	assert.Equal(t, "29/02/2024, 23:30:00", NewRow(v, loc).CreatedAtText)
}
