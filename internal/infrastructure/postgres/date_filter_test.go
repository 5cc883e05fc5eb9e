package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

func day(s string) *time.Time {
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestDateFilter(t *testing.T) {
	tests := []struct {
		name      string
		r         entity.DateRange
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no bounds",
			r:         entity.DateRange{},
			wantWhere: "",
			wantArgs:  []any{},
		},
		{
			name:      "from only",
			r:         entity.DateRange{From: day("2024-03-01")},
			wantWhere: " WHERE du.fecha_creacion::date >= $1::date",
			wantArgs:  []any{"2024-03-01"},
		},
		{
			name:      "to only",
			r:         entity.DateRange{To: day("2024-03-31")},
			wantWhere: " WHERE du.fecha_creacion::date <= $1::date",
			wantArgs:  []any{"2024-03-31"},
		},
		{
			name:      "same day",
			r:         entity.DateRange{From: day("2024-03-15"), To: day("2024-03-15")},
			wantWhere: " WHERE du.fecha_creacion::date = $1::date",
			wantArgs:  []any{"2024-03-15"},
		},
		{
			name:      "range",
			r:         entity.DateRange{From: day("2024-03-01"), To: day("2024-03-31")},
			wantWhere: " WHERE du.fecha_creacion::date >= $1::date AND du.fecha_creacion::date <= $2::date",
			wantArgs:  []any{"2024-03-01", "2024-03-31"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := dateFilter(creationDateColumn, tt.r)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestDateFilterIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 3, 15, 0, 5, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 15, 23, 55, 0, 0, time.UTC)

	where, args := dateFilter(creationDateColumn, entity.DateRange{From: &morning, To: &evening})

	assert.Equal(t, " WHERE du.fecha_creacion::date = $1::date", where)
	assert.Equal(t, []any{"2024-03-15"}, args)
}

func TestBuildProjectedQuery(t *testing.T) {
	q, args := buildProjectedQuery(entity.SingleDay(*day("2024-01-02")))

	assert.Len(t, args, 1)
	assert.Contains(t, q, "FROM usuario_digital du")
	assert.Contains(t, q, "LEFT JOIN email e ON e.id_email = du.id_email")
	assert.Contains(t, q, "LEFT JOIN telefono t ON t.id_telefono = du.id_telefono")
	assert.Contains(t, q, "LEFT JOIN contacto c ON c.id_contacto = du.id_contacto")
	assert.Contains(t, q, "NULL::text AS auth_method")
	assert.NotContains(t, q, "credencial_usuario")
	assert.NotContains(t, q, "INNER JOIN")
	assert.True(t, strings.HasSuffix(q, "ORDER BY du.fecha_creacion::date ASC, du.nombre_preferido ASC"))
	assert.Less(t, strings.Index(q, "WHERE"), strings.Index(q, "ORDER BY"))
}

func TestBuildBasicQueryHasNoJoins(t *testing.T) {
	q, args := buildBasicQuery(entity.DateRange{})

	assert.Empty(t, args)
	assert.NotContains(t, q, "JOIN")
	assert.NotContains(t, q, "WHERE")
	assert.Contains(t, q, "ORDER BY du.fecha_creacion::date ASC, du.nombre_preferido ASC")
}
