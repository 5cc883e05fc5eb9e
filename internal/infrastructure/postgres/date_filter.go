package postgres

import (
	"fmt"
	"strings"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

// dateFilter builds a WHERE clause comparing the calendar date of column
// against the bounds of r. Placeholders are numbered from 1.
//
//	neither bound      -> no clause
//	from only          -> date >= from
//	to only            -> date <= to
//	from == to         -> date = from
//	from != to         -> date >= from AND date <= to
func dateFilter(column string, r entity.DateRange) (string, []any) {
	conditions := []string{}
	args := []any{}
	day := column + "::date"

	addCondition := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if r.SameDay() {
		addCondition(day+" = $%d::date", entity.FormatDate(*r.From))
	} else {
		if r.From != nil {
			addCondition(day+" >= $%d::date", entity.FormatDate(*r.From))
		}
		if r.To != nil {
			addCondition(day+" <= $%d::date", entity.FormatDate(*r.To))
		}
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
