package repository

import "strings"

// UserFilter — критерии выборки каталога пользователей.
// OnlyStudents и OnlyTeachers взаимоисключающие; проверяет handler.
// Grade относится к ученикам: "11A" — точный класс, "11" — вся параллель
// (совпадение по префиксу обозначения класса).
type UserFilter struct {
	OnlyStudents bool
	OnlyTeachers bool
	Grade        string
}

// buildListQuery собирает SELECT по фильтру. Точный класс — частный случай
// префикса, поэтому обе семантики закрывает один LIKE.
func buildListQuery(f UserFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	switch {
	case f.OnlyStudents:
		conds = append(conds, "student = TRUE")
	case f.OnlyTeachers:
		conds = append(conds, "student = FALSE")
	}
	// Параллель задаётся только у учеников; при onlyTeachers фильтр по
	// классу не имеет смысла и игнорируется.
	if f.Grade != "" && !f.OnlyTeachers {
		if !f.OnlyStudents {
			conds = append(conds, "student = TRUE")
		}
		args = append(args, f.Grade+"%")
		conds = append(conds, "grade LIKE $1")
	}

	query := `SELECT ` + userCols + ` FROM users`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY username`
	return query, args
}
