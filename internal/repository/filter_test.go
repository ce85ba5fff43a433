package repository

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildListQuery(t *testing.T) {
	cases := []struct {
		name      string
		filter    UserFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filters",
			filter:    UserFilter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "only students",
			filter:    UserFilter{OnlyStudents: true},
			wantWhere: "WHERE student = TRUE",
			wantArgs:  nil,
		},
		{
			name:      "only teachers",
			filter:    UserFilter{OnlyTeachers: true},
			wantWhere: "WHERE student = FALSE",
			wantArgs:  nil,
		},
		{
			name:      "students of a grade",
			filter:    UserFilter{OnlyStudents: true, Grade: "11"},
			wantWhere: "WHERE student = TRUE AND grade LIKE $1",
			wantArgs:  []any{"11%"},
		},
		{
			name:      "exact class",
			filter:    UserFilter{OnlyStudents: true, Grade: "11A"},
			wantWhere: "WHERE student = TRUE AND grade LIKE $1",
			wantArgs:  []any{"11A%"},
		},
		{
			name:      "grade alone implies students",
			filter:    UserFilter{Grade: "9"},
			wantWhere: "WHERE student = TRUE AND grade LIKE $1",
			wantArgs:  []any{"9%"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			query, args := buildListQuery(tc.filter)
			if !strings.HasPrefix(query, "SELECT "+userCols+" FROM users") {
				t.Fatalf("unexpected query prefix: %s", query)
			}
			if !strings.HasSuffix(query, " ORDER BY username") {
				t.Fatalf("query must be ordered: %s", query)
			}
			if tc.wantWhere == "" {
				if strings.Contains(query, "WHERE") {
					t.Fatalf("expected no WHERE clause, got: %s", query)
				}
			} else if !strings.Contains(query, tc.wantWhere) {
				t.Fatalf("expected %q in query %q", tc.wantWhere, query)
			}
			if !reflect.DeepEqual(args, tc.wantArgs) {
				t.Fatalf("expected args %v, got %v", tc.wantArgs, args)
			}
		})
	}
}
