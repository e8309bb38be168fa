package postgres

import (
	"reflect"
	"testing"
)

func TestQuerySQL(t *testing.T) {
	tests := []struct {
		name     string
		query    *Query
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "whole table",
			query:   From("projects"),
			wantSQL: `SELECT to_jsonb(t) FROM "projects" t`,
		},
		{
			name:     "filter order limit",
			query:    From("projects").Eq("id", "p1").Order("created_at", true).Limit(5),
			wantSQL:  `SELECT to_jsonb(t) FROM "projects" t WHERE t."id" = $1 ORDER BY t."created_at" DESC LIMIT 5`,
			wantArgs: []any{"p1"},
		},
		{
			name:     "case-insensitive match",
			query:    From("profiles").EqFold("email", "A@B.com"),
			wantSQL:  `SELECT to_jsonb(t) FROM "profiles" t WHERE lower(t."email") = lower($1)`,
			wantArgs: []any{"A@B.com"},
		},
		{
			name:     "null checks take no placeholder",
			query:    From("project_images").IsNull("phase_id", true).Eq("project_id", "p1").IsNull("url", false),
			wantSQL:  `SELECT to_jsonb(t) FROM "project_images" t WHERE t."phase_id" IS NULL AND t."project_id" = $1 AND t."url" IS NOT NULL`,
			wantArgs: []any{"p1"},
		},
		{
			name:     "range and two orderings",
			query:    From("admin_events").Gte("event_date", "2025-03-01").Order("event_date", false).Order("event_time", false),
			wantSQL:  `SELECT to_jsonb(t) FROM "admin_events" t WHERE t."event_date" >= $1 ORDER BY t."event_date" ASC, t."event_time" ASC`,
			wantArgs: []any{"2025-03-01"},
		},
		{
			name: "join with qualified column",
			query: From("tickets").
				Select("to_jsonb(t) || jsonb_build_object('project_name', p.name)").
				Join("LEFT JOIN projects p ON p.id = t.project_id").
				Eq("p.name", "Villa"),
			wantSQL:  `SELECT to_jsonb(t) || jsonb_build_object('project_name', p.name) FROM "tickets" t LEFT JOIN projects p ON p.id = t.project_id WHERE "p"."name" = $1`,
			wantArgs: []any{"Villa"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sql, args := tc.query.SQL()
			if sql != tc.wantSQL {
				t.Fatalf("sql:\n got %s\nwant %s", sql, tc.wantSQL)
			}
			if len(args) != len(tc.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tc.wantArgs)) {
				t.Fatalf("args: got %v, want %v", args, tc.wantArgs)
			}
		})
	}
}

func TestInsertSQLSortsColumns(t *testing.T) {
	sql, args := insertSQL("projects", Row{"name": "Villa", "budget": 1200.5, "client_name": "Dupont"}, rowJSON)

	want := `INSERT INTO "projects" AS t ("budget", "client_name", "name") VALUES ($1, $2, $3) RETURNING to_jsonb(t)`
	if sql != want {
		t.Fatalf("got %s\nwant %s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{1200.5, "Dupont", "Villa"}) {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestInsertSQLCustomReturning(t *testing.T) {
	sql, _ := insertSQL("admin_events", Row{"title": "Visite"}, "jsonb_build_object('id', t.id)")

	want := `INSERT INTO "admin_events" AS t ("title") VALUES ($1) RETURNING jsonb_build_object('id', t.id)`
	if sql != want {
		t.Fatalf("got %s\nwant %s", sql, want)
	}
}

func TestUpsertSQL(t *testing.T) {
	sql, args := upsertSQL("profiles", "id", Row{"id": "u1", "role": "admin", "email": "a@b.com"})

	want := `INSERT INTO "profiles" AS t ("email", "id", "role") VALUES ($1, $2, $3) ` +
		`ON CONFLICT ("id") DO UPDATE SET "email" = EXCLUDED."email", "role" = EXCLUDED."role" RETURNING to_jsonb(t)`
	if sql != want {
		t.Fatalf("got %s\nwant %s", sql, want)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
}

func TestUpsertSQLKeyOnly(t *testing.T) {
	sql, _ := upsertSQL("profiles", "id", Row{"id": "u1"})

	want := `INSERT INTO "profiles" AS t ("id") VALUES ($1) ON CONFLICT ("id") DO NOTHING RETURNING to_jsonb(t)`
	if sql != want {
		t.Fatalf("got %s\nwant %s", sql, want)
	}
}

func TestUpdateSQLNumbersFilterAfterSet(t *testing.T) {
	filter := From("messages").Eq("project_id", "p1").Eq("read", false)
	sql, args := updateSQL("messages", Row{"read": true}, filter, "1")

	want := `UPDATE "messages" AS t SET "read" = $1 WHERE t."project_id" = $2 AND t."read" = $3 RETURNING 1`
	if sql != want {
		t.Fatalf("got %s\nwant %s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{true, "p1", false}) {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestDeleteSQL(t *testing.T) {
	sql, args := deleteSQL("messages", From("messages").Eq("project_id", "p1"))

	want := `DELETE FROM "messages" AS t WHERE t."project_id" = $1`
	if sql != want {
		t.Fatalf("got %s\nwant %s", sql, want)
	}
	if len(args) != 1 || args[0] != "p1" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestIdentEscapesQuotes(t *testing.T) {
	if got := ident(`we"ird`); got != `t."we""ird"` {
		t.Fatalf("got %s", got)
	}
}
