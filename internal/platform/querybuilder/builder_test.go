package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("*").
		From("invites").
		Where(Eq("league_public_id", "lg-1"), IsNull("deleted_at")).
		OrderBy("id").
		Limit(50).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM invites WHERE league_public_id = $1 AND deleted_at IS NULL ORDER BY id LIMIT 50"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "lg-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("invites").
		Set("status", "accepted").
		SetExpr("uses", "uses + 1").
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "inv-1"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE invites SET status = $1, uses = uses + 1, updated_at = NOW() WHERE public_id = $2 AND deleted_at IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "accepted" || args[1] != "inv-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_RequiresAssignments(t *testing.T) {
	if _, _, err := Update("invites").Where(Eq("public_id", "inv-1")).ToSQL(); err == nil {
		t.Fatal("expected error for missing assignments")
	}
}
