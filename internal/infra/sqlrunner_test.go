package infra

import (
	"strings"
	"testing"

	"server/internal/sqlinline"
)

func TestExtractMarker(t *testing.T) {
	marker, trimmed, err := extractMarker(`--sql 0a1b2c3d-0000-1111-2222-333344445555
		select 1`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if marker != "0a1b2c3d-0000-1111-2222-333344445555" {
		t.Fatalf("unexpected marker %q", marker)
	}
	if strings.Contains(trimmed, "--sql") {
		t.Fatalf("marker line not stripped: %q", trimmed)
	}

	bad := []string{
		"select 1",
		"--sql not-a-uuid\nselect 1",
		"--sql 0A1B2C3D-0000-1111-2222-333344445555\nselect 1",
		"",
	}
	for _, q := range bad {
		if _, _, err := extractMarker(q); err == nil {
			t.Fatalf("expected error for %q", q)
		}
	}
}

func TestInlineQueriesCarryMarkers(t *testing.T) {
	queries := map[string]string{
		"insert user":           sqlinline.QInsertUser,
		"fundraiser for update": sqlinline.QSelectFundraiserForUpdate,
		"sum pledges":           sqlinline.QSumPledges,
		"close fundraiser":      sqlinline.QCloseFundraiser,
		"delete comment tree":   sqlinline.QDeleteCommentSubtree,
	}
	for name, q := range queries {
		if _, _, err := extractMarker(q); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}
