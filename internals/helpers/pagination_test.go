package helper

import (
	"strings"
	"testing"
)

func TestParamsLimitOffset(t *testing.T) {
	p := Params{Page: 3, PerPage: 25}

	if p.Limit() != 25 {
		t.Errorf("Expected Limit to be 25, got %d", p.Limit())
	}
	if p.Offset() != 50 {
		t.Errorf("Expected Offset to be 50, got %d", p.Offset())
	}
}

func TestSafeOrderClause(t *testing.T) {
	allowed := map[string]string{
		"created_at": "formation_created_at",
		"title":      "formation_title",
	}

	p := Params{SortBy: "title", SortOrder: "asc"}
	clause, err := p.SafeOrderClause(allowed, "created_at")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if clause != "ORDER BY formation_title ASC" {
		t.Errorf("Expected %q, got %q", "ORDER BY formation_title ASC", clause)
	}

	// kolom di luar whitelist jatuh ke default
	p = Params{SortBy: "password", SortOrder: "desc"}
	clause, err = p.SafeOrderClause(allowed, "created_at")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if clause != "ORDER BY formation_created_at DESC" {
		t.Errorf("Expected %q, got %q", "ORDER BY formation_created_at DESC", clause)
	}

	// kolom mentah dari klien tidak boleh bocor ke SQL
	if strings.Contains(clause, "password") {
		t.Errorf("Expected client sort key to be ignored, got %q", clause)
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(101, 2, 25)

	if p.Page != 2 {
		t.Errorf("Expected Page to be 2, got %d", p.Page)
	}
	if p.TotalPages != 5 {
		t.Errorf("Expected TotalPages to be 5, got %d", p.TotalPages)
	}
	if !p.HasNext {
		t.Errorf("Expected HasNext to be true")
	}
	if !p.HasPrev {
		t.Errorf("Expected HasPrev to be true")
	}

	// total kosong tetap satu halaman
	empty := BuildPaginationFromPage(0, 1, 25)
	if empty.TotalPages != 1 {
		t.Errorf("Expected TotalPages to be 1 for empty result, got %d", empty.TotalPages)
	}
	if empty.HasNext || empty.HasPrev {
		t.Errorf("Expected no next/prev for empty result")
	}

	// input tidak masuk akal dinormalkan
	weird := BuildPaginationFromPage(10, 0, 0)
	if weird.Page != 1 {
		t.Errorf("Expected Page normalized to 1, got %d", weird.Page)
	}
	if weird.PerPage != 20 {
		t.Errorf("Expected PerPage normalized to 20, got %d", weird.PerPage)
	}
}
