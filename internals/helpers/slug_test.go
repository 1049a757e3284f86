package helper

import (
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"Belajar Go Dari Nol", "belajar-go-dari-nol"},
		{"Économie & Société", "economie-societe"},
		{"  Formation   Web  ", "formation-web"},
		{"C++ untuk Pemula!!!", "c-untuk-pemula"},
		{"déjà-vu", "deja-vu"},
		{"---", "item"},
		{"", "item"},
	}

	for _, c := range cases {
		if got := Slugify(c.input, 100); got != c.expected {
			t.Errorf("Expected Slugify(%q) to be %q, got %q", c.input, c.expected, got)
		}
	}
}

func TestSlugifyMaxLen(t *testing.T) {
	got := Slugify("formation sangat panjang sekali judulnya", 9)
	if len(got) > 9 {
		t.Errorf("Expected slug length <= 9, got %d (%q)", len(got), got)
	}
	// potongan tidak boleh berakhiran '-'
	if got[len(got)-1] == '-' {
		t.Errorf("Expected trimmed slug, got %q", got)
	}

	// maxLen <= 0 pakai default 100
	long := Slugify("abc", 0)
	if long != "abc" {
		t.Errorf("Expected %q, got %q", "abc", long)
	}
}

func TestSuggestSlugFromName(t *testing.T) {
	if got := SuggestSlugFromName("Théorie des Graphes"); got != "theorie-des-graphes" {
		t.Errorf("Expected %q, got %q", "theorie-des-graphes", got)
	}
}

func TestTrimForSuffix(t *testing.T) {
	// base+suffix harus muat dalam maxLen
	got := trimForSuffix("formation-web", "-2", 10)
	if len(got)+2 > 10 {
		t.Errorf("Expected base to fit with suffix, got %q", got)
	}

	// suffix yang sudah kepanjangan → fallback minimal
	if got := trimForSuffix("abc", "-123456", 5); got != "x" {
		t.Errorf("Expected %q, got %q", "x", got)
	}
}
