package textutil_test

import (
	"testing"

	"ticketflow/internal/textutil"
)

func TestFoldStripsAccentsAndCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Légende", "legende"},
		{"  ROADMAP  ", "roadmap"},
		{"Critères d'acceptation", "criteres d'acceptation"},
		{"déjà vu", "deja vu"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := textutil.Fold(tc.in); got != tc.want {
			t.Errorf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1. Suivi des bogues", "1-suivi-des-bogues"},
		{"Fonctionnalités à venir", "fonctionnalites-a-venir"},
		{"--- Légende ---", "legende"},
		{"Écrans & Maquettes", "ecrans-maquettes"},
	}
	for _, tc := range cases {
		if got := textutil.Slug(tc.in); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	if got := textutil.SanitizeFileName("a/b:c*d?.md"); got != "a-b-c-d.md" {
		t.Errorf("SanitizeFileName = %q", got)
	}
}
