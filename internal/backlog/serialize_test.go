package backlog_test

import (
	"reflect"
	"strings"
	"testing"

	"ticketflow/internal/backlog"
)

func TestFidelityUnmodifiedItemsReserializeExactly(t *testing.T) {
	doc := backlog.Parse(sampleDocument)
	items := backlog.AllItems(doc)
	if len(items) == 0 {
		t.Fatal("no items parsed")
	}
	for _, item := range items {
		if item.Origin != backlog.OriginVerbatim {
			t.Fatalf("%s: parsed item should be verbatim", item.ID)
		}
		if got := item.Markdown(); got != item.RawMarkdown {
			t.Errorf("%s: Markdown() diverged from source:\n%s", item.ID, got)
		}
		if !strings.Contains(sampleDocument, item.RawMarkdown) {
			t.Errorf("%s: raw slice is not a byte-exact substring of the source", item.ID)
		}
	}
}

func TestMarkEditedSwitchesToSynthesis(t *testing.T) {
	doc := backlog.Parse(sampleDocument)
	item := mustItem(t, doc.Sections[0].Entries[0])

	item.Title = "Titre corrigé"
	item.MarkEdited()
	if item.Origin != backlog.OriginSynthesized || item.RawMarkdown != "" {
		t.Fatal("MarkEdited should clear the verbatim state")
	}
	if !strings.HasPrefix(item.Markdown(), "### BUG-001 | 🐛 Titre corrigé") {
		t.Fatalf("synthesis did not pick up the edit:\n%s", item.Markdown())
	}
}

func TestRoundTripSynthesizedItem(t *testing.T) {
	original := &backlog.Item{
		ID:          "BUG-042",
		Type:        "BUG",
		Title:       "Défilement saccadé sur la liste",
		Emoji:       "🐛",
		Component:   "UI",
		Module:      "Liste",
		Severity:    backlog.SeverityHigh,
		Priority:    "Moyenne",
		Effort:      "S",
		Description: "Le défilement saute lorsque plus de cent tickets sont affichés.",
		UserStory:   "En tant que chef de projet, je veux une liste fluide.",
		Specs:       []string{"Virtualisation de la liste", "Hauteur de ligne fixe"},
		Reproduction: []string{
			"Importer un backlog de plus de cent tickets",
			"Faire défiler rapidement",
		},
		Criteria: []backlog.Criterion{
			{Text: "Aucune image figée au défilement"},
			{Text: "Mesure de performance documentée", Checked: true},
		},
		Dependencies: []string{"TECH-003"},
		Constraints:  []string{"Compatible avec le tri existant"},
		Screens:      []string{"Liste des tickets"},
		Screenshots:  []backlog.Screenshot{{Filename: "saccade_1714987300123.png", Alt: "Saccade", AddedAt: 1714987300123}},
	}

	text := original.Markdown()
	reparsed, ok := backlog.NewParser(nil).ParseItemBlock(text)
	if !ok {
		t.Fatalf("synthesized text did not re-parse:\n%s", text)
	}

	// The round-trip law holds modulo the raw source slice and origin tag.
	reparsed.RawMarkdown = ""
	reparsed.Origin = backlog.OriginSynthesized
	if !reflect.DeepEqual(original, reparsed) {
		t.Fatalf("round trip diverged:\noriginal:  %#v\nreparsed: %#v", original, reparsed)
	}
}

func TestSynthesisOmitsEmptyFields(t *testing.T) {
	item := &backlog.Item{ID: "TECH-001", Type: "TECH", Title: "Nettoyage"}
	text := item.Markdown()
	if text != "### TECH-001 | Nettoyage" {
		t.Fatalf("minimal item should be a bare header, got:\n%q", text)
	}
	if strings.Contains(text, "**") {
		t.Fatalf("empty fields must not emit labels:\n%s", text)
	}
}

func TestSynthesisIsDeterministic(t *testing.T) {
	item := &backlog.Item{
		ID:       "FEAT-010",
		Type:     "FEAT",
		Title:    "Recherche plein texte",
		Severity: backlog.SeverityLow,
		Specs:    []string{"Index mis à jour à l'import"},
	}
	first := item.Markdown()
	second := item.Markdown()
	if first != second {
		t.Fatal("synthesis must be deterministic")
	}
}
