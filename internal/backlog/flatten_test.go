package backlog_test

import (
	"testing"

	"ticketflow/internal/backlog"
)

func TestAllItemsFirstOccurrenceWins(t *testing.T) {
	text := "## Bogues\n\n### BUG-001 | Version à jour\n\n**Composant:** Auth\n\n---\n\n## Archive\n\n### BUG-001 | Copie périmée\n\n**Composant:** Ancienne\n\n---\n\n### BUG-002 | Autre\n\n---\n"
	doc := backlog.Parse(text)

	items := backlog.AllItems(doc)
	if len(items) != 2 {
		t.Fatalf("expected 2 de-duplicated items, got %d", len(items))
	}
	seen := make(map[string]int)
	for _, item := range items {
		seen[item.ID]++
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("id %s returned %d times", id, count)
		}
	}
	if items[0].Title != "Version à jour" {
		t.Fatalf("expected first occurrence retained, got %q", items[0].Title)
	}
}

func TestItemsByType(t *testing.T) {
	doc := backlog.Parse(sampleDocument)

	bugs := backlog.ItemsByType(doc, "BUG")
	if len(bugs) != 1 || bugs[0].ID != "BUG-001" {
		t.Fatalf("unexpected BUG items: %#v", bugs)
	}
	feats := backlog.ItemsByType(doc, "FEAT")
	if len(feats) != 1 || feats[0].ID != "FEAT-001" {
		t.Fatalf("unexpected FEAT items: %#v", feats)
	}
	if unknown := backlog.ItemsByType(doc, "NONEXISTENT"); len(unknown) != 0 {
		t.Fatalf("unknown type should yield empty list, got %d items", len(unknown))
	}
}
