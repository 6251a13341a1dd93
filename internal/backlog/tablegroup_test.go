package backlog_test

import (
	"testing"

	"ticketflow/internal/backlog"
)

func TestTableGroupScenario(t *testing.T) {
	doc := backlog.Parse(sampleDocument)

	group, ok := doc.Sections[0].Entries[1].(*backlog.TableGroup)
	if !ok {
		t.Fatalf("expected table group, got %T", doc.Sections[0].Entries[1])
	}
	if group.Title != "Petites anomalies d'affichage" {
		t.Errorf("title = %q", group.Title)
	}
	if group.Type != "BUG" || group.RangeStart != 5 || group.RangeEnd != 7 {
		t.Errorf("range = %s %d-%d", group.Type, group.RangeStart, group.RangeEnd)
	}
	if group.Severity != backlog.SeverityMedium {
		t.Errorf("severity = %q, want P3", group.Severity)
	}
	if len(group.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(group.Rows))
	}
	wantIDs := []string{"BUG-005", "BUG-006", "BUG-007"}
	for i, want := range wantIDs {
		if group.Rows[i].ID != want {
			t.Errorf("row %d id = %q, want %q", i, group.Rows[i].ID, want)
		}
	}
	if group.Rows[0].Description != "Icône décalée" || group.Rows[0].Action != "Corriger le CSS" {
		t.Errorf("row 0 = %#v", group.Rows[0])
	}

	// Grouped rows never surface as standalone items.
	for _, item := range backlog.AllItems(doc) {
		for _, id := range wantIDs {
			if item.ID == id {
				t.Fatalf("row id %s leaked into flattened items", id)
			}
		}
	}
}

func TestTableGroupHeaderRowToleratesLocale(t *testing.T) {
	text := "## Bogues\n\n### BUG-010 to 011 | Minor issues\n\n| Id | Description : | Action(s) |\n|:---|:---|:---|\n| BUG-010 | a | b |\n| BUG-011 | c | d |\n\n---\n"
	doc := backlog.Parse(text)
	group, ok := doc.Sections[0].Entries[0].(*backlog.TableGroup)
	if !ok {
		t.Fatalf("expected table group, got %T", doc.Sections[0].Entries[0])
	}
	if len(group.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(group.Rows))
	}
}

func TestTableGroupMalformedRowExcluded(t *testing.T) {
	text := "## Bogues\n\n### BUG-020 à 021 | Avec ligne cassée\n\n| ID | Description | Action |\n|---|---|---|\n| BUG-020 | ok | ok |\n| BUG-021 cassée |\n\n---\n"
	doc := backlog.Parse(text)
	group, ok := doc.Sections[0].Entries[0].(*backlog.TableGroup)
	if !ok {
		t.Fatalf("expected table group, got %T", doc.Sections[0].Entries[0])
	}
	if len(group.Rows) != 1 || group.Rows[0].ID != "BUG-020" {
		t.Fatalf("malformed row should be excluded, got %#v", group.Rows)
	}
}
