package backlog_test

import (
	"strings"
	"testing"

	"ticketflow/internal/backlog"
)

const sampleDocument = `# Ticketflow — Backlog

Suivi du backlog produit.

**Table des matières**
- [1. Suivi des bogues](#1-suivi-des-bogues)
- [2. Fonctionnalités](#2-fonctionnalites)

## 1. Suivi des bogues

### BUG-001 | 🐛 Connexion impossible après expiration de session

**Composant:** Auth
**Module:** Login
**Sévérité:** P1 - Haute
**Priorité:** Haute
**Effort:** M

La session expirée renvoie une page blanche au lieu du formulaire.

> En tant qu'utilisateur, je veux être redirigé vers la connexion.

**Reproduction:**
1. Se connecter
2. Attendre l'expiration de la session
3. Recharger la page

**Critères d'acceptation:**
- [ ] Redirection vers le formulaire
- [x] Message d'erreur explicite
- [ ] Session renouvelée après reconnexion

**Captures d'écran:**
![Page blanche](capture_1714987300123.png)

---

### BUG-005 à 007 | Petites anomalies d'affichage

**Sévérité:** P3 - Basse

| ID | Description | Action |
|---|---|---|
| BUG-005 | Icône décalée | Corriger le CSS |
| BUG-006 | Libellé tronqué | Élargir la colonne |
| BUG-007 | Contraste insuffisant | Ajuster la couleur |

---

## 2. Fonctionnalités

### FEAT-001 | ✨ Export PDF du backlog

**Composant:** Export
**Priorité:** Moyenne

**Spécifications:**
- Génération côté client
- Pagination automatique

**Dépendances:**
- FEAT-002

---

## Légende

| Code | Signification |
|---|---|
| P1 | Critique |

---
`

func mustItem(t *testing.T, entry backlog.Entry) *backlog.Item {
	t.Helper()
	item, ok := entry.(*backlog.Item)
	if !ok {
		t.Fatalf("expected *backlog.Item, got %T", entry)
	}
	return item
}

func TestParseEmptyDocument(t *testing.T) {
	doc := backlog.Parse("")
	if len(doc.Sections) != 0 {
		t.Fatalf("expected zero sections, got %d", len(doc.Sections))
	}
	if doc.Header != "" || doc.TableOfContents != "" {
		t.Fatalf("expected empty header/toc, got %q / %q", doc.Header, doc.TableOfContents)
	}
}

func TestParseSampleDocumentStructure(t *testing.T) {
	doc := backlog.Parse(sampleDocument)

	if !strings.Contains(doc.Header, "# Ticketflow — Backlog") {
		t.Fatalf("header missing title: %q", doc.Header)
	}
	if !strings.HasPrefix(doc.TableOfContents, "**Table des matières**") {
		t.Fatalf("toc not extracted: %q", doc.TableOfContents)
	}
	if strings.Contains(doc.Header, "Table des matières") {
		t.Fatalf("toc left inside header: %q", doc.Header)
	}

	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	wantTitles := []string{"Suivi des bogues", "Fonctionnalités", "Légende"}
	for i, want := range wantTitles {
		section := doc.Sections[i]
		if section.Title != want {
			t.Errorf("section %d title = %q, want %q", i, section.Title, want)
		}
		if wantID := string(rune('1' + i)); section.ID != wantID {
			t.Errorf("section %d id = %q, want %q", i, section.ID, wantID)
		}
	}

	bugs := doc.Sections[0]
	if len(bugs.Entries) != 2 {
		t.Fatalf("expected 2 entries in bug section, got %d", len(bugs.Entries))
	}
	if _, ok := bugs.Entries[1].(*backlog.TableGroup); !ok {
		t.Fatalf("expected second entry to be a table group, got %T", bugs.Entries[1])
	}
}

func TestParseBugItemFields(t *testing.T) {
	doc := backlog.Parse(sampleDocument)
	item := mustItem(t, doc.Sections[0].Entries[0])

	if item.ID != "BUG-001" || item.Type != "BUG" {
		t.Fatalf("unexpected id/type: %q / %q", item.ID, item.Type)
	}
	if item.Emoji != "🐛" {
		t.Errorf("emoji = %q", item.Emoji)
	}
	if item.Title != "Connexion impossible après expiration de session" {
		t.Errorf("title = %q", item.Title)
	}
	if item.Component != "Auth" || item.Module != "Login" {
		t.Errorf("component/module = %q / %q", item.Component, item.Module)
	}
	if item.Severity != backlog.SeverityCritical {
		t.Errorf("severity = %q, want P1", item.Severity)
	}
	if item.Priority != "Haute" || item.Effort != "M" {
		t.Errorf("priority/effort = %q / %q", item.Priority, item.Effort)
	}
	if !strings.HasPrefix(item.Description, "La session expirée") {
		t.Errorf("description = %q", item.Description)
	}
	if !strings.HasPrefix(item.UserStory, "En tant qu'utilisateur") {
		t.Errorf("user story = %q", item.UserStory)
	}
	if len(item.Reproduction) != 3 || item.Reproduction[2] != "Recharger la page" {
		t.Errorf("reproduction = %#v", item.Reproduction)
	}

	if len(item.Criteria) != 3 {
		t.Fatalf("expected 3 criteria, got %d", len(item.Criteria))
	}
	if item.Criteria[0].Checked {
		t.Error("criteria[0] should be unchecked")
	}
	if !item.Criteria[1].Checked {
		t.Error("criteria[1] should be checked")
	}
	if item.Criteria[2].Checked {
		t.Error("criteria[2] should be unchecked")
	}

	if len(item.Screenshots) != 1 {
		t.Fatalf("expected 1 screenshot, got %d", len(item.Screenshots))
	}
	shot := item.Screenshots[0]
	if shot.Filename != "capture_1714987300123.png" || shot.Alt != "Page blanche" {
		t.Errorf("screenshot = %#v", shot)
	}
	if shot.AddedAt != 1714987300123 {
		t.Errorf("screenshot timestamp = %d, want 1714987300123", shot.AddedAt)
	}
}

func TestScreenshotWithoutTimestampDefaultsToParseTime(t *testing.T) {
	text := "### BUG-002 | Capture sans horodatage\n\n**Captures d'écran:**\n![](capture.png)\n"
	item, ok := backlog.NewParser(nil).ParseItemBlock(text)
	if !ok {
		t.Fatal("expected item to parse")
	}
	if len(item.Screenshots) != 1 {
		t.Fatalf("expected 1 screenshot, got %d", len(item.Screenshots))
	}
	if item.Screenshots[0].AddedAt == 0 {
		t.Error("expected a parse-time default timestamp")
	}
}

func TestFusedSeparatorHeaderSplitsSections(t *testing.T) {
	fused := "## Premier\n\n### BUG-001 | Un\n\n---## Second\n\n### BUG-002 | Deux\n\n---\n"
	unfused := strings.Replace(fused, "---## Second", "---\n## Second", 1)

	for _, text := range []string{fused, unfused} {
		doc := backlog.Parse(text)
		if len(doc.Sections) != 2 {
			t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
		}
		if doc.Sections[1].Title != "Second" {
			t.Fatalf("second section title = %q", doc.Sections[1].Title)
		}
		if len(doc.Sections[0].Entries) != 1 || len(doc.Sections[1].Entries) != 1 {
			t.Fatalf("unexpected entry counts: %d / %d",
				len(doc.Sections[0].Entries), len(doc.Sections[1].Entries))
		}
	}
}

func TestSectionIDsArePositional(t *testing.T) {
	doc := backlog.Parse("## Sans numéro\n\ncorps\n\n## 9. Numérotée\n\ncorps\n")
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].ID != "1" || doc.Sections[1].ID != "2" {
		t.Fatalf("ids = %q / %q, want positional 1 / 2", doc.Sections[0].ID, doc.Sections[1].ID)
	}
	if doc.Sections[1].Title != "Numérotée" {
		t.Fatalf("decorative numeral not stripped: %q", doc.Sections[1].Title)
	}
}

func TestRawSectionYieldsSingleRawBlock(t *testing.T) {
	doc := backlog.Parse(sampleDocument)
	legend := doc.Sections[2]
	if len(legend.Entries) != 1 {
		t.Fatalf("expected exactly 1 entry, got %d", len(legend.Entries))
	}
	raw, ok := legend.Entries[0].(*backlog.RawBlock)
	if !ok {
		t.Fatalf("expected *backlog.RawBlock, got %T", legend.Entries[0])
	}
	if !strings.Contains(raw.RawMarkdown, "| P1 | Critique |") {
		t.Fatalf("legend table not preserved: %q", raw.RawMarkdown)
	}
	if len(backlog.AllItems(doc)) != 2 {
		t.Fatalf("raw section leaked items: %d", len(backlog.AllItems(doc)))
	}
}

func TestRawSectionMatchingIsAccentInsensitive(t *testing.T) {
	for _, header := range []string{"## Légende", "## LEGENDE", "## Conventions de nommage", "## Roadmap 2026"} {
		doc := backlog.Parse(header + "\n\n### BUG-099 | Ne pas parser\n\n---\n")
		if len(doc.Sections) != 1 {
			t.Fatalf("%s: expected 1 section", header)
		}
		entries := doc.Sections[0].Entries
		if len(entries) != 1 {
			t.Fatalf("%s: expected 1 entry, got %d", header, len(entries))
		}
		if _, ok := entries[0].(*backlog.RawBlock); !ok {
			t.Fatalf("%s: expected raw block, got %T", header, entries[0])
		}
	}
}

func TestUnheaderedContentPreservedAsRaw(t *testing.T) {
	text := "## Bogues\n\nNote orpheline avant le premier ticket.\n\n### BUG-001 | Un\n\n---\n\nrésidu après séparateur\n\n### Notes diverses\n\ntexte sous un entête non conforme\n"
	doc := backlog.Parse(text)
	entries := doc.Sections[0].Entries
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	if _, ok := entries[0].(*backlog.RawBlock); !ok {
		t.Fatalf("leading text: expected raw block, got %T", entries[0])
	}
	if _, ok := entries[1].(*backlog.Item); !ok {
		t.Fatalf("expected item, got %T", entries[1])
	}
	residue, ok := entries[2].(*backlog.RawBlock)
	if !ok {
		t.Fatalf("separator residue: expected raw block, got %T", entries[2])
	}
	if residue.RawMarkdown != "résidu après séparateur" {
		t.Fatalf("residue = %q", residue.RawMarkdown)
	}
	if _, ok := entries[3].(*backlog.RawBlock); !ok {
		t.Fatalf("unrecognized header: expected raw block, got %T", entries[3])
	}
}

func TestEmptySectionsAreRetained(t *testing.T) {
	doc := backlog.Parse("## Vide\n\n## Pleine\n\n### BUG-001 | Un\n\n---\n")
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if len(doc.Sections[0].Entries) != 0 {
		t.Fatalf("empty section should have no entries, got %d", len(doc.Sections[0].Entries))
	}
}

func TestUnknownMetadataLabelIsSkipped(t *testing.T) {
	text := "### BUG-003 | Étiquette inconnue\n\n**Composant:** Auth\n**Rapporteur:** Alice\n\nDescription.\n"
	item, ok := backlog.NewParser(nil).ParseItemBlock(text)
	if !ok {
		t.Fatal("expected item to parse")
	}
	if item.Component != "Auth" {
		t.Errorf("component = %q", item.Component)
	}
	if item.Description != "Description." {
		t.Errorf("description = %q", item.Description)
	}
}
