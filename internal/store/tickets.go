package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"ticketflow/internal/backlog"
)

const ticketColumns = "id, type, title, emoji, component, module, severity, priority, effort, description, user_story, specs_json, reproduction_json, criteria_json, dependencies_json, constraints_json, screens_json, screenshots_json, raw_markdown, section_position, position"

// ReplaceDocument wipes the store and loads a freshly parsed document:
// sections in order, tickets de-duplicated first-occurrence-first, and one
// audit row for the import batch. It returns the batch id and the number of
// tickets stored.
func (s *Store) ReplaceDocument(ctx context.Context, doc *backlog.Document, sourcePath string) (string, int, error) {
	if doc == nil {
		return "", 0, errors.New("document is nil")
	}

	batchID := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	count := 0

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tickets`); err != nil {
			return fmt.Errorf("clear tickets: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sections`); err != nil {
			return fmt.Errorf("clear sections: %w", err)
		}

		seen := make(map[string]struct{})
		for sectionIdx, section := range doc.Sections {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO sections (position, title, header_line) VALUES (?, ?, ?)`,
				sectionIdx+1, section.Title, section.RawHeaderLine,
			); err != nil {
				return fmt.Errorf("insert section %d: %w", sectionIdx+1, err)
			}

			for _, entry := range section.Entries {
				item, ok := entry.(*backlog.Item)
				if !ok {
					continue
				}
				if _, dup := seen[item.ID]; dup {
					continue
				}
				seen[item.ID] = struct{}{}
				if err := insertTicket(ctx, tx, item, sectionIdx+1, now); err != nil {
					return err
				}
				count++
			}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO imports (batch_id, source_path, document_header, ticket_count, imported_at) VALUES (?, ?, ?, ?, ?)`,
			batchID, nullableString(sourcePath), doc.Header, count, now,
		); err != nil {
			return fmt.Errorf("record import batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", 0, err
	}
	return batchID, count, nil
}

func insertTicket(ctx context.Context, tx *sql.Tx, item *backlog.Item, sectionPosition int, now string) error {
	specs, err := marshalStrings(item.Specs)
	if err != nil {
		return fmt.Errorf("marshal specs for %s: %w", item.ID, err)
	}
	reproduction, err := marshalStrings(item.Reproduction)
	if err != nil {
		return fmt.Errorf("marshal reproduction for %s: %w", item.ID, err)
	}
	criteria, err := marshalJSON(item.Criteria)
	if err != nil {
		return fmt.Errorf("marshal criteria for %s: %w", item.ID, err)
	}
	dependencies, err := marshalStrings(item.Dependencies)
	if err != nil {
		return fmt.Errorf("marshal dependencies for %s: %w", item.ID, err)
	}
	constraints, err := marshalStrings(item.Constraints)
	if err != nil {
		return fmt.Errorf("marshal constraints for %s: %w", item.ID, err)
	}
	screens, err := marshalStrings(item.Screens)
	if err != nil {
		return fmt.Errorf("marshal screens for %s: %w", item.ID, err)
	}
	screenshots, err := marshalJSON(item.Screenshots)
	if err != nil {
		return fmt.Errorf("marshal screenshots for %s: %w", item.ID, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tickets (`+ticketColumns+`, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Type,
		item.Title,
		item.Emoji,
		nullableString(item.Component),
		nullableString(item.Module),
		nullableString(string(item.Severity)),
		nullableString(item.Priority),
		nullableString(item.Effort),
		nullableString(item.Description),
		nullableString(item.UserStory),
		specs,
		reproduction,
		criteria,
		dependencies,
		constraints,
		screens,
		screenshots,
		item.RawMarkdown,
		sectionPosition,
		item.Position,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("insert ticket %s: %w", item.ID, err)
	}
	return nil
}

// Document reassembles a backlog document from stored rows without
// re-parsing any text. Tickets with preserved markdown come back verbatim.
func (s *Store) Document(ctx context.Context) (*backlog.Document, error) {
	doc := &backlog.Document{}

	headerRow := s.db.QueryRowContext(ctx,
		`SELECT document_header FROM imports ORDER BY imported_at DESC LIMIT 1`)
	if err := headerRow.Scan(&doc.Header); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("query document header: %w", err)
	}

	sectionRows, err := s.db.QueryContext(ctx, `SELECT position, title, header_line FROM sections ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query sections: %w", err)
	}
	defer sectionRows.Close()

	byPosition := make(map[int]*backlog.Section)
	for sectionRows.Next() {
		var position int
		var title, headerLine string
		if err := sectionRows.Scan(&position, &title, &headerLine); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		section := &backlog.Section{
			ID:            strconv.Itoa(len(doc.Sections) + 1),
			Title:         title,
			RawHeaderLine: headerLine,
		}
		doc.Sections = append(doc.Sections, section)
		byPosition[position] = section
	}
	if err := sectionRows.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY section_position, position`)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, sectionPosition, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		section, ok := byPosition[sectionPosition]
		if !ok {
			// Orphaned row after a manual section removal; keep the ticket
			// reachable in a synthetic trailing section.
			section = &backlog.Section{
				ID:    strconv.Itoa(len(doc.Sections) + 1),
				Title: "Tickets",
			}
			doc.Sections = append(doc.Sections, section)
			byPosition[sectionPosition] = section
		}
		item.Position = len(section.Entries)
		section.Entries = append(section.Entries, item)
	}
	return doc, rows.Err()
}

// ListItems returns every stored ticket in document order.
func (s *Store) ListItems(ctx context.Context) ([]*backlog.Item, error) {
	return s.queryItems(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY section_position, position`)
}

// ItemsByType returns stored tickets matching a type prefix, in document
// order. An unknown type yields an empty slice.
func (s *Store) ItemsByType(ctx context.Context, typePrefix string) ([]*backlog.Item, error) {
	return s.queryItems(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE type = ? ORDER BY section_position, position`,
		typePrefix,
	)
}

func (s *Store) queryItems(ctx context.Context, query string, args ...any) ([]*backlog.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	var items []*backlog.Item
	for rows.Next() {
		item, _, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetItem fetches one ticket by id. A missing id yields (nil, nil).
func (s *Store) GetItem(ctx context.Context, id string) (*backlog.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id)
	item, _, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return item, nil
}

// UpdateItem persists field changes to an existing ticket. Callers that
// edited fields are expected to have called MarkEdited so the stored
// markdown reflects the synthesis path.
func (s *Store) UpdateItem(ctx context.Context, item *backlog.Item) error {
	if item == nil {
		return errors.New("item is nil")
	}
	specs, _ := marshalStrings(item.Specs)
	reproduction, _ := marshalStrings(item.Reproduction)
	criteria, _ := marshalJSON(item.Criteria)
	dependencies, _ := marshalStrings(item.Dependencies)
	constraints, _ := marshalStrings(item.Constraints)
	screens, _ := marshalStrings(item.Screens)
	screenshots, _ := marshalJSON(item.Screenshots)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE tickets
             SET type = ?, title = ?, emoji = ?, component = ?, module = ?,
                 severity = ?, priority = ?, effort = ?, description = ?,
                 user_story = ?, specs_json = ?, reproduction_json = ?,
                 criteria_json = ?, dependencies_json = ?, constraints_json = ?,
                 screens_json = ?, screenshots_json = ?, raw_markdown = ?,
                 updated_at = ?
             WHERE id = ?`,
			item.Type,
			item.Title,
			item.Emoji,
			nullableString(item.Component),
			nullableString(item.Module),
			nullableString(string(item.Severity)),
			nullableString(item.Priority),
			nullableString(item.Effort),
			nullableString(item.Description),
			nullableString(item.UserStory),
			specs,
			reproduction,
			criteria,
			dependencies,
			constraints,
			screens,
			screenshots,
			item.RawMarkdown,
			time.Now().UTC().Format(time.RFC3339Nano),
			item.ID,
		)
		if err != nil {
			return fmt.Errorf("update ticket %s: %w", item.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("ticket %s not found", item.ID)
		}
		return nil
	})
}

// RemoveItem deletes one ticket by id and reports whether it existed.
func (s *Store) RemoveItem(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete ticket: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		removed = affected > 0
		return nil
	})
	return removed, err
}

// Stats returns a count of tickets grouped by type.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT type, COUNT(1) FROM tickets GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("ticket stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var typePrefix string
		var count int
		if err := rows.Scan(&typePrefix, &count); err != nil {
			return nil, err
		}
		stats[typePrefix] = count
	}
	return stats, rows.Err()
}

// LastImport returns the most recent import batch, or nil when the store has
// never been loaded.
func (s *Store) LastImport(ctx context.Context) (*ImportBatch, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT batch_id, source_path, ticket_count, imported_at FROM imports ORDER BY imported_at DESC LIMIT 1`)

	var batch ImportBatch
	var sourcePath sql.NullString
	var importedRaw string
	if err := row.Scan(&batch.BatchID, &sourcePath, &batch.TicketCount, &importedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last import: %w", err)
	}
	batch.SourcePath = sourcePath.String
	if imported, err := time.Parse(time.RFC3339Nano, importedRaw); err == nil {
		batch.ImportedAt = imported
	}
	return &batch, nil
}

func scanTicket(scanner interface{ Scan(dest ...any) error }) (*backlog.Item, int, error) {
	var (
		id, typePrefix, title, emoji string
		component, module, severity  sql.NullString
		priority, effort             sql.NullString
		description, userStory       sql.NullString
		specsJSON, reproductionJSON  sql.NullString
		criteriaJSON                 sql.NullString
		dependenciesJSON             sql.NullString
		constraintsJSON              sql.NullString
		screensJSON                  sql.NullString
		screenshotsJSON              sql.NullString
		rawMarkdown                  string
		sectionPosition, position    int
	)

	if err := scanner.Scan(
		&id, &typePrefix, &title, &emoji,
		&component, &module, &severity, &priority, &effort,
		&description, &userStory,
		&specsJSON, &reproductionJSON, &criteriaJSON,
		&dependenciesJSON, &constraintsJSON, &screensJSON, &screenshotsJSON,
		&rawMarkdown, &sectionPosition, &position,
	); err != nil {
		return nil, 0, err
	}

	item := &backlog.Item{
		ID:          id,
		Type:        typePrefix,
		Title:       title,
		Emoji:       emoji,
		Component:   component.String,
		Module:      module.String,
		Severity:    backlog.Severity(severity.String),
		Priority:    priority.String,
		Effort:      effort.String,
		Description: description.String,
		UserStory:   userStory.String,
		RawMarkdown: rawMarkdown,
		Position:    position,
	}
	if rawMarkdown != "" {
		item.Origin = backlog.OriginVerbatim
	}

	var err error
	if item.Specs, err = unmarshalStrings(specsJSON); err != nil {
		return nil, 0, fmt.Errorf("decode specs for %s: %w", id, err)
	}
	if item.Reproduction, err = unmarshalStrings(reproductionJSON); err != nil {
		return nil, 0, fmt.Errorf("decode reproduction for %s: %w", id, err)
	}
	if item.Dependencies, err = unmarshalStrings(dependenciesJSON); err != nil {
		return nil, 0, fmt.Errorf("decode dependencies for %s: %w", id, err)
	}
	if item.Constraints, err = unmarshalStrings(constraintsJSON); err != nil {
		return nil, 0, fmt.Errorf("decode constraints for %s: %w", id, err)
	}
	if item.Screens, err = unmarshalStrings(screensJSON); err != nil {
		return nil, 0, fmt.Errorf("decode screens for %s: %w", id, err)
	}
	if criteriaJSON.Valid && criteriaJSON.String != "" {
		if err := json.Unmarshal([]byte(criteriaJSON.String), &item.Criteria); err != nil {
			return nil, 0, fmt.Errorf("decode criteria for %s: %w", id, err)
		}
	}
	if screenshotsJSON.Valid && screenshotsJSON.String != "" {
		if err := json.Unmarshal([]byte(screenshotsJSON.String), &item.Screenshots); err != nil {
			return nil, 0, fmt.Errorf("decode screenshots for %s: %w", id, err)
		}
	}
	return item, sectionPosition, nil
}

func marshalStrings(values []string) (any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func marshalJSON(value any) (any, error) {
	switch v := value.(type) {
	case []backlog.Criterion:
		if len(v) == 0 {
			return nil, nil
		}
	case []backlog.Screenshot:
		if len(v) == 0 {
			return nil, nil
		}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func unmarshalStrings(value sql.NullString) ([]string, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(value.String), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
