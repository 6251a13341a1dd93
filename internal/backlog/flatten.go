package backlog

// AllItems flattens the document into a de-duplicated ticket list. The walk
// is an explicit fold over sections in document order with a seen-set:
// the first occurrence of an id wins and later occurrences are dropped as
// stale copies. This ordering contract holds regardless of how sections are
// traversed internally.
func AllItems(doc *Document) []*Item {
	if doc == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var items []*Item
	for _, section := range doc.Sections {
		for _, entry := range section.Entries {
			item, ok := entry.(*Item)
			if !ok {
				continue
			}
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
			items = append(items, item)
		}
	}
	return items
}

// ItemsByType filters the flattened list by exact type prefix. An unknown
// type yields an empty list.
func ItemsByType(doc *Document, typePrefix string) []*Item {
	all := AllItems(doc)
	items := make([]*Item, 0, len(all))
	for _, item := range all {
		if item.Type == typePrefix {
			items = append(items, item)
		}
	}
	return items
}
