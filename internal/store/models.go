package store

import "time"

// ImportBatch is the audit record written for each document import.
type ImportBatch struct {
	BatchID     string
	SourcePath  string
	TicketCount int
	ImportedAt  time.Time
}
