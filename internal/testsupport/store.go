package testsupport

import (
	"testing"

	"ticketflow/internal/config"
	"ticketflow/internal/store"
)

// MustOpenStore opens a ticket store for the given config and closes it when
// the test finishes.
func MustOpenStore(t *testing.T, cfg *config.Config) *store.Store {
	t.Helper()
	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}
