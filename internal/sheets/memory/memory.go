package memory

import (
	"context"
	"fmt"
	"sync"

	"wealth/internal/sheets"
)

// Store is an in-process TransactionMirror used by tests and local runs
// without Google credentials.
type Store struct {
	mu   sync.Mutex
	rows map[sheets.Kind][]sheets.Row
}

var _ sheets.TransactionMirror = (*Store)(nil)

func New() *Store {
	return &Store{rows: map[sheets.Kind][]sheets.Row{}}
}

func (s *Store) Upsert(_ context.Context, kind sheets.Kind, row sheets.Row) (string, error) {
	if row.ID == "" {
		return "", fmt.Errorf("row without id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.rows[kind]
	for i := range rows {
		if rows[i].ID == row.ID {
			rows[i] = row
			return fmt.Sprintf("mem:%s:%d", kind, i+1), nil
		}
	}
	s.rows[kind] = append(rows, row)
	return fmt.Sprintf("mem:%s:%d", kind, len(s.rows[kind])), nil
}

func (s *Store) Delete(_ context.Context, kind sheets.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.rows[kind]
	for i := range rows {
		if rows[i].ID == id {
			s.rows[kind] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// Rows returns a copy of the rows stored for kind, in insertion order.
func (s *Store) Rows(kind sheets.Kind) []sheets.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sheets.Row(nil), s.rows[kind]...)
}
