// Package archive keeps the event history of each table so finished and
// running games can be reviewed.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"machikoro/internal/engine"
)

// ErrNotFound is returned for a table with no recorded events.
var ErrNotFound = errors.New("no history for table")

// Store appends and reads back per-table event logs.
type Store interface {
	Append(ctx context.Context, table string, events []engine.Event) error
	History(ctx context.Context, table string) ([]json.RawMessage, error)
}

func encode(events []engine.Event) ([][]byte, error) {
	out := make([][]byte, 0, len(events))
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return nil, fmt.Errorf("encode %s event: %w", ev.Kind, err)
		}
		out = append(out, data)
	}
	return out, nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string][]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][]json.RawMessage)}
}

func (m *MemoryStore) Append(_ context.Context, table string, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}
	encoded, err := encode(events)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, data := range encoded {
		m.tables[table] = append(m.tables[table], data)
	}
	return nil
}

func (m *MemoryStore) History(_ context.Context, table string) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	log, ok := m.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, table)
	}
	return append([]json.RawMessage(nil), log...), nil
}
