package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/99minutos/customer-desk/internal/core/domain"
	"github.com/99minutos/customer-desk/internal/core/ports"
)

// Option customises a registry or session at construction time.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now as the source of timestamps and month buckets.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// opState tracks the advisory loading flag and the last error message of a
// component. It never serialises access.
type opState struct {
	mu      sync.Mutex
	loading bool
	lastErr string
}

func (s *opState) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *opState) end(err error) error {
	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
	}
	s.mu.Unlock()
	return err
}

func (s *opState) snapshot() domain.RegistryStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.RegistryStatus{IsLoading: s.loading, Error: s.lastErr}
}

// errDecode marks stored data that exists but is not a valid record list.
var errDecode = errors.New("undecodable stored records")

// loadRecords reads and decodes the JSON array stored under key.
// found is false when the key has never been written. Only decode failures
// wrap errDecode.
func loadRecords[T any](ctx context.Context, store ports.KeyValueStore, key string) (records []T, found bool, err error) {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		return nil, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, true, fmt.Errorf("decode %s: %w: %w", key, errDecode, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, true, nil
}

// saveRecords serialises the whole list under key.
func saveRecords[T any](ctx context.Context, store ports.KeyValueStore, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// nextID returns max(numeric ids)+1 as a string. Ids that are not base-10
// integers are ignored.
func nextID[T any](records []T, id func(T) string) string {
	var highest int64
	for _, r := range records {
		n, err := strconv.ParseInt(id(r), 10, 64)
		if err == nil && n > highest {
			highest = n
		}
	}
	return strconv.FormatInt(highest+1, 10)
}
