package repository

import (
	"context"
	"errors"
	"time"

	"milestonebot/domain/entities"
	"milestonebot/domain/interfaces"
	"milestonebot/infrastructure/observability"
)

// timeoutStore bounds every call of the wrapped store
type timeoutStore struct {
	next    interfaces.LedgerStore
	timeout time.Duration
}

// WithTimeout runs each store call under its own deadline.
// Failures, expiry included, surface as *entities.StoreError.
func WithTimeout(next interfaces.LedgerStore, timeout time.Duration) interfaces.LedgerStore {
	return &timeoutStore{next: next, timeout: timeout}
}

func (s *timeoutStore) AppendRow(ctx context.Context, table string, values []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return entities.NewStoreError("append", table, s.next.AppendRow(ctx, table, values))
}

func (s *timeoutStore) ReadAll(ctx context.Context, table string) (*entities.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	result, err := s.next.ReadAll(ctx, table)
	if err != nil {
		return nil, entities.NewStoreError("read_all", table, err)
	}
	return result, nil
}

func (s *timeoutStore) DeleteRow(ctx context.Context, table string, rowIndex int) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return entities.NewStoreError("delete_row", table, s.next.DeleteRow(ctx, table, rowIndex))
}

// metricsStore records count and duration of every store call
type metricsStore struct {
	next    interfaces.LedgerStore
	backend string
	metrics *observability.MetricsProvider
}

// WithMetrics records calls through the metrics provider; a nil provider records nothing
func WithMetrics(next interfaces.LedgerStore, backend string, metrics *observability.MetricsProvider) interfaces.LedgerStore {
	return &metricsStore{next: next, backend: backend, metrics: metrics}
}

func (s *metricsStore) AppendRow(ctx context.Context, table string, values []string) error {
	start := time.Now()
	err := s.next.AppendRow(ctx, table, values)
	s.record(table, "append", start, err)
	return err
}

func (s *metricsStore) ReadAll(ctx context.Context, table string) (*entities.Table, error) {
	start := time.Now()
	result, err := s.next.ReadAll(ctx, table)
	s.record(table, "read_all", start, err)
	return result, err
}

func (s *metricsStore) DeleteRow(ctx context.Context, table string, rowIndex int) error {
	start := time.Now()
	err := s.next.DeleteRow(ctx, table, rowIndex)
	s.record(table, "delete_row", start, err)
	return err
}

func (s *metricsStore) record(table, operation string, start time.Time, err error) {
	s.metrics.RecordStoreCall(s.backend, table, operation, outcomeOf(err), time.Since(start))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return observability.OutcomeTimeout
	default:
		return observability.OutcomeError
	}
}
