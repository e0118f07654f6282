package repository

import (
	"context"
	"fmt"

	"milestonebot/config"
	"milestonebot/database"
	"milestonebot/domain/interfaces"
	"milestonebot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// NewLedgerStore builds the configured backend wrapped with metrics and timeout decorators.
// The returned close func releases backend resources.
func NewLedgerStore(ctx context.Context, cfg *config.Config, metrics *observability.MetricsProvider) (interfaces.LedgerStore, func(), error) {
	var (
		store   interfaces.LedgerStore
		closeFn = func() {}
	)

	switch cfg.LedgerBackend {
	case config.BackendSheets:
		sheetsStore, err := NewSheetsStore(ctx, cfg.SheetID, cfg.CredentialsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create sheets store: %w", err)
		}
		store = sheetsStore

	case config.BackendPostgres:
		db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store = NewPostgresStore(db)
		closeFn = db.Close

	case config.BackendMemory:
		log.Warn("Using in-memory ledger store; entries are lost on restart")
		store = NewMemoryStore()

	default:
		return nil, nil, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
	}

	log.WithFields(log.Fields{
		"backend": cfg.LedgerBackend,
		"timeout": cfg.StoreTimeout,
	}).Info("Ledger store ready")

	// timeout sits inside metrics so recorded durations include expiry
	return WithMetrics(WithTimeout(store, cfg.StoreTimeout), cfg.LedgerBackend, metrics), closeFn, nil
}
