package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/localizer/dashboard/backend/internal/service"
	"github.com/localizer/dashboard/shared/config"
	"github.com/localizer/dashboard/shared/domain"
	"github.com/localizer/dashboard/shared/logger"
	sharedpg "github.com/localizer/dashboard/shared/storage/pg"
)

//go:embed migrations/init.sql
var schema string

type Storage struct {
	db       *sql.DB
	Cards    *CardStore
	Reviews  *ReviewStore
	Contacts *ContactStore
}

var (
	_ service.RecordStorage[domain.Card]    = (*CardStore)(nil)
	_ service.RecordStorage[domain.Review]  = (*ReviewStore)(nil)
	_ service.RecordStorage[domain.Contact] = (*ContactStore)(nil)
	_ service.RevocationStorage             = (*Storage)(nil)
)

// New connects to the configured database and applies the schema.
func New(ctx context.Context, cfg config.Pg) (*Storage, error) {
	logger.Log.Info("connecting to database", "host", cfg.Host, "dbname", cfg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg, sharedpg.DefaultPool)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Log.Info("successfully connected to database")
	return newStorage(db), nil
}

func newStorage(db *sql.DB) *Storage {
	return &Storage{
		db:       db,
		Cards:    &CardStore{db: db},
		Reviews:  &ReviewStore{db: db},
		Contacts: &ContactStore{db: db},
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}
