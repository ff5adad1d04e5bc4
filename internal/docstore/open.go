package docstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/ec-club-bing/website/pkg/config"
	"github.com/ec-club-bing/website/pkg/database"
)

// Open builds the backend selected by cfg.Driver. SQL backends are migrated before use.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StoreFirestore:
		return NewFirestoreStore(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
	case config.StoreMongo:
		return NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	case config.StorePostgres:
		db, err := database.NewPostgres(cfg.Postgres)
		if err != nil {
			return nil, unavailable("connect postgres", err)
		}
		return openSQL(db, PostgresDialect, logger)
	case config.StoreSQLite, "":
		db, err := database.NewSQLite(cfg.SQLite)
		if err != nil {
			return nil, unavailable("open sqlite", err)
		}
		return openSQL(db, SQLiteDialect, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func openSQL(db *sqlx.DB, dialect Dialect, logger *zap.Logger) (Store, error) {
	version, err := Migrate(db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if logger != nil {
		logger.Info("document schema ready", zap.String("dialect", dialect.Name), zap.Uint("version", version))
	}
	return NewSQLStore(db, dialect), nil
}
