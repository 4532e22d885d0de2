package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/hospitality-studio-backend/errs"
	"github.com/rpupo63/hospitality-studio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = 10 * time.Minute
)

// documentRow is one document of one collection. IDs are UUIDv7 strings, so
// ordering by id orders by insertion time.
type documentRow struct {
	ID         string         `gorm:"type:varchar(36);primaryKey"`
	Collection string         `gorm:"type:varchar(128);not null;index:idx_documents_collection"`
	Body       datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
}

func (documentRow) TableName() string {
	return "documents"
}

// SQLGateway stores collections as rows of a single JSON document table,
// on Postgres in production or SQLite for local runs and tests.
type SQLGateway struct {
	db      *gorm.DB
	backend string
	logger  zerolog.Logger
	now     func() time.Time
}

// OpenPostgres connects to Postgres with a pooled connection and ensures the
// documents table exists.
func OpenPostgres(dsn string) (*SQLGateway, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return newSQLGateway(db, "postgres")
}

// OpenSQLite opens (or creates) the SQLite database at path. ":memory:" gives
// a private in-memory database.
func OpenSQLite(path string) (*SQLGateway, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serialises writers.
	sqlDB.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
		Conn:       sqlDB,
	}, gormConfig())
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}
	return newSQLGateway(db, "sqlite")
}

func newSQLGateway(db *gorm.DB, backend string) (*SQLGateway, error) {
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to prepare documents table: %w", err)
	}
	return &SQLGateway{
		db:      db,
		backend: backend,
		logger:  log.With().Str("component", "sqlGateway").Str("backend", backend).Logger(),
		now:     time.Now,
	}, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(gormWriter{log.With().Str("component", "gorm").Logger()}, logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// gormWriter forwards gorm's slow-query and error lines to zerolog.
type gormWriter struct {
	logger zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.logger.Warn().Msgf(format, args...)
}

func (g *SQLGateway) Insert(ctx context.Context, collection string, record models.Document) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", errs.NewWriteFailedError(collection, err)
	}

	body := record.Clone()
	delete(body, models.IDField)
	delete(body, models.CreatedAtField)
	delete(body, models.UpdatedAtField)
	encoded, err := json.Marshal(body)
	if err != nil {
		return "", errs.NewWriteFailedError(collection, err)
	}

	now := g.now().UTC()
	row := documentRow{
		ID:         id.String(),
		Collection: collection,
		Body:       datatypes.JSON(encoded),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		g.logger.Error().Err(err).Str("collection", collection).Msg("insert failed")
		return "", errs.NewDatabaseError("insert", collection, err)
	}
	return row.ID, nil
}

func (g *SQLGateway) FetchRecent(ctx context.Context, collection string, limit int) ([]models.Document, error) {
	var rows []documentRow
	err := g.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("id DESC").
		Limit(normalizeLimit(limit)).
		Find(&rows).Error
	if err != nil {
		g.logger.Error().Err(err).Str("collection", collection).Msg("fetch failed")
		return nil, errs.NewDatabaseError("fetch", collection, err)
	}

	docs := make([]models.Document, 0, len(rows))
	for _, row := range rows {
		doc := models.Document{}
		if err := json.Unmarshal(row.Body, &doc); err != nil {
			return nil, errs.NewQueryFailedError(collection, fmt.Errorf("decode document %s: %w", row.ID, err))
		}
		doc[models.IDField] = row.ID
		doc[models.CreatedAtField] = row.CreatedAt.UTC()
		doc[models.UpdatedAtField] = row.UpdatedAt.UTC()
		docs = append(docs, doc)
	}
	return docs, nil
}

func (g *SQLGateway) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Backend:     g.backend,
		Configured:  true,
		Collections: []string{},
	}

	sqlDB, err := g.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status.ConnectError = errs.Truncate(err.Error(), healthErrorLength)
		return status
	}
	status.Reachable = true
	status.DatabaseName = g.db.WithContext(ctx).Migrator().CurrentDatabase()

	var names []string
	err = g.db.WithContext(ctx).
		Model(&documentRow{}).
		Distinct("collection").
		Order("collection").
		Limit(MaxReportedCollections).
		Pluck("collection", &names).Error
	if err != nil {
		status.CollectionsError = errs.Truncate(err.Error(), healthErrorLength)
		return status
	}
	status.CollectionsListed = true
	status.Collections = capCollections(names)
	return status
}

func (g *SQLGateway) Close(context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
