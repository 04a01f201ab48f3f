package infra

import (
	"context"
	"strings"
	"time"

	"tecstock/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Datastore is the capability handed to every service: either Connected
// (wrapping a live *gorm.DB) or Unavailable. Services branch on Available()
// once per operation; reads degrade to empty results, writes refuse.
type Datastore struct {
	db *gorm.DB
}

// Connected wraps a live connection. A nil db is allowed in unit tests where
// repository stubs never touch GORM.
func Connected(db *gorm.DB) *Datastore { return &Datastore{db: db} }

// Unavailable is the view-only capability used when no datastore could be
// reached at startup.
func Unavailable() *Datastore { return nil }

// Available reports whether operations may touch storage.
func (d *Datastore) Available() bool { return d != nil }

// DB returns the underlying connection (nil when unavailable).
func (d *Datastore) DB() *gorm.DB {
	if d == nil {
		return nil
	}
	return d.db
}

// Ping checks connectivity for the health endpoint.
func (d *Datastore) Ping(ctx context.Context) error {
	if d == nil || d.db == nil {
		return context.Canceled
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// placeholderURL detects example values left in .env files so the app starts
// in view-only mode instead of hammering a bogus host.
func placeholderURL(dsn string) bool {
	return dsn == "" ||
		strings.Contains(dsn, "usuario:senha") ||
		strings.Contains(dsn, "nome_do_banco")
}

// NewDatastore establishes a GORM connection backed by pgx and runs
// AutoMigrate to create/update all tables. Any failure yields the Unavailable
// capability: the application still serves pages with zeroed data.
func NewDatastore(dsn string) *Datastore {
	if placeholderURL(dsn) {
		log.Warn().Msg("DATABASE_URL ausente ou placeholder — iniciando em modo visualização")
		return Unavailable()
	}

	// SQLAlchemy-style URLs from hosted Postgres often use the postgres://
	// scheme; pgx accepts both, normalize anyway.
	if strings.HasPrefix(dsn, "postgres://") {
		dsn = "postgresql://" + strings.TrimPrefix(dsn, "postgres://")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Warn().Err(err).Msg("falha ao conectar no postgres — iniciando em modo visualização")
		return Unavailable()
	}

	sqlDB, err := db.DB()
	if err != nil {
		return Unavailable()
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Product{},
		&model.ColorVariation{},
		&model.Supplier{},
		&model.StockMovement{},
		&model.RepairPart{},
		&model.Service{},
		&model.ServiceOrder{},
		&model.ServiceOrderPart{},
		&model.ServiceOrderService{},
		&model.Purchase{},
		&model.PurchaseItem{},
	); err != nil {
		log.Warn().Err(err).Msg("AutoMigrate falhou — iniciando em modo visualização")
		return Unavailable()
	}

	log.Info().Msg("banco de dados conectado e tabelas verificadas")
	return Connected(db)
}
