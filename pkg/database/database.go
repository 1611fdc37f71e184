// Package database opens the PostgreSQL pool (pgx through database/sql)
// that backs favorites, profiles, and activation codes.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/Tonn-hash/galeria-de-prompts/pkg/lifecycle"
)

// System manages database connections and lifecycle coordination.
type System interface {
	// Connection returns the underlying database connection pool.
	Connection() *sql.DB
	// Start registers the connectivity check and the pool close hook.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn        *sql.DB
	logger      *slog.Logger
	connTimeout time.Duration
}

// ApplicationName tags gallery sessions in pg_stat_activity unless the DSN
// sets application_name itself.
const ApplicationName = "galeria-de-prompts"

// New creates a database system with the given configuration.
// The DSN is parsed up front; no connection is made until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	connCfg, err := pgx.ParseConfig(cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}
	if _, ok := connCfg.RuntimeParams["application_name"]; !ok {
		connCfg.RuntimeParams["application_name"] = ApplicationName
	}

	db := stdlib.OpenDB(*connCfg)

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:        db,
		logger:      logger.With("system", "database"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database connection")

	lc.OnStartup(func() error {
		pingCtx, cancel := context.WithTimeout(lc.Context(), d.connTimeout)
		defer cancel()

		if err := d.conn.PingContext(pingCtx); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return fmt.Errorf("database ping: %w", err)
		}

		d.logger.Info("database connection established")
		return nil
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing database connection")

		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}

		d.logger.Info("database connection closed")
	})

	return nil
}
