// Package daemon wires the database, the auth service and the web
// service together into the running UserGate process.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/usergate/usergate/internal/auth"
	"github.com/usergate/usergate/internal/config"
	"github.com/usergate/usergate/internal/db/dsn"
	"github.com/usergate/usergate/internal/db/models"
	"github.com/usergate/usergate/internal/uniuri"
	"github.com/usergate/usergate/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go d.webService.WaitShutdown()

	return d.webService.Start(addr)
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
		return nil
	}

	seed(cfg, db)

	secret := cfg.Auth.Secret
	if secret == "" {
		secret = uniuri.NewLen(64)

		log.Warn().Msg("no token secret configured: generated a random one, tokens will not survive a restart")
	}

	authService := auth.NewService(db, auth.NewCodec(secret, cfg.Auth.TokenTTL()))

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db, authService),
	}
}

// openDB opens the configured database with the matching gorm driver.
func openDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}

	switch cfg.DB.Driver {
	case config.DriverSQLite:
		return gorm.Open(sqlite.Open(dsn.Create(cfg)), gormCfg)
	case config.DriverMySQL:
		return gorm.Open(gormmysql.Open(dsn.Create(cfg)), gormCfg)
	case config.DriverPostgres:
		return gorm.Open(gormpostgres.Open(dsn.Create(cfg)), gormCfg)
	default:
		return nil, config.ErrUnknownDBDriver
	}
}
