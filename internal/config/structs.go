package config

import (
	"time"

	"github.com/usergate/usergate/internal/logger"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Auth      Auth
	Webserver Webserver
}

// DB implements database connection settings.
type DB struct {
	Driver   string // sqlite, mysql or postgres
	Path     string // database file path (sqlite only)
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Extras   string // extra DSN parameters appended verbatim
}

// Auth implements token issuance and seed account settings.
type Auth struct {
	// Secret is the symmetric key used to sign bearer tokens. If empty,
	// a random one is generated at startup and previously issued tokens
	// become invalid on restart.
	Secret string

	// TokenTTLMinutes is the token lifetime in minutes from issuance.
	TokenTTLMinutes int

	// AdminEmail is the e-mail of the seeded administrator account.
	AdminEmail string

	// AdminPassword is the password of the seeded administrator account.
	// If empty, a random one is generated and logged once at first start.
	AdminPassword string
}

// TokenTTL returns the configured token lifetime.
func (a Auth) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}
