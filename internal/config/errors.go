package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownDBDriver error if config db.driver is not sqlite, mysql or postgres.
	ErrUnknownDBDriver = errors.New("toml config db.driver must be sqlite, mysql or postgres")

	// ErrNegativeTokenTTL error if config auth.tokenttlminutes is negative.
	ErrNegativeTokenTTL = errors.New("toml config auth.tokenttlminutes can not be negative")
)
