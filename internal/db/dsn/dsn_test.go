package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usergate/usergate/internal/config"
)

func TestCreate(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      config.Config
		expected string
	}{
		{
			name: "sqlite uses the file path",
			cfg: config.Config{
				DB: config.DB{Driver: config.DriverSQLite, Path: "usergate.db"},
			},
			expected: "usergate.db",
		},
		{
			name: "mysql tcp dsn",
			cfg: config.Config{
				DB: config.DB{
					Driver:   config.DriverMySQL,
					Host:     "db.local",
					Port:     3306,
					User:     "usergate",
					Password: "secret",
					Name:     "usergate",
					Extras:   "parseTime=true",
				},
			},
			expected: "usergate:secret@tcp(db.local:3306)/usergate?parseTime=true",
		},
		{
			name: "postgres key value dsn",
			cfg: config.Config{
				DB: config.DB{
					Driver:   config.DriverPostgres,
					Host:     "db.local",
					Port:     5432,
					User:     "usergate",
					Password: "secret",
					Name:     "usergate",
					Extras:   "sslmode=disable",
				},
			},
			expected: "host=db.local user=usergate password=secret dbname=usergate port=5432 sslmode=disable",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Create(&tc.cfg))
		})
	}
}
