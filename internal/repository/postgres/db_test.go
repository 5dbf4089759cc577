package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andresuchdata/replenish-planner/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(&config.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "planner",
		Password: "secret",
		DBName:   "replenish",
		SSLMode:  "disable",
	})
	assert.Equal(t, "host=db port=5432 user=planner password=secret dbname=replenish sslmode=disable", dsn)
}
