package persistence_test

import (
	"os"
	"testing"

	"caseflow/persistence"

	"github.com/stretchr/testify/assert"
)

func TestParseDatabaseConfigFromEnv(t *testing.T) {
	originDatabaseURL := os.Getenv("DATABASE_URL")
	defer os.Setenv("DATABASE_URL", originDatabaseURL)

	t.Run("should fail when DATABASE_URL is not set", func(t *testing.T) {
		os.Unsetenv("DATABASE_URL")
		config, err := persistence.ParseDatabaseConfigFromEnv()
		assert.Nil(t, config)
		assert.EqualError(t, err, "environment variable DATABASE_URL is not set")
	})

	t.Run("should fail when DATABASE_URL has no driver type", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "://root:root@(127.0.0.1:3306)/caseflow")
		config, err := persistence.ParseDatabaseConfigFromEnv()
		assert.Nil(t, config)
		assert.NotNil(t, err)

		os.Setenv("DATABASE_URL", "mysql://")
		config, err = persistence.ParseDatabaseConfigFromEnv()
		assert.Nil(t, config)
		assert.NotNil(t, err)
	})

	t.Run("should split driver type and driver args", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "mysql://root:root@(127.0.0.1:3306)/caseflow?charset=utf8mb4&parseTime=True&loc=Local")
		config, err := persistence.ParseDatabaseConfigFromEnv()
		assert.Nil(t, err)
		assert.Equal(t, "mysql", config.DriverType)
		assert.Equal(t, "root:root@(127.0.0.1:3306)/caseflow?charset=utf8mb4&parseTime=True&loc=Local", config.DriverArgs)
	})
}
