package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskzen/taskzen/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrateDatabase_IsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, MigrateDatabase(db))
	require.NoError(t, MigrateDatabase(db))

	assert.True(t, db.Migrator().HasTable("tasks"))
	assert.True(t, db.Migrator().HasIndex("tasks", "idx_tasks_responsible_status"))
	assert.True(t, db.Migrator().HasIndex("access_tokens", "idx_access_tokens_expires_at"))
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(&config.Config{DBDriver: driver, DBName: "taskzen"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
