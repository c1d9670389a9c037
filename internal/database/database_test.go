package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/chatauth/internal/entities"
)

func TestNewDatabase_InMemory(t *testing.T) {
	db, err := NewDatabase(InMemoryPath)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, db.DB.Migrator().HasTable(&entities.User{}))
	assert.NoError(t, db.Ping(context.Background()))
}

func TestNewDatabase_File(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestDatabase_PingAfterClose(t *testing.T) {
	db, err := NewDatabase(InMemoryPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.Error(t, db.Ping(context.Background()))
}

func TestDatabase_LogsFailedQueriesOnly(t *testing.T) {
	log, hook := test.NewNullLogger()
	db, err := NewDatabaseWithLogger(InMemoryPath, log)
	require.NoError(t, err)
	defer db.Close()

	var user entities.User
	err = db.DB.Where("email = ?", "nobody@example.com").First(&user).Error
	require.Error(t, err)
	assert.Empty(t, hook.AllEntries(), "record not found should not be logged")

	err = db.DB.Exec("SELECT * FROM no_such_table").Error
	require.Error(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "gorm", entry.Data["component"])
	assert.Contains(t, entry.Message, "no_such_table")
}
