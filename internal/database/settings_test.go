package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

func TestSettings(t *testing.T) {
	t.Run("set then get round-trips", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.SetSetting("theme", "dark"))

		setting, err := db.GetSetting("theme")
		require.NoError(t, err)
		assert.Equal(t, "dark", setting.Value)
	})

	t.Run("set overwrites the previous value", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.SetSetting("theme", "dark"))
		require.NoError(t, db.SetSetting("theme", "light"))

		setting, err := db.GetSetting("theme")
		require.NoError(t, err)
		assert.Equal(t, "light", setting.Value)
	})

	t.Run("missing key is a record-not-found error", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		_, err := db.GetSetting("missing")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.SetSetting("theme", "dark"))
		require.NoError(t, db.DeleteSetting("theme"))
		require.NoError(t, db.DeleteSetting("theme"))

		_, err := db.GetSetting("theme")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
