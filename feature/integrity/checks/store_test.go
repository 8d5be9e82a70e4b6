package checks

import (
	"testing"

	"nft-toolkit/core/database"
	"nft-toolkit/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStoreSchema(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	t.Run("Migrated", func(t *testing.T) {
		require.NoError(t, store.NewGormKV(db).Migrate())

		report, err := CheckStoreSchema(db, store.TableName)
		require.NoError(t, err)
		assert.Equal(t, "ok", report.Status)
		assert.Equal(t, "sqlite", report.Driver)
		assert.Empty(t, report.MissingColumns)
	})

	t.Run("Outdated", func(t *testing.T) {
		require.NoError(t, db.Exec("CREATE TABLE legacy_kv (key TEXT PRIMARY KEY, value TEXT)").Error)

		report, err := CheckStoreSchema(db, "legacy_kv")
		require.NoError(t, err)
		assert.Equal(t, "error", report.Status)
		assert.Equal(t, []string{"updated_at"}, report.MissingColumns)
	})

	t.Run("Nil", func(t *testing.T) {
		_, err := CheckStoreSchema(nil, store.TableName)
		assert.Error(t, err)
	})
}
