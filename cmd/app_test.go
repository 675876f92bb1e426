package cmd

import (
	"testing"

	"prunderground/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModels_MigrateWithoutDrift(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	table, expected, err := database.ExpectedColumns(db, Models()[0])
	require.NoError(t, err)
	missing, err := database.MissingColumns(db, table, expected)
	require.NoError(t, err)
	assert.Equal(t, len(expected), len(missing), "nothing exists before migration")

	require.NoError(t, database.Migrate(db, Models()...))

	tables := make(map[string]struct{})
	for _, model := range Models() {
		table, expected, err := database.ExpectedColumns(db, model)
		require.NoError(t, err)
		tables[table] = struct{}{}

		missing, err := database.MissingColumns(db, table, expected)
		require.NoError(t, err)
		assert.Empty(t, missing, table)
	}
	assert.Len(t, tables, len(Models()))
}

func TestCommands_Registered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"start", "sync", "verify", "migrate"} {
		assert.True(t, names[want], want)
	}

	sub := make(map[string]bool)
	for _, c := range syncCmd.Commands() {
		sub[c.Name()] = true
	}
	assert.True(t, sub["prices"])
	assert.True(t, sub["user"])
	assert.True(t, sub["catalog"])
}
