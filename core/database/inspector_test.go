package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLite(t *testing.T) *Config {
	t.Helper()
	return &Config{Driver: DriverSQLite, Name: ":memory:"}
}

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(*setupSQLite(t))
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, name TEXT, description TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_items")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "text", colMap["description"])

	// PRAGMA table_info returns an empty result for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(*setupSQLite(t))
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE quotes (id INTEGER PRIMARY KEY, material_ticker TEXT)").Error)

	t.Run("Reports Absent Columns Sorted", func(t *testing.T) {
		missing, err := MissingColumns(db, "quotes", []string{"id", "material_ticker", "exchange_code", "ask"})
		require.NoError(t, err)
		assert.Equal(t, []string{"ask", "exchange_code"}, missing)
	})

	t.Run("Case Insensitive", func(t *testing.T) {
		missing, err := MissingColumns(db, "quotes", []string{"ID", "Material_Ticker"})
		require.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("Missing Table", func(t *testing.T) {
		missing, err := MissingColumns(db, "nope", []string{"a"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, missing)
	})
}

func TestExpectedColumns(t *testing.T) {
	type StockItem struct {
		ID       uint
		Ticker   string
		Quantity int
	}

	db, err := Connect(*setupSQLite(t))
	require.NoError(t, err)

	table, cols, err := ExpectedColumns(db, &StockItem{})
	require.NoError(t, err)
	assert.Equal(t, "stock_items", table)
	assert.ElementsMatch(t, []string{"id", "ticker", "quantity"}, cols)
}
