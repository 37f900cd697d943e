package database

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_runs (id TEXT PRIMARY KEY, name TEXT, record_count INTEGER)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_runs")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "text", colMap["id"])
	assert.Equal(t, "integer", colMap["record_count"])

	// PRAGMA table_info yields no rows for unknown tables.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestVerifyColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE runs (id TEXT, name TEXT)").Error)

	assert.NoError(t, VerifyColumns(db, "runs", []string{"ID", "name"}))

	err = VerifyColumns(db, "runs", []string{"name", "summary", "created_at"})
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"created_at", "summary"}, schemaErr.Missing)
	assert.Equal(t, "table runs is missing columns: created_at, summary", err.Error())
}

func TestVerifyColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "VARCHAR(36)", "NO", "PRI", nil, "").
		AddRow("name", "varchar(255)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `reconcile_runs`").WillReturnRows(rows)

	err = VerifyColumns(db, "reconcile_runs", []string{"id", "name"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
