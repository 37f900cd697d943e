package reconciliation

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestRepository_MarkSuppressed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `reconcile_records` SET `is_suppressed`=\\? WHERE run_id = \\? AND designator IN \\(\\?,\\?\\)").
		WithArgs(true, "run-1", "TP1", "TP2").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.MarkSuppressed(context.Background(), "run-1", []string{"TP1", "TP2"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkSuppressedNothing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	require.NoError(t, repo.MarkSuppressed(context.Background(), "run-1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetReportKey(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `reconcile_runs` SET `report_key`=\\?,`updated_at`=\\? WHERE id = \\?").
		WithArgs("reports/run-1.xlsx", sqlmock.AnyArg(), "run-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SetReportKey(context.Background(), "run-1", "reports/run-1.xlsx"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	// GORM First adds ORDER BY id LIMIT 1
	mock.ExpectQuery("SELECT \\* FROM `reconcile_runs` WHERE id = .+ ORDER BY `reconcile_runs`.`id` LIMIT .+").
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
