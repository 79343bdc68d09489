package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mockDB, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mockDB
}

func TestCategoryFindByID(t *testing.T) {
	gdb, mockDB := newMockDB(t)
	repo := NewCategoryRepository(gdb)

	rows := sqlmock.NewRows([]string{"id", "name", "description"}).
		AddRow(1, "Running", "Road and trail running")
	mockDB.ExpectQuery(`SELECT \* FROM "categories" WHERE "categories"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(rows)

	category, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Running", category.Name)
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestCategoryFindByIDNotFound(t *testing.T) {
	gdb, mockDB := newMockDB(t)
	repo := NewCategoryRepository(gdb)

	mockDB.ExpectQuery(`SELECT \* FROM "categories" WHERE "categories"\."id" = \$1`).
		WithArgs(99, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := repo.FindByID(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryDeleteMissingRow(t *testing.T) {
	gdb, mockDB := newMockDB(t)
	repo := NewCategoryRepository(gdb)

	mockDB.ExpectBegin()
	mockDB.ExpectExec(`DELETE FROM "categories" WHERE "categories"\."id" = \$1`).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.ExpectCommit()

	err := repo.Delete(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestCategoryExistsByName(t *testing.T) {
	gdb, mockDB := newMockDB(t)
	repo := NewCategoryRepository(gdb)

	mockDB.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE name = \$1`).
		WithArgs("Running").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByName(context.Background(), "Running")
	require.NoError(t, err)
	require.True(t, exists)
}
