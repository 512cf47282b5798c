package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zaqqye/weld_backend_v1/internal/models"
)

const knownID = "0b7c1a52-8f3e-4d8c-9a0e-2f5f7f7f7f7f"

func newMockRepo(t *testing.T, matchers ...sqlmock.QueryMatcher) (*GormWeldRepository, sqlmock.Sqlmock) {
	t.Helper()
	var sqlDB *sql.DB
	var mock sqlmock.Sqlmock
	var err error
	if len(matchers) > 0 {
		sqlDB, mock, err = sqlmock.New(sqlmock.QueryMatcherOption(matchers[len(matchers)-1]))
	} else {
		sqlDB, mock, err = sqlmock.New()
	}
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGormWeldRepository(db), mock
}

func TestGormGetWeld_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "welds" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetWeld(context.Background(), knownID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormGetWeld_MalformedIDSkipsQuery(t *testing.T) {
	repo, mock := newMockRepo(t)
	_, err := repo.GetWeld(context.Background(), "507f1f77bcf86cd799439011")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormGetWeld_Found(t *testing.T) {
	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows([]string{"id", "weld_number", "diameter", "thickness1", "quality_level", "welding_process", "joint", "test_methods"}).
		AddRow(knownID, "ШС-001", 219.0, 8.0, "B", "SMAW_GMAW", "BUTT", []byte(`["VT","UT"]`))
	mock.ExpectQuery(`SELECT \* FROM "welds" WHERE id = \$1`).WillReturnRows(rows)

	w, err := repo.GetWeld(context.Background(), knownID)
	require.NoError(t, err)
	assert.Equal(t, "ШС-001", w.WeldNumber)
	assert.Equal(t, models.QualityB, w.QualityLevel)
	assert.Equal(t, []models.TestMethod{models.MethodVT, models.MethodUT}, w.Methods())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDeleteWeld(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`DELETE FROM "welds" WHERE id = \$1`).
		WithArgs(knownID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "welds" WHERE id = \$1`).
		WithArgs(knownID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.ErrorIs(t, repo.DeleteWeld(context.Background(), knownID), ErrNotFound)
	assert.NoError(t, repo.DeleteWeld(context.Background(), knownID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormListWelds_AppliesFilters(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "welds" WHERE weld_number ILIKE \$1 AND object_name = \$2`).
		WithArgs(`%ШС\_1%`, "Газопровод").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "welds" WHERE weld_number ILIKE \$1 AND object_name = \$2 ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "weld_number"}).AddRow(knownID, "ШС_1"))

	welds, total, err := repo.ListWelds(context.Background(), WeldFilter{Search: "ШС_1", ObjectName: "Газопровод"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, welds, 1)
	assert.Equal(t, "ШС_1", welds[0].WeldNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCreateWeld_AssignsID(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`INSERT INTO "welds" \("id","object_name",.*"created_at","updated_at"\) VALUES`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := &models.Weld{WeldNumber: "ШС-001", Diameter: 219, Thickness1: 8, QualityLevel: models.QualityB}
	require.NoError(t, repo.CreateWeld(context.Background(), w))
	assert.NotEmpty(t, w.ID)
	assert.False(t, w.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSaveWeld_KeepsCreatedAt(t *testing.T) {
	var statements []string
	record := sqlmock.QueryMatcherFunc(func(expected, actual string) error {
		statements = append(statements, actual)
		return sqlmock.QueryMatcherRegexp.Match(expected, actual)
	})
	repo, mock := newMockRepo(t, record)
	mock.ExpectExec(`UPDATE "welds" SET "object_name"=\$1,.*"updated_at"=\$16 WHERE "id" = \$17`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := &models.Weld{ID: knownID, WeldNumber: "ШС-001", Diameter: 325, Thickness1: 8, QualityLevel: models.QualityB}
	require.NoError(t, repo.SaveWeld(context.Background(), w))
	assert.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, statements, 1)
	assert.NotContains(t, statements[0], "created_at")
	assert.Regexp(t, regexp.MustCompile(`"weld_number"=\$\d+`), statements[0])
}

func TestGormSaveWeld_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`UPDATE "welds" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := &models.Weld{ID: knownID, WeldNumber: "ШС-001", Diameter: 325, Thickness1: 8, QualityLevel: models.QualityB}
	assert.ErrorIs(t, repo.SaveWeld(context.Background(), w), ErrNotFound)

	w.ID = "507f1f77bcf86cd799439011"
	assert.ErrorIs(t, repo.SaveWeld(context.Background(), w), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
