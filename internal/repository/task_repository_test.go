package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/projecthub/projecthub-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB opens GORM over a sqlmock connection so grouped-count SQL can
// be asserted without a live database.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGormTaskRepository_StatusCounts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("TODO", 3).
		AddRow("DONE", 2)

	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) AS count FROM `tasks`").
		WithArgs(uint64(7)).
		WillReturnRows(rows)

	counts, err := repo.StatusCounts(7)
	require.NoError(t, err)
	require.EqualValues(t, 3, counts[models.TaskStatusTodo])
	require.EqualValues(t, 2, counts[models.TaskStatusDone])
	require.NotContains(t, counts, models.TaskStatusInProgress)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_PriorityCounts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	rows := sqlmock.NewRows([]string{"priority", "count"}).
		AddRow("HIGH", 1).
		AddRow("MEDIUM", 4)

	mock.ExpectQuery("SELECT priority, COUNT\\(\\*\\) AS count FROM `tasks`").
		WithArgs(uint64(7)).
		WillReturnRows(rows)

	counts, err := repo.PriorityCounts(7)
	require.NoError(t, err)
	require.EqualValues(t, 1, counts[models.TaskPriorityHigh])
	require.EqualValues(t, 4, counts[models.TaskPriorityMedium])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_CountByProject(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tasks`").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountByProject(7)
	require.NoError(t, err)
	require.EqualValues(t, 5, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_List_EmptyWorkspaceScope(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewTaskRepository(db)

	// No workspace memberships means no queries at all.
	tasks, total, err := repo.List(TaskFilter{})
	require.NoError(t, err)
	require.Empty(t, tasks)
	require.Zero(t, total)
}
