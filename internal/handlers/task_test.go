package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/projecthub/projecthub-api/internal/dto"
	"github.com/projecthub/projecthub-api/internal/models"
	"github.com/projecthub/projecthub-api/internal/services"
	"github.com/stretchr/testify/require"
)

// seedProject creates a workspace and project owned by the given user.
func seedProject(t *testing.T, env *testEnv, ownerID uint64) *models.Project {
	t.Helper()

	workspace, err := env.workspaceService.Create(ownerID, "Acme")
	require.NoError(t, err)
	project, err := env.projectService.Create(workspace.ID, ownerID, services.CreateProjectInput{Name: "Launch"})
	require.NoError(t, err)
	return project
}

func TestTaskHandler_Create_DefaultsAndLog(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := seedProject(t, env, owner.ID)

	r := env.router(owner.ID)
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/task/create/%d", project.ID), map[string]string{
		"title": "Design spec",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.TaskDTO
	decode(t, w, &response)
	require.Equal(t, "Design spec", response.Title)
	require.Equal(t, models.TaskStatusTodo, response.Status)
	require.Equal(t, models.TaskPriorityMedium, response.Priority)
	require.Nil(t, response.DueDate)
	require.Nil(t, response.AssignedTo)

	var logs []models.ActivityLog
	require.NoError(t, env.db.Where("task_id = ?", response.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	require.Equal(t, "created task", logs[0].Action)
	require.Equal(t, owner.ID, logs[0].UserID)
}

func TestTaskHandler_Create_InvalidStatus(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := seedProject(t, env, owner.ID)

	r := env.router(owner.ID)
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/task/create/%d", project.ID), map[string]string{
		"title":  "Design spec",
		"status": "ARCHIVED",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_Create_AssigneeOutsideWorkspace(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	outsider := env.createUser(t, "Outsider", "outsider@example.com")
	project := seedProject(t, env, owner.ID)

	r := env.router(owner.ID)
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/task/create/%d", project.ID), map[string]any{
		"title":       "Design spec",
		"assigned_to": outsider.ID,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_Update_PriorityOnly(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := seedProject(t, env, owner.ID)

	task, err := env.taskService.Create(project.ID, owner.ID, services.CreateTaskInput{
		Title:       "Design spec",
		Description: "Write the design doc",
	})
	require.NoError(t, err)

	r := env.router(owner.ID)
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/task/%d", task.ID), map[string]string{
		"priority": "HIGH",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/task/%d", task.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskDTO
	decode(t, w, &response)
	require.Equal(t, models.TaskPriorityHigh, response.Priority)
	require.Equal(t, "Design spec", response.Title)
	require.Equal(t, "Write the design doc", response.Description)
	require.Equal(t, models.TaskStatusTodo, response.Status)

	var logs []models.ActivityLog
	require.NoError(t, env.db.Where("task_id = ?", task.ID).Order("id ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	require.Equal(t, "updated task details", logs[1].Action)
}

func TestTaskHandler_Update_EmptyBodyIsNoOp(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := seedProject(t, env, owner.ID)

	task, err := env.taskService.Create(project.ID, owner.ID, services.CreateTaskInput{Title: "Design spec"})
	require.NoError(t, err)

	r := env.router(owner.ID)
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/task/%d", task.ID), map[string]string{})
	require.Equal(t, http.StatusOK, w.Code)

	// No-op updates must not add ledger entries.
	var logs int64
	require.NoError(t, env.db.Model(&models.ActivityLog{}).Where("task_id = ?", task.ID).Count(&logs).Error)
	require.EqualValues(t, 1, logs)
}

func TestTaskHandler_Update_ClearWithExplicitNull(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := seedProject(t, env, owner.ID)

	due := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	task, err := env.taskService.Create(project.ID, owner.ID, services.CreateTaskInput{
		Title:      "Design spec",
		DueDate:    &due,
		AssignedTo: &owner.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, task.DueDate)
	require.NotNil(t, task.AssignedTo)

	r := env.router(owner.ID)
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/task/%d", task.ID), map[string]any{
		"due_date":    nil,
		"assigned_to": nil,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskDTO
	decode(t, w, &response)
	require.Nil(t, response.DueDate)
	require.Nil(t, response.AssignedTo)
}

func TestTaskHandler_Update_EmptyTitleRejected(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := seedProject(t, env, owner.ID)

	task, err := env.taskService.Create(project.ID, owner.ID, services.CreateTaskInput{Title: "Design spec"})
	require.NoError(t, err)

	r := env.router(owner.ID)
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/task/%d", task.ID), map[string]string{
		"title": "   ",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_ToggleStatus(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := seedProject(t, env, owner.ID)

	task, err := env.taskService.Create(project.ID, owner.ID, services.CreateTaskInput{Title: "Design spec"})
	require.NoError(t, err)

	r := env.router(owner.ID)
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/task/status/%d", task.ID), map[string]string{
		"status": "DONE",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskDTO
	decode(t, w, &response)
	require.Equal(t, models.TaskStatusDone, response.Status)

	var logs []models.ActivityLog
	require.NoError(t, env.db.Where("task_id = ?", task.ID).Order("id ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	require.Equal(t, "changed status to DONE", logs[1].Action)
}

func TestTaskHandler_ToggleStatus_InvalidStatus(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := seedProject(t, env, owner.ID)

	task, err := env.taskService.Create(project.ID, owner.ID, services.CreateTaskInput{Title: "Design spec"})
	require.NoError(t, err)

	r := env.router(owner.ID)
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/task/status/%d", task.ID), map[string]string{
		"status": "CANCELLED",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_List_StatusFilter(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := seedProject(t, env, owner.ID)

	_, err := env.taskService.Create(project.ID, owner.ID, services.CreateTaskInput{Title: "First"})
	require.NoError(t, err)
	second, err := env.taskService.Create(project.ID, owner.ID, services.CreateTaskInput{Title: "Second"})
	require.NoError(t, err)
	_, err = env.taskService.ToggleStatus(second.ID, owner.ID, models.TaskStatusDone)
	require.NoError(t, err)

	r := env.router(owner.ID)
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/task/all?projectId=%d&status=DONE", project.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskListResponse
	decode(t, w, &response)
	require.Len(t, response.Tasks, 1)
	require.Equal(t, "Second", response.Tasks[0].Title)
	require.EqualValues(t, 1, response.Pagination.Total)
}

func TestTaskHandler_List_Paginated(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := seedProject(t, env, owner.ID)

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := env.taskService.Create(project.ID, owner.ID, services.CreateTaskInput{Title: title})
		require.NoError(t, err)
	}

	r := env.router(owner.ID)
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/task/all?projectId=%d&page=2&limit=2", project.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskListResponse
	decode(t, w, &response)
	require.Len(t, response.Tasks, 1)
	require.Equal(t, "Third", response.Tasks[0].Title)
	require.Equal(t, 2, response.Pagination.Page)
	require.Equal(t, 2, response.Pagination.Limit)
	require.EqualValues(t, 3, response.Pagination.Total)
}

func TestTaskHandler_List_NoMatchesIsEmpty(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := seedProject(t, env, owner.ID)

	_, err := env.taskService.Create(project.ID, owner.ID, services.CreateTaskInput{Title: "First"})
	require.NoError(t, err)

	r := env.router(owner.ID)
	w := doJSON(t, r, http.MethodGet, "/api/task/all?status=DONE", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskListResponse
	decode(t, w, &response)
	require.Empty(t, response.Tasks)
	require.Zero(t, response.Pagination.Total)
}

func TestTaskHandler_List_ScopedToMemberWorkspaces(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	outsider := env.createUser(t, "Outsider", "outsider@example.com")
	project := seedProject(t, env, owner.ID)

	_, err := env.taskService.Create(project.ID, owner.ID, services.CreateTaskInput{Title: "Hidden"})
	require.NoError(t, err)

	r := env.router(outsider.ID)
	w := doJSON(t, r, http.MethodGet, "/api/task/all", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaskListResponse
	decode(t, w, &response)
	require.Empty(t, response.Tasks)
}

func TestTaskHandler_Get_NonMemberForbidden(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	outsider := env.createUser(t, "Outsider", "outsider@example.com")
	project := seedProject(t, env, owner.ID)

	task, err := env.taskService.Create(project.ID, owner.ID, services.CreateTaskInput{Title: "Design spec"})
	require.NoError(t, err)

	r := env.router(outsider.ID)
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/task/%d", task.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestTaskHandler_Delete_RemovesLogs(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := seedProject(t, env, owner.ID)

	task, err := env.taskService.Create(project.ID, owner.ID, services.CreateTaskInput{Title: "Design spec"})
	require.NoError(t, err)
	_, err = env.taskService.ToggleStatus(task.ID, owner.ID, models.TaskStatusInProgress)
	require.NoError(t, err)

	r := env.router(owner.ID)
	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/task/%d", task.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var logs int64
	require.NoError(t, env.db.Model(&models.ActivityLog{}).Where("task_id = ?", task.ID).Count(&logs).Error)
	require.Zero(t, logs)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/task/%d", task.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_Logs_NewestFirst(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := seedProject(t, env, owner.ID)

	task, err := env.taskService.Create(project.ID, owner.ID, services.CreateTaskInput{Title: "Design spec"})
	require.NoError(t, err)
	_, err = env.taskService.ToggleStatus(task.ID, owner.ID, models.TaskStatusInProgress)
	require.NoError(t, err)

	r := env.router(owner.ID)
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/task/logs/%d", task.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Logs []dto.ActivityLogDTO `json:"logs"`
	}
	decode(t, w, &response)
	require.Len(t, response.Logs, 2)
	require.Equal(t, "changed status to IN_PROGRESS", response.Logs[0].Action)
	require.Equal(t, "created task", response.Logs[1].Action)
	require.Equal(t, "Owner", response.Logs[0].ActorName)
}
