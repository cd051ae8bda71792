package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/projecthub-api/internal/constants"
	"github.com/projecthub/projecthub-api/internal/database"
	"github.com/projecthub/projecthub-api/internal/models"
	"github.com/projecthub/projecthub-api/internal/repository"
	"github.com/projecthub/projecthub-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db *gorm.DB

	authHandler      *AuthHandler
	workspaceHandler *WorkspaceHandler
	projectHandler   *ProjectHandler
	taskHandler      *TaskHandler

	authService      *services.AuthService
	workspaceService *services.WorkspaceService
	projectService   *services.ProjectService
	taskService      *services.TaskService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.Project{},
		&models.Task{},
		&models.ActivityLog{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	authService := services.NewAuthService(userRepo)
	workspaceService := services.NewWorkspaceService(workspaceRepo, userRepo)
	projectService := services.NewProjectService(projectRepo, workspaceRepo)
	activityService := services.NewActivityService(activityRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, workspaceRepo, activityService)
	analyticsService := services.NewAnalyticsService(taskRepo, projectRepo, workspaceRepo, activityService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return &testEnv{
		db:               db,
		authHandler:      NewAuthHandler(authService),
		workspaceHandler: NewWorkspaceHandler(workspaceService),
		projectHandler:   NewProjectHandler(projectService, analyticsService),
		taskHandler:      NewTaskHandler(taskService),
		authService:      authService,
		workspaceService: workspaceService,
		projectService:   projectService,
		taskService:      taskService,
	}
}

// router builds the API route table with the given user already resolved, the
// way RequireAuth would have after a session lookup.
func (env *testEnv) router(userID uint64) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	})

	api := r.Group("/api")

	user := api.Group("/user")
	user.GET("/me", env.authHandler.GetCurrentUser)
	user.GET("/search", env.authHandler.SearchUsers)

	workspace := api.Group("/workspace")
	workspace.POST("/create", env.workspaceHandler.Create)
	workspace.GET("/all", env.workspaceHandler.List)
	workspace.GET("/:id", env.workspaceHandler.Get)
	workspace.PUT("/:id", env.workspaceHandler.Update)
	workspace.DELETE("/:id", env.workspaceHandler.Delete)
	workspace.POST("/add-member/:workspaceId/:memberId", env.workspaceHandler.AddMember)
	workspace.GET("/members/:workspaceId", env.workspaceHandler.ListMembers)

	project := api.Group("/project")
	project.POST("/create/:workspaceId", env.projectHandler.Create)
	project.GET("/all/:workspaceId", env.projectHandler.List)
	project.GET("/analytics/:projectId", env.projectHandler.Analytics)
	project.GET("/:projectId", env.projectHandler.Get)
	project.DELETE("/delete/:projectId", env.projectHandler.Delete)

	task := api.Group("/task")
	task.POST("/create/:projectId", env.taskHandler.Create)
	task.GET("/all", env.taskHandler.List)
	task.GET("/:id", env.taskHandler.Get)
	task.PATCH("/:id", env.taskHandler.Update)
	task.DELETE("/:id", env.taskHandler.Delete)
	task.PATCH("/status/:id", env.taskHandler.ToggleStatus)
	task.GET("/logs/:id", env.taskHandler.Logs)

	return r
}

// createUser registers a user through the auth service.
func (env *testEnv) createUser(t *testing.T, name, email string) *models.User {
	t.Helper()

	user, err := env.authService.Register(services.RegisterInput{
		Name:     name,
		Email:    email,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user
}

// doJSON performs a request with an optional JSON body against the router.
func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorded JSON response body.
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
