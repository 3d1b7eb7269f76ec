package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"smart-vocab/internal/auth"
	"smart-vocab/internal/config"
	"smart-vocab/internal/storage"
	"smart-vocab/internal/study"
	"smart-vocab/internal/task"
)

func SetupRouter(cfg *config.Config, rdb *redis.Client, sched *study.Scheduler, worker *task.Worker, files storage.FileStore) *gin.Engine {
	r := gin.Default()

	r.GET("/health", healthHandler)
	r.GET("/config", configHandler(cfg))

	// Setup: only if no users
	r.POST("/setup", SetupHandler())

	// Auth
	r.POST("/auth/login", LoginHandler(cfg, rdb))
	r.POST("/auth/logout", auth.AuthMiddleware(cfg, rdb, false), LogoutHandler(rdb))
	r.GET("/auth/me", auth.AuthMiddleware(cfg, rdb, false), MeHandler())

	// Admin: users
	r.GET("/users", auth.AuthMiddleware(cfg, rdb, true), ListUsersHandler())
	r.POST("/users", auth.AuthMiddleware(cfg, rdb, true), CreateUserHandler())

	// User self-service
	r.GET("/users/me", auth.AuthMiddleware(cfg, rdb, false), GetMeHandler())
	r.PUT("/users/me", auth.AuthMiddleware(cfg, rdb, false), UpdateMeHandler())
	r.DELETE("/users/me", auth.AuthMiddleware(cfg, rdb, false), DeleteMeHandler())

	// Admin: user by id
	r.GET("/users/:id", auth.AuthMiddleware(cfg, rdb, true), GetUserByIdHandler())
	r.PUT("/users/:id", auth.AuthMiddleware(cfg, rdb, true), UpdateUserByIdHandler())
	r.DELETE("/users/:id", auth.AuthMiddleware(cfg, rdb, true), DeleteUserByIdHandler())

	// --- Study: the scheduling surface ---
	studyGroup := r.Group("/study", auth.AuthMiddleware(cfg, rdb, false))
	{
		studyGroup.GET("/session", StudySessionHandler(cfg, sched))
		studyGroup.POST("/submit", StudySubmitHandler(sched))
		studyGroup.GET("/stats", StudyStatsHandler(sched))
		studyGroup.POST("/feedback", CreateFeedbackHandler())

		studyGroup.GET("/plans", ListPlansHandler())
		studyGroup.POST("/plans", CreatePlanHandler())
		studyGroup.PUT("/plans/:id/activate", ActivatePlanHandler())
		studyGroup.DELETE("/plans/:id", DeletePlanHandler())
	}

	// --- Admin: book and word management ---
	admin := r.Group("/admin", auth.AuthMiddleware(cfg, rdb, true))
	{
		admin.POST("/books/upload", UploadBookHandler(cfg, files, worker))
		admin.GET("/books", ListBooksHandler())
		admin.GET("/books/:id", GetBookHandler())
		admin.PUT("/books/:id", UpdateBookHandler())
		admin.DELETE("/books/:id", DeleteBookHandler(files))

		admin.GET("/words", ListWordsHandler())
		admin.POST("/words", CreateWordHandler())
		admin.PUT("/words/:id", UpdateWordHandler())
		admin.DELETE("/words/:id", DeleteWordHandler())

		admin.POST("/enrich", EnrichWordsHandler(worker))
		admin.GET("/tasks/:taskId", GetTaskHandler())
	}

	// --- Task progress streaming ---
	r.GET("/ws/tasks/:taskId", WSTaskProgressHandler(cfg, rdb))

	return r
}
