package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnloop/backend/config"
	"learnloop/backend/controllers"
	"learnloop/backend/middleware"
	"learnloop/backend/models"
	"learnloop/backend/repositories"
	"learnloop/backend/services"
)

// SetupRoutes wires repositories, services and controllers once at startup
// and registers every route on the app.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, tokenSvc *services.TokenService) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	contentRepo := repositories.NewContentRepository(db)
	responseRepo := repositories.NewResponseRepository(db)
	progressRepo := repositories.NewProgressRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, tokenSvc, cfg.BcryptCost)
	moduleService := services.NewModuleService(contentRepo, progressRepo, responseRepo)
	conceptService := services.NewConceptService(contentRepo)
	quizService := services.NewQuizService(contentRepo, responseRepo)
	progressService := services.NewProgressService(progressRepo)

	// Controllers
	authController := controllers.NewAuthController(authService, cfg)
	moduleController := controllers.NewModuleController(moduleService)
	conceptController := controllers.NewConceptController(conceptService, quizService, progressService)

	authMiddleware := middleware.AuthMiddleware(tokenSvc)

	// Auth routes
	auth := app.Group("/api/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Post("/refresh", authController.Refresh)
	auth.Post("/logout", authMiddleware, authController.Logout)
	auth.Post("/logout-all", authMiddleware, authController.LogoutAll)
	auth.Get("/me", authMiddleware, authController.Me)

	// Module routes; overview registered before the parameterized paths
	modules := app.Group("/api/modules", authMiddleware)
	modules.Get("/overview", moduleController.GetOverview)
	modules.Get("/:moduleId/theme", moduleController.GetTheme)
	modules.Get("/:moduleId/reflection", moduleController.GetReflection)
	modules.Post("/:moduleId/reflection", moduleController.SaveReflection)

	// Concept routes
	concepts := app.Group("/api/concepts", authMiddleware)
	concepts.Post("/quiz/:quizId/answer", conceptController.SaveQuizAnswer)
	concepts.Get("/:conceptId/tutorial", conceptController.GetTutorial)
	concepts.Get("/:conceptId/quiz", conceptController.GetQuizzes)
	concepts.Get("/:conceptId/summary", conceptController.GetSummary)
	concepts.Post("/:conceptId/progress", conceptController.SaveProgress)

	// Admin maintenance routes
	admin := app.Group("/api/admin", authMiddleware, middleware.RequireRole(models.RoleAdmin))
	admin.Post("/tokens/cleanup", authController.CleanupExpiredTokens)
}
