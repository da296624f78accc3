package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/wardline/roster-api/internal/config"
	"github.com/wardline/roster-api/internal/database"
	"github.com/wardline/roster-api/internal/handlers"
	"github.com/wardline/roster-api/internal/identity"
	"github.com/wardline/roster-api/internal/middleware"
	"github.com/wardline/roster-api/internal/repository"
	"github.com/wardline/roster-api/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	db := database.GetDB()

	// Identity provider client
	verifier := identity.NewClient(cfg.IdentityURL, cfg.IdentityKey, cfg.IdentityTimeout, log.Logger)

	// Repositories
	wsRepo := repository.NewWorkspaceRepository(db)
	enrollRepo := repository.NewEnrollmentRepository(db)
	inviteRepo := repository.NewInvitationRepository(db)
	rosterRepo := repository.NewRosterRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)

	// Services
	wsService := services.NewWorkspaceService(wsRepo, enrollRepo)
	enrollService := services.NewEnrollmentService(wsRepo, enrollRepo, wsService)
	inviteService := services.NewInvitationService(wsRepo, enrollRepo, inviteRepo, wsService, verifier, log.Logger)
	rosterService := services.NewRosterService(wsRepo, enrollRepo, rosterRepo)
	leaveService := services.NewLeaveService(wsRepo, enrollRepo, leaveRepo, verifier, log.Logger)

	// Handlers
	authHandler := handlers.NewAuthHandler()
	healthHandler := handlers.NewHealthHandler(db)
	wsHandler := handlers.NewWorkspaceHandler(wsService)
	enrollHandler := handlers.NewEnrollmentHandler(enrollService)
	inviteHandler := handlers.NewInvitationHandler(inviteService)
	rosterHandler := handlers.NewRosterHandler(rosterService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)

	// Initialize Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Health endpoints (public)
	r.GET("/health", healthHandler.Health)
	r.GET("/health/liveness", healthHandler.Liveness)
	r.GET("/health/readiness", healthHandler.Readiness)

	requireAuth := middleware.RequireAuth(verifier, cfg.IdentityTimeout)

	// API routes
	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		ws := api.Group("/workspaces")
		ws.Use(requireAuth)
		{
			ws.POST("", wsHandler.CreateWorkspace)
			ws.GET("/search", wsHandler.SearchWorkspaces)
			ws.GET("/enrolled", wsHandler.ListEnrolled)

			ws.POST("/favorite", wsHandler.SetFavorite)
			ws.GET("/favorite", wsHandler.GetFavorite)
			ws.DELETE("/favorite", wsHandler.ClearFavorite)

			ws.GET("/details/:id", wsHandler.GetWorkspaceDetails)
			ws.GET("/:id", wsHandler.GetWorkspace)
			ws.PATCH("/:id", wsHandler.UpdateWorkspace)
			ws.DELETE("/:id", wsHandler.DeleteWorkspace)

			ws.POST("/enroll", enrollHandler.RequestEnrollment)
			ws.POST("/requests/:id/approve", enrollHandler.ApproveRequest)
			ws.POST("/requests/:id/reject", enrollHandler.RejectRequest)
			ws.DELETE("/enroll/:workspaceId", enrollHandler.Unenroll)
			ws.GET("/:id/users", wsHandler.ListMembers)
			ws.DELETE("/:id/users/:userId", enrollHandler.RemoveUser)

			ws.POST("/:id/invite", inviteHandler.CreateInvitation)
			ws.GET("/invitations/my-invitations", inviteHandler.ListMyInvitations)
			ws.POST("/invitations/:id/accept", inviteHandler.AcceptInvitation)
			ws.POST("/invitations/:id/reject", inviteHandler.RejectInvitation)
			ws.DELETE("/invitations/:id", inviteHandler.CancelInvitation)

			ws.POST("/rosters/save", rosterHandler.SaveRoster)
			ws.POST("/rosters/:id/publish", rosterHandler.PublishRoster)
			ws.POST("/rosters/:id/unpublish", rosterHandler.UnpublishRoster)
			ws.GET("/rosters/my-rosters/:month/:year", rosterHandler.GetMyRosters)
			ws.GET("/rosters/:workspaceId/:month/:year", rosterHandler.GetRoster)
			ws.DELETE("/rosters/:id", rosterHandler.DeleteRoster)

			ws.POST("/leave-requests", leaveHandler.RequestLeave)
			ws.GET("/leave-requests/my-requests", leaveHandler.MyLeaveRequests)
			ws.GET("/:id/leave-requests", leaveHandler.WorkspaceLeaveRequests)
			ws.POST("/leave-requests/:id/approve", leaveHandler.ApproveLeaveRequest)
			ws.POST("/leave-requests/:id/reject", leaveHandler.RejectLeaveRequest)
			ws.DELETE("/leave-requests/:id", leaveHandler.CancelLeaveRequest)
		}
	}

	// Start server
	log.Info().Str("port", cfg.Port).Msg("Server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
