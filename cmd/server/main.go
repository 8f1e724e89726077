package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"chitraboard/internal/authz"
	"chitraboard/internal/config"
	"chitraboard/internal/database"
	"chitraboard/internal/drafts"
	"chitraboard/internal/handlers"
	"chitraboard/internal/repository"
	"chitraboard/internal/security"
	"chitraboard/internal/service"
	"chitraboard/internal/speech"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Seed fixed marketplace categories
	if err := db.SeedResourceCategories(); err != nil {
		log.Printf("Warning: Failed to seed resource categories: %v", err)
	}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	resourceRepo := repository.NewResourceRepository(db)

	// Initialize services
	authService := service.NewAuthService(profileRepo, cfg.SessionDuration, cfg.AccountEmailDomain)
	therapyService := service.NewTherapyService(profileRepo, activityRepo, assignmentRepo, responseRepo, linkRepo)
	marketplaceService := service.NewMarketplaceService(resourceRepo)
	backupService := service.NewBackupService(db)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, "ChitraBoard", cfg.BaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	shareSecret := cfg.ShareTokenSecret
	if shareSecret == "" {
		shareSecret = security.GenerateSessionID()
		log.Println("Warning: SHARE_TOKEN_SECRET not set, share links will not survive a restart")
	}
	shareService := service.NewShareService(shareSecret, cfg.ShareTokenTTL, cfg.BaseURL)

	csrfSecret := cfg.CSRFSecret
	if csrfSecret == "" {
		csrfSecret = security.GenerateSessionID()
	}
	csrf := security.NewCSRFGenerator(csrfSecret)

	// Local draft store for the builder
	draftStore, err := drafts.Open(cfg.DraftsPath)
	if err != nil {
		log.Fatalf("Failed to open draft store: %v", err)
	}

	// Speech synthesis with on-disk cache
	ttsService := speech.NewTTSService(cfg.AudioCachePath)
	speaker := speech.NewSpeaker(ttsService)

	googleOAuth := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}

	// Initialize handlers
	loginLimiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, loginLimiter, csrf)
	authHandler := handlers.NewAuthHandler(authService, emailService, csrf, googleOAuth)
	builderHandler := handlers.NewBuilderHandler(draftStore, therapyService)
	therapyHandler := handlers.NewTherapyHandler(therapyService, emailService)
	marketplaceHandler := handlers.NewMarketplaceHandler(marketplaceService)
	symbolsHandler := handlers.NewSymbolsHandler(speaker)
	shareHandler := handlers.NewShareHandler(shareService, draftStore)
	backupHandler := handlers.NewBackupHandler(backupService)

	// Setup routes
	mux := http.NewServeMux()

	// Static files (builder UI and cached audio)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Auth
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("POST /api/auth/forgot-password", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("POST /api/auth/reset-password", middleware.RateLimit(authHandler.ResetPassword))
	mux.HandleFunc("GET /auth/google/start", authHandler.StartGoogleOAuth)
	mux.HandleFunc("GET /auth/google/callback", authHandler.GoogleOAuthCallback)

	// Profiles
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("PUT /api/me", middleware.RequireAuth(middleware.CSRFProtect(authHandler.UpdateProfile)))
	mux.HandleFunc("GET /api/profiles", middleware.RequireAction(authz.ActionManageUsers, authHandler.ListProfiles))
	mux.HandleFunc("POST /api/children", middleware.RequireAction(authz.ActionManageUsers, middleware.CSRFProtect(authHandler.CreateChild)))
	mux.HandleFunc("PUT /api/profiles/{id}/role", middleware.RequireAdmin(middleware.CSRFProtect(authHandler.ChangeRole)))
	mux.HandleFunc("DELETE /api/profiles/{id}", middleware.RequireAdmin(middleware.CSRFProtect(authHandler.DeleteProfile)))

	// Symbol library and speech
	mux.HandleFunc("GET /api/symbols", middleware.RequireAuth(symbolsHandler.ListSymbols))
	mux.HandleFunc("GET /api/symbols/categories", middleware.RequireAuth(symbolsHandler.ListCategories))
	mux.HandleFunc("GET /api/symbols/{id}", middleware.RequireAuth(symbolsHandler.GetSymbol))
	mux.HandleFunc("POST /api/speech/speak", middleware.RequireAuth(symbolsHandler.Speak))
	mux.HandleFunc("POST /api/speech/stop", middleware.RequireAuth(symbolsHandler.StopSpeech))

	// Builder drafts
	mux.HandleFunc("GET /api/drafts/boards", middleware.RequireAction(authz.ActionAuthorContent, builderHandler.ListBoards))
	mux.HandleFunc("POST /api/drafts/boards", middleware.RequireAction(authz.ActionAuthorContent, middleware.CSRFProtect(builderHandler.SaveBoard)))
	mux.HandleFunc("GET /api/drafts/boards/{id}", middleware.RequireAction(authz.ActionAuthorContent, builderHandler.GetBoard))
	mux.HandleFunc("DELETE /api/drafts/boards/{id}", middleware.RequireAction(authz.ActionAuthorContent, middleware.CSRFProtect(builderHandler.DeleteBoard)))
	mux.HandleFunc("GET /api/drafts/schedules", middleware.RequireAction(authz.ActionAuthorContent, builderHandler.ListSchedules))
	mux.HandleFunc("POST /api/drafts/schedules", middleware.RequireAction(authz.ActionAuthorContent, middleware.CSRFProtect(builderHandler.SaveSchedule)))
	mux.HandleFunc("GET /api/drafts/schedules/{id}", middleware.RequireAction(authz.ActionAuthorContent, builderHandler.GetSchedule))
	mux.HandleFunc("DELETE /api/drafts/schedules/{id}", middleware.RequireAction(authz.ActionAuthorContent, middleware.CSRFProtect(builderHandler.DeleteSchedule)))
	mux.HandleFunc("GET /api/drafts/activities", middleware.RequireAction(authz.ActionAuthorContent, builderHandler.ListActivityDrafts))
	mux.HandleFunc("POST /api/drafts/activities", middleware.RequireAction(authz.ActionAuthorContent, middleware.CSRFProtect(builderHandler.SaveActivityDraft)))
	mux.HandleFunc("GET /api/drafts/activities/{id}", middleware.RequireAction(authz.ActionAuthorContent, builderHandler.GetActivityDraft))
	mux.HandleFunc("DELETE /api/drafts/activities/{id}", middleware.RequireAction(authz.ActionAuthorContent, middleware.CSRFProtect(builderHandler.DeleteActivityDraft)))
	mux.HandleFunc("POST /api/drafts/activities/{id}/publish", middleware.RequireAction(authz.ActionAuthorContent, middleware.CSRFProtect(builderHandler.PublishActivityDraft)))
	mux.HandleFunc("GET /api/settings/language", middleware.RequireAuth(builderHandler.GetLanguageSettings))
	mux.HandleFunc("PUT /api/settings/language", middleware.RequireAuth(middleware.CSRFProtect(builderHandler.SaveLanguageSettings)))

	// Published activities and assignments
	mux.HandleFunc("GET /api/activities", middleware.RequireAction(authz.ActionAuthorContent, therapyHandler.ListActivities))
	mux.HandleFunc("POST /api/activities", middleware.RequireAction(authz.ActionAuthorContent, middleware.CSRFProtect(therapyHandler.CreateActivity)))
	mux.HandleFunc("GET /api/activities/{id}", middleware.RequireAuth(therapyHandler.GetActivity))
	mux.HandleFunc("PUT /api/activities/{id}", middleware.RequireAction(authz.ActionAuthorContent, middleware.CSRFProtect(therapyHandler.UpdateActivity)))
	mux.HandleFunc("DELETE /api/activities/{id}", middleware.RequireAction(authz.ActionAuthorContent, middleware.CSRFProtect(therapyHandler.DeleteActivity)))
	mux.HandleFunc("GET /api/activities/{id}/assignable", middleware.RequireAction(authz.ActionAssignActivity, therapyHandler.AssignableChildren))
	mux.HandleFunc("POST /api/activities/{id}/assign", middleware.RequireAction(authz.ActionAssignActivity, middleware.CSRFProtect(therapyHandler.AssignActivity)))

	// Child play flow
	mux.HandleFunc("GET /api/assignments", middleware.RequireAction(authz.ActionPlayActivity, therapyHandler.MyAssignments))
	mux.HandleFunc("POST /api/assignments/{id}/open", middleware.RequireAction(authz.ActionPlayActivity, middleware.CSRFProtect(therapyHandler.OpenAssignment)))
	mux.HandleFunc("POST /api/assignments/{id}/submit", middleware.RequireAction(authz.ActionPlayActivity, middleware.CSRFProtect(therapyHandler.SubmitResponse)))
	mux.HandleFunc("GET /api/progress", middleware.RequireAction(authz.ActionViewOwnProgress, therapyHandler.MyProgress))

	// Progress for therapists and linked parents
	mux.HandleFunc("GET /api/children/{id}/assignments", middleware.RequireAction(authz.ActionViewChildren, therapyHandler.ChildAssignments))
	mux.HandleFunc("GET /api/children/{id}/progress", middleware.RequireAction(authz.ActionViewChildren, therapyHandler.ChildProgress))
	mux.HandleFunc("GET /api/children/progress", middleware.RequireAction(authz.ActionViewChildren, therapyHandler.ChildrenProgress))
	mux.HandleFunc("POST /api/links", middleware.RequireAction(authz.ActionLinkParentChild, middleware.CSRFProtect(therapyHandler.LinkParentToChild)))

	// Marketplace
	mux.HandleFunc("GET /api/marketplace/categories", middleware.RequireAction(authz.ActionUseMarketplace, marketplaceHandler.Categories))
	mux.HandleFunc("GET /api/marketplace/resources", middleware.RequireAction(authz.ActionUseMarketplace, marketplaceHandler.Browse))
	mux.HandleFunc("POST /api/marketplace/resources", middleware.RequireAction(authz.ActionUseMarketplace, middleware.CSRFProtect(marketplaceHandler.Publish)))
	mux.HandleFunc("GET /api/marketplace/resources/{id}", middleware.RequireAction(authz.ActionUseMarketplace, marketplaceHandler.GetResource))
	mux.HandleFunc("PUT /api/marketplace/resources/{id}", middleware.RequireAction(authz.ActionUseMarketplace, middleware.CSRFProtect(marketplaceHandler.Update)))
	mux.HandleFunc("DELETE /api/marketplace/resources/{id}", middleware.RequireAction(authz.ActionUseMarketplace, middleware.CSRFProtect(marketplaceHandler.Delete)))
	mux.HandleFunc("POST /api/marketplace/resources/{id}/purchase", middleware.RequireAction(authz.ActionUseMarketplace, middleware.CSRFProtect(marketplaceHandler.Purchase)))
	mux.HandleFunc("POST /api/marketplace/resources/{id}/download", middleware.RequireAction(authz.ActionUseMarketplace, middleware.CSRFProtect(marketplaceHandler.Download)))
	mux.HandleFunc("POST /api/marketplace/resources/{id}/rate", middleware.RequireAction(authz.ActionUseMarketplace, middleware.CSRFProtect(marketplaceHandler.Rate)))

	// Share links (resolve and QR are public by design)
	mux.HandleFunc("POST /api/share", middleware.RequireAction(authz.ActionAuthorContent, middleware.CSRFProtect(shareHandler.CreateShareLink)))
	mux.HandleFunc("GET /api/share/{token}/qr.png", shareHandler.ShareQRCode)
	mux.HandleFunc("GET /shared/{token}", shareHandler.ResolveShareLink)

	// Admin backup
	mux.HandleFunc("GET /api/admin/backup", middleware.RequireAdmin(backupHandler.Export))
	mux.HandleFunc("POST /api/admin/backup", middleware.RequireAdmin(middleware.CSRFProtect(backupHandler.Import)))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Failed to cleanup expired sessions: %v", err)
		}
	}
}
