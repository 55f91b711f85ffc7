package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/auth"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/config"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/database"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/handlers"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/logger"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var Version = "dev"

func main() {
	cfg, err := config.Load(os.Getenv("FT_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal("migrate database", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer,
		time.Duration(cfg.JWT.ExpireHours)*time.Hour)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.WithDB(pool))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := database.Health(c.Request.Context(), pool); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": Version,
		})
	})

	// Version endpoint
	r.GET("/api/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version": Version,
			"service": "faithtracker",
		})
	})

	r.POST("/api/auth/login", handlers.Login(jwtService))

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(jwtService), middleware.ReadOnly(cfg.Server.ReadOnly))
	{
		// Member roster
		api.GET("/members", handlers.ListMembers)
		api.POST("/members", handlers.CreateMember)
		api.GET("/members/stats", handlers.GetMemberDemographics)
		api.GET("/members/:id", handlers.GetMember)
		api.PUT("/members/:id", handlers.UpdateMember)
		api.DELETE("/members/:id", handlers.DeleteMember)
		api.GET("/members/:id/care-events", handlers.ListMemberCareEvents)

		// Care events
		api.GET("/care-events", handlers.ListCareEvents)
		api.POST("/care-events", handlers.CreateCareEvent)
		api.GET("/care-events/:id", handlers.GetCareEvent)
		api.DELETE("/care-events/:id", handlers.DeleteCareEvent)
		api.POST("/care-events/:id/complete", handlers.CompleteCareEvent)
		api.POST("/care-events/:id/ignore", handlers.IgnoreCareEvent)
		api.POST("/care-events/:id/undo", handlers.UndoCareEvent)
		api.GET("/care-events/:id/stages", handlers.ListCareEventStages)

		// Follow-up stages
		api.POST("/grief-stages/:id/complete", handlers.CompleteGriefStage)
		api.POST("/grief-stages/:id/ignore", handlers.IgnoreGriefStage)
		api.POST("/grief-stages/:id/undo", handlers.UndoGriefStage)
		api.POST("/accident-stages/:id/complete", handlers.CompleteAccidentStage)
		api.POST("/accident-stages/:id/ignore", handlers.IgnoreAccidentStage)
		api.POST("/accident-stages/:id/undo", handlers.UndoAccidentStage)

		// Financial aid schedules
		api.POST("/financial-aid-schedules", handlers.CreateSchedule)
		api.GET("/financial-aid-schedules/member/:id", handlers.ListMemberSchedules)
		api.GET("/financial-aid-schedules/:id", handlers.GetSchedule)
		api.POST("/financial-aid-schedules/:id/mark-distributed", handlers.MarkDistributed)
		api.POST("/financial-aid-schedules/:id/ignore", handlers.IgnoreOccurrence)
		api.POST("/financial-aid-schedules/:id/stop", handlers.StopSchedule)
		api.DELETE("/financial-aid-schedules/:id", handlers.DeleteSchedule)
		api.DELETE("/financial-aid-schedules/:id/ignored-occurrence/:date", handlers.RemoveIgnoredOccurrence)

		// Ledger and analytics
		api.GET("/financial-aid/summary", handlers.GetFinancialAidSummary)
		api.GET("/financial-aid/summary/member/:id", handlers.GetMemberAidSummary)
		api.GET("/financial-aid/export", handlers.ExportAidLedger)
		api.GET("/dashboard/summary", handlers.GetDashboardSummary)

		// Staff accounts
		api.GET("/users", handlers.ListUsers)
		api.POST("/users", middleware.RequireAdmin(), handlers.CreateUser)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		log.Info("server starting", zap.Int("port", cfg.Server.Port), zap.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
