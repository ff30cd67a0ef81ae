package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"jobcore/backend/internal/api/handler"
	"jobcore/backend/internal/category"
	"jobcore/backend/internal/clients"
	"jobcore/backend/internal/config"
	"jobcore/backend/internal/identity"
	"jobcore/backend/internal/lifecycle"
	"jobcore/backend/internal/logging"
	"jobcore/backend/internal/models"
	"jobcore/backend/internal/report"
	"jobcore/backend/internal/storage"
	"jobcore/backend/internal/vacancy"
	"jobcore/backend/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config, logger *zap.Logger) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect PostgreSQL", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Fatal("failed to connect Redis", zap.Error(err))
	}

	err = db.AutoMigrate(
		&models.Category{},
		&models.Vacancy{},
		&models.Application{},
		&models.ApplicationHistory{},
		&models.Report{},
	)
	if err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	logger.Info("database and Redis connections established, migrations complete")
	return db, rdb
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg := config.Load()

	logger, err := logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting recruiting backend")

	db, rdb := setupDependencies(cfg, logger)
	s := storage.NewService(db, rdb, cfg.NotificationChannel, logger)

	users := clients.NewUserClient(cfg.UserServiceBaseURL, cfg.ExternalCallTimeout)
	cvs := clients.NewCVClient(cfg.CVServiceBaseURL, cfg.ExternalCallTimeout)

	workflowSvc := workflow.NewService(s, users, cvs, logger)
	reportSvc := report.NewService(s, users, cfg.MaxReportsPerWindow, logger)
	vacancySvc := vacancy.NewService(s, users, logger)
	categorySvc := category.NewService(s)

	poller := lifecycle.NewPoller(s, cfg.MaxReportCount, cfg.VacancyTTL, logger)
	if err := poller.Start(cfg.PollSpec); err != nil {
		logger.Fatal("failed to start vacancy poller", zap.Error(err))
	}
	defer poller.Stop()

	provider := identity.NewProvider(cfg.JWTSecret)
	h := handler.NewHandler(workflowSvc, reportSvc, vacancySvc, categorySvc)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public browsing endpoints.
	r.GET("/vacancies", h.ListVacancies)
	r.GET("/vacancies/:id", h.GetVacancy)
	r.GET("/categories", h.ListCategories)
	r.GET("/categories/:id", h.GetCategory)

	auth := r.Group("/", provider.Middleware())
	{
		auth.POST("/vacancies", h.CreateVacancy)
		auth.PUT("/vacancies/:id", h.UpdateVacancy)
		auth.DELETE("/vacancies/:id", h.DeleteVacancy)
		auth.GET("/companies/:id/vacancies", h.CompanyVacancies)
		auth.POST("/companies/vacancy-counts", h.CompanyVacancyCounts)

		auth.GET("/vacancies/:id/applications", h.VacancyApplications)
		auth.POST("/applications", h.Apply)
		auth.GET("/applications", h.MyApplications)
		auth.GET("/applications/:id", h.ApplicationDetails)
		auth.PUT("/applications/:id/status", h.ChangeApplicationStatus)
		auth.GET("/applications/:id/chat-status", h.ApplicationChatStatus)

		auth.POST("/reports", h.SubmitReport)
		auth.PUT("/reports/:id/status", h.ResolveReport)
		auth.GET("/reports", h.ListReports)
		auth.GET("/reports/my", h.MyReports)
		auth.GET("/reports/:id", h.GetReport)

		auth.POST("/categories", h.CreateCategory)
	}

	server := &http.Server{
		Addr:           ":" + cfg.HTTPPort,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	logger.Info("http server listening", zap.String("port", cfg.HTTPPort))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}
