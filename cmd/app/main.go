package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"eduflix-api/config"
	"eduflix-api/internal/application/usecase"
	"eduflix-api/internal/domain"
	"eduflix-api/internal/infrastructure/cache"
	"eduflix-api/internal/infrastructure/docstore"
	"eduflix-api/internal/infrastructure/email"
	"eduflix-api/internal/infrastructure/notify"
	"eduflix-api/internal/infrastructure/render"
	"eduflix-api/internal/infrastructure/repository"
	"eduflix-api/internal/infrastructure/security"
	"eduflix-api/internal/middleware"
	"eduflix-api/internal/pkg/logger"
	handlers "eduflix-api/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	logg, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Logger init failed: %v", err)
	}
	defer logg.Sync()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logg.Fatal("DB connect failed", "error", err)
	}

	// Миграции
	db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Video{},
		&domain.Rating{},
		&domain.ProgressRecord{},
		&domain.Favorite{},
		&domain.HistoryEntry{},
		&domain.Certificate{},
		&domain.Notification{},
	)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logg.Fatal("Redis connect failed", "error", err)
	}

	// Репозитории
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db, rdb)
	categoryRepo := repository.NewCategoryRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	certRepo := repository.NewCertificateRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)

	// Хранилище документов: GCS в проде, диск в разработке
	var docs usecase.DocumentStore
	localCertDir := ""
	if cfg.GCSBucket != "" {
		gcs, err := docstore.NewGCSStore(context.Background(), cfg.GCSBucket)
		if err != nil {
			logg.Fatal("GCS init failed", "error", err)
		}
		defer gcs.Close()
		docs = gcs
	} else {
		docs = docstore.NewLocalStore(cfg.CertDir, cfg.PublicBaseURL)
		localCertDir = cfg.CertDir
	}

	var mailer usecase.AchievementMailer
	if cfg.SendgridAPIKey != "" {
		mailer = email.NewEmailSender(cfg.SendgridAPIKey, cfg.SMTPEmail, cfg.FrontendURL)
	}

	renderer := render.NewRenderer(cfg.CertFont)
	publisher := notify.NewRedisPublisher(rdb)
	tokenCache := cache.NewTokenCache(rdb)
	hasher := security.NewPasswordHasher()
	tokenManager := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)

	// Usecases
	authUC := usecase.NewAuthUseCase(userRepo, tokenCache, hasher, tokenManager, logg)
	videoUC := usecase.NewVideoUseCase(videoRepo, logg)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, videoRepo, logg)
	progressUC := usecase.NewProgressUseCase(progressRepo, videoRepo, logg)
	notifUC := usecase.NewNotificationUseCase(notifRepo, publisher, logg)
	certUC := usecase.NewCertificateUseCase(renderer, docs, certRepo, userRepo, videoRepo, notifUC, mailer, logg)
	libraryUC := usecase.NewLibraryUseCase(libraryRepo, videoRepo, categoryRepo, progressUC, logg)

	limiter := middleware.NewRateLimiter(rdb)

	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:           handlers.NewAuthHandler(authUC),
		Videos:         handlers.NewVideoHandler(videoUC),
		Categories:     handlers.NewCategoryHandler(categoryUC),
		User:           handlers.NewUserHandler(libraryUC, progressUC, certUC, renderer),
		Notifications:  handlers.NewNotificationHandler(notifUC),
		Limiter:        limiter,
		AuthUC:         authUC,
		AllowedOrigins: strings.Split(cfg.AllowedOrigins, ","),
		CertDir:        localCertDir,
	})

	logg.Info("EduFlix API running", "port", cfg.HTTPPort)
	if err := router.Run(cfg.HTTPPort); err != nil {
		logg.Fatal("Serve failed", "error", err)
	}
}
