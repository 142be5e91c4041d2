package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/LightArtz/Tappit/internal/auth"
	"github.com/LightArtz/Tappit/internal/blobstore"
	"github.com/LightArtz/Tappit/internal/config"
	"github.com/LightArtz/Tappit/internal/handlers"
	"github.com/LightArtz/Tappit/internal/migrations"
	"github.com/LightArtz/Tappit/internal/notifications"
	"github.com/LightArtz/Tappit/internal/services"
	"github.com/LightArtz/Tappit/internal/storage"
)

// App структура для управления приложением и его зависимостями.
type App struct {
	cfg     *config.Config
	dbPool  *pgxpool.Pool
	echo    *echo.Echo
	janitor *services.SessionJanitor

	// Handlers
	wizardHandler       *handlers.WizardHandler
	authHandler         *handlers.AuthHandler
	adminHandler        *handlers.AdminHandler
	notificationHandler *handlers.NotificationHandler
}

// NewApp создаёт и инициализирует новое приложение.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{
		cfg: cfg,
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initDependencies(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	app.initServer()

	return app, nil
}

// initDatabase инициализирует подключение к базе данных и выполняет миграции.
func (app *App) initDatabase(ctx context.Context) error {
	if app.cfg.DatabaseURI == "" {
		return fmt.Errorf("DATABASE_URI is required")
	}

	// Применение миграций
	log.Println("Running database migrations...")
	sqlDB, err := sql.Open("pgx", app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to open database connection: %w", err)
	}
	defer sqlDB.Close()

	if err := migrations.Run(sqlDB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Migrations completed successfully")

	// Подключение к базе данных через pgxpool
	dbPool, err := pgxpool.New(ctx, app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		return fmt.Errorf("unable to ping database: %w", err)
	}

	app.dbPool = dbPool
	log.Println("Successfully connected to database")

	return nil
}

// initDependencies инициализирует все зависимости приложения (storage, services, handlers).
func (app *App) initDependencies(ctx context.Context) error {
	// Storage layer
	orderStorage := storage.NewPostgresOrderStorage(app.dbPool)
	adminStorage := storage.NewPostgresAdminStorage(app.dbPool)

	blobs, err := app.newBlobStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}
	log.Printf("Using blob store: %v", blobs)

	// Центр уведомлений, общий для визарда и админки
	center := notifications.NewCenter(app.cfg.ToastTTL)

	// Service layer
	authService := services.NewAuthService(adminStorage, app.cfg.JWTSecret, app.cfg.TokenExpiration)
	wizardService := services.NewWizardService(orderStorage, blobs, center, app.cfg.WizardCloseDelay)
	console := services.NewAdminConsole(orderStorage, center)

	// Администратор создаётся при старте, если его ещё нет
	if err := authService.EnsureAdmin(ctx, app.cfg.AdminEmail, app.cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to ensure admin user: %w", err)
	}
	log.Printf("Admin user ready: %s", app.cfg.AdminEmail)

	// Уборщик брошенных сессий визарда
	app.janitor = services.NewSessionJanitor(wizardService, time.Minute, app.cfg.WizardSessionTTL, log.Default())

	// Handler layer
	app.wizardHandler = handlers.NewWizardHandler(wizardService)
	app.authHandler = handlers.NewAuthHandler(authService)
	app.adminHandler = handlers.NewAdminHandler(console, app.cfg.FallbackDesign)
	app.notificationHandler = handlers.NewNotificationHandler(center)

	return nil
}

// newBlobStore выбирает хранилище файлов по конфигурации.
func (app *App) newBlobStore(ctx context.Context) (blobstore.Store, error) {
	switch app.cfg.BlobDriver {
	case "s3":
		return blobstore.NewS3Store(ctx, blobstore.S3Config{
			Region:        app.cfg.S3Region,
			Bucket:        app.cfg.S3Bucket,
			PublicBaseURL: app.cfg.S3PublicBaseURL,
		})
	case "local", "":
		return blobstore.NewLocalStore(app.cfg.LocalUploadDir, app.cfg.LocalUploadURLPrefix), nil
	default:
		return nil, fmt.Errorf("unknown blob driver: %q", app.cfg.BlobDriver)
	}
}

// initServer инициализирует HTTP-сервер и настраивает маршруты.
func (app *App) initServer() {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
	}))

	// Публичные маршруты формы заказа
	e.POST("/api/wizard", app.wizardHandler.Start)
	e.GET("/api/wizard/:id", app.wizardHandler.State)
	e.PUT("/api/wizard/:id/details", app.wizardHandler.SetDetails)
	e.POST("/api/wizard/:id/next", app.wizardHandler.Next)
	e.POST("/api/wizard/:id/back", app.wizardHandler.Back)
	e.POST("/api/wizard/:id/proof", app.wizardHandler.AttachProof)
	e.POST("/api/wizard/:id/design", app.wizardHandler.AttachDesign)
	e.POST("/api/wizard/:id/submit", app.wizardHandler.Submit)

	// Уведомления
	e.GET("/api/notifications", app.notificationHandler.GetActive)
	e.DELETE("/api/notifications/:id", app.notificationHandler.Dismiss)

	// Вход администратора, с ограничением частоты по IP
	loginLimiter := middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(1)))
	e.POST("/api/admin/login", app.authHandler.Login, loginLimiter)

	// Защищённые маршруты админки
	admin := e.Group("/api/admin")
	admin.Use(auth.JWTMiddleware(app.cfg.JWTSecret))
	admin.GET("/orders", app.adminHandler.GetOrders)
	admin.POST("/orders/refresh", app.adminHandler.Refresh)
	admin.PATCH("/orders/:id/status", app.adminHandler.UpdateStatus)
	admin.GET("/stats", app.adminHandler.GetStats)

	app.echo = e
}

// Start запускает приложение.
func (app *App) Start(ctx context.Context) error {
	// Запуск уборщика сессий
	log.Println("Starting wizard session janitor...")
	app.janitor.Start(ctx)

	// Запуск сервера
	log.Printf("Starting server on %s", app.cfg.RunAddress)
	if err := app.echo.Start(app.cfg.RunAddress); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

// Shutdown корректно завершает работу приложения.
func (app *App) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")

	if err := app.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if app.dbPool != nil {
		app.dbPool.Close()
	}

	log.Println("Server gracefully stopped")
	return nil
}
