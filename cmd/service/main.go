// File: cmd/service/main.go
// @title        Civic Reports API
// @version      1.0
// @description  市民通報系統後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"civic-reports/internal/blob"
	"civic-reports/internal/cache"
	"civic-reports/internal/config"
	"civic-reports/internal/database"
	"civic-reports/internal/docstore"
	"civic-reports/internal/repository"
	"civic-reports/internal/router"
	"civic-reports/internal/service"
	"civic-reports/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "civic-reports/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newBlobStorage  = func(ctx context.Context, opts blob.S3Options) (blob.Storage, error) {
		return blob.NewS3Storage(ctx, opts)
	}
	newWorkerPool = worker.NewPool
	startServer   = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc      = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	redis, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer redis.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	blobs, err := newBlobStorage(context.Background(), blob.S3Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		return fmt.Errorf("物件儲存初始化失敗: %v", err)
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	store := docstore.NewPostgresStore(db)
	users := repository.NewUsers(store)
	reports := repository.NewReports(store)

	ident := service.NewIdentity(users)
	accounts := service.NewAccounts(users, cfg.AccessTokenTTL)
	reportSvc := service.NewReportService(reports, blobs, redis, wp)

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	router.Setup(e, db, redis, ident, accounts, reportSvc)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, cfg.Address)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
