package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gamereview-api/internal/core/auth"
	"go-gamereview-api/internal/core/cache"
	"go-gamereview-api/internal/core/config"
	"go-gamereview-api/internal/core/database"
	"go-gamereview-api/internal/core/logger"
	"go-gamereview-api/internal/core/server"
	"go-gamereview-api/internal/domain"
	"go-gamereview-api/internal/repo"
	"go-gamereview-api/internal/service"
	"go-gamereview-api/internal/transport/http/handler"
	"go-gamereview-api/internal/transport/http/router"
	"go-gamereview-api/pkg/utils"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Game{},
			&domain.Review{},
			&domain.RefreshToken{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// JWT：access / refresh 各一套密钥与时长
	accessJWT := &auth.JWTer{
		Secret: []byte(cfg.JWT.AccessSecret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	refreshJWT := &auth.JWTer{
		Secret: []byte(cfg.JWT.RefreshSecret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.RefreshTokenTTLHr) * time.Hour,
	}

	// Redis 缓存（addr 为空则不启用）
	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// 仓储与服务
	userRepo := repo.NewUserRepo(db)
	gameRepo := repo.NewGameRepo(db)
	reviewRepo := repo.NewReviewRepo(db)
	tokenRepo := repo.NewRefreshTokenRepo(db)
	txRunner := repo.NewTxRunner(db)

	seedAdmin(db, cfg, log, userRepo)

	authSvc := service.NewAuthService(userRepo, tokenRepo, accessJWT, refreshJWT)
	gameSvc := service.NewGameService(gameRepo, c)
	reviewSvc := service.NewReviewService(reviewRepo, gameRepo, txRunner, c)

	// 路由
	r := router.NewAPIEngine(log,
		accessJWT,
		handler.NewAuthHandler(authSvc),
		handler.NewGameHandler(gameSvc),
		handler.NewReviewHandler(reviewSvc),
	)

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()
	log.Info("api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

// seedAdmin 预置管理员：配置里给了邮箱才启用，是产生 ADMIN 的唯一入口
func seedAdmin(db *gorm.DB, cfg *config.Config, l *zap.Logger, users domain.UserRepository) {
	if cfg.Admin.Email == "" {
		return
	}
	ctx := context.Background()
	existing, err := users.FindByEmail(ctx, cfg.Admin.Email)
	if err != nil {
		l.Fatal("admin seed lookup failed", zap.Error(err))
	}
	if existing != nil {
		return
	}
	name := cfg.Admin.Name
	if name == "" {
		name = "admin"
	}
	u := &domain.User{
		Name:         name,
		Email:        cfg.Admin.Email,
		PasswordHash: utils.HashPassword(cfg.Admin.Password),
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, u); err != nil {
		l.Fatal("admin seed failed", zap.Error(err))
	}
	l.Info("admin user seeded", zap.String("email", cfg.Admin.Email))
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
