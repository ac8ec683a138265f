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

	"go.uber.org/zap"

	"hr-intelligence/backend/config"
	"hr-intelligence/backend/internal/api/handler"
	"hr-intelligence/backend/internal/api/middleware"
	"hr-intelligence/backend/internal/api/router"
	"hr-intelligence/backend/internal/realtime"
	"hr-intelligence/backend/internal/repository"
	"hr-intelligence/backend/internal/seed"
	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/database"
	"hr-intelligence/backend/pkg/email"
	"hr-intelligence/backend/pkg/jwt"
	applogger "hr-intelligence/backend/pkg/logger"
	"hr-intelligence/backend/pkg/redis"
)

func main() {
	// 1. Yapılandırma
	cfg, err := config.Load(os.Getenv("IK_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "yapılandırma yüklenemedi: %v\n", err)
		os.Exit(1)
	}

	// 2. Log
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger başlatılamadı: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("uygulama başlatılıyor",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Veritabanı
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("veritabanına bağlanılamadı", zap.Error(err))
	}
	logger.Info("veritabanı bağlantısı kuruldu")

	// 3.1 Migration
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("sql.DB alınamadı", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migration başarısız", zap.Error(err))
	}

	// 3.2 Örnek veri
	if cfg.Feature.SeedSampleData {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), time.Minute)
		if err := seed.Run(seedCtx, db, cfg, logger); err != nil {
			logger.Error("örnek veri yüklenemedi", zap.Error(err))
		}
		seedCancel()
	}

	// 4. Redis (isteğe bağlı: bağlanamazsa önbellek, kara liste ve dağıtık hız sınırı kapalı çalışır)
	var (
		blacklist service.TokenBlacklist
		cache     service.Cache
		rateStore middleware.RateChecker
	)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis'e bağlanılamadı, önbellek ve token kara listesi devre dışı", zap.Error(err))
		rdb = nil
	} else {
		blacklist, cache, rateStore = rdb, rdb, rdb
	}

	// 5. JWT
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. E-posta
	var mailer email.Sender = email.NopSender{}
	if cfg.Mail.Enabled() {
		mailer = email.NewResendSender(cfg.Mail.ResendAPIKey, cfg.Mail.From, logger)
		logger.Info("e-posta gönderimi açık", zap.String("from", cfg.Mail.From))
	}

	// 7. Anlık bildirim merkezi
	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	hub := realtime.NewHub(logger)
	go hub.Run(appCtx)

	// 8. Bağımlılıklar: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc, err := service.NewService(cfg, repo, jwtMgr, blacklist, cache, hub, mailer, logger)
	if err != nil {
		logger.Fatal("servisler başlatılamadı", zap.Error(err))
	}
	h := handler.NewHandler(svc)

	// 9. Router
	var blacklistChecker middleware.BlacklistChecker
	if blacklist != nil {
		blacklistChecker = blacklist
	}
	engine := router.Setup(router.Deps{
		Config:    cfg,
		Handler:   h,
		Realtime:  realtime.NewHandler(hub, jwtMgr, blacklistChecker, cfg.Server.CORS.AllowOrigins, logger),
		JWT:       jwtMgr,
		Blacklist: blacklistChecker,
		RateStore: rateStore,
		Ready:     repo.Ping,
		OnWrite:   svc.Dashboard.Invalidate,
		Logger:    logger,
	})

	// 10. HTTP sunucusu (zarif kapanış)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("HTTP sunucusu dinliyor", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP sunucusu beklenmedik şekilde durdu", zap.Error(err))
		}
	}()

	// 11. Sinyal bekle
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("kapanış sinyali alındı", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("sunucu kapatılırken hata", zap.Error(err))
	}

	// Websocket bağlantılarını kapat
	stopApp()

	if err := sqlDB.Close(); err != nil {
		logger.Warn("veritabanı bağlantısı kapatılamadı", zap.Error(err))
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Warn("Redis bağlantısı kapatılamadı", zap.Error(err))
		}
	}

	logger.Info("sunucu kapatıldı")
}
