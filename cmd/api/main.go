package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "loanflow-backend/internal/adapter/http"
	"loanflow-backend/internal/adapter/middleware"
	"loanflow-backend/internal/adapter/repository/mysql"
	"loanflow-backend/internal/config"
	"loanflow-backend/internal/infrastructure/cache"
	"loanflow-backend/internal/infrastructure/db"
	"loanflow-backend/internal/logger"
	"loanflow-backend/internal/notify"
	commissionUC "loanflow-backend/internal/usecase/commission"
	dealUC "loanflow-backend/internal/usecase/deal"
	lenderUC "loanflow-backend/internal/usecase/lender"
	statusUC "loanflow-backend/internal/usecase/status"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), zlog)
	if err != nil {
		zlog.Fatal("mysql connect failed", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		zlog.Fatal("migrate failed", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		zlog.Fatal("redis connect failed", zap.Error(err))
	}

	var sink notify.Sink
	if cfg.SMTPEnabled() {
		sink = notify.NewSMTPSink(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.SMTPFrom,
		})
	} else {
		sink = notify.NewLogSink(zlog)
	}
	notifier := notify.New(sink, zlog, cfg.BaseURL)

	uow := mysql.NewGormUoW(gdb)
	dealUsecase := dealUC.NewUsecase(uow, notifier, zlog)
	lenderUsecase := lenderUC.NewUsecase(uow, notifier, zlog)
	commissionUsecase := commissionUC.NewUsecase(uow, zlog)
	statusUsecase := statusUC.NewUsecase(uow, zlog)

	h := httpadp.NewHandler()
	dealHandler := httpadp.NewDealHandler(dealUsecase)
	lenderHandler := httpadp.NewLenderHandler(lenderUsecase)
	commissionHandler := httpadp.NewCommissionHandler(commissionUsecase)
	statusHandler := httpadp.NewStatusHandler(statusUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	// public routes
	e.GET("/health", h.Health)
	e.GET("/status/:token", statusHandler.GetStatus)

	// authenticated API; the gateway sets the actor headers
	api := e.Group("/api", httpadp.ActorMiddleware())
	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, zlog)

	api.POST("/deals", dealHandler.SubmitDeal, idemp)
	api.GET("/deals", dealHandler.ListDeals)
	api.POST("/deals/:deal_id/transition", dealHandler.TransitionDeal, idemp)
	api.POST("/deals/:deal_id/notes", dealHandler.AddNote, idemp)
	api.POST("/deals/:deal_id/tracking-link", dealHandler.SendTrackingLink, idemp)
	api.POST("/deals/:deal_id/lender", lenderHandler.AssignLender, idemp)
	api.GET("/deals/:deal_id/lender", lenderHandler.ListAssignments)
	api.GET("/lenders/search", lenderHandler.SearchLenders)
	api.POST("/lenders/import", lenderHandler.ImportLenders, idemp)
	api.POST("/commissions/:commission_id/paid", commissionHandler.MarkPaid, idemp)
	api.GET("/commissions", commissionHandler.ListCommissions)

	addr := ":" + cfg.AppPort
	zlog.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		notifier.Wait()
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
