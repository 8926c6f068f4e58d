package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/qs3c/tgsub_go_server/config"
	"github.com/qs3c/tgsub_go_server/internal/api"
	"github.com/qs3c/tgsub_go_server/internal/api/handler"
	"github.com/qs3c/tgsub_go_server/internal/database"
	"github.com/qs3c/tgsub_go_server/internal/pkg/cron"
	"github.com/qs3c/tgsub_go_server/internal/pkg/crypto"
	"github.com/qs3c/tgsub_go_server/internal/pkg/lock"
	"github.com/qs3c/tgsub_go_server/internal/pkg/razorpay"
	"github.com/qs3c/tgsub_go_server/internal/pkg/telegram"
	"github.com/qs3c/tgsub_go_server/internal/repository"
	"github.com/qs3c/tgsub_go_server/internal/service"
)

func main() {
	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis（清理租约用，未配置时退化为单副本模式）
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, expiry sweep runs without lease lock: %v", err)
		rdb = nil
	} else {
		log.Println("Redis connected")
	}

	// 初始化令牌加密
	vault, err := crypto.NewVault(cfg.Encryption.Key)
	if err != nil {
		log.Fatalf("Failed to init encryption vault: %v", err)
	}

	// 初始化外部网关
	gateway := razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.WebhookSecret, cfg.Razorpay.APIBase)
	bot := telegram.NewClient(cfg.Telegram.APIBase)

	// 初始化 Repository
	creatorRepo := repository.NewCreatorRepository(db)
	planRepo := repository.NewPlanRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	// 初始化 Service
	creatorService := service.NewCreatorService(creatorRepo, vault)
	planService := service.NewPlanService(planRepo, creatorRepo)
	orderService := service.NewOrderService(orderRepo, planRepo, subRepo, gateway)
	paymentService := service.NewPaymentService(orderRepo, planRepo, subRepo, creatorRepo, gateway, bot, vault, cfg)
	expiryService := service.NewExpiryService(subRepo, creatorRepo, bot, vault)

	// 初始化 Handler
	creatorHandler := handler.NewCreatorHandler(creatorService)
	planHandler := handler.NewPlanHandler(planService)
	paymentHandler := handler.NewPaymentHandler(orderService, paymentService)

	// 初始化 Router
	router := api.NewRouter(creatorHandler, planHandler, paymentHandler, cfg)
	engine := router.Setup()

	// 启动过期订阅清理
	interval := time.Duration(cfg.Reaper.IntervalMinutes) * time.Minute
	sweepLock := lock.NewLock(rdb, cron.SweepLockKey(), interval)
	cronService := cron.NewService(expiryService, sweepLock, interval)
	cronService.Start()
	defer cronService.Stop()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
