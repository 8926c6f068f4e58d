package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/qs3c/tgsub_go_server/config"
	"github.com/qs3c/tgsub_go_server/internal/database"
	"github.com/qs3c/tgsub_go_server/internal/pkg/cron"
	"github.com/qs3c/tgsub_go_server/internal/pkg/crypto"
	"github.com/qs3c/tgsub_go_server/internal/pkg/lock"
	"github.com/qs3c/tgsub_go_server/internal/pkg/telegram"
	"github.com/qs3c/tgsub_go_server/internal/repository"
	"github.com/qs3c/tgsub_go_server/internal/service"
)

var (
	once     = flag.Bool("once", false, "Run a single sweep and exit")
	interval = flag.Int("interval", 0, "Sweep interval in minutes, overrides config when > 0")
)

func main() {
	flag.Parse()

	log.Println("Starting expiry reaper...")

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 连接数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	// Redis 租约，未配置时单副本直跑
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, running without lease lock: %v", err)
		rdb = nil
	}

	vault, err := crypto.NewVault(cfg.Encryption.Key)
	if err != nil {
		log.Fatalf("Failed to init encryption vault: %v", err)
	}

	bot := telegram.NewClient(cfg.Telegram.APIBase)
	subRepo := repository.NewSubscriptionRepository(db)
	creatorRepo := repository.NewCreatorRepository(db)
	expiryService := service.NewExpiryService(subRepo, creatorRepo, bot, vault)

	if *once {
		count, err := expiryService.Sweep(context.Background())
		if err != nil {
			log.Fatalf("Sweep failed: %v", err)
		}
		log.Printf("Sweep done, %d subscriptions expired", count)
		return
	}

	sweepInterval := time.Duration(cfg.Reaper.IntervalMinutes) * time.Minute
	if *interval > 0 {
		sweepInterval = time.Duration(*interval) * time.Minute
	}

	sweepLock := lock.NewLock(rdb, cron.SweepLockKey(), sweepInterval)
	cronService := cron.NewService(expiryService, sweepLock, sweepInterval)
	cronService.Start()

	// 常驻运行
	select {}
}
