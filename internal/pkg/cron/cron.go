package cron

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/qs3c/tgsub_go_server/internal/pkg/lock"
	"github.com/qs3c/tgsub_go_server/internal/service"
)

const sweepLockKey = "tgsub:reaper:sweep"

type Service struct {
	expiryService *service.ExpiryService
	sweepLock     *lock.Lock
	interval      time.Duration
	owner         string
	stopChan      chan struct{}
}

func NewService(expiryService *service.ExpiryService, sweepLock *lock.Lock, interval time.Duration) *Service {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	hostname, _ := os.Hostname()
	return &Service{
		expiryService: expiryService,
		sweepLock:     sweepLock,
		interval:      interval,
		owner:         fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		stopChan:      make(chan struct{}),
	}
}

// SweepLockKey 清理租约使用的 Redis key
func SweepLockKey() string {
	return sweepLockKey
}

// Start 启动定时清理
func (s *Service) Start() {
	go s.runExpirySweep()
	log.Printf("Cron service started (expiry sweep every %s)", s.interval)
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

func (s *Service) runExpirySweep() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Service) sweep() {
	ctx := context.Background()

	if s.sweepLock != nil {
		acquired, err := s.sweepLock.TryAcquire(ctx, s.owner)
		if err != nil {
			log.Printf("Expiry sweep: failed to acquire lock: %v", err)
			return
		}
		if !acquired {
			// 其它副本正在扫描
			return
		}
		defer func() {
			if err := s.sweepLock.Release(ctx, s.owner); err != nil {
				log.Printf("Expiry sweep: failed to release lock: %v", err)
			}
		}()
	}

	if _, err := s.expiryService.Sweep(ctx); err != nil {
		log.Printf("Expiry sweep failed: %v", err)
	}
}

// RunNow 立即执行一轮清理（用于测试或手动触发）
func (s *Service) RunNow() error {
	_, err := s.expiryService.Sweep(context.Background())
	return err
}
