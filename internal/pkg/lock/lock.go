package lock

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Lock 基于 Redis SETNX 的租约锁。
// 多副本部署时保证每个周期只有一个清理进程执行扫描。
type Lock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewLock(client *redis.Client, key string, ttl time.Duration) *Lock {
	return &Lock{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// TryAcquire 尝试获取租约，已被其它副本持有时返回 false。
// 未配置 Redis（client 为 nil）时视为单副本部署，直接放行。
func (l *Lock) TryAcquire(ctx context.Context, owner string) (bool, error) {
	if l.client == nil {
		return true, nil
	}
	return l.client.SetNX(ctx, l.key, owner, l.ttl).Result()
}

// Release 释放租约，只有持有者能释放
func (l *Lock) Release(ctx context.Context, owner string) error {
	if l.client == nil {
		return nil
	}

	val, err := l.client.Get(ctx, l.key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	if val != owner {
		return nil
	}

	return l.client.Del(ctx, l.key).Err()
}
