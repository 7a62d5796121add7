package redis

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// Connect はRedisに接続してクライアントを返す。
// addrが空、または疎通できない場合はnilを返す（レート制限は無効化される）。
func Connect(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable (%v), rate limiting disabled", err)
		return nil
	}

	return client
}
