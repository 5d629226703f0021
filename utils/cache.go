// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"servicelink/config"

	"github.com/go-redis/redis/v8"
)

var (
	// AuthCacheClient stores auth sessions.
	AuthCacheClient *redis.Client
	// OTPCacheClient stores pending OTP challenges.
	OTPCacheClient *redis.Client
	// BookingCacheClient stores draft bookings.
	BookingCacheClient *redis.Client
)

// NewRedisClient connects to the configured Redis server on the given DB and pings it.
func NewRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis db %d: %w", db, err)
	}
	return client, nil
}

// InitRedis initializes every Redis client used by the session-backed stores.
func InitRedis() error {
	var err error
	if AuthCacheClient, err = NewRedisClient(config.AppConfig.RedisAuthDB); err != nil {
		return err
	}
	if OTPCacheClient, err = NewRedisClient(config.AppConfig.RedisOTPDB); err != nil {
		return err
	}
	if BookingCacheClient, err = NewRedisClient(config.AppConfig.RedisBookingDB); err != nil {
		return err
	}
	return nil
}

// RedisClients lists the initialized clients, for health checks and shutdown.
func RedisClients() []*redis.Client {
	var out []*redis.Client
	for _, c := range []*redis.Client{AuthCacheClient, OTPCacheClient, BookingCacheClient} {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
