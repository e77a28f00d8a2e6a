package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	config "github.com/journeyapp/journey_backend/configs"
)

// ConnectRedis opens the Redis client used by the leaderboard cache. Redis is
// optional: if no address is configured or the ping fails, callers get nil and
// fall back to the database.
func ConnectRedis() *redis.Client {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		log.Println("Redis not configured, leaderboard cache disabled.")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     config.Config("REDIS_PASSWORD"),
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis unreachable (%v), leaderboard cache disabled.", err)
		return nil
	}

	log.Println("✅ Redis connected successfully")
	return client
}
