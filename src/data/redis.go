package data

import (
	"log"

	"github.com/redis/go-redis/v9"
)

// OpenRedis connects to Redis, or returns nil when no URL is configured.
// A nil client disables result caching; everything else keeps working.
func OpenRedis(url string) *redis.Client {
	if url == "" {
		log.Printf("redis: no REDIS_URL configured, result cache disabled")
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("redis: bad url (%v), result cache disabled", err)
		return nil
	}
	return redis.NewClient(opt)
}
