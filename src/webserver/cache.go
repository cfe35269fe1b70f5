package webserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/veritas-labs/veritas/src/pipeline"
)

const cacheTTL = 15 * time.Minute

// resultCache memoizes verification results per claim. A nil redis client
// turns every lookup into a miss.
type resultCache struct {
	rdb *redis.Client
}

func cacheKey(mode, claim string) string {
	sum := sha256.Sum256([]byte(claim))
	return "verify:" + mode + ":" + hex.EncodeToString(sum[:])
}

func (c *resultCache) get(ctx context.Context, mode, claim string) *pipeline.Result {
	if c.rdb == nil {
		return nil
	}
	raw, err := c.rdb.Get(ctx, cacheKey(mode, claim)).Bytes()
	if err != nil {
		return nil
	}
	var result pipeline.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	return &result
}

func (c *resultCache) set(ctx context.Context, mode string, result *pipeline.Result) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(mode, result.Claim), raw, cacheTTL).Err(); err != nil {
		log.Printf("cache: could not store result: %v", err)
	}
}
