package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const summaryTTL = 5 * time.Minute

// SummaryCache guarda o resumo financeiro sem filtros de cada
// estabelecimento (a chamada do dashboard). Com REDIS_URL vazio o cache
// fica desligado e todos os métodos viram no-ops.
type SummaryCache struct {
	client *redis.Client
}

func NewSummaryCache(redisURL string) *SummaryCache {
	if redisURL == "" {
		return &SummaryCache{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL, summary cache disabled: %v", err)
		return &SummaryCache{}
	}

	return &SummaryCache{client: redis.NewClient(opts)}
}

func (c *SummaryCache) Enabled() bool {
	return c != nil && c.client != nil
}

func key(establishmentID uuid.UUID) string {
	return "transactions:summary:" + establishmentID.String()
}

func (c *SummaryCache) Get(ctx context.Context, establishmentID uuid.UUID, dest any) bool {
	if !c.Enabled() {
		return false
	}

	raw, err := c.client.Get(ctx, key(establishmentID)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *SummaryCache) Set(ctx context.Context, establishmentID uuid.UUID, value any) {
	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(establishmentID), raw, summaryTTL).Err(); err != nil {
		log.Printf("summary cache set failed: %v", err)
	}
}

func (c *SummaryCache) Invalidate(ctx context.Context, establishmentID uuid.UUID) {
	if !c.Enabled() {
		return
	}

	if err := c.client.Del(ctx, key(establishmentID)).Err(); err != nil {
		log.Printf("summary cache invalidate failed: %v", err)
	}
}
