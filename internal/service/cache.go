package service

import (
	"context"
	"encoding/json"
	"time"

	"wadayano_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// InsightCache keeps instructor insight projections in redis for a short TTL.
// The durable store stays the single source of truth: entries are only ever a
// cached rendering of committed records, and recording an attempt drops the
// quiz's entry. A nil client disables caching entirely.
type InsightCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewInsightCache(rdb *redis.Client, ttl time.Duration) *InsightCache {
	return &InsightCache{rdb: rdb, ttl: ttl}
}

func insightKey(quizID string) string {
	return "insights:quiz:" + quizID
}

func (c *InsightCache) Get(ctx context.Context, quizID string, dest interface{}) bool {
	if c == nil || c.rdb == nil || c.ttl <= 0 {
		return false
	}
	raw, err := c.rdb.Get(ctx, insightKey(quizID)).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	return true
}

func (c *InsightCache) Set(ctx context.Context, quizID string, value interface{}) {
	if c == nil || c.rdb == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, insightKey(quizID), raw, c.ttl).Err(); err != nil && logger.Log != nil {
		logger.Log.Warn("insight cache set failed", zap.String("quiz_id", quizID), zap.Error(err))
	}
}

func (c *InsightCache) InvalidateQuiz(ctx context.Context, quizID string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, insightKey(quizID)).Err(); err != nil && logger.Log != nil {
		logger.Log.Warn("insight cache invalidation failed", zap.String("quiz_id", quizID), zap.Error(err))
	}
}
