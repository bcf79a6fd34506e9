// Package redis 提供理赔单按 claimId 的读缓存。
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/claimsmanagement/internal/claim/domain"
	"github.com/wyfcoding/claimsmanagement/pkg/cache"
	"github.com/wyfcoding/claimsmanagement/pkg/logger"
)

// ClaimCache 理赔单 Redis 缓存。缓存只做加速，任何失败都降级为未命中。
type ClaimCache struct {
	cache *cache.RedisCache
	ttl   time.Duration
}

// NewClaimCache 创建理赔单缓存
func NewClaimCache(c *cache.RedisCache, ttl time.Duration) *ClaimCache {
	return &ClaimCache{
		cache: c,
		ttl:   ttl,
	}
}

func claimKey(claimID int64) string {
	return fmt.Sprintf("claim:%d", claimID)
}

// Get 按 claimId 读取缓存，未命中返回 nil, false
func (cc *ClaimCache) Get(ctx context.Context, claimID int64) (*domain.Claim, bool) {
	var claim domain.Claim
	hit, err := cc.cache.GetJSON(ctx, claimKey(claimID), &claim)
	if err != nil || !hit {
		return nil, false
	}
	return &claim, true
}

// Set 写入缓存
func (cc *ClaimCache) Set(ctx context.Context, claim *domain.Claim) {
	if claim == nil {
		return
	}
	if err := cc.cache.SetJSON(ctx, claimKey(claim.ClaimID), claim, cc.ttl); err != nil {
		logger.Warn(ctx, "claim_cache.set failed", "claim_id", claim.ClaimID, "error", err)
	}
}

// Invalidate 删除缓存键
func (cc *ClaimCache) Invalidate(ctx context.Context, claimID int64) {
	if err := cc.cache.Delete(ctx, claimKey(claimID)); err != nil {
		logger.Warn(ctx, "claim_cache.invalidate failed", "claim_id", claimID, "error", err)
	}
}
