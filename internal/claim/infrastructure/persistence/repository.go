// Package persistence 组合 MySQL 仓储与 Redis 缓存。
package persistence

import (
	"context"

	"github.com/wyfcoding/claimsmanagement/internal/claim/domain"
	"github.com/wyfcoding/claimsmanagement/internal/claim/infrastructure/persistence/redis"
)

// CompositeClaimRepository 在 MySQL 仓储之上挂一层按 claimId 的读缓存。
// MySQL 始终是事实来源，写操作写库后回填缓存。
type CompositeClaimRepository struct {
	store domain.ClaimRepository
	cache *redis.ClaimCache
}

// NewCompositeClaimRepository 创建组合仓储，cache 为 nil 时等价于纯 MySQL 仓储
func NewCompositeClaimRepository(store domain.ClaimRepository, cache *redis.ClaimCache) domain.ClaimRepository {
	return &CompositeClaimRepository{
		store: store,
		cache: cache,
	}
}

// Create 实现 domain.ClaimRepository.Create
func (r *CompositeClaimRepository) Create(ctx context.Context, claim *domain.Claim) error {
	if err := r.store.Create(ctx, claim); err != nil {
		return err
	}
	if r.cache != nil {
		r.cache.Set(ctx, claim)
	}
	return nil
}

// Get 实现 domain.ClaimRepository.Get
func (r *CompositeClaimRepository) Get(ctx context.Context, claimID int64) (*domain.Claim, error) {
	if r.cache != nil {
		if claim, ok := r.cache.Get(ctx, claimID); ok {
			return claim, nil
		}
	}

	claim, err := r.store.Get(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim != nil && r.cache != nil {
		r.cache.Set(ctx, claim)
	}
	return claim, nil
}

// Find 实现 domain.ClaimRepository.Find，列表查询不走缓存
func (r *CompositeClaimRepository) Find(ctx context.Context, filter domain.ClaimFilter) ([]*domain.Claim, error) {
	return r.store.Find(ctx, filter)
}

// UpdateStatus 实现 domain.ClaimRepository.UpdateStatus
func (r *CompositeClaimRepository) UpdateStatus(ctx context.Context, claimID int64, update domain.StatusUpdate) (*domain.Claim, error) {
	claim, err := r.store.UpdateStatus(ctx, claimID, update)
	if err != nil {
		if r.cache != nil {
			r.cache.Invalidate(ctx, claimID)
		}
		return nil, err
	}
	if r.cache != nil {
		r.cache.Set(ctx, claim)
	}
	return claim, nil
}

// AppendDocuments 实现 domain.ClaimRepository.AppendDocuments
func (r *CompositeClaimRepository) AppendDocuments(ctx context.Context, claimID int64, documents []string) (*domain.Claim, error) {
	claim, err := r.store.AppendDocuments(ctx, claimID, documents)
	if err != nil {
		if r.cache != nil {
			r.cache.Invalidate(ctx, claimID)
		}
		return nil, err
	}
	if r.cache != nil {
		r.cache.Set(ctx, claim)
	}
	return claim, nil
}
