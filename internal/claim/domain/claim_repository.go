package domain

import (
	"context"
)

// ClaimRepository 理赔单仓储接口
type ClaimRepository interface {
	// Create 创建理赔单，claimId 冲突时返回 ErrDuplicateClaim
	Create(ctx context.Context, claim *Claim) error
	// Get 根据 claimId 获取理赔单，不存在时返回 nil
	Get(ctx context.Context, claimID int64) (*Claim, error)
	// Find 按条件查询理赔单，零匹配返回空切片
	Find(ctx context.Context, filter ClaimFilter) ([]*Claim, error)
	// UpdateStatus 原子更新状态相关字段并返回更新后的记录，不存在时返回 ErrClaimNotFound
	UpdateStatus(ctx context.Context, claimID int64, update StatusUpdate) (*Claim, error)
	// AppendDocuments 将材料追加到既有列表末尾并返回更新后的记录，不存在时返回 ErrClaimNotFound
	AppendDocuments(ctx context.Context, claimID int64, documents []string) (*Claim, error)
}
