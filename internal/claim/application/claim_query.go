package application

import (
	"context"

	"github.com/wyfcoding/claimsmanagement/internal/claim/domain"
)

// ListClaimsQuery 理赔单查询条件，来自调用方，经策略收敛后才会执行
type ListClaimsQuery struct {
	ClaimID        *int64
	PolicyholderID *int64
	AgentID        *int64
	ClaimOfficerID *int64
	Status         *string
}

// ClaimQueryService 处理理赔单相关的查询操作
type ClaimQueryService struct {
	repo   domain.ClaimRepository
	policy *domain.AccessPolicy
}

// NewClaimQueryService 创建新的 ClaimQueryService 实例
func NewClaimQueryService(repo domain.ClaimRepository, policy *domain.AccessPolicy) *ClaimQueryService {
	return &ClaimQueryService{
		repo:   repo,
		policy: policy,
	}
}

// ListClaims 按角色收敛后的条件查询理赔单，零匹配返回空切片
func (s *ClaimQueryService) ListClaims(ctx context.Context, id domain.Identity, query ListClaimsQuery) ([]*domain.Claim, error) {
	requested := domain.ClaimFilter{
		ClaimID:        query.ClaimID,
		PolicyholderID: query.PolicyholderID,
		AgentID:        query.AgentID,
		ClaimOfficerID: query.ClaimOfficerID,
	}
	if query.Status != nil {
		status := domain.ClaimStatus(*query.Status)
		if !status.IsValid() {
			return nil, domain.ErrInvalidStatus
		}
		requested.Status = &status
	}

	scoped, err := s.policy.ScopeFilter(id, requested)
	if err != nil {
		return nil, err
	}

	return s.repo.Find(ctx, scoped)
}

// GetClaim 按 claimId 获取理赔单，应用与列表一致的角色过滤
func (s *ClaimQueryService) GetClaim(ctx context.Context, id domain.Identity, claimID int64) (*domain.Claim, error) {
	claims, err := s.ListClaims(ctx, id, ListClaimsQuery{ClaimID: &claimID})
	if err != nil {
		return nil, err
	}
	if len(claims) == 0 {
		return nil, domain.ErrClaimNotFound
	}
	return claims[0], nil
}
