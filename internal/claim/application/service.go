// Package application 提供理赔服务的应用层，按命令/查询拆分
package application

import (
	"context"

	"github.com/wyfcoding/claimsmanagement/internal/claim/domain"
	"github.com/wyfcoding/claimsmanagement/pkg/metrics"
)

// ClaimService 理赔服务门面，整合命令和查询服务
type ClaimService struct {
	Command *ClaimCommandService
	Query   *ClaimQueryService
}

// NewClaimService 构造函数
func NewClaimService(repo domain.ClaimRepository, policy *domain.AccessPolicy, events domain.EventPublisher, m *metrics.Metrics) *ClaimService {
	return &ClaimService{
		Command: NewClaimCommandService(repo, policy, events, m),
		Query:   NewClaimQueryService(repo, policy),
	}
}

// --- Command (Writes) ---

// CreateClaim 创建理赔单
func (s *ClaimService) CreateClaim(ctx context.Context, id domain.Identity, cmd CreateClaimCommand) (*domain.Claim, error) {
	return s.Command.CreateClaim(ctx, id, cmd)
}

// UpdateStatus 裁定理赔单状态
func (s *ClaimService) UpdateStatus(ctx context.Context, id domain.Identity, cmd UpdateStatusCommand) (*domain.Claim, error) {
	return s.Command.UpdateStatus(ctx, id, cmd)
}

// UpdateDocuments 追加佐证材料
func (s *ClaimService) UpdateDocuments(ctx context.Context, id domain.Identity, cmd UpdateDocumentsCommand) (*domain.Claim, error) {
	return s.Command.UpdateDocuments(ctx, id, cmd)
}

// --- Query (Reads) ---

// ListClaims 查询理赔单列表
func (s *ClaimService) ListClaims(ctx context.Context, id domain.Identity, query ListClaimsQuery) ([]*domain.Claim, error) {
	return s.Query.ListClaims(ctx, id, query)
}
