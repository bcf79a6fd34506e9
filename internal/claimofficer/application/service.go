// Package application 提供理赔专员主数据的应用服务
package application

import (
	"context"

	"github.com/wyfcoding/claimsmanagement/internal/claimofficer/domain"
	"github.com/wyfcoding/claimsmanagement/pkg/logger"
)

// ClaimOfficerService 理赔专员主数据应用服务
type ClaimOfficerService struct {
	repo domain.ClaimOfficerRepository
}

// NewClaimOfficerService 构造函数
func NewClaimOfficerService(repo domain.ClaimOfficerRepository) *ClaimOfficerService {
	return &ClaimOfficerService{
		repo: repo,
	}
}

// CreateClaimOfficer 创建理赔专员记录
func (s *ClaimOfficerService) CreateClaimOfficer(ctx context.Context, officer *domain.ClaimOfficer) (*domain.ClaimOfficer, error) {
	if err := officer.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, officer); err != nil {
		return nil, err
	}

	logger.Info(ctx, "claim officer created", "claim_officer_id", officer.ClaimOfficerID)
	return officer, nil
}

// ListClaimOfficers 列出全部理赔专员
func (s *ClaimOfficerService) ListClaimOfficers(ctx context.Context) ([]*domain.ClaimOfficer, error) {
	return s.repo.List(ctx)
}

// GetClaimOfficer 按 claimOfficerId 获取理赔专员
func (s *ClaimOfficerService) GetClaimOfficer(ctx context.Context, claimOfficerID int64) (*domain.ClaimOfficer, error) {
	return s.repo.GetByID(ctx, claimOfficerID)
}
