// Package mysql 提供理赔专员仓储接口的 MySQL GORM 实现。
package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/claimsmanagement/internal/claimofficer/domain"
	"github.com/wyfcoding/claimsmanagement/pkg/logger"
	"gorm.io/gorm"
)

// claimOfficerRepositoryImpl 是 domain.ClaimOfficerRepository 接口的 GORM 实现。
type claimOfficerRepositoryImpl struct {
	db *gorm.DB
}

// NewClaimOfficerRepository 创建理赔专员仓储实例
func NewClaimOfficerRepository(db *gorm.DB) domain.ClaimOfficerRepository {
	return &claimOfficerRepositoryImpl{
		db: db,
	}
}

// Create 实现 domain.ClaimOfficerRepository.Create
func (r *claimOfficerRepositoryImpl) Create(ctx context.Context, officer *domain.ClaimOfficer) error {
	if err := r.db.WithContext(ctx).Create(officer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateClaimOfficer
		}
		logger.Error(ctx, "claim_officer_repository.create failed", "claim_officer_id", officer.ClaimOfficerID, "error", err)
		return fmt.Errorf("failed to create claim officer: %w", err)
	}
	return nil
}

// List 实现 domain.ClaimOfficerRepository.List
func (r *claimOfficerRepositoryImpl) List(ctx context.Context) ([]*domain.ClaimOfficer, error) {
	var officers []*domain.ClaimOfficer
	if err := r.db.WithContext(ctx).Order("claim_officer_id asc").Find(&officers).Error; err != nil {
		logger.Error(ctx, "claim_officer_repository.list failed", "error", err)
		return nil, fmt.Errorf("failed to list claim officers: %w", err)
	}
	return officers, nil
}

// GetByID 实现 domain.ClaimOfficerRepository.GetByID
func (r *claimOfficerRepositoryImpl) GetByID(ctx context.Context, claimOfficerID int64) (*domain.ClaimOfficer, error) {
	var officer domain.ClaimOfficer
	if err := r.db.WithContext(ctx).Where("claim_officer_id = ?", claimOfficerID).First(&officer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClaimOfficerNotFound
		}
		logger.Error(ctx, "claim_officer_repository.get failed", "claim_officer_id", claimOfficerID, "error", err)
		return nil, fmt.Errorf("failed to get claim officer: %w", err)
	}
	return &officer, nil
}
