// Package mysql 提供客户仓储接口的 MySQL GORM 实现。
package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/claimsmanagement/internal/customer/domain"
	"github.com/wyfcoding/claimsmanagement/pkg/logger"
	"gorm.io/gorm"
)

// customerRepositoryImpl 是 domain.CustomerRepository 接口的 GORM 实现。
type customerRepositoryImpl struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储实例
func NewCustomerRepository(db *gorm.DB) domain.CustomerRepository {
	return &customerRepositoryImpl{
		db: db,
	}
}

// Create 实现 domain.CustomerRepository.Create
func (r *customerRepositoryImpl) Create(ctx context.Context, customer *domain.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateCustomer
		}
		logger.Error(ctx, "customer_repository.create failed", "policyholder_id", customer.PolicyholderID, "error", err)
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// List 实现 domain.CustomerRepository.List
func (r *customerRepositoryImpl) List(ctx context.Context) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	if err := r.db.WithContext(ctx).Order("policyholder_id asc").Find(&customers).Error; err != nil {
		logger.Error(ctx, "customer_repository.list failed", "error", err)
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// GetByID 实现 domain.CustomerRepository.GetByID
func (r *customerRepositoryImpl) GetByID(ctx context.Context, policyholderID int64) (*domain.Customer, error) {
	var customer domain.Customer
	if err := r.db.WithContext(ctx).Where("policyholder_id = ?", policyholderID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		logger.Error(ctx, "customer_repository.get failed", "policyholder_id", policyholderID, "error", err)
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}
