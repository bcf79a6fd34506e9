// Package application 提供客户主数据的应用服务
package application

import (
	"context"

	"github.com/wyfcoding/claimsmanagement/internal/customer/domain"
	"github.com/wyfcoding/claimsmanagement/pkg/logger"
)

// CustomerService 客户主数据应用服务
type CustomerService struct {
	repo domain.CustomerRepository
}

// NewCustomerService 构造函数
func NewCustomerService(repo domain.CustomerRepository) *CustomerService {
	return &CustomerService{
		repo: repo,
	}
}

// CreateCustomer 创建客户记录
func (s *CustomerService) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	logger.Info(ctx, "customer created", "policyholder_id", customer.PolicyholderID)
	return customer, nil
}

// ListCustomers 列出全部客户
func (s *CustomerService) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.repo.List(ctx)
}

// GetCustomer 按 policyholderId 获取客户
func (s *CustomerService) GetCustomer(ctx context.Context, policyholderID int64) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, policyholderID)
}
