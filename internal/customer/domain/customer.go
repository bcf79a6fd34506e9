// Package domain 包含客户（投保人）主数据的领域模型。
// 客户主数据名义上属于客户微服务，这里保留一份本地副本用于存在性校验。
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// 领域错误
var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrDuplicateCustomer = errors.New("policyholderId or email already exists")
	ErrMissingFields     = errors.New("missing required fields")
)

// Customer 客户记录，纯值对象
type Customer struct {
	gorm.Model       `json:"-"`
	PolicyholderID   int64     `gorm:"column:policyholder_id;uniqueIndex;not null" json:"policyholderId"`
	PolicyholderName string    `gorm:"column:policyholder_name;type:varchar(128);not null" json:"policyholderName"`
	Email            string    `gorm:"column:email;type:varchar(128);uniqueIndex;not null" json:"email"`
	Phone            string    `gorm:"column:phone;type:varchar(32);not null" json:"phone"`
	PolicyNumber     string    `gorm:"column:policy_number;type:varchar(64)" json:"policyNumber,omitempty"`
	Address          string    `gorm:"column:address;type:varchar(255)" json:"address,omitempty"`
	CreatedDate      time.Time `gorm:"column:created_date;autoCreateTime" json:"createdDate"`
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}

// Validate 校验必填字段，错误信息列出缺失字段名
func (c *Customer) Validate() error {
	var missing []string
	if c.PolicyholderID == 0 {
		missing = append(missing, "policyholderId")
	}
	if c.PolicyholderName == "" {
		missing = append(missing, "policyholderName")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}
	if c.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

// CustomerRepository 客户仓储接口
type CustomerRepository interface {
	// Create 创建客户，唯一键冲突时返回 ErrDuplicateCustomer
	Create(ctx context.Context, customer *Customer) error
	// List 列出全部客户
	List(ctx context.Context) ([]*Customer, error)
	// GetByID 按 policyholderId 获取客户，不存在时返回 ErrCustomerNotFound
	GetByID(ctx context.Context, policyholderID int64) (*Customer, error)
}
