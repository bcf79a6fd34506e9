// Package domain 包含理赔专员主数据的领域模型。
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// 领域错误
var (
	ErrClaimOfficerNotFound  = errors.New("claim officer not found")
	ErrDuplicateClaimOfficer = errors.New("claimOfficerId or email already exists")
	ErrMissingFields         = errors.New("missing required fields")
)

// ClaimOfficer 理赔专员记录，纯值对象
type ClaimOfficer struct {
	gorm.Model       `json:"-"`
	ClaimOfficerID   int64  `gorm:"column:claim_officer_id;uniqueIndex;not null" json:"claimOfficerId"`
	ClaimOfficerName string `gorm:"column:claim_officer_name;type:varchar(128);not null" json:"claimOfficerName"`
	Email            string `gorm:"column:email;type:varchar(128);uniqueIndex" json:"email"`
	Phone            string `gorm:"column:phone;type:varchar(32);not null" json:"phone"`
}

// TableName 指定表名
func (ClaimOfficer) TableName() string {
	return "claim_officers"
}

// Validate 校验必填字段，错误信息列出缺失字段名
func (o *ClaimOfficer) Validate() error {
	var missing []string
	if o.ClaimOfficerID == 0 {
		missing = append(missing, "claimOfficerId")
	}
	if o.ClaimOfficerName == "" {
		missing = append(missing, "claimOfficerName")
	}
	if o.Email == "" {
		missing = append(missing, "email")
	}
	if o.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

// ClaimOfficerRepository 理赔专员仓储接口
type ClaimOfficerRepository interface {
	// Create 创建理赔专员，唯一键冲突时返回 ErrDuplicateClaimOfficer
	Create(ctx context.Context, officer *ClaimOfficer) error
	// List 列出全部理赔专员
	List(ctx context.Context) ([]*ClaimOfficer, error)
	// GetByID 按 claimOfficerId 获取理赔专员，不存在时返回 ErrClaimOfficerNotFound
	GetByID(ctx context.Context, claimOfficerID int64) (*ClaimOfficer, error)
}
