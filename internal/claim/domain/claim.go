// Package domain 包含理赔服务的领域模型
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClaimStatus 理赔状态
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "Pending"
	ClaimStatusApproved ClaimStatus = "Approved"
	ClaimStatusRejected ClaimStatus = "Rejected"
)

// IsValid 判断状态是否为合法枚举值
func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusApproved, ClaimStatusRejected:
		return true
	}
	return false
}

// Decided 判断状态是否为终态（已批准或已拒绝）
func (s ClaimStatus) Decided() bool {
	return s == ClaimStatusApproved || s == ClaimStatusRejected
}

// 领域错误
var (
	ErrClaimNotFound       = errors.New("claim not found")
	ErrDuplicateClaim      = errors.New("claimId already exists")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidStatus       = errors.New("claimStatus must be Pending, Approved, or Rejected")
	ErrApprovedAmtRequired = errors.New("approvedAmt is required when status is Approved")
	ErrClaimDecided        = errors.New("cannot upload documents for approved/rejected claims")
	ErrNoDocuments         = errors.New("documents must be a non-empty array of strings")
	ErrMissingFields       = errors.New("missing required fields")
)

// Claim 理赔单实体
// policyholderId / agentId 引用外部保单与代理人主数据，创建后不变
type Claim struct {
	gorm.Model `json:"-"`
	// 理赔单 ID，由调用方分配，创建后不可变
	ClaimID int64 `gorm:"column:claim_id;uniqueIndex;not null" json:"claimId"`
	// 保单 ID
	PolicyID int64 `gorm:"column:policy_id;not null" json:"policyId"`
	// 投保人 ID
	PolicyholderID int64 `gorm:"column:policyholder_id;index;not null" json:"policyholderId"`
	// 代理人 ID
	AgentID int64 `gorm:"column:agent_id;index" json:"agentId,omitempty"`
	// 代理人派单 ID
	AgentAssignmentID int64 `gorm:"column:agent_assignment_id" json:"agentAssignmentId,omitempty"`
	// 理赔专员 ID，裁定前为空
	ClaimOfficerID *int64 `gorm:"column:claim_officer_id;index" json:"claimOfficerId,omitempty"`
	// 理赔原因
	ClaimReason string `gorm:"column:claim_reason;type:varchar(255);not null" json:"claimReason"`
	// 理赔类型
	ClaimType string `gorm:"column:claim_type;type:varchar(64);not null" json:"claimType"`
	// 理赔状态
	ClaimStatus ClaimStatus `gorm:"column:claim_status;type:varchar(16);index;not null;default:Pending" json:"claimStatus"`
	// 出险日期
	IncidentDate time.Time `gorm:"column:incident_date;not null" json:"incidentDate"`
	// 报案日期
	ClaimDate time.Time `gorm:"column:claim_date;not null" json:"claimDate"`
	// 申请金额
	ClaimAmtRequested decimal.Decimal `gorm:"column:claim_amt_requested;type:decimal(20,2);not null" json:"claimAmtRequested"`
	// 批准金额，仅在状态为 Approved 时存在
	ApprovedAmt *decimal.Decimal `gorm:"column:approved_amt;type:decimal(20,2)" json:"approvedAmt,omitempty"`
	// 状态说明，与状态变更一同写入
	StatusReason string `gorm:"column:status_reason;type:varchar(255)" json:"statusReason,omitempty"`
	// 状态更新时间
	StatusUpdatedDate *time.Time `gorm:"column:status_updated_date" json:"statusUpdatedDate,omitempty"`
	// 佐证材料引用列表，只允许追加
	SupportingDocuments []string `gorm:"-" json:"supportingDocuments"`
}

// Validate 校验创建理赔单的必填字段，错误信息列出缺失字段名
func (c *Claim) Validate() error {
	var missing []string
	if c.ClaimID == 0 {
		missing = append(missing, "claimId")
	}
	if c.PolicyholderID == 0 {
		missing = append(missing, "policyholderId")
	}
	if c.ClaimReason == "" {
		missing = append(missing, "claimReason")
	}
	if c.ClaimType == "" {
		missing = append(missing, "claimType")
	}
	if c.IncidentDate.IsZero() {
		missing = append(missing, "incidentDate")
	}
	if c.ClaimAmtRequested.IsZero() {
		missing = append(missing, "claimAmtRequested")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

// CanAppendDocuments 判断当前状态是否允许追加材料
func (c *Claim) CanAppendDocuments() error {
	if c.ClaimStatus.Decided() {
		return ErrClaimDecided
	}
	return nil
}

// StatusUpdate 状态变更请求，字段原子写入同一条记录
type StatusUpdate struct {
	Status         ClaimStatus
	Reason         string
	ClaimOfficerID int64
	ApprovedAmt    *decimal.Decimal
	UpdatedAt      time.Time
}

// Validate 校验状态枚举与批准金额的一致性
func (u *StatusUpdate) Validate() error {
	if !u.Status.IsValid() {
		return ErrInvalidStatus
	}
	if u.Status == ClaimStatusApproved && u.ApprovedAmt == nil {
		return ErrApprovedAmtRequired
	}
	return nil
}

// ClaimFilter 理赔单查询条件，nil 字段不参与过滤
type ClaimFilter struct {
	ClaimID        *int64
	PolicyholderID *int64
	AgentID        *int64
	ClaimOfficerID *int64
	Status         *ClaimStatus
}
