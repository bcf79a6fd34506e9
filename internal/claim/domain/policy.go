package domain

import (
	"fmt"
)

// Role 调用方角色
type Role string

const (
	RoleCustomer     Role = "customer"
	RoleAgent        Role = "agent"
	RoleClaimOfficer Role = "claimOfficer"
)

// Identity 调用方身份
type Identity struct {
	Role   Role
	UserID int64
}

// Action 受策略保护的操作
type Action string

const (
	ActionCreateClaim     Action = "CreateClaim"
	ActionListClaims      Action = "ListClaims"
	ActionUpdateStatus    Action = "UpdateStatus"
	ActionUpdateDocuments Action = "UpdateDocuments"
)

// allowedRoles (action -> roles) 授权表
var allowedRoles = map[Action][]Role{
	ActionCreateClaim:     {RoleCustomer},
	ActionListClaims:      {RoleCustomer, RoleAgent, RoleClaimOfficer},
	ActionUpdateStatus:    {RoleClaimOfficer},
	ActionUpdateDocuments: {RoleCustomer},
}

// AccessPolicy 基于角色的理赔访问策略。
// strict 为 false 时退化为旧版本的宽松模式：不做角色与归属检查，
// 仅保留结构性校验。该模式已废弃，只用于兼容。
type AccessPolicy struct {
	strict bool
}

// NewAccessPolicy 创建访问策略
func NewAccessPolicy(strict bool) *AccessPolicy {
	return &AccessPolicy{strict: strict}
}

// Strict 返回是否为严格模式
func (p *AccessPolicy) Strict() bool {
	return p.strict
}

// checkRole 校验角色是否在授权表中
func (p *AccessPolicy) checkRole(id Identity, action Action) error {
	for _, role := range allowedRoles[action] {
		if id.Role == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %q may not perform %s", ErrForbidden, id.Role, action)
}

// AuthorizeCreate 校验创建理赔单：仅客户本人可为自己创建
func (p *AccessPolicy) AuthorizeCreate(id Identity, policyholderID int64) error {
	if !p.strict {
		return nil
	}
	if err := p.checkRole(id, ActionCreateClaim); err != nil {
		return err
	}
	if policyholderID != id.UserID {
		return fmt.Errorf("%w: you can only create claims for yourself", ErrForbidden)
	}
	return nil
}

// ScopeFilter 按角色收敛查询条件。
// 客户强制只看自己的保单，代理人强制只看指派给自己的理赔单，
// 理赔专员不做限制并可使用全部过滤字段。
func (p *AccessPolicy) ScopeFilter(id Identity, requested ClaimFilter) (ClaimFilter, error) {
	if !p.strict {
		return requested, nil
	}
	if err := p.checkRole(id, ActionListClaims); err != nil {
		return ClaimFilter{}, err
	}

	// claimId 和 claimStatus 对所有角色开放
	scoped := ClaimFilter{
		ClaimID: requested.ClaimID,
		Status:  requested.Status,
	}

	switch id.Role {
	case RoleCustomer:
		userID := id.UserID
		scoped.PolicyholderID = &userID
	case RoleAgent:
		userID := id.UserID
		scoped.AgentID = &userID
	case RoleClaimOfficer:
		scoped.PolicyholderID = requested.PolicyholderID
		scoped.AgentID = requested.AgentID
		scoped.ClaimOfficerID = requested.ClaimOfficerID
	}

	return scoped, nil
}

// AuthorizeStatusUpdate 校验状态变更：仅理赔专员本人可裁定
func (p *AccessPolicy) AuthorizeStatusUpdate(id Identity, claimOfficerID int64) error {
	if !p.strict {
		return nil
	}
	if err := p.checkRole(id, ActionUpdateStatus); err != nil {
		return err
	}
	if claimOfficerID != id.UserID {
		return fmt.Errorf("%w: claimOfficerId must match your user ID", ErrForbidden)
	}
	return nil
}

// AuthorizeDocumentUpdate 校验材料上传：仅理赔单归属客户可上传，
// 已裁定的理赔单拒绝追加。状态检查在宽松模式下同样生效。
func (p *AccessPolicy) AuthorizeDocumentUpdate(id Identity, claim *Claim) error {
	if claim == nil {
		return ErrClaimNotFound
	}
	if p.strict {
		if err := p.checkRole(id, ActionUpdateDocuments); err != nil {
			return err
		}
		if claim.PolicyholderID != id.UserID {
			return fmt.Errorf("%w: you can only upload documents for your own claims", ErrForbidden)
		}
	}
	return claim.CanAppendDocuments()
}
