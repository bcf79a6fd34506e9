package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthorizeCreate_CustomerForSelf(t *testing.T) {
	p := NewAccessPolicy(true)

	err := p.AuthorizeCreate(Identity{Role: RoleCustomer, UserID: 42}, 42)
	require.NoError(t, err)
}

func TestAuthorizeCreate_CustomerForOther(t *testing.T) {
	p := NewAccessPolicy(true)

	err := p.AuthorizeCreate(Identity{Role: RoleCustomer, UserID: 42}, 43)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeCreate_NonCustomerRoles(t *testing.T) {
	p := NewAccessPolicy(true)

	for _, role := range []Role{RoleAgent, RoleClaimOfficer, "admin", ""} {
		err := p.AuthorizeCreate(Identity{Role: role, UserID: 42}, 42)
		require.ErrorIs(t, err, ErrForbidden, "role %q", role)
	}
}

func TestAuthorizeCreate_Permissive(t *testing.T) {
	p := NewAccessPolicy(false)

	require.NoError(t, p.AuthorizeCreate(Identity{Role: RoleAgent, UserID: 1}, 42))
	require.NoError(t, p.AuthorizeCreate(Identity{Role: RoleCustomer, UserID: 42}, 99))
}

func TestScopeFilter_CustomerForcedToOwnClaims(t *testing.T) {
	p := NewAccessPolicy(true)
	other := int64(99)
	officer := int64(7)

	// 调用方提供的 policyholderId 过滤被强制覆盖，受限字段被丢弃
	scoped, err := p.ScopeFilter(Identity{Role: RoleCustomer, UserID: 42}, ClaimFilter{
		PolicyholderID: &other,
		AgentID:        &other,
		ClaimOfficerID: &officer,
	})
	require.NoError(t, err)
	require.NotNil(t, scoped.PolicyholderID)
	require.Equal(t, int64(42), *scoped.PolicyholderID)
	require.Nil(t, scoped.AgentID)
	require.Nil(t, scoped.ClaimOfficerID)
}

func TestScopeFilter_AgentForcedToAssignedClaims(t *testing.T) {
	p := NewAccessPolicy(true)
	other := int64(99)

	scoped, err := p.ScopeFilter(Identity{Role: RoleAgent, UserID: 8}, ClaimFilter{
		AgentID:        &other,
		PolicyholderID: &other,
	})
	require.NoError(t, err)
	require.NotNil(t, scoped.AgentID)
	require.Equal(t, int64(8), *scoped.AgentID)
	require.Nil(t, scoped.PolicyholderID)
}

func TestScopeFilter_ClaimOfficerUnrestricted(t *testing.T) {
	p := NewAccessPolicy(true)
	ph := int64(42)
	agent := int64(8)
	officer := int64(7)

	scoped, err := p.ScopeFilter(Identity{Role: RoleClaimOfficer, UserID: 7}, ClaimFilter{
		PolicyholderID: &ph,
		AgentID:        &agent,
		ClaimOfficerID: &officer,
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), *scoped.PolicyholderID)
	require.Equal(t, int64(8), *scoped.AgentID)
	require.Equal(t, int64(7), *scoped.ClaimOfficerID)
}

func TestScopeFilter_ClaimIDAndStatusOpenToAllRoles(t *testing.T) {
	p := NewAccessPolicy(true)
	claimID := int64(1)
	status := ClaimStatusPending

	for _, role := range []Role{RoleCustomer, RoleAgent, RoleClaimOfficer} {
		scoped, err := p.ScopeFilter(Identity{Role: role, UserID: 42}, ClaimFilter{
			ClaimID: &claimID,
			Status:  &status,
		})
		require.NoError(t, err, "role %q", role)
		require.Equal(t, int64(1), *scoped.ClaimID)
		require.Equal(t, ClaimStatusPending, *scoped.Status)
	}
}

func TestScopeFilter_UnknownRole(t *testing.T) {
	p := NewAccessPolicy(true)

	_, err := p.ScopeFilter(Identity{Role: "auditor", UserID: 1}, ClaimFilter{})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestScopeFilter_Permissive(t *testing.T) {
	p := NewAccessPolicy(false)
	other := int64(99)

	scoped, err := p.ScopeFilter(Identity{Role: RoleCustomer, UserID: 42}, ClaimFilter{PolicyholderID: &other})
	require.NoError(t, err)
	require.Equal(t, int64(99), *scoped.PolicyholderID)
}

func TestAuthorizeStatusUpdate(t *testing.T) {
	p := NewAccessPolicy(true)

	require.NoError(t, p.AuthorizeStatusUpdate(Identity{Role: RoleClaimOfficer, UserID: 7}, 7))
	require.ErrorIs(t, p.AuthorizeStatusUpdate(Identity{Role: RoleClaimOfficer, UserID: 7}, 8), ErrForbidden)
	require.ErrorIs(t, p.AuthorizeStatusUpdate(Identity{Role: RoleCustomer, UserID: 7}, 7), ErrForbidden)
	require.ErrorIs(t, p.AuthorizeStatusUpdate(Identity{Role: RoleAgent, UserID: 7}, 7), ErrForbidden)
}

func TestAuthorizeDocumentUpdate(t *testing.T) {
	p := NewAccessPolicy(true)
	pending := &Claim{ClaimID: 1, PolicyholderID: 42, ClaimStatus: ClaimStatusPending}
	approved := &Claim{ClaimID: 2, PolicyholderID: 42, ClaimStatus: ClaimStatusApproved}
	rejected := &Claim{ClaimID: 3, PolicyholderID: 42, ClaimStatus: ClaimStatusRejected}

	owner := Identity{Role: RoleCustomer, UserID: 42}
	stranger := Identity{Role: RoleCustomer, UserID: 43}
	agent := Identity{Role: RoleAgent, UserID: 42}

	require.NoError(t, p.AuthorizeDocumentUpdate(owner, pending))
	require.ErrorIs(t, p.AuthorizeDocumentUpdate(stranger, pending), ErrForbidden)
	require.ErrorIs(t, p.AuthorizeDocumentUpdate(agent, pending), ErrForbidden)
	require.ErrorIs(t, p.AuthorizeDocumentUpdate(owner, approved), ErrClaimDecided)
	require.ErrorIs(t, p.AuthorizeDocumentUpdate(owner, rejected), ErrClaimDecided)
	require.ErrorIs(t, p.AuthorizeDocumentUpdate(owner, nil), ErrClaimNotFound)
}

func TestAuthorizeDocumentUpdate_PermissiveKeepsStatusCheck(t *testing.T) {
	p := NewAccessPolicy(false)
	approved := &Claim{ClaimID: 2, PolicyholderID: 42, ClaimStatus: ClaimStatusApproved}
	pending := &Claim{ClaimID: 1, PolicyholderID: 42, ClaimStatus: ClaimStatusPending}
	stranger := Identity{Role: RoleAgent, UserID: 99}

	// 宽松模式跳过角色与归属检查，但已裁定状态仍然拒绝
	require.NoError(t, p.AuthorizeDocumentUpdate(stranger, pending))
	require.ErrorIs(t, p.AuthorizeDocumentUpdate(stranger, approved), ErrClaimDecided)
}
