package application

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/claimsmanagement/internal/claim/domain"
)

// memoryClaimRepository 内存实现，行为与 MySQL 仓储保持一致
type memoryClaimRepository struct {
	claims map[int64]*domain.Claim
}

func newMemoryClaimRepository() *memoryClaimRepository {
	return &memoryClaimRepository{claims: make(map[int64]*domain.Claim)}
}

func cloneClaim(c *domain.Claim) *domain.Claim {
	cp := *c
	cp.SupportingDocuments = append([]string(nil), c.SupportingDocuments...)
	if c.ApprovedAmt != nil {
		amt := *c.ApprovedAmt
		cp.ApprovedAmt = &amt
	}
	return &cp
}

func (r *memoryClaimRepository) Create(_ context.Context, claim *domain.Claim) error {
	if _, exists := r.claims[claim.ClaimID]; exists {
		return domain.ErrDuplicateClaim
	}
	r.claims[claim.ClaimID] = cloneClaim(claim)
	return nil
}

func (r *memoryClaimRepository) Get(_ context.Context, claimID int64) (*domain.Claim, error) {
	claim, ok := r.claims[claimID]
	if !ok {
		return nil, nil
	}
	return cloneClaim(claim), nil
}

func (r *memoryClaimRepository) Find(_ context.Context, filter domain.ClaimFilter) ([]*domain.Claim, error) {
	result := make([]*domain.Claim, 0)
	for _, claim := range r.claims {
		if filter.ClaimID != nil && claim.ClaimID != *filter.ClaimID {
			continue
		}
		if filter.PolicyholderID != nil && claim.PolicyholderID != *filter.PolicyholderID {
			continue
		}
		if filter.AgentID != nil && claim.AgentID != *filter.AgentID {
			continue
		}
		if filter.ClaimOfficerID != nil && (claim.ClaimOfficerID == nil || *claim.ClaimOfficerID != *filter.ClaimOfficerID) {
			continue
		}
		if filter.Status != nil && claim.ClaimStatus != *filter.Status {
			continue
		}
		result = append(result, cloneClaim(claim))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClaimID < result[j].ClaimID })
	return result, nil
}

func (r *memoryClaimRepository) UpdateStatus(_ context.Context, claimID int64, update domain.StatusUpdate) (*domain.Claim, error) {
	claim, ok := r.claims[claimID]
	if !ok {
		return nil, domain.ErrClaimNotFound
	}
	claim.ClaimStatus = update.Status
	claim.StatusReason = update.Reason
	officerID := update.ClaimOfficerID
	claim.ClaimOfficerID = &officerID
	updatedAt := update.UpdatedAt
	claim.StatusUpdatedDate = &updatedAt
	if update.Status == domain.ClaimStatusApproved {
		claim.ApprovedAmt = update.ApprovedAmt
	} else {
		claim.ApprovedAmt = nil
	}
	return cloneClaim(claim), nil
}

func (r *memoryClaimRepository) AppendDocuments(_ context.Context, claimID int64, documents []string) (*domain.Claim, error) {
	claim, ok := r.claims[claimID]
	if !ok {
		return nil, domain.ErrClaimNotFound
	}
	claim.SupportingDocuments = append(claim.SupportingDocuments, documents...)
	return cloneClaim(claim), nil
}

// capturingPublisher 记录已发布事件
type capturingPublisher struct {
	submitted     []domain.ClaimSubmittedEvent
	statusChanged []domain.ClaimStatusChangedEvent
}

func (p *capturingPublisher) PublishClaimSubmitted(_ context.Context, event domain.ClaimSubmittedEvent) error {
	p.submitted = append(p.submitted, event)
	return nil
}

func (p *capturingPublisher) PublishClaimStatusChanged(_ context.Context, event domain.ClaimStatusChangedEvent) error {
	p.statusChanged = append(p.statusChanged, event)
	return nil
}

func newTestService() (*ClaimService, *memoryClaimRepository, *capturingPublisher) {
	repo := newMemoryClaimRepository()
	events := &capturingPublisher{}
	svc := NewClaimService(repo, domain.NewAccessPolicy(true), events, nil)
	return svc, repo, events
}

var (
	customer42 = domain.Identity{Role: domain.RoleCustomer, UserID: 42}
	customer43 = domain.Identity{Role: domain.RoleCustomer, UserID: 43}
	agent8     = domain.Identity{Role: domain.RoleAgent, UserID: 8}
	officer7   = domain.Identity{Role: domain.RoleClaimOfficer, UserID: 7}
)

func createCommand(claimID, policyholderID int64) CreateClaimCommand {
	return CreateClaimCommand{
		ClaimID:           claimID,
		PolicyID:          10,
		PolicyholderID:    policyholderID,
		AgentID:           8,
		ClaimReason:       "Water damage",
		ClaimType:         "Property",
		IncidentDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ClaimAmtRequested: decimal.NewFromInt(1000),
	}
}

func TestCreateClaim(t *testing.T) {
	svc, _, events := newTestService()
	ctx := context.Background()

	claim, err := svc.CreateClaim(ctx, customer42, createCommand(1, 42))
	require.NoError(t, err)
	require.Equal(t, domain.ClaimStatusPending, claim.ClaimStatus)
	require.False(t, claim.ClaimDate.IsZero())
	require.NotNil(t, claim.SupportingDocuments)
	require.Empty(t, claim.SupportingDocuments)
	require.Nil(t, claim.ApprovedAmt)

	require.Len(t, events.submitted, 1)
	require.Equal(t, int64(1), events.submitted[0].ClaimID)
}

func TestCreateClaim_ForbiddenForOtherPolicyholder(t *testing.T) {
	svc, _, events := newTestService()

	_, err := svc.CreateClaim(context.Background(), customer42, createCommand(1, 43))
	require.ErrorIs(t, err, domain.ErrForbidden)
	require.Empty(t, events.submitted)
}

func TestCreateClaim_DuplicateClaimID(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateClaim(ctx, customer42, createCommand(1, 42))
	require.NoError(t, err)

	_, err = svc.CreateClaim(ctx, customer42, createCommand(1, 42))
	require.ErrorIs(t, err, domain.ErrDuplicateClaim)
}

func TestCreateClaim_MissingFields(t *testing.T) {
	svc, _, _ := newTestService()

	cmd := createCommand(1, 42)
	cmd.ClaimReason = ""
	cmd.ClaimType = ""

	_, err := svc.CreateClaim(context.Background(), customer42, cmd)
	require.ErrorIs(t, err, domain.ErrMissingFields)
	require.Contains(t, err.Error(), "claimReason")
	require.Contains(t, err.Error(), "claimType")
}

func TestListClaims_ScopedByRole(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateClaim(ctx, customer42, createCommand(1, 42))
	require.NoError(t, err)
	cmd := createCommand(2, 43)
	cmd.AgentID = 9
	_, err = svc.CreateClaim(ctx, customer43, cmd)
	require.NoError(t, err)

	// 客户只能看到自己的理赔单
	claims, err := svc.ListClaims(ctx, customer42, ListClaimsQuery{})
	require.NoError(t, err)
	require.Len(t, claims, 1)
	require.Equal(t, int64(1), claims[0].ClaimID)

	claims, err = svc.ListClaims(ctx, customer43, ListClaimsQuery{})
	require.NoError(t, err)
	require.Len(t, claims, 1)
	require.Equal(t, int64(2), claims[0].ClaimID)

	// 代理人只能看到指派给自己的理赔单
	claims, err = svc.ListClaims(ctx, agent8, ListClaimsQuery{})
	require.NoError(t, err)
	require.Len(t, claims, 1)
	require.Equal(t, int64(1), claims[0].ClaimID)

	// 理赔专员不受限制
	claims, err = svc.ListClaims(ctx, officer7, ListClaimsQuery{})
	require.NoError(t, err)
	require.Len(t, claims, 2)
}

func TestListClaims_CustomerCannotSeeOthersViaFilter(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateClaim(ctx, customer43, createCommand(2, 43))
	require.NoError(t, err)

	other := int64(43)
	claims, err := svc.ListClaims(ctx, customer42, ListClaimsQuery{PolicyholderID: &other})
	require.NoError(t, err)
	require.Empty(t, claims)
}

func TestListClaims_InvalidStatus(t *testing.T) {
	svc, _, _ := newTestService()

	status := "Closed"
	_, err := svc.ListClaims(context.Background(), officer7, ListClaimsQuery{Status: &status})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestListClaims_EmptyResultIsSlice(t *testing.T) {
	svc, _, _ := newTestService()

	claims, err := svc.ListClaims(context.Background(), customer42, ListClaimsQuery{})
	require.NoError(t, err)
	require.NotNil(t, claims)
	require.Empty(t, claims)
}

func TestUpdateStatus_Approve(t *testing.T) {
	svc, _, events := newTestService()
	ctx := context.Background()

	_, err := svc.CreateClaim(ctx, customer42, createCommand(1, 42))
	require.NoError(t, err)

	amt := decimal.NewFromInt(800)
	claim, err := svc.UpdateStatus(ctx, officer7, UpdateStatusCommand{
		ClaimID:        1,
		Status:         "Approved",
		Reason:         "Covered by policy",
		ClaimOfficerID: 7,
		ApprovedAmt:    &amt,
	})
	require.NoError(t, err)
	require.Equal(t, domain.ClaimStatusApproved, claim.ClaimStatus)
	require.NotNil(t, claim.ApprovedAmt)
	require.True(t, claim.ApprovedAmt.Equal(amt))
	require.Equal(t, "Covered by policy", claim.StatusReason)
	require.NotNil(t, claim.ClaimOfficerID)
	require.Equal(t, int64(7), *claim.ClaimOfficerID)
	require.NotNil(t, claim.StatusUpdatedDate)

	require.Len(t, events.statusChanged, 1)
	require.Equal(t, domain.ClaimStatusApproved, events.statusChanged[0].Status)
}

func TestUpdateStatus_ApproveRequiresAmount(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateClaim(ctx, customer42, createCommand(1, 42))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, officer7, UpdateStatusCommand{
		ClaimID:        1,
		Status:         "Approved",
		ClaimOfficerID: 7,
	})
	require.ErrorIs(t, err, domain.ErrApprovedAmtRequired)
}

func TestUpdateStatus_RejectClearsApprovedAmt(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateClaim(ctx, customer42, createCommand(1, 42))
	require.NoError(t, err)

	amt := decimal.NewFromInt(800)
	_, err = svc.UpdateStatus(ctx, officer7, UpdateStatusCommand{
		ClaimID: 1, Status: "Approved", ClaimOfficerID: 7, ApprovedAmt: &amt,
	})
	require.NoError(t, err)

	claim, err := svc.UpdateStatus(ctx, officer7, UpdateStatusCommand{
		ClaimID: 1, Status: "Rejected", Reason: "Fraud suspected", ClaimOfficerID: 7,
	})
	require.NoError(t, err)
	require.Equal(t, domain.ClaimStatusRejected, claim.ClaimStatus)
	require.Nil(t, claim.ApprovedAmt)
}

func TestUpdateStatus_Forbidden(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateClaim(ctx, customer42, createCommand(1, 42))
	require.NoError(t, err)

	// 非理赔专员
	_, err = svc.UpdateStatus(ctx, customer42, UpdateStatusCommand{
		ClaimID: 1, Status: "Rejected", ClaimOfficerID: 42,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)

	// 专员替他人裁定
	_, err = svc.UpdateStatus(ctx, officer7, UpdateStatusCommand{
		ClaimID: 1, Status: "Rejected", ClaimOfficerID: 8,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), officer7, UpdateStatusCommand{
		ClaimID: 99, Status: "Rejected", ClaimOfficerID: 7,
	})
	require.ErrorIs(t, err, domain.ErrClaimNotFound)
}

func TestUpdateDocuments_AppendPreservesOrder(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	cmd := createCommand(1, 42)
	cmd.SupportingDocuments = []string{"doc-a.pdf"}
	_, err := svc.CreateClaim(ctx, customer42, cmd)
	require.NoError(t, err)

	claim, err := svc.UpdateDocuments(ctx, customer42, UpdateDocumentsCommand{
		ClaimID:   1,
		Documents: []string{"doc-b.pdf", "doc-c.pdf"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"doc-a.pdf", "doc-b.pdf", "doc-c.pdf"}, claim.SupportingDocuments)
}

func TestUpdateDocuments_RejectedOnDecidedClaim(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateClaim(ctx, customer42, createCommand(1, 42))
	require.NoError(t, err)

	amt := decimal.NewFromInt(800)
	_, err = svc.UpdateStatus(ctx, officer7, UpdateStatusCommand{
		ClaimID: 1, Status: "Approved", ClaimOfficerID: 7, ApprovedAmt: &amt,
	})
	require.NoError(t, err)

	_, err = svc.UpdateDocuments(ctx, customer42, UpdateDocumentsCommand{
		ClaimID:   1,
		Documents: []string{"doc-late.pdf"},
	})
	require.ErrorIs(t, err, domain.ErrClaimDecided)
}

func TestUpdateDocuments_Forbidden(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateClaim(ctx, customer42, createCommand(1, 42))
	require.NoError(t, err)

	_, err = svc.UpdateDocuments(ctx, customer43, UpdateDocumentsCommand{
		ClaimID:   1,
		Documents: []string{"doc.pdf"},
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateDocuments_EmptyList(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateDocuments(context.Background(), customer42, UpdateDocumentsCommand{ClaimID: 1})
	require.ErrorIs(t, err, domain.ErrNoDocuments)

	_, err = svc.UpdateDocuments(context.Background(), customer42, UpdateDocumentsCommand{
		ClaimID: 1, Documents: []string{},
	})
	require.ErrorIs(t, err, domain.ErrNoDocuments)
}

func TestUpdateDocuments_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateDocuments(context.Background(), customer42, UpdateDocumentsCommand{
		ClaimID:   99,
		Documents: []string{"doc.pdf"},
	})
	require.ErrorIs(t, err, domain.ErrClaimNotFound)
}
