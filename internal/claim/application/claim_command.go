package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/claimsmanagement/internal/claim/domain"
	"github.com/wyfcoding/claimsmanagement/pkg/logger"
	"github.com/wyfcoding/claimsmanagement/pkg/metrics"
)

// CreateClaimCommand 创建理赔单命令
type CreateClaimCommand struct {
	ClaimID             int64
	PolicyID            int64
	PolicyholderID      int64
	AgentID             int64
	AgentAssignmentID   int64
	ClaimReason         string
	ClaimType           string
	IncidentDate        time.Time
	ClaimDate           time.Time
	ClaimAmtRequested   decimal.Decimal
	SupportingDocuments []string
}

// UpdateStatusCommand 状态变更命令
type UpdateStatusCommand struct {
	ClaimID        int64
	Status         string
	Reason         string
	ClaimOfficerID int64
	ApprovedAmt    *decimal.Decimal
}

// UpdateDocumentsCommand 材料追加命令
type UpdateDocumentsCommand struct {
	ClaimID   int64
	Documents []string
}

// ClaimCommandService 处理理赔单相关的命令操作
type ClaimCommandService struct {
	repo    domain.ClaimRepository
	policy  *domain.AccessPolicy
	events  domain.EventPublisher
	metrics *metrics.Metrics
}

// NewClaimCommandService 创建新的 ClaimCommandService 实例
func NewClaimCommandService(repo domain.ClaimRepository, policy *domain.AccessPolicy, events domain.EventPublisher, m *metrics.Metrics) *ClaimCommandService {
	return &ClaimCommandService{
		repo:    repo,
		policy:  policy,
		events:  events,
		metrics: m,
	}
}

// CreateClaim 创建理赔单，状态强制为 Pending
func (s *ClaimCommandService) CreateClaim(ctx context.Context, id domain.Identity, cmd CreateClaimCommand) (*domain.Claim, error) {
	if err := s.policy.AuthorizeCreate(id, cmd.PolicyholderID); err != nil {
		s.denied(domain.ActionCreateClaim)
		return nil, err
	}

	claim := &domain.Claim{
		ClaimID:             cmd.ClaimID,
		PolicyID:            cmd.PolicyID,
		PolicyholderID:      cmd.PolicyholderID,
		AgentID:             cmd.AgentID,
		AgentAssignmentID:   cmd.AgentAssignmentID,
		ClaimReason:         cmd.ClaimReason,
		ClaimType:           cmd.ClaimType,
		ClaimStatus:         domain.ClaimStatusPending,
		IncidentDate:        cmd.IncidentDate,
		ClaimDate:           cmd.ClaimDate,
		ClaimAmtRequested:   cmd.ClaimAmtRequested,
		SupportingDocuments: cmd.SupportingDocuments,
	}
	if claim.ClaimDate.IsZero() {
		claim.ClaimDate = time.Now()
	}
	if claim.SupportingDocuments == nil {
		claim.SupportingDocuments = []string{}
	}

	if err := claim.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, claim); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ClaimsSubmittedTotal.Inc()
	}
	if err := s.events.PublishClaimSubmitted(ctx, domain.ClaimSubmittedEvent{
		ClaimID:        claim.ClaimID,
		PolicyholderID: claim.PolicyholderID,
		ClaimType:      claim.ClaimType,
		AmtRequested:   claim.ClaimAmtRequested,
		OccurredAt:     time.Now(),
	}); err != nil {
		logger.Warn(ctx, "failed to publish claim submitted event", "claim_id", claim.ClaimID, "error", err)
	}

	logger.Info(ctx, "claim created", "claim_id", claim.ClaimID, "policyholder_id", claim.PolicyholderID)
	return claim, nil
}

// UpdateStatus 裁定理赔单状态
func (s *ClaimCommandService) UpdateStatus(ctx context.Context, id domain.Identity, cmd UpdateStatusCommand) (*domain.Claim, error) {
	if err := s.policy.AuthorizeStatusUpdate(id, cmd.ClaimOfficerID); err != nil {
		s.denied(domain.ActionUpdateStatus)
		return nil, err
	}

	update := domain.StatusUpdate{
		Status:         domain.ClaimStatus(cmd.Status),
		Reason:         cmd.Reason,
		ClaimOfficerID: cmd.ClaimOfficerID,
		ApprovedAmt:    cmd.ApprovedAmt,
		UpdatedAt:      time.Now(),
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	claim, err := s.repo.UpdateStatus(ctx, cmd.ClaimID, update)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		switch claim.ClaimStatus {
		case domain.ClaimStatusApproved:
			s.metrics.ClaimsApprovedTotal.Inc()
		case domain.ClaimStatusRejected:
			s.metrics.ClaimsRejectedTotal.Inc()
		}
	}
	if err := s.events.PublishClaimStatusChanged(ctx, domain.ClaimStatusChangedEvent{
		ClaimID:        claim.ClaimID,
		PolicyholderID: claim.PolicyholderID,
		Status:         claim.ClaimStatus,
		Reason:         claim.StatusReason,
		ClaimOfficerID: cmd.ClaimOfficerID,
		ApprovedAmt:    claim.ApprovedAmt,
		OccurredAt:     time.Now(),
	}); err != nil {
		logger.Warn(ctx, "failed to publish status changed event", "claim_id", claim.ClaimID, "error", err)
	}

	logger.Info(ctx, "claim status updated",
		"claim_id", claim.ClaimID,
		"status", claim.ClaimStatus,
		"claim_officer_id", cmd.ClaimOfficerID,
	)
	return claim, nil
}

// UpdateDocuments 为理赔单追加佐证材料
func (s *ClaimCommandService) UpdateDocuments(ctx context.Context, id domain.Identity, cmd UpdateDocumentsCommand) (*domain.Claim, error) {
	if len(cmd.Documents) == 0 {
		return nil, domain.ErrNoDocuments
	}

	claim, err := s.repo.Get(ctx, cmd.ClaimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, domain.ErrClaimNotFound
	}

	if err := s.policy.AuthorizeDocumentUpdate(id, claim); err != nil {
		s.denied(domain.ActionUpdateDocuments)
		return nil, err
	}

	updated, err := s.repo.AppendDocuments(ctx, cmd.ClaimID, cmd.Documents)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.DocumentsUploadedTotal.Add(float64(len(cmd.Documents)))
	}

	logger.Info(ctx, "claim documents appended", "claim_id", cmd.ClaimID, "count", len(cmd.Documents))
	return updated, nil
}

func (s *ClaimCommandService) denied(action domain.Action) {
	if s.metrics != nil {
		s.metrics.PolicyDeniedTotal.WithLabelValues(string(action)).Inc()
	}
}
