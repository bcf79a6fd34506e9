package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ClaimSubmittedEvent 理赔单创建事件
type ClaimSubmittedEvent struct {
	ClaimID        int64           `json:"claimId"`
	PolicyholderID int64           `json:"policyholderId"`
	ClaimType      string          `json:"claimType"`
	AmtRequested   decimal.Decimal `json:"claimAmtRequested"`
	OccurredAt     time.Time       `json:"occurredAt"`
}

// ClaimStatusChangedEvent 理赔单状态变更事件
type ClaimStatusChangedEvent struct {
	ClaimID        int64            `json:"claimId"`
	PolicyholderID int64            `json:"policyholderId"`
	Status         ClaimStatus      `json:"claimStatus"`
	Reason         string           `json:"statusReason,omitempty"`
	ClaimOfficerID int64            `json:"claimOfficerId"`
	ApprovedAmt    *decimal.Decimal `json:"approvedAmt,omitempty"`
	OccurredAt     time.Time        `json:"occurredAt"`
}

// EventPublisher 理赔通知事件发布接口。
// 只做事后通知，不参与事务，发布失败不影响主流程。
type EventPublisher interface {
	PublishClaimSubmitted(ctx context.Context, event ClaimSubmittedEvent) error
	PublishClaimStatusChanged(ctx context.Context, event ClaimStatusChangedEvent) error
}
