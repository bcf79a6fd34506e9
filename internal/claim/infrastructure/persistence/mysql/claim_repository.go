// Package mysql 提供理赔单仓储接口的 MySQL GORM 实现。
package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/claimsmanagement/internal/claim/domain"
	"github.com/wyfcoding/claimsmanagement/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClaimModel 理赔单数据库模型，直接映射 claims 表。
type ClaimModel struct {
	gorm.Model
	ClaimID             int64      `gorm:"column:claim_id;uniqueIndex;not null;comment:理赔单唯一标识"`
	PolicyID            int64      `gorm:"column:policy_id;not null;comment:保单ID"`
	PolicyholderID      int64      `gorm:"column:policyholder_id;index;not null;comment:投保人ID"`
	AgentID             int64      `gorm:"column:agent_id;index;comment:代理人ID"`
	AgentAssignmentID   int64      `gorm:"column:agent_assignment_id;comment:代理人派单ID"`
	ClaimOfficerID      *int64     `gorm:"column:claim_officer_id;index;comment:理赔专员ID"`
	ClaimReason         string     `gorm:"column:claim_reason;type:varchar(255);not null;comment:理赔原因"`
	ClaimType           string     `gorm:"column:claim_type;type:varchar(64);not null;comment:理赔类型"`
	ClaimStatus         string     `gorm:"column:claim_status;type:varchar(16);index;not null;default:Pending;comment:当前状态"`
	IncidentDate        time.Time  `gorm:"column:incident_date;not null;comment:出险日期"`
	ClaimDate           time.Time  `gorm:"column:claim_date;not null;comment:报案日期"`
	ClaimAmtRequested   string     `gorm:"column:claim_amt_requested;type:decimal(20,2);not null;comment:申请金额"`
	ApprovedAmt         *string    `gorm:"column:approved_amt;type:decimal(20,2);comment:批准金额"`
	StatusReason        string     `gorm:"column:status_reason;type:varchar(255);comment:状态说明"`
	StatusUpdatedDate   *time.Time `gorm:"column:status_updated_date;comment:状态更新时间"`
	SupportingDocuments []byte     `gorm:"column:supporting_documents;type:json;comment:佐证材料引用列表"`
}

// TableName 指定表名
func (ClaimModel) TableName() string {
	return "claims"
}

// claimRepositoryImpl 是 domain.ClaimRepository 接口的 GORM 实现。
type claimRepositoryImpl struct {
	db *gorm.DB
}

// NewClaimRepository 创建理赔单仓储实例
func NewClaimRepository(db *gorm.DB) domain.ClaimRepository {
	return &claimRepositoryImpl{
		db: db,
	}
}

// Create 实现 domain.ClaimRepository.Create
func (r *claimRepositoryImpl) Create(ctx context.Context, claim *domain.Claim) error {
	model, err := toModel(claim)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateClaim
		}
		logger.Error(ctx, "claim_repository.create failed", "claim_id", claim.ClaimID, "error", err)
		return fmt.Errorf("failed to create claim: %w", err)
	}

	claim.Model = model.Model
	return nil
}

// Get 实现 domain.ClaimRepository.Get
func (r *claimRepositoryImpl) Get(ctx context.Context, claimID int64) (*domain.Claim, error) {
	var model ClaimModel
	if err := r.db.WithContext(ctx).Where("claim_id = ?", claimID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error(ctx, "claim_repository.get failed", "claim_id", claimID, "error", err)
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	return toDomain(&model)
}

// Find 实现 domain.ClaimRepository.Find
func (r *claimRepositoryImpl) Find(ctx context.Context, filter domain.ClaimFilter) ([]*domain.Claim, error) {
	var models []ClaimModel

	db := r.db.WithContext(ctx).Model(&ClaimModel{})
	if filter.ClaimID != nil {
		db = db.Where("claim_id = ?", *filter.ClaimID)
	}
	if filter.PolicyholderID != nil {
		db = db.Where("policyholder_id = ?", *filter.PolicyholderID)
	}
	if filter.AgentID != nil {
		db = db.Where("agent_id = ?", *filter.AgentID)
	}
	if filter.ClaimOfficerID != nil {
		db = db.Where("claim_officer_id = ?", *filter.ClaimOfficerID)
	}
	if filter.Status != nil {
		db = db.Where("claim_status = ?", string(*filter.Status))
	}

	if err := db.Order("claim_id asc").Find(&models).Error; err != nil {
		logger.Error(ctx, "claim_repository.find failed", "error", err)
		return nil, fmt.Errorf("failed to find claims: %w", err)
	}

	claims := make([]*domain.Claim, 0, len(models))
	for i := range models {
		claim, err := toDomain(&models[i])
		if err != nil {
			return nil, err
		}
		claims = append(claims, claim)
	}
	return claims, nil
}

// UpdateStatus 实现 domain.ClaimRepository.UpdateStatus。
// 单条 UPDATE 原子写入全部状态字段；最后写入者胜出，无跨字段 CAS。
func (r *claimRepositoryImpl) UpdateStatus(ctx context.Context, claimID int64, update domain.StatusUpdate) (*domain.Claim, error) {
	values := map[string]interface{}{
		"claim_status":        string(update.Status),
		"status_reason":       update.Reason,
		"claim_officer_id":    update.ClaimOfficerID,
		"status_updated_date": update.UpdatedAt,
	}
	// approvedAmt 仅在 Approved 状态下存在，其余状态清空
	if update.Status == domain.ClaimStatusApproved && update.ApprovedAmt != nil {
		values["approved_amt"] = update.ApprovedAmt.String()
	} else {
		values["approved_amt"] = nil
	}

	var model ClaimModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&ClaimModel{}).Where("claim_id = ?", claimID).Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrClaimNotFound
		}
		return tx.Where("claim_id = ?", claimID).First(&model).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrClaimNotFound) {
			return nil, domain.ErrClaimNotFound
		}
		logger.Error(ctx, "claim_repository.update_status failed", "claim_id", claimID, "error", err)
		return nil, fmt.Errorf("failed to update claim status: %w", err)
	}

	return toDomain(&model)
}

// AppendDocuments 实现 domain.ClaimRepository.AppendDocuments。
// 行锁保证并发追加不丢失已有材料。
func (r *claimRepositoryImpl) AppendDocuments(ctx context.Context, claimID int64, documents []string) (*domain.Claim, error) {
	var model ClaimModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("claim_id = ?", claimID).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrClaimNotFound
			}
			return err
		}

		existing, err := decodeDocuments(model.SupportingDocuments)
		if err != nil {
			return err
		}
		merged := append(existing, documents...)
		data, err := json.Marshal(merged)
		if err != nil {
			return err
		}

		if err := tx.Model(&model).Update("supporting_documents", data).Error; err != nil {
			return err
		}
		model.SupportingDocuments = data
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrClaimNotFound) {
			return nil, domain.ErrClaimNotFound
		}
		logger.Error(ctx, "claim_repository.append_documents failed", "claim_id", claimID, "error", err)
		return nil, fmt.Errorf("failed to append documents: %w", err)
	}

	return toDomain(&model)
}

// toModel 将领域实体转换为数据库模型
func toModel(claim *domain.Claim) (*ClaimModel, error) {
	docs := claim.SupportingDocuments
	if docs == nil {
		docs = []string{}
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return nil, err
	}

	model := &ClaimModel{
		Model:               claim.Model,
		ClaimID:             claim.ClaimID,
		PolicyID:            claim.PolicyID,
		PolicyholderID:      claim.PolicyholderID,
		AgentID:             claim.AgentID,
		AgentAssignmentID:   claim.AgentAssignmentID,
		ClaimOfficerID:      claim.ClaimOfficerID,
		ClaimReason:         claim.ClaimReason,
		ClaimType:           claim.ClaimType,
		ClaimStatus:         string(claim.ClaimStatus),
		IncidentDate:        claim.IncidentDate,
		ClaimDate:           claim.ClaimDate,
		ClaimAmtRequested:   claim.ClaimAmtRequested.String(),
		StatusReason:        claim.StatusReason,
		StatusUpdatedDate:   claim.StatusUpdatedDate,
		SupportingDocuments: data,
	}
	if claim.ApprovedAmt != nil {
		s := claim.ApprovedAmt.String()
		model.ApprovedAmt = &s
	}
	return model, nil
}

// toDomain 将数据库模型转换为领域实体
func toDomain(model *ClaimModel) (*domain.Claim, error) {
	docs, err := decodeDocuments(model.SupportingDocuments)
	if err != nil {
		return nil, err
	}

	amtRequested, err := decimal.NewFromString(model.ClaimAmtRequested)
	if err != nil {
		return nil, fmt.Errorf("invalid claim_amt_requested %q: %w", model.ClaimAmtRequested, err)
	}

	claim := &domain.Claim{
		Model:               model.Model,
		ClaimID:             model.ClaimID,
		PolicyID:            model.PolicyID,
		PolicyholderID:      model.PolicyholderID,
		AgentID:             model.AgentID,
		AgentAssignmentID:   model.AgentAssignmentID,
		ClaimOfficerID:      model.ClaimOfficerID,
		ClaimReason:         model.ClaimReason,
		ClaimType:           model.ClaimType,
		ClaimStatus:         domain.ClaimStatus(model.ClaimStatus),
		IncidentDate:        model.IncidentDate,
		ClaimDate:           model.ClaimDate,
		ClaimAmtRequested:   amtRequested,
		StatusReason:        model.StatusReason,
		StatusUpdatedDate:   model.StatusUpdatedDate,
		SupportingDocuments: docs,
	}

	if model.ApprovedAmt != nil {
		amt, err := decimal.NewFromString(*model.ApprovedAmt)
		if err != nil {
			return nil, fmt.Errorf("invalid approved_amt %q: %w", *model.ApprovedAmt, err)
		}
		claim.ApprovedAmt = &amt
	}

	return claim, nil
}

func decodeDocuments(data []byte) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}
	var docs []string
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("invalid supporting_documents payload: %w", err)
	}
	return docs, nil
}
