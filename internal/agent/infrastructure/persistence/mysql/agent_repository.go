// Package mysql 提供代理人仓储接口的 MySQL GORM 实现。
package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/claimsmanagement/internal/agent/domain"
	"github.com/wyfcoding/claimsmanagement/pkg/logger"
	"gorm.io/gorm"
)

// agentRepositoryImpl 是 domain.AgentRepository 接口的 GORM 实现。
type agentRepositoryImpl struct {
	db *gorm.DB
}

// NewAgentRepository 创建代理人仓储实例
func NewAgentRepository(db *gorm.DB) domain.AgentRepository {
	return &agentRepositoryImpl{
		db: db,
	}
}

// Create 实现 domain.AgentRepository.Create
func (r *agentRepositoryImpl) Create(ctx context.Context, agent *domain.Agent) error {
	if err := r.db.WithContext(ctx).Create(agent).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateAgent
		}
		logger.Error(ctx, "agent_repository.create failed", "agent_id", agent.AgentID, "error", err)
		return fmt.Errorf("failed to create agent: %w", err)
	}
	return nil
}

// List 实现 domain.AgentRepository.List
func (r *agentRepositoryImpl) List(ctx context.Context) ([]*domain.Agent, error) {
	var agents []*domain.Agent
	if err := r.db.WithContext(ctx).Order("agent_id asc").Find(&agents).Error; err != nil {
		logger.Error(ctx, "agent_repository.list failed", "error", err)
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	return agents, nil
}

// GetByID 实现 domain.AgentRepository.GetByID
func (r *agentRepositoryImpl) GetByID(ctx context.Context, agentID int64) (*domain.Agent, error) {
	var agent domain.Agent
	if err := r.db.WithContext(ctx).Where("agent_id = ?", agentID).First(&agent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAgentNotFound
		}
		logger.Error(ctx, "agent_repository.get failed", "agent_id", agentID, "error", err)
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return &agent, nil
}
