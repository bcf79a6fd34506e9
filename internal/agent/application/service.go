// Package application 提供代理人主数据的应用服务
package application

import (
	"context"

	"github.com/wyfcoding/claimsmanagement/internal/agent/domain"
	"github.com/wyfcoding/claimsmanagement/pkg/logger"
)

// AgentService 代理人主数据应用服务
type AgentService struct {
	repo domain.AgentRepository
}

// NewAgentService 构造函数
func NewAgentService(repo domain.AgentRepository) *AgentService {
	return &AgentService{
		repo: repo,
	}
}

// CreateAgent 创建代理人记录
func (s *AgentService) CreateAgent(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	if err := agent.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, agent); err != nil {
		return nil, err
	}

	logger.Info(ctx, "agent created", "agent_id", agent.AgentID)
	return agent, nil
}

// ListAgents 列出全部代理人
func (s *AgentService) ListAgents(ctx context.Context) ([]*domain.Agent, error) {
	return s.repo.List(ctx)
}

// GetAgent 按 agentId 获取代理人
func (s *AgentService) GetAgent(ctx context.Context, agentID int64) (*domain.Agent, error) {
	return s.repo.GetByID(ctx, agentID)
}
