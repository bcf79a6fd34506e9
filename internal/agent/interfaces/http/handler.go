// Package http 提供代理人主数据的 HTTP 处理器
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/claimsmanagement/internal/agent/application"
	"github.com/wyfcoding/claimsmanagement/internal/agent/domain"
)

// AgentHandler HTTP 处理器
type AgentHandler struct {
	agentService *application.AgentService
}

// NewAgentHandler 创建 HTTP 处理器
func NewAgentHandler(agentService *application.AgentService) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
	}
}

// RegisterRoutes 注册路由。管理端接口，暂未接入角色校验。
func (h *AgentHandler) RegisterRoutes(r *gin.RouterGroup) {
	agents := r.Group("/agents")
	{
		agents.POST("", h.CreateAgent)
		agents.GET("", h.ListAgents)
		agents.GET("/:agentId", h.GetAgent)
	}
}

// CreateAgent 创建代理人
func (h *AgentHandler) CreateAgent(c *gin.Context) {
	var agent domain.Agent
	if err := c.ShouldBindJSON(&agent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.agentService.CreateAgent(c.Request.Context(), &agent)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListAgents 列出全部代理人
func (h *AgentHandler) ListAgents(c *gin.Context) {
	agents, err := h.agentService.ListAgents(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, agents)
}

// GetAgent 按 agentId 获取代理人
func (h *AgentHandler) GetAgent(c *gin.Context) {
	agentID, err := strconv.ParseInt(c.Param("agentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "agentId must be a number"})
		return
	}

	agent, err := h.agentService.GetAgent(c.Request.Context(), agentID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, agent)
}

// writeError 将领域错误映射为 HTTP 响应
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAgentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
	case errors.Is(err, domain.ErrDuplicateAgent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate entry", "message": err.Error()})
	case errors.Is(err, domain.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
