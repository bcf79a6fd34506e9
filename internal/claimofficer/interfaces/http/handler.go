// Package http 提供理赔专员主数据的 HTTP 处理器
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/claimsmanagement/internal/claimofficer/application"
	"github.com/wyfcoding/claimsmanagement/internal/claimofficer/domain"
)

// ClaimOfficerHandler HTTP 处理器
type ClaimOfficerHandler struct {
	officerService *application.ClaimOfficerService
}

// NewClaimOfficerHandler 创建 HTTP 处理器
func NewClaimOfficerHandler(officerService *application.ClaimOfficerService) *ClaimOfficerHandler {
	return &ClaimOfficerHandler{
		officerService: officerService,
	}
}

// RegisterRoutes 注册路由。管理端接口，暂未接入角色校验。
func (h *ClaimOfficerHandler) RegisterRoutes(r *gin.RouterGroup) {
	officers := r.Group("/claimofficers")
	{
		officers.POST("", h.CreateClaimOfficer)
		officers.GET("", h.ListClaimOfficers)
		officers.GET("/:claimOfficerId", h.GetClaimOfficer)
	}
}

// CreateClaimOfficer 创建理赔专员
func (h *ClaimOfficerHandler) CreateClaimOfficer(c *gin.Context) {
	var officer domain.ClaimOfficer
	if err := c.ShouldBindJSON(&officer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.officerService.CreateClaimOfficer(c.Request.Context(), &officer)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListClaimOfficers 列出全部理赔专员
func (h *ClaimOfficerHandler) ListClaimOfficers(c *gin.Context) {
	officers, err := h.officerService.ListClaimOfficers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, officers)
}

// GetClaimOfficer 按 claimOfficerId 获取理赔专员
func (h *ClaimOfficerHandler) GetClaimOfficer(c *gin.Context) {
	claimOfficerID, err := strconv.ParseInt(c.Param("claimOfficerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "claimOfficerId must be a number"})
		return
	}

	officer, err := h.officerService.GetClaimOfficer(c.Request.Context(), claimOfficerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, officer)
}

// writeError 将领域错误映射为 HTTP 响应
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrClaimOfficerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Claim officer not found"})
	case errors.Is(err, domain.ErrDuplicateClaimOfficer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate entry", "message": err.Error()})
	case errors.Is(err, domain.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
