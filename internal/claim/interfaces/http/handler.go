// Package http 提供理赔服务的 HTTP 处理器
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/claimsmanagement/internal/claim/application"
	"github.com/wyfcoding/claimsmanagement/internal/claim/domain"
	"github.com/wyfcoding/claimsmanagement/pkg/middleware"
)

// ClaimHandler HTTP 处理器
type ClaimHandler struct {
	claimService *application.ClaimService
}

// NewClaimHandler 创建 HTTP 处理器
func NewClaimHandler(claimService *application.ClaimService) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
	}
}

// RegisterRoutes 注册路由，全部路由要求携带身份头
func (h *ClaimHandler) RegisterRoutes(r *gin.RouterGroup) {
	claims := r.Group("/claims")
	claims.Use(middleware.RequireIdentity())
	{
		claims.POST("", h.CreateClaim)
		claims.GET("", h.ListClaims)
		claims.PUT("/:claimId/status", h.UpdateStatus)
		claims.PUT("/:claimId/documents", h.UpdateDocuments)
	}
}

// createClaimRequest 创建理赔单请求
type createClaimRequest struct {
	ClaimID             int64           `json:"claimId" binding:"required"`
	PolicyID            int64           `json:"policyId"`
	PolicyholderID      int64           `json:"policyholderId" binding:"required"`
	AgentID             int64           `json:"agentId"`
	AgentAssignmentID   int64           `json:"agentAssignmentId"`
	ClaimReason         string          `json:"claimReason"`
	ClaimType           string          `json:"claimType"`
	IncidentDate        time.Time       `json:"incidentDate"`
	ClaimDate           *time.Time      `json:"claimDate"`
	ClaimAmtRequested   decimal.Decimal `json:"claimAmtRequested"`
	SupportingDocuments []string        `json:"supportingDocuments"`
}

// CreateClaim 创建理赔单（仅客户）
func (h *ClaimHandler) CreateClaim(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req createClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.CreateClaimCommand{
		ClaimID:             req.ClaimID,
		PolicyID:            req.PolicyID,
		PolicyholderID:      req.PolicyholderID,
		AgentID:             req.AgentID,
		AgentAssignmentID:   req.AgentAssignmentID,
		ClaimReason:         req.ClaimReason,
		ClaimType:           req.ClaimType,
		IncidentDate:        req.IncidentDate,
		ClaimAmtRequested:   req.ClaimAmtRequested,
		SupportingDocuments: req.SupportingDocuments,
	}
	if req.ClaimDate != nil {
		cmd.ClaimDate = *req.ClaimDate
	}

	claim, err := h.claimService.CreateClaim(c.Request.Context(), identity, cmd)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, claim)
}

// ListClaims 查询理赔单列表，按角色过滤
func (h *ClaimHandler) ListClaims(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	query := application.ListClaimsQuery{}
	var bad string
	query.ClaimID = int64Query(c, "claimId", &bad)
	query.PolicyholderID = int64Query(c, "policyholderId", &bad)
	query.AgentID = int64Query(c, "agentId", &bad)
	query.ClaimOfficerID = int64Query(c, "claimOfficerId", &bad)
	if bad != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": bad + " must be a number"})
		return
	}
	if status := c.Query("claimStatus"); status != "" {
		query.Status = &status
	}

	claims, err := h.claimService.ListClaims(c.Request.Context(), identity, query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, claims)
}

// updateStatusRequest 状态变更请求
type updateStatusRequest struct {
	ClaimStatus    string           `json:"claimStatus"`
	StatusReason   string           `json:"statusReason"`
	ApprovedAmt    *decimal.Decimal `json:"approvedAmt"`
	ClaimOfficerID int64            `json:"claimOfficerId"`
}

// UpdateStatus 裁定理赔单状态（仅理赔专员）
func (h *ClaimHandler) UpdateStatus(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	claimID, ok := claimIDParam(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claim, err := h.claimService.UpdateStatus(c.Request.Context(), identity, application.UpdateStatusCommand{
		ClaimID:        claimID,
		Status:         req.ClaimStatus,
		Reason:         req.StatusReason,
		ClaimOfficerID: req.ClaimOfficerID,
		ApprovedAmt:    req.ApprovedAmt,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}

// updateDocumentsRequest 材料追加请求
type updateDocumentsRequest struct {
	Documents []string `json:"documents"`
}

// UpdateDocuments 追加佐证材料（仅理赔单归属客户）
func (h *ClaimHandler) UpdateDocuments(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	claimID, ok := claimIDParam(c)
	if !ok {
		return
	}

	var req updateDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "documents must be an array"})
		return
	}

	claim, err := h.claimService.UpdateDocuments(c.Request.Context(), identity, application.UpdateDocumentsCommand{
		ClaimID:   claimID,
		Documents: req.Documents,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}

// callerIdentity 取出中间件注入的身份并转换为领域身份
func callerIdentity(c *gin.Context) (domain.Identity, bool) {
	id, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Missing credentials",
			"message": "Please provide X-User-Role and X-User-Id headers",
		})
		return domain.Identity{}, false
	}
	return domain.Identity{Role: domain.Role(id.Role), UserID: id.UserID}, true
}

func claimIDParam(c *gin.Context) (int64, bool) {
	claimID, err := strconv.ParseInt(c.Param("claimId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "claimId must be a number"})
		return 0, false
	}
	return claimID, true
}

func int64Query(c *gin.Context, name string, bad *string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		*bad = name
		return nil
	}
	return &v
}

// writeError 将领域错误映射为 HTTP 响应
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrClaimNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "message": err.Error()})
	case errors.Is(err, domain.ErrClaimDecided):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid operation", "message": err.Error()})
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status", "message": err.Error()})
	case errors.Is(err, domain.ErrApprovedAmtRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing field", "message": err.Error()})
	case errors.Is(err, domain.ErrNoDocuments):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
	case errors.Is(err, domain.ErrDuplicateClaim):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate entry", "message": err.Error()})
	case errors.Is(err, domain.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
