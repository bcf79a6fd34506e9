// Package http 提供客户主数据的 HTTP 处理器
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/claimsmanagement/internal/customer/application"
	"github.com/wyfcoding/claimsmanagement/internal/customer/domain"
)

// CustomerHandler HTTP 处理器
type CustomerHandler struct {
	customerService *application.CustomerService
}

// NewCustomerHandler 创建 HTTP 处理器
func NewCustomerHandler(customerService *application.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// RegisterRoutes 注册路由。管理端接口，暂未接入角色校验。
func (h *CustomerHandler) RegisterRoutes(r *gin.RouterGroup) {
	customers := r.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/:customerId", h.GetCustomer)
	}
}

// CreateCustomer 创建客户
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var customer domain.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.customerService.CreateCustomer(c.Request.Context(), &customer)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListCustomers 列出全部客户
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer 按 policyholderId 获取客户
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	policyholderID, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "customerId must be a number"})
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), policyholderID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// writeError 将领域错误映射为 HTTP 响应
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
	case errors.Is(err, domain.ErrDuplicateCustomer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate entry", "message": err.Error()})
	case errors.Is(err, domain.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
