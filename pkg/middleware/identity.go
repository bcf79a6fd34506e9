package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// 身份透传请求头。上游网关负责认证，本服务只消费这两个头。
const (
	HeaderUserRole = "X-User-Role"
	HeaderUserID   = "X-User-Id"
)

// identityKey gin context key for the caller identity
const identityKey = "caller_identity"

// Identity 调用方身份，由请求头提取，提取后不可变
type Identity struct {
	Role   string
	UserID int64
}

// RequireIdentity 提取调用方身份，缺失或非法时返回 401
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetHeader(HeaderUserRole)
		rawID := c.GetHeader(HeaderUserID)

		if role == "" || rawID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Missing credentials",
				"message": "Please provide X-User-Role and X-User-Id headers",
			})
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Missing credentials",
				"message": "X-User-Id must be a number",
			})
			return
		}

		c.Set(identityKey, Identity{Role: role, UserID: userID})
		c.Next()
	}
}

// IdentityFromContext 从 gin context 中取出调用方身份
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
