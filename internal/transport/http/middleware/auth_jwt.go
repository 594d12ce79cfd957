package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gamereview-api/internal/core/auth"
	"go-gamereview-api/internal/domain"
)

const (
	KeyUserID = "userID"
	KeyRole   = "userRole"
)

// AuthJWT 校验 Bearer access token；头缺失/格式错在进业务前就 401
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		uid, err := strconv.ParseUint(claims.UID, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(KeyUserID, uint(uid))
		c.Set(KeyRole, domain.Role(claims.Role))
		c.Next()
	}
}

// RequireAdmin 必须挂在 AuthJWT 之后
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(KeyRole)
		if role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// UserID 取当前请求的用户 id（AuthJWT 之后可用）
func UserID(c *gin.Context) uint {
	v, _ := c.Get(KeyUserID)
	id, _ := v.(uint)
	return id
}

// Role 取当前请求的角色
func Role(c *gin.Context) domain.Role {
	v, _ := c.Get(KeyRole)
	r, _ := v.(domain.Role)
	return r
}
