package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gamereview-api/internal/domain"
)

// Err 边界上唯一的错误翻译点：错误类别 → 状态码 + {"error": msg}。
// 未分类错误一律 500，细节只进日志不出响应。
func Err(c *gin.Context, err error) {
	var de *domain.Error
	if errors.As(err, &de) && de.Kind != domain.KindInternal {
		c.JSON(statusOf(de.Kind), gin.H{"error": de.Error()})
		return
	}
	_ = c.Error(err) // 挂到 gin 的错误栈，访问日志里可见
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func statusOf(k domain.ErrorKind) int {
	switch k {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuthentication:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
