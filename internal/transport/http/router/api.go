package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-gamereview-api/internal/core/auth"
	"go-gamereview-api/internal/transport/http/handler"
	mdw "go-gamereview-api/internal/transport/http/middleware"
)

// NewAPIEngine 路由表见内联注释；admin 写操作和普通写操作挂同一棵树，
// 差别只在中间件链上
func NewAPIEngine(l *zap.Logger, accessJWT *auth.JWTer, authH *handler.AuthHandler, gameH *handler.GameHandler, reviewH *handler.ReviewHandler) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		cors.Default(),
		ginzap.Ginzap(l, time.RFC3339, true),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// 认证（全部公共）
	authG := api.Group("/auth")
	{
		authG.POST("/register", authH.Register)
		authG.POST("/login", authH.Login)
		authG.POST("/refresh", authH.Refresh)
	}

	// 游戏：读公共，写仅 ADMIN
	games := api.Group("/games")
	{
		games.GET("", gameH.List)
		games.GET("/:id", gameH.Get)
		games.GET("/:id/reviews", reviewH.ListByGame)

		games.POST("/:id/reviews", mdw.AuthJWT(accessJWT), reviewH.Create)

		admin := games.Group("", mdw.AuthJWT(accessJWT), mdw.RequireAdmin())
		{
			admin.POST("", gameH.Create)
			admin.PUT("/:id", gameH.Update)
			admin.DELETE("/:id", gameH.Delete)
		}
	}

	// 评价：全部需要登录
	reviews := api.Group("/reviews", mdw.AuthJWT(accessJWT))
	{
		reviews.POST("/game/:gameId", reviewH.Create)
		reviews.PUT("/:id", reviewH.Update)
		reviews.DELETE("/:id", reviewH.Delete)
	}

	return r
}
