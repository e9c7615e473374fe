// Package router 路由注册
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	Auth      *handler.AuthHandler
	Author    *handler.AuthorHandler
	Category  *handler.CategoryHandler
	Editorial *handler.EditorialHandler
	Member    *handler.MemberHandler
	Book      *handler.BookHandler
	Inventory *handler.InventoryHandler
	Loan      *handler.LoanHandler
}

// New 创建Gin引擎并注册全部路由
// 查询接口公开，修改馆藏、库存、借阅的接口需要管理员登录
func New(cfg *config.Config, log *zap.Logger, h *Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	// Logger在最外层，Recovery写出的500也会记录访问日志
	r.Use(
		middleware.Logger(log),
		middleware.Recovery(),
		middleware.Tracing(),
		middleware.Metrics(),
	)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if cfg.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	requireAuth := auth.RequireAuth()

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", requireAuth, h.Auth.Logout)
	}

	crud(v1.Group("/authors"), requireAuth, h.Author.Create, h.Author.List, h.Author.Get, h.Author.Update, h.Author.Delete)
	crud(v1.Group("/categories"), requireAuth, h.Category.Create, h.Category.List, h.Category.Get, h.Category.Update, h.Category.Delete)
	crud(v1.Group("/editorials"), requireAuth, h.Editorial.Create, h.Editorial.List, h.Editorial.Get, h.Editorial.Update, h.Editorial.Delete)
	crud(v1.Group("/books"), requireAuth, h.Book.Create, h.Book.List, h.Book.Get, h.Book.Update, h.Book.Delete)

	// /users对应读者(member)，不是登录系统的管理员
	users := v1.Group("/users")
	users.GET("/identification/:identification", h.Member.GetByIdentification)
	crud(users, requireAuth, h.Member.Create, h.Member.List, h.Member.Get, h.Member.Update, h.Member.Delete)

	inventories := v1.Group("/inventories")
	{
		inventories.GET("", h.Inventory.List)
		inventories.GET("/:id", h.Inventory.Get)
		inventories.GET("/book/:bookId", h.Inventory.GetByBook)
		inventories.POST("", requireAuth, h.Inventory.Create)
		inventories.PATCH("/:id/add-units", requireAuth, h.Inventory.AddUnits)
		inventories.PATCH("/:id/lend", requireAuth, h.Inventory.Lend)
		inventories.PATCH("/:id/return", requireAuth, h.Inventory.Return)
		inventories.DELETE("/:id", requireAuth, h.Inventory.Delete)
	}

	loans := v1.Group("/loans")
	{
		loans.GET("", h.Loan.List)
		loans.GET("/:id", h.Loan.Get)
		loans.POST("", requireAuth, h.Loan.Lend)
		loans.PATCH("/:id/return", requireAuth, h.Loan.Return)
	}

	return r
}

// crud 注册标准的五个资源路由，写操作需要登录
func crud(g *gin.RouterGroup, requireAuth gin.HandlerFunc, create, list, get, update, del gin.HandlerFunc) {
	g.GET("", list)
	g.GET("/:id", get)
	g.POST("", requireAuth, create)
	g.PATCH("/:id", requireAuth, update)
	g.PUT("/:id", requireAuth, update) // 兼容旧客户端
	g.DELETE("/:id", requireAuth, del)
}
