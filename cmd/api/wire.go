//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改Provider后重新生成：
//
//	wire gen ./cmd/api
//
// 依赖链：Handler ← UseCase ← 领域服务 ← Repository ← *gorm.DB ← *config.Config

package main

import (
	"github.com/google/wire"

	appauth "github.com/xiebiao/library/internal/application/auth"
	appbook "github.com/xiebiao/library/internal/application/book"
	appinventory "github.com/xiebiao/library/internal/application/inventory"
	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/category"
	"github.com/xiebiao/library/internal/domain/editorial"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/staff"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/internal/interface/http/router"
)

// ========================================
// Wire Provider Sets
// ========================================

// infrastructureSet 基础设施：配置、日志、Tracer、MySQL、Redis、RabbitMQ
var infrastructureSet = wire.NewSet(
	config.Load,
	provideLogger,
	provideTracer,
	provideDB,
	provideRedis,
	provideSessionStore,
	provideEventPublisher,
	provideInventoryPublisher,
	provideLoanPublisher,
	redis.NewJSONCache,
	wire.Bind(new(appauth.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	wire.Bind(new(appbook.DetailCache), new(*redis.JSONCache)),
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewAuthorRepository,
	mysql.NewCategoryRepository,
	mysql.NewEditorialRepository,
	mysql.NewBookRepository,
	mysql.NewInventoryRepository,
	mysql.NewMemberRepository,
	mysql.NewLoanRepository,
	mysql.NewStaffRepository,
	mysql.NewTxManager,
	wire.Bind(new(appinventory.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(apploan.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	author.NewService,
	category.NewService,
	editorial.NewService,
	member.NewService,
	book.NewService,
	staff.NewService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appauth.NewRegisterUseCase,
	appauth.NewLoginUseCase,
	appauth.NewLogoutUseCase,
	appauth.NewRefreshTokenUseCase,

	provideCacheOptions,
	appbook.NewReferences,
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,

	appinventory.NewCreateInventoryUseCase,
	appinventory.NewGetInventoryUseCase,
	appinventory.NewListInventoriesUseCase,
	appinventory.NewAdjustUnitsUseCase,
	appinventory.NewDeleteInventoryUseCase,

	apploan.NewLendBookUseCase,
	apploan.NewReturnBookUseCase,
	apploan.NewGetLoanUseCase,
	apploan.NewListLoansUseCase,
)

// middlewareSet JWT与认证中间件
var middlewareSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewAuthorHandler,
	handler.NewCategoryHandler,
	handler.NewEditorialHandler,
	handler.NewMemberHandler,
	handler.NewBookHandler,
	handler.NewInventoryHandler,
	handler.NewLoanHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
	provideHTTPServer,
)

// InitializeApp 组装整个应用
// cleanup按创建的逆序关闭RabbitMQ、Redis、MySQL、Tracer和日志
func InitializeApp() (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		newApp,
	)
	return nil, nil, nil
}
