package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/library/docs"
	"github.com/xiebiao/library/internal/domain/staff"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/tracing"
)

// @title           Library API
// @version         1.0
// @description     图书馆管理系统：作者、分类、出版社、图书、库存、读者与借阅
// @host            localhost:3002
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app, cleanup, err := InitializeApp()
	if err != nil {
		log.Fatalf("初始化应用失败: %v", err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		app.log.Error("服务异常退出", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
}

// App 组装完成的应用
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	server *http.Server
	staff  staff.Service
	// 全局TracerProvider，由cleanup负责Shutdown
	tracer tracing.Shutdown
}

func newApp(cfg *config.Config, log *zap.Logger, server *http.Server, staffService staff.Service, tracer tracing.Shutdown) *App {
	return &App{cfg: cfg, log: log, server: server, staff: staffService, tracer: tracer}
}

// Run 启动HTTP服务，收到SIGINT/SIGTERM后优雅关闭
func (a *App) Run() error {
	if err := a.bootstrapAdmin(); err != nil {
		return err
	}

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", a.cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("服务启动",
			zap.String("addr", a.server.Addr),
			zap.String("mode", a.cfg.Server.Mode),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("启动服务失败: %w", err)
		}
		return nil
	case sig := <-quit:
		a.log.Info("收到退出信号，开始关闭服务", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("关闭服务失败: %w", err)
	}
	a.log.Info("服务已关闭")
	return nil
}

// bootstrapAdmin 配置了admin.email时确保初始管理员存在
func (a *App) bootstrapAdmin() error {
	if a.cfg.Admin.Email == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ReadTimeout)
	defer cancel()

	admin, created, err := a.staff.EnsureAdmin(ctx, a.cfg.Admin.Email, a.cfg.Admin.Password, a.cfg.Admin.Nickname)
	if err != nil {
		return fmt.Errorf("创建初始管理员失败: %w", err)
	}
	if created {
		a.log.Info("已创建初始管理员", zap.String("email", admin.Email))
	}
	return nil
}
