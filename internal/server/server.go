package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/martin-lopez25/appbrechas/internal/api"
	"github.com/martin-lopez25/appbrechas/internal/logging"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	logger *zap.Logger
	http   *http.Server
}

// NewServer 创建服务器
func NewServer(handler *api.Handler, logger *zap.Logger, devMode bool) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(logging.GinLogger(logger), gin.Recovery())

	s := &Server{
		router: router,
		logger: logger,
	}
	s.setupRoutes(handler, devMode)
	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(handler *api.Handler, devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		handler.RegisterRoutes(apiGroup)
	}

	sub, err := fs.Sub(staticFiles, "dist")
	if err != nil {
		s.logger.Error("embedded dashboard unavailable", zap.Error(err))
		return
	}
	index := func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		// 开发模式下不缓存看板页面
		if devMode {
			c.Header("Cache-Control", "no-store")
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}

	// 首页
	s.router.GET("/", index)

	// 未知路径：API 返回 JSON 404，其余回到看板
	s.router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		index(c)
	})
}

// Handler 返回底层 http.Handler（测试用）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，阻塞直到服务关闭
func (s *Server) Run(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("http server listening", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
