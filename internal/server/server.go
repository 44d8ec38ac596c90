package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"dennki/internal/api"
	"dennki/internal/catalog"
	"dennki/internal/config"
)

// Server HTTP服务器
type Server struct {
	router  *gin.Engine
	api     *api.Handler
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

// NewServer 创建服务器
//
// 配置了料金マスター但加载失败时仅记录日志，服务以简易模式启动。
func NewServer(cfg *config.AppConfig, logger zerolog.Logger) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	var cat *catalog.Catalog
	if p := cfg.CatalogPath(); p != "" {
		loaded, err := catalog.Load(p)
		if err != nil {
			logger.Error().Err(err).Str("path", p).Msg("加载料金マスター失败，仅提供简易模式")
		} else {
			cat = loaded
			logger.Info().Str("path", p).Int("rows", cat.Len()).Msg("料金マスター已加载")
		}
	}

	s := &Server{
		router:  gin.Default(),
		catalog: cat,
		logger:  logger,
		api: api.NewHandler(api.Options{
			Catalog: cat,
			Report:  cfg.Report,
			Logger:  logger,
		}),
	}

	s.setupRoutes()

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	group := s.router.Group("/api")
	{
		s.api.RegisterRoutes(group)
	}

	s.router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler 用于测试
func (s *Server) Handler() http.Handler {
	return s.router
}

// CatalogLoaded 是否已加载料金マスター
func (s *Server) CatalogLoaded() bool {
	return s.catalog != nil
}

// Addr 端口对应的监听地址
func Addr(port int) string {
	return fmt.Sprintf(":%d", port)
}
