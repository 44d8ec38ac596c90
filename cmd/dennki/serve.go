package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"dennki/internal/config"
	"dennki/internal/server"
	"dennki/internal/util"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "启动 HTTP API",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)",
			},
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "开发模式 (不自动打开浏览器)",
			},
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "料金マスター (csv / xlsx / sqlite)，覆盖配置文件",
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, info := loadConfig(c)

	// 命令行参数覆盖配置
	if p := c.Int("port"); p > 0 && !info.PortSpecified {
		cfg.Server.Port = p
	}
	if c.Bool("dev") {
		cfg.Server.DevMode = true
	}
	if v := c.String("catalog"); v != "" {
		cfg.Catalog.Path = v
	}

	srv := server.NewServer(cfg, log.Logger)
	addr := server.Addr(cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Bool("catalog", srv.CatalogLoaded()).Msg("服务启动中")
		errCh <- srv.Run(addr)
	}()

	openStatusPage(cfg, util.OpenBrowser)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("服务启动失败: %w", err)
	case <-quit:
		log.Info().Msg("正在关闭服务")
		return nil
	}
}

// openStatusPage 开发模式以外在浏览器中打开状态页，返回是否尝试打开
func openStatusPage(cfg *config.AppConfig, open func(url string) error) bool {
	if cfg.Server.DevMode {
		return false
	}
	url := fmt.Sprintf("http://localhost:%d/api/status", cfg.Server.Port)
	if err := open(url); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("无法自动打开浏览器，请手动访问")
	}
	return true
}
