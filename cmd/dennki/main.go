// dennki - 電力料金比較シミュレーター
//
// Usage:
//
//	dennki serve [--port 20262] [--catalog data/master_prices.csv]
//	dennki diagnose --area 関西 --billed 21000,19800,,20500 --output ./out
//	dennki compare --catalog master.csv --contract-type "High Voltage" --capacity 100 --usage 1200 --power-factor 90
//	dennki catalog check --catalog master.xlsx
//	dennki config init
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"dennki/internal/config"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.App{
		Name:    "dennki",
		Usage:   "電力料金比較シミュレーター",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "config.toml 路径（默认为可执行文件同目录）",
				EnvVars: []string{"DENNKI_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "日志级别 (debug, info, warn, error)",
				EnvVars: []string{"DENNKI_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", c.String("log-level"), err)
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			diagnoseCommand(),
			compareCommand(),
			catalogCommand(),
			configCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig 加载配置；失败时使用默认配置
func loadConfig(c *cli.Context) (*config.AppConfig, config.LoadConfigInfo) {
	cfg, info, err := config.LoadConfigWithInfo(c.String("config"))
	if err != nil {
		log.Warn().Err(err).Msg("加载配置失败，使用默认配置")
		return config.DefaultConfig(), config.LoadConfigInfo{}
	}
	return cfg, info
}
