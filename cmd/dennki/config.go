package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"dennki/internal/config"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "配置文件工具",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "写出默认 config.toml",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "覆盖已存在的文件",
					},
				},
				Action: runConfigInit,
			},
		},
	}
}

func runConfigInit(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s 已存在（使用 --force 覆盖）", path)
	}
	if err := config.SaveConfig(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("写入配置失败: %w", err)
	}
	fmt.Println(path)
	return nil
}
