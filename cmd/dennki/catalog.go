package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "料金マスター工具",
		Subcommands: []*cli.Command{
			{
				Name:  "check",
				Usage: "加载并校验料金マスター，输出各契约种别的行数",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "catalog",
						Usage: "料金マスター (csv / xlsx / sqlite)，默认取配置文件",
					},
				},
				Action: runCatalogCheck,
			},
		},
	}
}

func runCatalogCheck(c *cli.Context) error {
	cat, err := openCatalog(c)
	if err != nil {
		return err
	}

	fmt.Printf("source: %s\n", cat.Source())
	fmt.Printf("rows:   %d\n", cat.Len())

	order, counts := cat.ContractTypes()
	for _, ct := range order {
		fmt.Printf("  %-14s %d\n", ct, counts[ct])
	}

	malformed := 0
	for _, row := range cat.Rows() {
		if row.Malformed() {
			malformed++
			fmt.Printf("  ! %s: %v\n", row.Key(), row.Problems)
		}
	}
	if malformed > 0 {
		return fmt.Errorf("%d malformed row(s)", malformed)
	}
	return nil
}
