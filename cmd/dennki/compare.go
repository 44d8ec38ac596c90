package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"dennki/internal/calculator"
	"dennki/internal/catalog"
	"dennki/internal/comparison"
	"dennki/internal/model"
	"dennki/internal/util"
)

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:  "compare",
		Usage: "按料金マスター比较全部方案的年间料金",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "料金マスター (csv / xlsx / sqlite)，默认取配置文件",
			},
			&cli.StringFlag{
				Name:     "contract-type",
				Aliases:  []string{"t"},
				Usage:    "契约种别 (High Voltage / Low Voltage)",
				Required: true,
			},
			&cli.Float64Flag{
				Name:     "capacity",
				Aliases:  []string{"c"},
				Usage:    "契约容量 (kW / kVA)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "usage",
				Aliases:  []string{"u"},
				Usage:    "月别使用量 kWh：12 个逗号分隔的值，或 1 个值表示每月相同",
				Required: true,
			},
			&cli.Float64Flag{
				Name:  "power-factor",
				Usage: "力率 (%)，高压契约必填",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "输出格式 (table, json)",
			},
		},
		Action: runCompare,
	}
}

func runCompare(c *cli.Context) error {
	cat, err := openCatalog(c)
	if err != nil {
		return err
	}

	usage, err := parseUsage(c.String("usage"))
	if err != nil {
		return err
	}

	var pf *float64
	if c.IsSet("power-factor") {
		v := c.Float64("power-factor")
		pf = &v
	}

	engine := comparison.NewEngine(cat, log.Logger)
	result := engine.Compare(model.ContractType(c.String("contract-type")), c.Float64("capacity"), usage, pf)

	if c.String("format") == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "#\t会社名\t年間料金\tインセンティブ\t正味年間コスト\t")
	for i, r := range result.Results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n",
			i+1, r.CompanyName,
			util.FormatYen(r.AnnualCost),
			util.FormatYen(r.IncentiveShot+r.IncentiveRunning),
			util.FormatYen(r.NetAnnualCost))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	for _, f := range result.Failures {
		fmt.Fprintf(os.Stderr, "skipped %s: %s\n", f.CompanyName, f.Message)
	}
	return nil
}

func openCatalog(c *cli.Context) (*catalog.Catalog, error) {
	path := c.String("catalog")
	if path == "" {
		cfg, _ := loadConfig(c)
		path = cfg.CatalogPath()
	}
	if path == "" {
		return nil, fmt.Errorf("未指定料金マスター (--catalog 或 config.toml [catalog] path)")
	}
	return catalog.Load(path)
}

// parseUsage "1200" → 12 个 1200；"a,b,…" 必须正好 12 个
func parseUsage(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid usage value %q: %w", p, err)
		}
		values = append(values, v)
	}

	if len(values) == 1 {
		same := make([]float64, calculator.MonthsPerYear)
		for i := range same {
			same[i] = values[0]
		}
		return same, nil
	}
	if len(values) != calculator.MonthsPerYear {
		return nil, fmt.Errorf("usage needs 1 or %d values, got %d", calculator.MonthsPerYear, len(values))
	}
	return values, nil
}
