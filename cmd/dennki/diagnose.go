package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"dennki/internal/calculator"
	"dennki/internal/contract"
	"dennki/internal/exporter"
	"dennki/internal/model"
	"dennki/internal/report"
	"dennki/internal/util"
)

func diagnoseCommand() *cli.Command {
	return &cli.Command{
		Name:  "diagnose",
		Usage: "简易诊断：按默认方案的削减率估算",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "area",
				Value: "東京",
				Usage: "电力区域",
			},
			&cli.StringFlag{
				Name:  "category",
				Value: string(model.CategoryLowMetered),
				Usage: "契约区分 (低圧（従量） / 低圧（動力） / 高圧)",
			},
			&cli.StringFlag{
				Name:  "from",
				Usage: "首月 (YYYY-MM)，默认为 12 个月前",
			},
			&cli.StringFlag{
				Name:  "usage",
				Usage: "月别使用量 kWh，逗号分隔",
			},
			&cli.StringFlag{
				Name:  "billed",
				Usage: "月别请求金额，逗号分隔；0 或空表示按基准月推算",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "导出 xlsx 的路径；为目录时使用默认文件名",
			},
		},
		Action: runDiagnose,
	}
}

func runDiagnose(c *cli.Context) error {
	area := c.String("area")
	category := model.Category(c.String("category"))

	res, err := contract.Resolve(area, category, "")
	if err != nil {
		return err
	}
	profile := res.Profile(res.DefaultCapacity, nil)

	start, err := parseStartMonth(c.String("from"), time.Now())
	if err != nil {
		return err
	}
	usage, err := parseAmounts(c.String("usage"))
	if err != nil {
		return fmt.Errorf("usage: %w", err)
	}
	billed, err := parseAmounts(c.String("billed"))
	if err != nil {
		return fmt.Errorf("billed: %w", err)
	}

	items := model.DefaultBillingItems()
	base := model.SumBillingItems(items)
	records, summary, err := calculator.BuildMonthRecords(monthEntries(start, usage, billed), base)
	if err != nil {
		return err
	}
	plans := model.DefaultPlans(profile.Category)

	fmt.Printf("%s / %s / %s (%v %s)\n", profile.Area, profile.Category, profile.ContractDetail, profile.Capacity, profile.UnitLabel)
	fmt.Printf("対象月数: %d  現状合計: %s\n\n", summary.MonthsCount, util.FormatYen(summary.TotalActualCost))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "プラン\t提案金額\t削減額\t削減率\t月平均削減\t")
	for _, p := range plans {
		r := calculator.CalculateSimplePlanCost(summary.TotalActualCost, p.DiscountRate, summary.MonthsCount)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			p.Name,
			util.FormatYen(float64(r.ProposedCost)),
			util.FormatYen(float64(r.ReductionAmount)),
			util.FormatPercent(r.ReductionPct),
			util.FormatYen(float64(r.AvgMonthlyReduction)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	out := c.String("output")
	if out == "" {
		return nil
	}
	if fi, err := os.Stat(out); err == nil && fi.IsDir() {
		cfg, _ := loadConfig(c)
		out = filepath.Join(out, report.Filename(cfg.Report.Name, profile.Area, time.Now()))
	}

	r := report.BuildReport(plans, records, items, base, summary.TotalActualCost)
	data, err := exporter.NewExporter().ExportBytes(r, exporter.Options{})
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Info().Str("path", out).Int("plans", len(plans)).Msg("报表已导出")
	return nil
}

// parseStartMonth "2025-04" → 2025年4月；为空时取 now 的 11 个月前
func parseStartMonth(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
		return first.AddDate(0, -(calculator.MonthsPerYear - 1), 0), nil
	}
	t, err := time.ParseInLocation("2006-01", raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", raw, err)
	}
	return t, nil
}

// parseAmounts 逗号分隔的数值，空项按 0
func parseAmounts(raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	values := make([]float64, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", p, err)
		}
		values[i] = v
	}
	return values, nil
}

// monthEntries 从首月起按顺序展开，长度取两列中较长者
func monthEntries(start time.Time, usage, billed []float64) []model.MonthEntry {
	n := len(usage)
	if len(billed) > n {
		n = len(billed)
	}
	entries := make([]model.MonthEntry, 0, n)
	for i := 0; i < n; i++ {
		m := start.AddDate(0, i, 0)
		e := model.MonthEntry{Year: m.Year(), Month: int(m.Month())}
		if i < len(usage) {
			e.UsageKWh = usage[i]
		}
		if i < len(billed) {
			e.BilledAmount = billed[i]
		}
		entries = append(entries, e)
	}
	return entries
}
