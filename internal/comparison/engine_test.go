package comparison

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"dennki/internal/calculator"
	"dennki/internal/catalog"
	"dennki/internal/model"
)

func flatUsage(v float64) []float64 {
	u := make([]float64, calculator.MonthsPerYear)
	for i := range u {
		u[i] = v
	}
	return u
}

func pf(v float64) *float64 { return &v }

func testCatalog() *catalog.Catalog {
	return catalog.New("test", []model.CatalogPlan{
		{CompanyName: "D電力", ContractType: model.ContractHighVoltage, BaseUnitPrice: 1200, EnergyUnitPrice: 18},
		{CompanyName: "B電力", ContractType: model.ContractHighVoltage, BaseUnitPrice: 1000, EnergyUnitPrice: 20, IncentiveShot: 100000},
		{CompanyName: "A電力", ContractType: model.ContractLowVoltage, BaseUnitPrice: 10, EnergyUnitPrice: 1},
		{CompanyName: "C電力", ContractType: model.ContractHighVoltage, BaseUnitPrice: 900, EnergyUnitPrice: 22},
	})
}

func TestEngine_CompareSortedByNetCost(t *testing.T) {
	engine := NewEngine(testCatalog(), zerolog.Nop())

	results := engine.CompareAll(model.ContractHighVoltage, 100, flatUsage(10000), pf(85))
	if len(results) != 3 {
		t.Fatalf("results=%d, want 3 (low voltage rows excluded)", len(results))
	}

	for i := 1; i < len(results); i++ {
		if results[i-1].NetAnnualCost > results[i].NetAnnualCost {
			t.Fatalf("results not sorted at %d: %v > %v", i, results[i-1].NetAnnualCost, results[i].NetAnnualCost)
		}
	}

	// C: 90000*12 + 220000*12 = 3,720,000
	// B: 100000*12 + 200000*12 - 100000 = 3,500,000
	// D: 120000*12 + 180000*12 = 3,600,000
	wantOrder := []string{"B電力", "D電力", "C電力"}
	for i, name := range wantOrder {
		if results[i].CompanyName != name {
			t.Fatalf("position %d = %s, want %s", i, results[i].CompanyName, name)
		}
	}
	if results[0].NetAnnualCost != 3500000 || results[0].AnnualCost != 3600000 {
		t.Fatalf("B電力 costs: annual=%v net=%v", results[0].AnnualCost, results[0].NetAnnualCost)
	}
	if len(results[0].MonthlyCosts) != 12 {
		t.Fatalf("monthly costs=%d", len(results[0].MonthlyCosts))
	}
}

func TestEngine_CompareTieBreakByCompanyName(t *testing.T) {
	c := catalog.New("test", []model.CatalogPlan{
		{CompanyName: "Z電力", ContractType: model.ContractLowVoltage, BaseUnitPrice: 100, EnergyUnitPrice: 10},
		{CompanyName: "M電力", ContractType: model.ContractLowVoltage, BaseUnitPrice: 100, EnergyUnitPrice: 10},
		{CompanyName: "M電力", ContractType: model.ContractLowVoltage, BaseUnitPrice: 100, EnergyUnitPrice: 10, IncentiveShot: 0},
		{CompanyName: "A電力", ContractType: model.ContractLowVoltage, BaseUnitPrice: 100, EnergyUnitPrice: 10},
	})
	engine := NewEngine(c, zerolog.Nop())

	results := engine.CompareAll(model.ContractLowVoltage, 10, flatUsage(100), nil)
	got := make([]string, len(results))
	for i, r := range results {
		got[i] = r.CompanyName
	}
	want := []string{"A電力", "M電力", "M電力", "Z電力"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order=%v, want %v", got, want)
		}
	}
}

func TestEngine_CompareSkipsMalformedRows(t *testing.T) {
	rows := []model.CatalogPlan{
		{CompanyName: "B電力", ContractType: model.ContractHighVoltage, BaseUnitPrice: 1000, EnergyUnitPrice: 20},
		{CompanyName: "C電力", ContractType: model.ContractHighVoltage, BaseUnitPrice: 900, EnergyUnitPrice: 22},
	}
	clean := NewEngine(catalog.New("clean", rows), zerolog.Nop()).
		CompareAll(model.ContractHighVoltage, 100, flatUsage(10000), pf(90))

	withBad := append([]model.CatalogPlan{{
		CompanyName:  "X電力",
		ContractType: model.ContractHighVoltage,
		Problems:     []string{`base_unit_price: "n/a" 不是有效数值`},
	}}, rows...)
	out := NewEngine(catalog.New("dirty", withBad), zerolog.Nop()).
		Compare(model.ContractHighVoltage, 100, flatUsage(10000), pf(90))

	if len(out.Results) != len(clean) {
		t.Fatalf("results=%d, want %d", len(out.Results), len(clean))
	}
	for i := range clean {
		if out.Results[i].CompanyName != clean[i].CompanyName || out.Results[i].NetAnnualCost != clean[i].NetAnnualCost {
			t.Fatalf("position %d differs: %+v vs %+v", i, out.Results[i], clean[i])
		}
	}

	if len(out.Failures) != 1 || out.Failures[0].CompanyName != "X電力" {
		t.Fatalf("failures=%+v", out.Failures)
	}
	var malformed *calculator.MalformedPlanError
	if !errors.As(out.Failures[0].Err, &malformed) {
		t.Fatalf("failure err=%v", out.Failures[0].Err)
	}
}

func TestEngine_CompareSkipsNonFiniteRows(t *testing.T) {
	csv := "company_name,contract_type,base_unit_price,energy_unit_price,incentive_shot,incentive_running\n" +
		"B電力,High Voltage,1000,20,0,0\n" +
		"N電力,High Voltage,NaN,30,0,0\n" +
		"C電力,High Voltage,900,22,0,0\n"
	loaded, err := catalog.LoadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}

	// 绕过加载器直接构造的 NaN 行也不能参与排名
	rows := append(loaded.Rows(), model.CatalogPlan{
		CompanyName: "I電力", ContractType: model.ContractHighVoltage,
		BaseUnitPrice: 800, EnergyUnitPrice: math.Inf(1),
	})

	for _, c := range []*catalog.Catalog{loaded, catalog.New("direct", rows)} {
		out := NewEngine(c, zerolog.Nop()).Compare(model.ContractHighVoltage, 100, flatUsage(10000), pf(90))

		if len(out.Results) != 2 || out.Results[0].CompanyName != "B電力" || out.Results[1].CompanyName != "C電力" {
			t.Fatalf("%s: results=%+v", c.Source(), out.Results)
		}
		for _, r := range out.Results {
			if math.IsNaN(r.NetAnnualCost) || math.IsInf(r.NetAnnualCost, 0) {
				t.Fatalf("%s: non-finite cost ranked: %+v", c.Source(), r)
			}
		}
		if len(out.Failures) != c.Len()-2 {
			t.Fatalf("%s: failures=%d, want %d", c.Source(), len(out.Failures), c.Len()-2)
		}
		for _, f := range out.Failures {
			var malformed *calculator.MalformedPlanError
			if !errors.As(f.Err, &malformed) {
				t.Fatalf("%s: failure %s err=%v", c.Source(), f.CompanyName, f.Err)
			}
		}
	}
}

func TestEngine_CompareWithoutPowerFactor(t *testing.T) {
	out := NewEngine(testCatalog(), zerolog.Nop()).
		Compare(model.ContractHighVoltage, 100, flatUsage(100), nil)

	if len(out.Results) != 0 {
		t.Fatalf("high voltage without power factor should rank nothing, got %d", len(out.Results))
	}
	if len(out.Failures) != 3 {
		t.Fatalf("failures=%d, want 3", len(out.Failures))
	}
}

func TestEngine_CompareUnknownContractType(t *testing.T) {
	results := NewEngine(testCatalog(), zerolog.Nop()).
		CompareAll(model.ContractType("Extra High Voltage"), 100, flatUsage(100), pf(85))
	if results == nil || len(results) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", results)
	}
}
