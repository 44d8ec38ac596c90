package calculator

import (
	"errors"
	"math"
	"testing"

	"dennki/internal/model"
)

type mapLookup map[model.PlanKey]model.CatalogPlan

func (m mapLookup) Lookup(key model.PlanKey) (model.CatalogPlan, bool) {
	p, ok := m[key]
	return p, ok
}

func flatUsage(v float64) []float64 {
	u := make([]float64, MonthsPerYear)
	for i := range u {
		u[i] = v
	}
	return u
}

func pf(v float64) *float64 { return &v }

func highVoltagePlan() model.CatalogPlan {
	return model.CatalogPlan{
		CompanyName:      "A電力",
		ContractType:     model.ContractHighVoltage,
		BaseUnitPrice:    1000,
		EnergyUnitPrice:  20,
		IncentiveShot:    50000,
		IncentiveRunning: 1000,
	}
}

func TestTariffCostForPlan_PowerFactorAdjustment(t *testing.T) {
	tests := []struct {
		name        string
		powerFactor float64
		wantBase    float64
	}{
		{"力率85中立", 85, 100000},
		{"力率95割引", 95, 90000},
		{"力率75割増", 75, 110000},
		{"力率100", 100, 85000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TariffCostForPlan(highVoltagePlan(), 100, flatUsage(0), pf(tt.powerFactor))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for i, base := range got.MonthlyBaseCharges {
				if !floatEquals(base, tt.wantBase) {
					t.Fatalf("month %d base=%v, want %v", i+1, base, tt.wantBase)
				}
			}
		})
	}
}

func TestTariffCostForPlan_Totals(t *testing.T) {
	usage := []float64{1000, 1100, 1200, 1300, 1400, 1500, 1600, 1500, 1400, 1300, 1200, 1100}

	got, err := TariffCostForPlan(highVoltagePlan(), 100, usage, pf(85))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.MonthlyCosts) != 12 || len(got.MonthlyEnergyCharges) != 12 {
		t.Fatalf("expected 12 months, got %d/%d", len(got.MonthlyCosts), len(got.MonthlyEnergyCharges))
	}

	var totalUsage float64
	for _, u := range usage {
		totalUsage += u
	}
	wantAnnual := 100000*12 + 20*totalUsage
	if !floatEquals(got.AnnualCost, wantAnnual) {
		t.Fatalf("annual=%v, want %v", got.AnnualCost, wantAnnual)
	}
	if !floatEquals(got.MonthlyEnergyCharges[0], 20000) || !floatEquals(got.MonthlyCosts[0], 120000) {
		t.Fatalf("month 1: energy=%v cost=%v", got.MonthlyEnergyCharges[0], got.MonthlyCosts[0])
	}
	if got.IncentiveRunningAnnual != 12000 {
		t.Fatalf("running annual=%v, want 12000", got.IncentiveRunningAnnual)
	}
	if !floatEquals(got.NetAnnualCost, wantAnnual-50000-12000) {
		t.Fatalf("net=%v", got.NetAnnualCost)
	}
}

func TestTariffCostForPlan_HighVoltageRequiresPowerFactor(t *testing.T) {
	_, err := TariffCostForPlan(highVoltagePlan(), 100, flatUsage(100), nil)

	var missing *MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingParameterError, got %v", err)
	}
	if missing.Key.CompanyName != "A電力" {
		t.Fatalf("unexpected key: %+v", missing.Key)
	}
}

func TestTariffCostForPlan_LowVoltageIgnoresPowerFactor(t *testing.T) {
	plan := model.CatalogPlan{
		CompanyName:     "B電力",
		ContractType:    model.ContractLowVoltage,
		BaseUnitPrice:   300,
		EnergyUnitPrice: 30,
	}

	withoutPF, err := TariffCostForPlan(plan, 10, flatUsage(200), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	withPF, err := TariffCostForPlan(plan, 10, flatUsage(200), pf(60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if withoutPF.MonthlyBaseCharges[0] != 3000 || withPF.MonthlyBaseCharges[0] != 3000 {
		t.Fatalf("base charges: %v / %v", withoutPF.MonthlyBaseCharges[0], withPF.MonthlyBaseCharges[0])
	}
	if !floatEquals(withoutPF.AnnualCost, (3000+6000)*12) {
		t.Fatalf("annual=%v", withoutPF.AnnualCost)
	}
}

func TestTariffCostForPlan_InvalidInput(t *testing.T) {
	if _, err := TariffCostForPlan(highVoltagePlan(), 100, []float64{1, 2, 3}, pf(85)); !errors.Is(err, ErrInvalidUsage) {
		t.Fatalf("short usage: got %v", err)
	}

	usage := flatUsage(100)
	usage[3] = -1
	if _, err := TariffCostForPlan(highVoltagePlan(), 100, usage, pf(85)); !errors.Is(err, ErrInvalidUsage) {
		t.Fatalf("negative usage: got %v", err)
	}

	bad := highVoltagePlan()
	bad.Problems = []string{`base_unit_price: "abc" 不是有效数值`}
	var malformed *MalformedPlanError
	if _, err := TariffCostForPlan(bad, 100, flatUsage(100), pf(85)); !errors.As(err, &malformed) {
		t.Fatalf("malformed plan: got %v", err)
	}
}

func TestTariffCostForPlan_NonFiniteInput(t *testing.T) {
	nan := math.NaN()

	for _, capacity := range []float64{nan, math.Inf(1), -1} {
		if _, err := TariffCostForPlan(highVoltagePlan(), capacity, flatUsage(100), pf(85)); !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("capacity %v: got %v", capacity, err)
		}
	}

	for _, v := range []float64{nan, -1, 100.5} {
		if _, err := TariffCostForPlan(highVoltagePlan(), 100, flatUsage(100), pf(v)); !errors.Is(err, ErrInvalidPowerFactor) {
			t.Fatalf("power factor %v: got %v", v, err)
		}
	}

	usage := flatUsage(100)
	usage[0] = nan
	if _, err := TariffCostForPlan(highVoltagePlan(), 100, usage, pf(85)); !errors.Is(err, ErrInvalidUsage) {
		t.Fatalf("NaN usage: got %v", err)
	}

	cases := []func(p *model.CatalogPlan){
		func(p *model.CatalogPlan) { p.BaseUnitPrice = nan },
		func(p *model.CatalogPlan) { p.EnergyUnitPrice = math.Inf(-1) },
		func(p *model.CatalogPlan) { p.IncentiveShot = nan },
		func(p *model.CatalogPlan) { p.IncentiveRunning = math.Inf(1) },
	}
	for i, mutate := range cases {
		plan := highVoltagePlan()
		mutate(&plan)
		var malformed *MalformedPlanError
		if _, err := TariffCostForPlan(plan, 100, flatUsage(100), pf(85)); !errors.As(err, &malformed) || len(malformed.Problems) != 1 {
			t.Fatalf("case %d: got %v", i, err)
		}
	}

	huge := highVoltagePlan()
	huge.BaseUnitPrice = math.MaxFloat64
	if _, err := TariffCostForPlan(huge, 1e10, flatUsage(100), pf(85)); !errors.Is(err, ErrCostOverflow) {
		t.Fatalf("overflow: got %v", err)
	}
}

func TestCalculateTariffCost_Lookup(t *testing.T) {
	plan := highVoltagePlan()
	plans := mapLookup{plan.Key(): plan}

	got, err := CalculateTariffCost(plans, plan.Key(), 100, flatUsage(0), pf(85))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !floatEquals(got.AnnualCost, 1200000) {
		t.Fatalf("annual=%v", got.AnnualCost)
	}

	missingKey := model.PlanKey{CompanyName: "A電力", ContractType: model.ContractLowVoltage}
	_, err = CalculateTariffCost(plans, missingKey, 100, flatUsage(0), pf(85))
	var notFound *PlanNotFoundError
	if !errors.As(err, &notFound) || notFound.Key != missingKey {
		t.Fatalf("expected PlanNotFoundError for %v, got %v", missingKey, err)
	}
}

func TestPowerFactorMultiplier(t *testing.T) {
	if got := PowerFactorMultiplier(85); !floatEquals(got, 1.0) {
		t.Fatalf("pf 85 multiplier=%v", got)
	}
	if got := PowerFactorMultiplier(90); !floatEquals(got, 0.95) {
		t.Fatalf("pf 90 multiplier=%v", got)
	}
}
