package model

// DefaultPlans 区分对应的默认比较方案
func DefaultPlans(category Category) []Plan {
	if category == CategoryHigh {
		return []Plan{
			{Name: "最適でんき (高圧)", DiscountRate: 0.80, SignupIncentive: 18000, MonthlyIncentive: 600},
			{Name: "U-POWER (高圧)", DiscountRate: 0.85, SignupIncentive: 16000, MonthlyIncentive: 500},
			{Name: "ハルエネ (高圧)", DiscountRate: 0.83, SignupIncentive: 15000, MonthlyIncentive: 400},
		}
	}
	return []Plan{
		{Name: "Looopでんき", DiscountRate: 0.75, SignupIncentive: 20000, MonthlyIncentive: 800},
		{Name: "U-POWERでんき", DiscountRate: 0.80, SignupIncentive: 15000, MonthlyIncentive: 500},
		{Name: "Elenovaでんき", DiscountRate: 0.82, SignupIncentive: 10000, MonthlyIncentive: 300},
		{Name: "オフィスでんき", DiscountRate: 0.83, SignupIncentive: 8000, MonthlyIncentive: 200},
		{Name: "パルパワー", DiscountRate: 0.84, SignupIncentive: 5000, MonthlyIncentive: 100},
	}
}
