package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashFlowPeriod is one calendar bucket of a cash-flow report
type CashFlowPeriod struct {
	Period           string                     `json:"period"`
	Income           decimal.Decimal            `json:"income"`
	Expenses         decimal.Decimal            `json:"expenses"`
	NetFlow          decimal.Decimal            `json:"net_flow"`
	CumulativeFlow   decimal.Decimal            `json:"cumulative_flow"`
	IncomeBreakdown  map[string]decimal.Decimal `json:"income_breakdown"`
	ExpenseBreakdown map[string]decimal.Decimal `json:"expense_breakdown"`
}

type CashFlowReport struct {
	Scope           Scope            `json:"scope"`
	FundName        string           `json:"fund_name,omitempty"`
	DateRange       DateRange        `json:"date_range"`
	PeriodType      PeriodType       `json:"period_type"`
	Periods         []CashFlowPeriod `json:"periods"`
	TotalIncome     decimal.Decimal  `json:"total_income"`
	TotalExpenses   decimal.Decimal  `json:"total_expenses"`
	TotalNetFlow    decimal.Decimal  `json:"total_net_flow"`
	AverageIncome   decimal.Decimal  `json:"average_income"`
	AverageExpenses decimal.Decimal  `json:"average_expenses"`
	AverageNetFlow  decimal.Decimal  `json:"average_net_flow"`
}

type Trend string

const (
	TrendImproving  Trend = "IMPROVING"
	TrendDeclining  Trend = "DECLINING"
	TrendIncreasing Trend = "INCREASING"
	TrendDecreasing Trend = "DECREASING"
	TrendStable     Trend = "STABLE"
)

// PeriodComparison pairs one period with the period one unit before it
type PeriodComparison struct {
	Period            string          `json:"period"`
	PreviousPeriod    string          `json:"previous_period"`
	CurrentStart      time.Time       `json:"current_start"`
	CurrentEnd        time.Time       `json:"current_end"`
	PreviousStart     time.Time       `json:"previous_start"`
	PreviousEnd       time.Time       `json:"previous_end"`
	CurrentIncome     decimal.Decimal `json:"current_income"`
	PreviousIncome    decimal.Decimal `json:"previous_income"`
	CurrentExpenses   decimal.Decimal `json:"current_expenses"`
	PreviousExpenses  decimal.Decimal `json:"previous_expenses"`
	CurrentNet        decimal.Decimal `json:"current_net"`
	PreviousNet       decimal.Decimal `json:"previous_net"`
	IncomeGrowthRate  float64         `json:"income_growth_rate"`
	ExpenseGrowthRate float64         `json:"expense_growth_rate"`
	NetGrowthRate     float64         `json:"net_growth_rate"`
	IncomeVariance    decimal.Decimal `json:"income_variance"`
	ExpenseVariance   decimal.Decimal `json:"expense_variance"`
	NetVariance       decimal.Decimal `json:"net_variance"`
}

type ComparativeReport struct {
	Scope                Scope              `json:"scope"`
	ComparisonType       ComparisonType     `json:"comparison_type"`
	Periods              []PeriodComparison `json:"periods"`
	AvgIncomeGrowthRate  float64            `json:"avg_income_growth_rate"`
	AvgExpenseGrowthRate float64            `json:"avg_expense_growth_rate"`
	AvgNetGrowthRate     float64            `json:"avg_net_growth_rate"`
	Trend                Trend              `json:"trend"`
	Insights             []string           `json:"insights"`
}

type GivingTotals struct {
	TotalGiving       decimal.Decimal `json:"total_giving"`
	ContributionCount int             `json:"contribution_count"`
	AverageGift       decimal.Decimal `json:"average_gift"`
	FirstGift         *time.Time      `json:"first_gift,omitempty"`
	LastGift          *time.Time      `json:"last_gift,omitempty"`
}

type GivingTrend struct {
	Direction     Trend   `json:"direction"`
	ChangePercent float64 `json:"change_percent"`
}

type MonthlyGiving struct {
	Month   string          `json:"month"`
	Amount  decimal.Decimal `json:"amount"`
	Count   int             `json:"count"`
	Average decimal.Decimal `json:"average"`
}

type FundGiving struct {
	FundID     string          `json:"fund_id"`
	FundName   string          `json:"fund_name"`
	Amount     decimal.Decimal `json:"amount"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
}

type RecentContribution struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	FundName    string          `json:"fund_name"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
}

type MemberGivingReport struct {
	MemberID            uuid.UUID            `json:"member_id"`
	Member              *Member              `json:"member,omitempty"`
	Scope               Scope                `json:"scope"`
	DateRange           DateRange            `json:"date_range"`
	Totals              GivingTotals         `json:"totals"`
	Trend               GivingTrend          `json:"trend"`
	Consistency         float64              `json:"consistency"`
	MonthlyBreakdown    []MonthlyGiving      `json:"monthly_breakdown"`
	FundBreakdown       []FundGiving         `json:"fund_breakdown"`
	RecentContributions []RecentContribution `json:"recent_contributions"`
	YearOverYearChange  float64              `json:"year_over_year_change"`
	GivingRank          int                  `json:"giving_rank"`
	PercentileRank      float64              `json:"percentile_rank"`
}

// LineItem is one labelled amount on a financial statement
type LineItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type IncomeStatement struct {
	Revenue       []LineItem      `json:"revenue"`
	Expenses      []LineItem      `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetIncome     decimal.Decimal `json:"net_income"`
}

type BalanceSheet struct {
	Assets           []LineItem      `json:"assets"`
	Liabilities      []LineItem      `json:"liabilities"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	NetAssets        decimal.Decimal `json:"net_assets"`
}

type CashFlowStatement struct {
	OperatingActivities  []LineItem      `json:"operating_activities"`
	InvestingActivities  []LineItem      `json:"investing_activities"`
	FinancingActivities  []LineItem      `json:"financing_activities"`
	NetCashFromOperating decimal.Decimal `json:"net_cash_from_operating"`
	NetCashFromInvesting decimal.Decimal `json:"net_cash_from_investing"`
	NetCashFromFinancing decimal.Decimal `json:"net_cash_from_financing"`
	NetChangeInCash      decimal.Decimal `json:"net_change_in_cash"`
	BeginningCash        decimal.Decimal `json:"beginning_cash"`
	EndingCash           decimal.Decimal `json:"ending_cash"`
}

type StatementOfNetAssets struct {
	Unrestricted               []LineItem      `json:"unrestricted"`
	TemporarilyRestricted      []LineItem      `json:"temporarily_restricted"`
	PermanentlyRestricted      []LineItem      `json:"permanently_restricted"`
	TotalUnrestricted          decimal.Decimal `json:"total_unrestricted"`
	TotalTemporarilyRestricted decimal.Decimal `json:"total_temporarily_restricted"`
	TotalPermanentlyRestricted decimal.Decimal `json:"total_permanently_restricted"`
	TotalNetAssets             decimal.Decimal `json:"total_net_assets"`
}

// FinancialStatement carries exactly one of the four statement shapes,
// selected by Type.
type FinancialStatement struct {
	Type                 StatementType         `json:"type"`
	Scope                Scope                 `json:"scope"`
	DateRange            DateRange             `json:"date_range"`
	GeneratedAt          time.Time             `json:"generated_at"`
	IncomeStatement      *IncomeStatement      `json:"income_statement,omitempty"`
	BalanceSheet         *BalanceSheet         `json:"balance_sheet,omitempty"`
	CashFlowStatement    *CashFlowStatement    `json:"cash_flow_statement,omitempty"`
	StatementOfNetAssets *StatementOfNetAssets `json:"statement_of_net_assets,omitempty"`
}

type VarianceStatus string

const (
	StatusOnTarget    VarianceStatus = "on_target"
	StatusUnderBudget VarianceStatus = "under_budget"
	StatusOverBudget  VarianceStatus = "over_budget"
)

type BudgetVarianceItem struct {
	Category    string          `json:"category"`
	Budgeted    decimal.Decimal `json:"budgeted"`
	Actual      decimal.Decimal `json:"actual"`
	Variance    decimal.Decimal `json:"variance"`
	Utilization float64         `json:"utilization"`
	Status      VarianceStatus  `json:"status"`
}

type BudgetSummary struct {
	BudgetCount       int             `json:"budget_count"`
	BudgetedRevenue   decimal.Decimal `json:"budgeted_revenue"`
	BudgetedExpenses  decimal.Decimal `json:"budgeted_expenses"`
	ActualRevenue     decimal.Decimal `json:"actual_revenue"`
	ActualExpenses    decimal.Decimal `json:"actual_expenses"`
	TotalBudgeted     decimal.Decimal `json:"total_budgeted"`
	TotalActual       decimal.Decimal `json:"total_actual"`
	TotalVariance     decimal.Decimal `json:"total_variance"`
	BudgetUtilization float64         `json:"budget_utilization"`
}

type BudgetVsActualReport struct {
	Scope        Scope                `json:"scope"`
	DateRange    DateRange            `json:"date_range"`
	PeriodType   PeriodType           `json:"period_type"`
	Summary      BudgetSummary        `json:"summary"`
	RevenueItems []BudgetVarianceItem `json:"revenue_items"`
	ExpenseItems []BudgetVarianceItem `json:"expense_items"`
	Notes        []string             `json:"notes"`
}
