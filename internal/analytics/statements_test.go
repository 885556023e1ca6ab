package analytics

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/models"
)

func statementLedger() *memReader {
	return &memReader{txs: []models.Transaction{
		contribution("500", day(2026, time.February, 1), "Building"),
		expense("200", day(2026, time.February, 2), "Utilities"),
	}}
}

func statementFor(t *testing.T, reader *memReader, st models.StatementType) *models.FinancialStatement {
	t.Helper()
	stmt, err := newTestService(reader).Statement(context.Background(), models.StatementRequest{
		Scope:         models.Scope{OrganisationID: testOrg},
		StatementType: st,
	})
	if err != nil {
		t.Fatalf("Statement(%s) error = %v", st, err)
	}
	if stmt.Type != st {
		t.Fatalf("Type = %q, want %q", stmt.Type, st)
	}
	if !stmt.GeneratedAt.Equal(testNow) {
		t.Fatalf("GeneratedAt = %v, want %v", stmt.GeneratedAt, testNow)
	}
	return stmt
}

func TestIncomeStatement(t *testing.T) {
	stmt := statementFor(t, statementLedger(), models.IncomeStatementType)
	is := stmt.IncomeStatement
	if is == nil || stmt.BalanceSheet != nil || stmt.CashFlowStatement != nil || stmt.StatementOfNetAssets != nil {
		t.Fatalf("expected only the income statement to be set")
	}
	if len(is.Revenue) != 1 || is.Revenue[0].Name != "Building" {
		t.Fatalf("Revenue = %+v", is.Revenue)
	}
	if len(is.Expenses) != 1 || is.Expenses[0].Name != "Utilities" {
		t.Fatalf("Expenses = %+v", is.Expenses)
	}
	assertDecimal(t, "TotalRevenue", is.TotalRevenue, "500")
	assertDecimal(t, "TotalExpenses", is.TotalExpenses, "200")
	assertDecimal(t, "NetIncome", is.NetIncome, "300")
}

func TestBalanceSheet(t *testing.T) {
	reader := statementLedger()
	reader.txs = append(reader.txs,
		contribution("100", day(2026, time.March, 1), ""),
		contribution("40", day(2026, time.March, 2), "Missions"),
	)
	spent := expense("90", day(2026, time.March, 3), "Trip")
	spent.FundName = "Missions"
	reader.txs = append(reader.txs, spent)

	bs := statementFor(t, reader, models.BalanceSheetType).BalanceSheet
	// Building 500 nets to 500, untagged 100 less untagged Utilities 200 is
	// negative, Missions 40 less 90 is negative.
	if len(bs.Assets) != 1 || bs.Assets[0].Name != "Building" {
		t.Fatalf("Assets = %+v, want Building only", bs.Assets)
	}
	assertDecimal(t, "TotalAssets", bs.TotalAssets, "500")
	assertDecimal(t, "NetAssets", bs.NetAssets, "500")
	if len(bs.Liabilities) != 0 || !bs.TotalLiabilities.IsZero() {
		t.Fatalf("Liabilities = %+v, want none", bs.Liabilities)
	}
}

func TestCashFlowStatement(t *testing.T) {
	cf := statementFor(t, statementLedger(), models.CashFlowStatementType).CashFlowStatement
	want := []models.LineItem{
		{Name: "Contributions: Building", Amount: dec("500")},
		{Name: "Expenses: Utilities", Amount: dec("-200")},
	}
	if len(cf.OperatingActivities) != len(want) {
		t.Fatalf("OperatingActivities = %+v", cf.OperatingActivities)
	}
	for i, li := range want {
		if cf.OperatingActivities[i].Name != li.Name || !cf.OperatingActivities[i].Amount.Equal(li.Amount) {
			t.Fatalf("OperatingActivities[%d] = %+v, want %+v", i, cf.OperatingActivities[i], li)
		}
	}
	assertDecimal(t, "NetCashFromOperating", cf.NetCashFromOperating, "300")
	assertDecimal(t, "NetChangeInCash", cf.NetChangeInCash, "300")
	assertDecimal(t, "EndingCash", cf.EndingCash, "300")
	if len(cf.InvestingActivities) != 0 || len(cf.FinancingActivities) != 0 {
		t.Fatalf("expected no investing or financing activity")
	}
}

func TestStatementOfNetAssets(t *testing.T) {
	sna := statementFor(t, statementLedger(), models.StatementOfNetAssetsType).StatementOfNetAssets
	if len(sna.Unrestricted) != 1 || sna.Unrestricted[0].Name != "Building" {
		t.Fatalf("Unrestricted = %+v", sna.Unrestricted)
	}
	assertDecimal(t, "TotalNetAssets", sna.TotalNetAssets, "500")
	assertDecimal(t, "TotalTemporarilyRestricted", sna.TotalTemporarilyRestricted, "0")
}

func TestStatementIgnoresFundScope(t *testing.T) {
	fundID := uuid.New()
	reader := statementLedger()
	stmt, err := newTestService(reader).Statement(context.Background(), models.StatementRequest{
		Scope:         models.Scope{OrganisationID: testOrg, FundID: &fundID},
		StatementType: models.IncomeStatementType,
	})
	if err != nil {
		t.Fatalf("Statement() error = %v", err)
	}
	if stmt.Scope.FundID != nil {
		t.Fatalf("Scope.FundID = %v, want nil", stmt.Scope.FundID)
	}
	assertDecimal(t, "TotalRevenue", stmt.IncomeStatement.TotalRevenue, "500")
}

func TestStatementIsDeterministic(t *testing.T) {
	reader := statementLedger()
	reader.txs = append(reader.txs,
		contribution("75", day(2026, time.April, 1), "Youth"),
		contribution("75", day(2026, time.April, 2), "Choir"),
	)
	first := statementFor(t, reader, models.IncomeStatementType)
	second := statementFor(t, reader, models.IncomeStatementType)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("statements differ:\n%+v\n%+v", first.IncomeStatement, second.IncomeStatement)
	}
	if first.IncomeStatement.Revenue[1].Name != "Choir" || first.IncomeStatement.Revenue[2].Name != "Youth" {
		t.Fatalf("equal amounts not ordered by name: %+v", first.IncomeStatement.Revenue)
	}
}

func TestStatementValidation(t *testing.T) {
	svc := newTestService(&memReader{})
	cases := []struct {
		name string
		req  models.StatementRequest
		want string
	}{
		{"no organisation", models.StatementRequest{StatementType: models.BalanceSheetType}, "missing required field: organisationId"},
		{"no type", models.StatementRequest{Scope: models.Scope{OrganisationID: testOrg}}, "missing required field: statementType"},
		{"unknown type", models.StatementRequest{Scope: models.Scope{OrganisationID: testOrg}, StatementType: "TRIAL_BALANCE"}, "invalid field statementType: unknown statement type TRIAL_BALANCE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Statement(context.Background(), tc.req)
			if !errors.Is(err, ErrValidation) || err.Error() != tc.want {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}
}
