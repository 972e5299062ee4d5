package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/currency"
	"fintrack/internal/domain"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func newTestBudgetService(db *gorm.DB) BudgetServicer {
	return NewBudgetService(db, currency.MustNewTable(currency.DefaultConfig()))
}

func TestCreateBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestBudgetService(db)

		b, err := svc.CreateBudget("Food", decimal.NewFromInt(400), domain.PeriodWeekly, "EUR")
		testutil.AssertNoError(t, err)

		if b.ID == "" {
			t.Fatal("expected budget ID")
		}
		if b.Period != domain.PeriodWeekly {
			t.Errorf("expected weekly, got %s", b.Period)
		}
		if b.Currency == nil || *b.Currency != "EUR" {
			t.Errorf("expected EUR, got %v", b.Currency)
		}
	})

	t.Run("defaults_to_monthly_base_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestBudgetService(db)

		b, err := svc.CreateBudget("Food", decimal.NewFromInt(400), "", "")
		testutil.AssertNoError(t, err)
		if b.Period != domain.PeriodMonthly {
			t.Errorf("expected monthly, got %s", b.Period)
		}
		if b.Currency == nil || *b.Currency != "USD" {
			t.Errorf("expected USD, got %v", b.Currency)
		}
	})

	t.Run("duplicate_category_ignores_case", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestBudgetService(db)

		_, err := svc.CreateBudget("Food", decimal.NewFromInt(400), domain.PeriodMonthly, "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBudget("food", decimal.NewFromInt(100), domain.PeriodWeekly, "")
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET")
	})

	t.Run("deleted_budget_does_not_block", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestBudgetService(db)

		b, err := svc.CreateBudget("Food", decimal.NewFromInt(400), domain.PeriodMonthly, "")
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.DeleteBudget(b.ID))

		_, err = svc.CreateBudget("Food", decimal.NewFromInt(300), domain.PeriodMonthly, "")
		testutil.AssertNoError(t, err)
	})

	t.Run("invalid_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestBudgetService(db)

		_, err := svc.CreateBudget("Food", decimal.NewFromInt(400), domain.Period("daily"), "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestBudgetService(db)

		_, err := svc.CreateBudget("Food", decimal.Zero, domain.PeriodMonthly, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestBudgetService(db)

		_, err := svc.CreateBudget("Food", decimal.NewFromInt(10), domain.PeriodMonthly, "ZZZ")
		testutil.AssertAppError(t, err, "UNKNOWN_CURRENCY")
	})
}

func TestListBudgets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestBudgetService(db)

	for _, c := range []string{"Food", "Transport", "Utilities"} {
		testutil.CreateTestBudget(t, db, c, "100", "")
	}

	page, err := svc.ListBudgets(pagination.PageRequest{Page: 1, PageSize: 2})
	testutil.AssertNoError(t, err)

	if page.TotalItems != 3 {
		t.Errorf("expected 3 total, got %d", page.TotalItems)
	}
	if len(page.Data) != 2 {
		t.Errorf("expected 2 on first page, got %d", len(page.Data))
	}
	if page.TotalPages != 2 {
		t.Errorf("expected 2 pages, got %d", page.TotalPages)
	}
}

func TestGetBudgetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestBudgetService(db)
	created := testutil.CreateTestBudget(t, db, "Food", "100", "")

	t.Run("found", func(t *testing.T) {
		b, err := svc.GetBudgetByID(created.ID)
		testutil.AssertNoError(t, err)
		if b.Category != "Food" {
			t.Errorf("expected Food, got %s", b.Category)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.GetBudgetByID("missing")
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestUpdateBudget(t *testing.T) {
	t.Run("amount_and_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestBudgetService(db)
		created := testutil.CreateTestBudget(t, db, "Food", "100", "")

		amount := decimal.NewFromInt(250)
		p := domain.PeriodYearly
		updated, err := svc.UpdateBudget(created.ID, BudgetUpdate{Amount: &amount, Period: &p})
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, updated.Amount, "250", 2)
		if updated.Period != domain.PeriodYearly {
			t.Errorf("expected yearly, got %s", updated.Period)
		}
	})

	t.Run("same_category_different_case", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestBudgetService(db)
		created := testutil.CreateTestBudget(t, db, "Food", "100", "")

		category := "FOOD"
		_, err := svc.UpdateBudget(created.ID, BudgetUpdate{Category: &category})
		testutil.AssertNoError(t, err)
	})

	t.Run("category_taken", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestBudgetService(db)
		testutil.CreateTestBudget(t, db, "Food", "100", "")
		other := testutil.CreateTestBudget(t, db, "Transport", "100", "")

		category := "food"
		_, err := svc.UpdateBudget(other.ID, BudgetUpdate{Category: &category})
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestBudgetService(db)

		amount := decimal.NewFromInt(1)
		_, err := svc.UpdateBudget("missing", BudgetUpdate{Amount: &amount})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestDeleteBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestBudgetService(db)
	created := testutil.CreateTestBudget(t, db, "Food", "100", "")

	testutil.AssertNoError(t, svc.DeleteBudget(created.ID))

	_, err := svc.GetBudgetByID(created.ID)
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}
