package services

import (
	"testing"

	"fintrack/internal/domain"
	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory("  Groceries ", domain.KindExpense, "🛒", "#FF0000")
		testutil.AssertNoError(t, err)

		if cat.ID == "" {
			t.Fatal("expected category ID")
		}
		if cat.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %q", cat.Name)
		}
		if cat.Kind != domain.KindExpense {
			t.Errorf("expected kind expense, got %s", cat.Kind)
		}
	})

	t.Run("defaults_icon_and_color", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory("Misc", domain.KindIncome, "", "")
		testutil.AssertNoError(t, err)

		if cat.Icon != domain.DefaultCategoryIcon || cat.Color != domain.DefaultCategoryColor {
			t.Errorf("expected default presentation, got %q %q", cat.Icon, cat.Color)
		}
	})

	t.Run("duplicate_name_ignores_case", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Food", domain.KindExpense, "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory("FOOD", domain.KindExpense, "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("   ", domain.KindExpense, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_kind", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Food", domain.Kind("transfer"), "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)

	testutil.CreateTestCategoryNamed(t, db, "Salary", domain.KindIncome)
	testutil.CreateTestCategoryNamed(t, db, "Transport", domain.KindExpense)
	testutil.CreateTestCategoryNamed(t, db, "Food", domain.KindExpense)

	t.Run("all", func(t *testing.T) {
		cats, err := svc.ListCategories(nil)
		testutil.AssertNoError(t, err)
		if len(cats) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(cats))
		}
	})

	t.Run("by_kind_sorted_by_name", func(t *testing.T) {
		kind := domain.KindExpense
		cats, err := svc.ListCategories(&kind)
		testutil.AssertNoError(t, err)
		if len(cats) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(cats))
		}
		if cats[0].Name != "Food" || cats[1].Name != "Transport" {
			t.Errorf("expected Food, Transport; got %s, %s", cats[0].Name, cats[1].Name)
		}
	})
}

func TestGetCategoryByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		created := testutil.CreateTestCategory(t, db, domain.KindExpense)

		cat, err := svc.GetCategoryByID(created.ID)
		testutil.AssertNoError(t, err)
		if cat.Name != created.Name {
			t.Errorf("expected %q, got %q", created.Name, cat.Name)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.GetCategoryByID("0190a1b2-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rename_carries_over_to_transactions_and_budgets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		cat := testutil.CreateTestCategoryNamed(t, db, "Food", domain.KindExpense)
		tx := testutil.CreateTestTransaction(t, db, "Food", domain.KindExpense, "10", "USD")
		b := testutil.CreateTestBudget(t, db, "Food", "100", "USD")

		name := "Dining"
		updated, err := svc.UpdateCategory(cat.ID, CategoryUpdate{Name: &name})
		testutil.AssertNoError(t, err)
		if updated.Name != "Dining" {
			t.Errorf("expected name Dining, got %q", updated.Name)
		}

		var storedTx models.Transaction
		testutil.AssertNoError(t, db.First(&storedTx, "id = ?", tx.ID).Error)
		if storedTx.Category != "Dining" {
			t.Errorf("expected transaction category Dining, got %q", storedTx.Category)
		}
		var storedBudget models.Budget
		testutil.AssertNoError(t, db.First(&storedBudget, "id = ?", b.ID).Error)
		if storedBudget.Category != "Dining" {
			t.Errorf("expected budget category Dining, got %q", storedBudget.Category)
		}
	})

	t.Run("rename_to_existing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		testutil.CreateTestCategoryNamed(t, db, "Food", domain.KindExpense)
		other := testutil.CreateTestCategoryNamed(t, db, "Transport", domain.KindExpense)

		name := "food"
		_, err := svc.UpdateCategory(other.ID, CategoryUpdate{Name: &name})
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("kind_change_blocked_by_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		cat := testutil.CreateTestCategoryNamed(t, db, "Food", domain.KindExpense)
		testutil.CreateTestTransaction(t, db, "Food", domain.KindExpense, "10", "")

		kind := domain.KindIncome
		_, err := svc.UpdateCategory(cat.ID, CategoryUpdate{Kind: &kind})
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})

	t.Run("icon_and_color", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		cat := testutil.CreateTestCategory(t, db, domain.KindExpense)

		icon, color := "🍔", "#E74C3C"
		updated, err := svc.UpdateCategory(cat.ID, CategoryUpdate{Icon: &icon, Color: &color})
		testutil.AssertNoError(t, err)
		if updated.Icon != icon || updated.Color != color {
			t.Errorf("expected %s %s, got %s %s", icon, color, updated.Icon, updated.Color)
		}
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("leaves_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		cat := testutil.CreateTestCategoryNamed(t, db, "Food", domain.KindExpense)
		testutil.CreateTestTransaction(t, db, "Food", domain.KindExpense, "10", "")

		testutil.AssertNoError(t, svc.DeleteCategory(cat.ID))

		_, err := svc.GetCategoryByID(cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")

		var count int64
		db.Model(&models.Transaction{}).Where("category = ?", "Food").Count(&count)
		if count != 1 {
			t.Errorf("expected transaction to survive, got %d", count)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		err := svc.DeleteCategory("missing")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestSeedDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)

	n, err := svc.SeedDefaults()
	testutil.AssertNoError(t, err)
	if n != len(DefaultCategories) {
		t.Errorf("expected %d seeded, got %d", len(DefaultCategories), n)
	}

	n, err = svc.SeedDefaults()
	testutil.AssertNoError(t, err)
	if n != 0 {
		t.Errorf("expected second seed to be a no-op, got %d", n)
	}
}
