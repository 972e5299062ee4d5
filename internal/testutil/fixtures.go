package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/domain"
	"fintrack/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category of the given kind with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, kind domain.Kind) *models.Category {
	t.Helper()
	return CreateTestCategoryNamed(t, db, fmt.Sprintf("Test Category %d", nextID()), kind)
}

// CreateTestCategoryNamed creates a category with the given name and kind.
func CreateTestCategoryNamed(t *testing.T, db *gorm.DB, name string, kind domain.Kind) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:  name,
		Kind:  kind,
		Icon:  "🧪",
		Color: "#123456",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction dated now. An empty code leaves
// the currency column NULL, like rows written before multi-currency support.
func CreateTestTransaction(t *testing.T, db *gorm.DB, category string, kind domain.Kind, amount, code string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, time.Now(), category, kind, amount, code)
}

// CreateTestTransactionAt creates a transaction on the given date.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, date time.Time, category string, kind domain.Kind, amount, code string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Date:        date,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Category:    category,
		Kind:        kind,
		Amount:      decimal.RequireFromString(amount),
		Currency:    optionalCode(code),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a monthly budget for the given category.
func CreateTestBudget(t *testing.T, db *gorm.DB, category, amount, code string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Period:   domain.PeriodMonthly,
		Currency: optionalCode(code),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

func optionalCode(code string) *string {
	if code == "" {
		return nil
	}
	return &code
}
