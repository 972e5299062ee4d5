package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/budget"
	"fintrack/internal/domain"
	"fintrack/internal/ledger"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/period"
	"fintrack/internal/report"
)

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, kind domain.Kind, icon, color string) (*models.Category, error)
	ListCategories(kind *domain.Kind) ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	UpdateCategory(id string, update CategoryUpdate) (*models.Category, error)
	DeleteCategory(id string) error
	SeedDefaults() (int, error)
}

// CategoryUpdate lists the category fields to change. Nil fields are kept.
type CategoryUpdate struct {
	Name  *string
	Kind  *domain.Kind
	Icon  *string
	Color *string
}

// TransactionInput carries the fields of a new transaction.
type TransactionInput struct {
	Date        time.Time
	Description string
	Category    string
	Kind        domain.Kind
	Amount      decimal.Decimal
	Currency    string
}

// TransactionUpdate lists the transaction fields to change. Nil fields are kept.
type TransactionUpdate struct {
	Date        *time.Time
	Description *string
	Category    *string
	Kind        *domain.Kind
	Amount      *decimal.Decimal
	Currency    *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(in TransactionInput) (*models.Transaction, error)
	ListTransactions(q ledger.Query, page pagination.PageRequest) (*pagination.PageResponse[domain.Transaction], error)
	SearchTransactions(q ledger.Query) ([]domain.Transaction, error)
	GetTransactionByID(id string) (*models.Transaction, error)
	UpdateTransaction(id string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(id string) error
}

// BudgetUpdate lists the budget fields to change. Nil fields are kept.
type BudgetUpdate struct {
	Category *string
	Amount   *decimal.Decimal
	Period   *domain.Period
	Currency *string
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(category string, amount decimal.Decimal, p domain.Period, currency string) (*models.Budget, error)
	ListBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(id string) (*models.Budget, error)
	UpdateBudget(id string, update BudgetUpdate) (*models.Budget, error)
	DeleteBudget(id string) error
}

// SettingsServicer defines the contract for user preferences.
type SettingsServicer interface {
	GetDisplayCurrency() (string, error)
	SetDisplayCurrency(code string) (string, error)
}

// Snapshot is one consistent read of everything the aggregation core needs.
type Snapshot struct {
	Transactions []domain.Transaction
	Budgets      []domain.Budget
	Categories   []domain.Category
}

// SnapshotLoader reads full snapshots and maps them into domain values.
type SnapshotLoader interface {
	Load() (*Snapshot, error)
	Transactions() ([]domain.Transaction, error)
}

// ReportRequest selects the range of a report.
type ReportRequest struct {
	Preset period.Preset
	From   *time.Time
	To     *time.Time
}

// AnalyticsServicer runs the aggregation core over freshly loaded snapshots.
type AnalyticsServicer interface {
	Dashboard() (*report.Dashboard, error)
	Report(req ReportRequest) (*report.Report, error)
	BudgetStatuses() ([]budget.Status, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]any)
	ListAuditLogs(resourceType string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}
