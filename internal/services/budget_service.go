package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/budget"
	"fintrack/internal/currency"
	"fintrack/internal/domain"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db    *gorm.DB
	table *currency.Table
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, table *currency.Table) BudgetServicer {
	return &budgetService{db: db, table: table}
}

// CreateBudget creates a new budget. Only one budget may exist per category.
func (s *budgetService) CreateBudget(category string, amount decimal.Decimal, p domain.Period, code string) (*models.Budget, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if p == "" {
		p = domain.PeriodMonthly
	}
	if _, ok := domain.ParsePeriod(string(p)); !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be monthly, weekly or yearly")
	}
	code, err := resolveCurrency(s.table, code)
	if err != nil {
		return nil, err
	}

	if err := s.ensureSingleBudget(category, ""); err != nil {
		return nil, err
	}

	b := &models.Budget{
		Category: category,
		Amount:   amount,
		Period:   p,
		Currency: &code,
	}
	if err := s.db.Create(b).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return b, nil
}

// ListBudgets returns a paginated list of budgets, oldest first.
func (s *budgetService) ListBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Order("created_at ASC, id ASC").Scopes(pagination.Paginate(page)).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID retrieves a budget by ID.
func (s *budgetService) GetBudgetByID(id string) (*models.Budget, error) {
	var b models.Budget
	if err := s.db.Where("id = ?", id).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &b, nil
}

// UpdateBudget updates an existing budget's fields.
func (s *budgetService) UpdateBudget(id string, update BudgetUpdate) (*models.Budget, error) {
	b, err := s.GetBudgetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Category != nil {
		category := strings.TrimSpace(*update.Category)
		if category == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category must not be empty")
		}
		if !strings.EqualFold(category, b.Category) {
			if err := s.ensureSingleBudget(category, id); err != nil {
				return nil, err
			}
		}
		updates["category"] = category
	}
	if update.Amount != nil {
		if err := validateAmount(*update.Amount); err != nil {
			return nil, err
		}
		updates["amount"] = *update.Amount
	}
	if update.Period != nil {
		if _, ok := domain.ParsePeriod(string(*update.Period)); !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be monthly, weekly or yearly")
		}
		updates["period"] = *update.Period
	}
	if update.Currency != nil {
		code, err := resolveCurrency(s.table, *update.Currency)
		if err != nil {
			return nil, err
		}
		updates["currency"] = code
	}

	if len(updates) > 0 {
		if err := s.db.Model(b).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return b, nil
}

// DeleteBudget soft-deletes a budget.
func (s *budgetService) DeleteBudget(id string) error {
	b, err := s.GetBudgetByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(b).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *budgetService) ensureSingleBudget(category, excludeID string) error {
	var rows []models.Budget
	if err := s.db.Select("id", "category").Find(&rows).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	existing := make([]domain.Budget, 0, len(rows))
	for _, r := range rows {
		existing = append(existing, domain.Budget{ID: r.ID, Category: r.Category})
	}
	if budget.HasBudgetFor(existing, category, excludeID) {
		return apperrors.ErrDuplicateBudget
	}
	return nil
}
