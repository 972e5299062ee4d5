package services

import (
	"gorm.io/gorm"

	"fintrack/internal/domain"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// snapshotLoader reads the full data set for one aggregation request.
type snapshotLoader struct {
	db           *gorm.DB
	baseCurrency string
}

// NewSnapshotLoader creates a SnapshotLoader. Rows without a currency are
// read as baseCurrency.
func NewSnapshotLoader(db *gorm.DB, baseCurrency string) SnapshotLoader {
	return &snapshotLoader{db: db, baseCurrency: baseCurrency}
}

// Load reads categories, transactions and budgets in one database transaction.
func (l *snapshotLoader) Load() (*Snapshot, error) {
	snap := &Snapshot{}
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if snap.Transactions, err = loadTransactions(tx, l.baseCurrency); err != nil {
			return err
		}

		var budgets []models.Budget
		if err := tx.Order("created_at ASC, id ASC").Find(&budgets).Error; err != nil {
			return err
		}
		snap.Budgets = make([]domain.Budget, 0, len(budgets))
		for _, b := range budgets {
			snap.Budgets = append(snap.Budgets, toDomainBudget(b, l.baseCurrency))
		}

		var categories []models.Category
		if err := tx.Order("created_at ASC, id ASC").Find(&categories).Error; err != nil {
			return err
		}
		snap.Categories = make([]domain.Category, 0, len(categories))
		for _, c := range categories {
			snap.Categories = append(snap.Categories, toDomainCategory(c))
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snap, nil
}

// Transactions reads only the transactions.
func (l *snapshotLoader) Transactions() ([]domain.Transaction, error) {
	txns, err := loadTransactions(l.db, l.baseCurrency)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txns, nil
}

// loadTransactions returns transactions oldest first. UUIDv7 ids break date
// ties in insertion order.
func loadTransactions(db *gorm.DB, baseCurrency string) ([]domain.Transaction, error) {
	var rows []models.Transaction
	if err := db.Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	txns := make([]domain.Transaction, 0, len(rows))
	for _, t := range rows {
		txns = append(txns, toDomainTransaction(t, baseCurrency))
	}
	return txns, nil
}

// currencyOrDefault fills a missing currency column.
func currencyOrDefault(code *string, fallback string) string {
	if code == nil || *code == "" {
		return fallback
	}
	return *code
}

func toDomainTransaction(t models.Transaction, baseCurrency string) domain.Transaction {
	return domain.Transaction{
		ID:          t.ID,
		Date:        t.Date,
		Description: t.Description,
		Category:    t.Category,
		Kind:        t.Kind,
		Amount:      t.Amount,
		Currency:    currencyOrDefault(t.Currency, baseCurrency),
	}
}

func toDomainBudget(b models.Budget, baseCurrency string) domain.Budget {
	return domain.Budget{
		ID:       b.ID,
		Category: b.Category,
		Amount:   b.Amount,
		Period:   b.Period,
		Currency: currencyOrDefault(b.Currency, baseCurrency),
	}
}

func toDomainCategory(c models.Category) domain.Category {
	return domain.Category{
		ID:    c.ID,
		Name:  c.Name,
		Kind:  c.Kind,
		Icon:  c.Icon,
		Color: c.Color,
	}
}
