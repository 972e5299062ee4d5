package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/currency"
	"fintrack/internal/domain"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/ledger"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db     *gorm.DB
	table  *currency.Table
	loader SnapshotLoader
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, table *currency.Table, loader SnapshotLoader) TransactionServicer {
	return &transactionService{
		db:     db,
		table:  table,
		loader: loader,
	}
}

// CreateTransaction validates and stores a new transaction.
func (s *transactionService) CreateTransaction(in TransactionInput) (*models.Transaction, error) {
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}
	if !in.Kind.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be income or expense")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	code, err := resolveCurrency(s.table, in.Currency)
	if err != nil {
		return nil, err
	}

	// Default date to now if not provided
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		Date:        date,
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		Kind:        in.Kind,
		Amount:      in.Amount,
		Currency:    &code,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// ListTransactions filters, sorts and pages the full transaction snapshot.
func (s *transactionService) ListTransactions(q ledger.Query, page pagination.PageRequest) (*pagination.PageResponse[domain.Transaction], error) {
	page.Defaults()

	txns, err := s.SearchTransactions(q)
	if err != nil {
		return nil, err
	}

	result := pagination.SlicePage(txns, page)
	return &result, nil
}

// SearchTransactions returns every transaction matching q in q's order.
func (s *transactionService) SearchTransactions(q ledger.Query) ([]domain.Transaction, error) {
	txns, err := s.loader.Transactions()
	if err != nil {
		return nil, err
	}
	l := ledger.New(s.table, txns)
	return l.FilterSortSearch(txns, q), nil
}

// GetTransactionByID retrieves a transaction by ID.
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ?", id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction changes the given fields of a transaction.
func (s *transactionService) UpdateTransaction(id string, update TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Date != nil {
		if update.Date.IsZero() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must not be empty")
		}
		updates["date"] = *update.Date
	}
	if update.Description != nil {
		updates["description"] = strings.TrimSpace(*update.Description)
	}
	if update.Category != nil {
		category := strings.TrimSpace(*update.Category)
		if category == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category must not be empty")
		}
		updates["category"] = category
	}
	if update.Kind != nil {
		if !update.Kind.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be income or expense")
		}
		updates["kind"] = *update.Kind
	}
	if update.Amount != nil {
		if err := validateAmount(*update.Amount); err != nil {
			return nil, err
		}
		updates["amount"] = *update.Amount
	}
	if update.Currency != nil {
		code, err := resolveCurrency(s.table, *update.Currency)
		if err != nil {
			return nil, err
		}
		updates["currency"] = code
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return transaction, nil
}

// DeleteTransaction soft-deletes a transaction.
func (s *transactionService) DeleteTransaction(id string) error {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
