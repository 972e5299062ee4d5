package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/currency"
	"fintrack/internal/domain"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/export"
	"fintrack/internal/ledger"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	settingsService    services.SettingsServicer
	auditService       services.AuditServicer
	table              *currency.Table
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(
	transactionService services.TransactionServicer,
	settingsService services.SettingsServicer,
	auditService services.AuditServicer,
	table *currency.Table,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		settingsService:    settingsService,
		auditService:       auditService,
		table:              table,
	}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Date        *string `json:"date"`
	Description string  `json:"description" binding:"max=500"`
	Category    string  `json:"category" binding:"required,max=100"`
	Kind        string  `json:"kind" binding:"required,kind"`
	Amount      string  `json:"amount" binding:"required"`
	Currency    string  `json:"currency" binding:"omitempty,currency_code"`
}

// UpdateTransactionRequest represents the request payload for updating a transaction
type UpdateTransactionRequest struct {
	Date        *string `json:"date"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	Kind        *string `json:"kind" binding:"omitempty,kind"`
	Amount      *string `json:"amount"`
	Currency    *string `json:"currency" binding:"omitempty,currency_code"`
}

// ListTransactionsQuery holds the list filters parsed from the query string.
type ListTransactionsQuery struct {
	Search   string `form:"search" binding:"max=200"`
	Kind     string `form:"kind" binding:"omitempty,kind"`
	Category string `form:"category"`
	From     string `form:"from"`
	To       string `form:"to"`
	Sort     string `form:"sort" binding:"omitempty,sort_key"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record an income or expense. Amounts are decimal strings; an empty currency means the base currency.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown currency"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	kind, _ := domain.ParseKind(req.Kind)

	in := services.TransactionInput{
		Description: req.Description,
		Category:    req.Category,
		Kind:        kind,
		Amount:      amount,
		Currency:    req.Currency,
	}
	if req.Date != nil && *req.Date != "" {
		if in.Date, err = parseFlexibleTime(*req.Date); err != nil {
			respondWithError(c, err)
			return
		}
	}

	transaction, err := h.transactionService.CreateTransaction(in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]any{"kind": transaction.Kind, "amount": transaction.Amount.String(), "category": transaction.Category})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions handles searching, filtering and paging transactions
// @Summary     List transactions
// @Description Search, filter, sort and page all transactions
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       search    query string false "Matches description or category"
// @Param       kind      query string false "income or expense"
// @Param       category  query string false "Category name"
// @Param       from      query string false "Start date (YYYY-MM-DD)"
// @Param       to        query string false "End date (YYYY-MM-DD)"
// @Param       sort      query string false "date_desc, date_asc, amount_desc, amount_asc, description_asc, category_asc"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[domain.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	q, err := bindLedgerQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(q, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportTransactions handles exporting the filtered transaction list
// @Summary     Export transactions
// @Description Download the filtered transactions as an xlsx workbook, with amounts in the display currency
// @Tags        transactions
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       search   query string false "Matches description or category"
// @Param       kind     query string false "income or expense"
// @Param       category query string false "Category name"
// @Param       from     query string false "Start date (YYYY-MM-DD)"
// @Param       to       query string false "End date (YYYY-MM-DD)"
// @Param       sort     query string false "Sort key"
// @Success     200 {file} file "Workbook"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/export.xlsx [get]
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	q, err := bindLedgerQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txns, err := h.transactionService.SearchTransactions(q)
	if err != nil {
		respondWithError(c, err)
		return
	}
	display, err := h.settingsService.GetDisplayCurrency()
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.NewWriter(h.table, display).Transactions(&buf, txns); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetTransaction handles retrieving a transaction by ID
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	transaction, err := h.transactionService.GetTransactionByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles updating a transaction
// @Summary     Update transaction
// @Description Change any field of a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown currency"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	update := services.TransactionUpdate{
		Description: req.Description,
		Category:    req.Category,
		Currency:    req.Currency,
	}
	if req.Date != nil {
		date, err := parseFlexibleTime(*req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		update.Date = &date
	}
	if req.Kind != nil {
		kind, _ := domain.ParseKind(*req.Kind)
		update.Kind = &kind
	}
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			respondWithError(c, err)
			return
		}
		update.Amount = &amount
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Param("id"), update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]any{"kind": transaction.Kind, "amount": transaction.Amount.String(), "category": transaction.Category})

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]string "Transaction deleted"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id := c.Param("id")
	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_TRANSACTION", "transaction", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// bindLedgerQuery reads the list filters. A plain "to" date covers that
// whole day.
func bindLedgerQuery(c *gin.Context) (ledger.Query, error) {
	var req ListTransactionsQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		return ledger.Query{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	q := ledger.Query{
		Search:   req.Search,
		Category: req.Category,
		Sort:     ledger.ParseSortKey(req.Sort),
	}
	if req.Kind != "" {
		q.Kind, _ = domain.ParseKind(req.Kind)
	}
	if req.From != "" {
		from, err := parseFlexibleTime(req.From)
		if err != nil {
			return ledger.Query{}, err
		}
		q.From = &from
	}
	if req.To != "" {
		to, err := parseFlexibleTime(req.To)
		if err != nil {
			return ledger.Query{}, err
		}
		if len(req.To) == len("2006-01-02") {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		q.To = &to
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return ledger.Query{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must not be after to")
	}
	return q, nil
}
