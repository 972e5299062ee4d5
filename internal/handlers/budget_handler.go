package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/budget"
	"fintrack/internal/domain"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService    services.BudgetServicer
	analyticsService services.AnalyticsServicer
	auditService     services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, analyticsService services.AnalyticsServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, analyticsService: analyticsService, auditService: auditService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	Category string `json:"category" binding:"required,max=100"`
	Amount   string `json:"amount" binding:"required"`
	Period   string `json:"period" binding:"omitempty,budget_period"`
	Currency string `json:"currency" binding:"omitempty,currency_code"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	Category *string `json:"category" binding:"omitempty,max=100"`
	Amount   *string `json:"amount"`
	Period   *string `json:"period" binding:"omitempty,budget_period"`
	Currency *string `json:"currency" binding:"omitempty,currency_code"`
}

// BudgetStatusResponse wraps the evaluated budgets with per-status counts.
type BudgetStatusResponse struct {
	Budgets []budget.Status      `json:"budgets"`
	Counts  map[budget.State]int `json:"counts"`
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Create a spending limit for an expense category. Only one budget per category is allowed.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown currency"
// @Failure     409 {object} ErrorResponse "Category already has a budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	b, err := h.budgetService.CreateBudget(req.Category, amount, domain.Period(req.Period), req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_BUDGET", "budget", b.ID, c.ClientIP(),
		map[string]any{"category": b.Category, "amount": b.Amount.String(), "period": b.Period})

	c.JSON(http.StatusCreated, gin.H{"budget": b})
}

// GetBudgets handles listing budgets.
// @Summary     List budgets
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.budgetService.ListBudgets(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBudget handles retrieving a single budget.
// @Summary     Get budget by ID
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	b, err := h.budgetService.GetBudgetByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": b})
}

// UpdateBudget handles updating a budget.
// @Summary     Update budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Fields to change"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown currency"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Category already has a budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	update := services.BudgetUpdate{Category: req.Category, Currency: req.Currency}
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			respondWithError(c, err)
			return
		}
		update.Amount = &amount
	}
	if req.Period != nil {
		p := domain.Period(*req.Period)
		update.Period = &p
	}

	b, err := h.budgetService.UpdateBudget(c.Param("id"), update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_BUDGET", "budget", b.ID, c.ClientIP(),
		map[string]any{"category": b.Category, "amount": b.Amount.String(), "period": b.Period})

	c.JSON(http.StatusOK, gin.H{"budget": b})
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} map[string]string "Budget deleted"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	id := c.Param("id")
	if err := h.budgetService.DeleteBudget(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_BUDGET", "budget", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

// GetBudgetStatuses handles evaluating every budget against its current period.
// @Summary     Budget status
// @Description Spent, remaining and progress of each budget in its current period, converted to the budget's currency
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} BudgetStatusResponse "Budget statuses"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/status [get]
func (h *BudgetHandler) GetBudgetStatuses(c *gin.Context) {
	statuses, err := h.analyticsService.BudgetStatuses()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetStatusResponse{Budgets: statuses, Counts: budget.CountByState(statuses)})
}
