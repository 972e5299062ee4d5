package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/domain"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Kind  string `json:"kind" binding:"required,kind"`
	Icon  string `json:"icon" binding:"max=16"`
	Color string `json:"color" binding:"omitempty,hex_color"`
}

// UpdateCategoryRequest represents the request payload for updating a category
type UpdateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Kind  *string `json:"kind" binding:"omitempty,kind"`
	Icon  *string `json:"icon" binding:"omitempty,max=16"`
	Color *string `json:"color" binding:"omitempty,hex_color"`
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a new transaction category. Names are unique regardless of case.
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate category"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	kind, _ := domain.ParseKind(req.Kind)
	category, err := h.categoryService.CreateCategory(req.Name, kind, req.Icon, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_CATEGORY", "category", category.ID, c.ClientIP(),
		map[string]any{"name": category.Name, "kind": category.Kind})

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// ListCategories handles the retrieval of all categories
// @Summary     List categories
// @Description List categories ordered by kind and name
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       kind query string false "Filter by kind (income/expense)"
// @Success     200 {array} models.Category "List of categories"
// @Failure     400 {object} ErrorResponse "Invalid kind"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var kind *domain.Kind
	if v := c.Query("kind"); v != "" {
		k, ok := domain.ParseKind(v)
		if !ok {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be income or expense"))
			return
		}
		kind = &k
	}

	categories, err := h.categoryService.ListCategories(kind)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory handles the retrieval of a specific category
// @Summary     Get category by ID
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} models.Category "Category details"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categoryService.GetCategoryByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// UpdateCategory handles updating a category
// @Summary     Update category
// @Description Update a category. A new name is carried over to its transactions and budgets.
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Param       request body UpdateCategoryRequest true "Updated category details"
// @Success     200 {object} models.Category "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate name or category in use"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	update := services.CategoryUpdate{Name: req.Name, Icon: req.Icon, Color: req.Color}
	if req.Kind != nil {
		kind, _ := domain.ParseKind(*req.Kind)
		update.Kind = &kind
	}

	category, err := h.categoryService.UpdateCategory(c.Param("id"), update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_CATEGORY", "category", category.ID, c.ClientIP(),
		map[string]any{"name": category.Name, "kind": category.Kind, "icon": category.Icon, "color": category.Color})

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles deleting a category
// @Summary     Delete category
// @Description Delete a category. Its transactions and budgets are kept.
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} map[string]string "Category deleted"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := h.categoryService.DeleteCategory(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_CATEGORY", "category", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
