package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/currency"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// CurrencyHandler exposes the currency table and the display preference.
type CurrencyHandler struct {
	table           *currency.Table
	settingsService services.SettingsServicer
	auditService    services.AuditServicer
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(table *currency.Table, settingsService services.SettingsServicer, auditService services.AuditServicer) *CurrencyHandler {
	return &CurrencyHandler{table: table, settingsService: settingsService, auditService: auditService}
}

// ConvertQuery holds the parameters of a conversion.
type ConvertQuery struct {
	Amount string `form:"amount" binding:"required"`
	From   string `form:"from" binding:"required,currency_code"`
	To     string `form:"to" binding:"required,currency_code"`
}

// FormatQuery holds the parameters of a formatting request.
type FormatQuery struct {
	Amount   string `form:"amount" binding:"required"`
	Currency string `form:"currency" binding:"required,currency_code"`
}

// SettingsRequest represents the request payload for changing settings.
type SettingsRequest struct {
	DisplayCurrency string `json:"display_currency" binding:"required,currency_code"`
}

// SettingsResponse holds the user preferences.
type SettingsResponse struct {
	DisplayCurrency string `json:"display_currency"`
	BaseCurrency    string `json:"base_currency"`
}

// ListCurrencies handles listing the supported currencies.
// @Summary     List currencies
// @Description Supported currencies with their rate to the base currency
// @Tags        currencies
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Currencies and base code"
// @Router      /currencies [get]
func (h *CurrencyHandler) ListCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"base":       h.table.Base().Code,
		"currencies": h.table.AllCurrencies(),
	})
}

// Convert handles converting an amount between two currencies.
// @Summary     Convert an amount
// @Tags        currencies
// @Produce     json
// @Security    BearerAuth
// @Param       amount query string true "Decimal amount"
// @Param       from   query string true "Source currency code"
// @Param       to     query string true "Target currency code"
// @Success     200 {object} map[string]string "Converted amount"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown currency"
// @Router      /currencies/convert [get]
func (h *CurrencyHandler) Convert(c *gin.Context) {
	var q ConvertQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	amount, err := parseAmount(q.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !h.table.Known(q.From) || !h.table.Known(q.To) {
		respondWithError(c, apperrors.ErrUnknownCurrency)
		return
	}

	to := h.table.Lookup(q.To)
	converted := h.table.Convert(amount, q.From, to.Code)
	c.JSON(http.StatusOK, gin.H{
		"amount":    amount.String(),
		"from":      h.table.Lookup(q.From).Code,
		"to":        to.Code,
		"result":    converted.StringFixed(h.table.Decimals(to.Code)),
		"formatted": h.table.FormatIn(converted, to.Code),
	})
}

// Format handles rendering an amount in a currency.
// @Summary     Format an amount
// @Tags        currencies
// @Produce     json
// @Security    BearerAuth
// @Param       amount   query string true "Decimal amount in the given currency"
// @Param       currency query string true "Currency code"
// @Success     200 {object} map[string]string "Formatted amount"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown currency"
// @Router      /currencies/format [get]
func (h *CurrencyHandler) Format(c *gin.Context) {
	var q FormatQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	amount, err := parseAmount(q.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !h.table.Known(q.Currency) {
		respondWithError(c, apperrors.ErrUnknownCurrency)
		return
	}

	c.JSON(http.StatusOK, gin.H{"formatted": h.table.FormatIn(amount, q.Currency)})
}

// GetSettings handles reading the user preferences.
// @Summary     Get settings
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SettingsResponse "Settings"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [get]
func (h *CurrencyHandler) GetSettings(c *gin.Context) {
	display, err := h.settingsService.GetDisplayCurrency()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{DisplayCurrency: display, BaseCurrency: h.table.Base().Code})
}

// UpdateSettings handles changing the display currency.
// @Summary     Update settings
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SettingsRequest true "New settings"
// @Success     200 {object} SettingsResponse "Settings"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown currency"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [put]
func (h *CurrencyHandler) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	display, err := h.settingsService.SetDisplayCurrency(req.DisplayCurrency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_SETTINGS", "setting", "display_currency", c.ClientIP(),
		map[string]any{"display_currency": display})

	c.JSON(http.StatusOK, SettingsResponse{DisplayCurrency: display, BaseCurrency: h.table.Base().Code})
}
