package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/satboard/satboard-backend/internal/domain"
	"github.com/satboard/satboard-backend/internal/middleware"
	"github.com/satboard/satboard-backend/internal/service"
)

// DashboardHandler handles dashboard CRUD HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardRequest represents the JSON request for creating or updating a dashboard
type DashboardRequest struct {
	Name           string `json:"name"`
	PayAmount      int64  `json:"payAmount"`
	WithdrawAmount int64  `json:"withdrawAmount"`
}

// CreateInvoiceRequest represents the JSON request for creating an invoice
type CreateInvoiceRequest struct {
	Amount int64  `json:"amount"` // sats
	Memo   string `json:"memo"`
}

// CreateInvoiceResponse represents the JSON response for invoice creation
type CreateInvoiceResponse struct {
	Success     bool   `json:"success"`
	Bolt11      string `json:"bolt11,omitempty"`
	PaymentHash string `json:"paymentHash,omitempty"`
	Error       string `json:"error,omitempty"`
}

// List returns all dashboards owned by the caller's wallet
// @Summary List dashboards
// @Tags dashboards
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} domain.Dashboard
// @Router /dashboards [get]
func (h *DashboardHandler) List(c echo.Context) error {
	wallet := middleware.GetWalletID(c)
	if wallet == "" {
		return NewUnauthorizedError(c, "Wallet required")
	}

	dashboards, err := h.dashboardService.List(c.Request().Context(), wallet)
	if err != nil {
		log.Error().Err(err).Str("wallet", wallet).Msg("Failed to list dashboards")
		return h.handleServiceError(c, err)
	}
	if dashboards == nil {
		dashboards = []*domain.Dashboard{}
	}

	return c.JSON(http.StatusOK, dashboards)
}

// Get returns a single dashboard owned by the caller's wallet
// @Summary Get dashboard
// @Tags dashboards
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Dashboard ID"
// @Success 200 {object} domain.Dashboard
// @Failure 404 {object} ProblemDetails
// @Router /dashboards/{id} [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	wallet := middleware.GetWalletID(c)
	if wallet == "" {
		return NewUnauthorizedError(c, "Wallet required")
	}

	dashboard, err := h.dashboardService.Get(c.Request().Context(), wallet, c.Param("id"))
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dashboard)
}

// Create creates a new dashboard owned by the caller's wallet
// @Summary Create dashboard
// @Tags dashboards
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body DashboardRequest true "Dashboard"
// @Success 201 {object} domain.Dashboard
// @Failure 400 {object} ProblemDetails
// @Router /dashboards [post]
func (h *DashboardHandler) Create(c echo.Context) error {
	wallet := middleware.GetWalletID(c)
	if wallet == "" {
		return NewUnauthorizedError(c, "Wallet required")
	}

	var req DashboardRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	dashboard, err := h.dashboardService.Create(c.Request().Context(), wallet, domain.CreateDashboardData{
		Name:           req.Name,
		PayAmount:      req.PayAmount,
		WithdrawAmount: req.WithdrawAmount,
	})
	if err != nil {
		log.Error().Err(err).Str("wallet", wallet).Msg("Failed to create dashboard")
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, dashboard)
}

// Update rewrites a dashboard's name and amounts
// @Summary Update dashboard
// @Tags dashboards
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Dashboard ID"
// @Param request body DashboardRequest true "Dashboard"
// @Success 200 {object} domain.Dashboard
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /dashboards/{id} [put]
func (h *DashboardHandler) Update(c echo.Context) error {
	wallet := middleware.GetWalletID(c)
	if wallet == "" {
		return NewUnauthorizedError(c, "Wallet required")
	}

	var req DashboardRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	dashboard, err := h.dashboardService.Update(c.Request().Context(), wallet, c.Param("id"), domain.CreateDashboardData{
		Name:           req.Name,
		PayAmount:      req.PayAmount,
		WithdrawAmount: req.WithdrawAmount,
	})
	if err != nil {
		log.Error().Err(err).Str("wallet", wallet).Msg("Failed to update dashboard")
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dashboard)
}

// Delete removes a dashboard
// @Summary Delete dashboard
// @Tags dashboards
// @Security ApiKeyAuth
// @Param id path string true "Dashboard ID"
// @Success 204
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /dashboards/{id} [delete]
func (h *DashboardHandler) Delete(c echo.Context) error {
	wallet := middleware.GetWalletID(c)
	if wallet == "" {
		return NewUnauthorizedError(c, "Wallet required")
	}

	if err := h.dashboardService.Delete(c.Request().Context(), wallet, c.Param("id")); err != nil {
		log.Error().Err(err).Str("wallet", wallet).Msg("Failed to delete dashboard")
		return h.handleServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateInvoice creates a tagged invoice against a dashboard
// @Summary Create invoice
// @Description Creates a bolt11 invoice whose settlement will be reconciled into the dashboard's total
// @Tags dashboards
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Dashboard ID"
// @Param request body CreateInvoiceRequest true "Invoice"
// @Success 201 {object} CreateInvoiceResponse
// @Failure 404 {object} ProblemDetails
// @Failure 502 {object} CreateInvoiceResponse
// @Router /dashboards/{id}/invoice [post]
func (h *DashboardHandler) CreateInvoice(c echo.Context) error {
	wallet := middleware.GetWalletID(c)
	if wallet == "" {
		return NewUnauthorizedError(c, "Wallet required")
	}

	var req CreateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	invoice, err := h.dashboardService.CreateInvoice(c.Request().Context(), c.Param("id"), req.Amount, req.Memo)
	if err != nil {
		var engineErr *domain.EngineError
		if errors.As(err, &engineErr) {
			log.Error().Err(err).Str("dashboard_id", c.Param("id")).Msg("Invoice creation failed at engine")
			return c.JSON(http.StatusBadGateway, CreateInvoiceResponse{Success: false, Error: engineErr.Error()})
		}
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, CreateInvoiceResponse{
		Success:     true,
		Bolt11:      invoice.Bolt11,
		PaymentHash: invoice.PaymentHash,
	})
}

// handleServiceError maps domain errors to appropriate HTTP responses
func (h *DashboardHandler) handleServiceError(c echo.Context, err error) error {
	var engineErr *domain.EngineError
	switch {
	case errors.Is(err, domain.ErrDashboardNotFound):
		return NewNotFoundError(c, "Dashboard not found")
	case errors.Is(err, domain.ErrForbidden):
		return NewForbiddenError(c, "Dashboard belongs to another wallet")
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Name is required", nil)
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Name exceeds maximum length", nil)
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Amounts must be positive", nil)
	case errors.As(err, &engineErr):
		return NewBadGatewayError(c, engineErr.Error())
	default:
		return NewInternalError(c, "Request failed")
	}
}
