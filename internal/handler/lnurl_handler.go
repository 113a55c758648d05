package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/satboard/satboard-backend/internal/domain"
	"github.com/satboard/satboard-backend/internal/service"
)

// LnurlHandler serves the LNURL pay (LUD-06) and withdraw (LUD-03) steps.
// LNURL clients expect HTTP 200 for everything; failures travel inside the
// body as {"status":"ERROR","reason":...}, never as HTTP error codes.
type LnurlHandler struct {
	lnurlService *service.LnurlService
	publicURL    string
}

// NewLnurlHandler creates a new LnurlHandler
func NewLnurlHandler(lnurlService *service.LnurlService, publicURL string) *LnurlHandler {
	return &LnurlHandler{
		lnurlService: lnurlService,
		publicURL:    publicURL,
	}
}

// LnurlErrorResponse is the in-body protocol error envelope
type LnurlErrorResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// LnurlPayParamsResponse is the LUD-06 step 1 response
type LnurlPayParamsResponse struct {
	Callback    string `json:"callback"`
	MinSendable int64  `json:"minSendable"`
	MaxSendable int64  `json:"maxSendable"`
	Metadata    string `json:"metadata"`
	Tag         string `json:"tag"`
}

// SuccessAction tells the paying wallet what to show after payment
type SuccessAction struct {
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// LnurlPayCallbackResponse is the LUD-06 step 2 response
type LnurlPayCallbackResponse struct {
	Pr            string        `json:"pr"`
	Routes        []string      `json:"routes"`
	SuccessAction SuccessAction `json:"successAction"`
}

// LnurlWithdrawParamsResponse is the LUD-03 step 1 response
type LnurlWithdrawParamsResponse struct {
	Tag                string `json:"tag"`
	Callback           string `json:"callback"`
	K1                 string `json:"k1"`
	DefaultDescription string `json:"defaultDescription"`
	MaxWithdrawable    int64  `json:"maxWithdrawable"`
	MinWithdrawable    int64  `json:"minWithdrawable"`
}

// LnurlStatusResponse is the LUD-03 step 2 success envelope
type LnurlStatusResponse struct {
	Status string `json:"status"`
}

func lnurlError(c echo.Context, reason string) error {
	return c.JSON(http.StatusOK, LnurlErrorResponse{Status: "ERROR", Reason: reason})
}

// Pay handles LUD-06 step 1: advertise the fixed pay parameters
// @Summary LNURL pay parameters
// @Description LUD-06 step 1: returns the fixed sendable range and metadata for a dashboard
// @Tags lnurl
// @Produce json
// @Param id path string true "Dashboard ID"
// @Success 200 {object} LnurlPayParamsResponse
// @Router /lnurl/pay/{id} [get]
func (h *LnurlHandler) Pay(c echo.Context) error {
	id := c.Param("id")

	dashboard, err := h.lnurlService.GetDashboard(c.Request().Context(), id)
	if err != nil {
		return lnurlError(c, "No dashboard found")
	}

	return c.JSON(http.StatusOK, LnurlPayParamsResponse{
		Callback:    fmt.Sprintf("%s/api/v1/lnurl/paycb/%s", h.publicURL, dashboard.ID),
		MinSendable: dashboard.PayAmount * 1000,
		MaxSendable: dashboard.PayAmount * 1000,
		Metadata:    service.PayMetadata(dashboard.Name),
		Tag:         "payRequest",
	})
}

// PayCallback handles LUD-06 step 2: create the tagged invoice
// @Summary LNURL pay callback
// @Description LUD-06 step 2: creates a bolt11 invoice for the requested amount
// @Tags lnurl
// @Produce json
// @Param id path string true "Dashboard ID"
// @Param amount query int true "Amount in millisats"
// @Success 200 {object} LnurlPayCallbackResponse
// @Router /lnurl/paycb/{id} [get]
func (h *LnurlHandler) PayCallback(c echo.Context) error {
	id := c.Param("id")

	amountMsat, err := strconv.ParseInt(c.QueryParam("amount"), 10, 64)
	if err != nil {
		return lnurlError(c, "Missing or invalid amount")
	}

	invoice, dashboard, err := h.lnurlService.CreatePayInvoice(c.Request().Context(), id, amountMsat)
	if err != nil {
		return h.lnurlServiceError(c, err, "create pay invoice")
	}

	return c.JSON(http.StatusOK, LnurlPayCallbackResponse{
		Pr:     invoice.Bolt11,
		Routes: []string{},
		SuccessAction: SuccessAction{
			Tag:     "message",
			Message: fmt.Sprintf("Paid %s", dashboard.Name),
		},
	})
}

// Withdraw handles LUD-03 step 1: issue the withdraw challenge
// @Summary LNURL withdraw parameters
// @Description LUD-03 step 1: returns the withdraw challenge and fixed withdrawable range
// @Tags lnurl
// @Produce json
// @Param id path string true "Dashboard ID"
// @Success 200 {object} LnurlWithdrawParamsResponse
// @Router /lnurl/withdraw/{id} [get]
func (h *LnurlHandler) Withdraw(c echo.Context) error {
	id := c.Param("id")

	dashboard, err := h.lnurlService.GetDashboard(c.Request().Context(), id)
	if err != nil {
		return lnurlError(c, "No dashboard found")
	}

	return c.JSON(http.StatusOK, LnurlWithdrawParamsResponse{
		Tag:                "withdrawRequest",
		Callback:           fmt.Sprintf("%s/api/v1/lnurl/withdrawcb/%s", h.publicURL, dashboard.ID),
		K1:                 h.lnurlService.WithdrawK1(dashboard.ID),
		DefaultDescription: dashboard.Name,
		MaxWithdrawable:    dashboard.WithdrawAmount * 1000,
		MinWithdrawable:    dashboard.WithdrawAmount * 1000,
	})
}

// WithdrawCallback handles LUD-03 step 2: verify the challenge and pay out
// @Summary LNURL withdraw callback
// @Description LUD-03 step 2: verifies k1 and pays the submitted invoice, capped at the dashboard's withdraw amount
// @Tags lnurl
// @Produce json
// @Param id path string true "Dashboard ID"
// @Param pr query string true "bolt11 invoice"
// @Param k1 query string true "Withdraw challenge"
// @Success 200 {object} LnurlStatusResponse
// @Router /lnurl/withdrawcb/{id} [get]
func (h *LnurlHandler) WithdrawCallback(c echo.Context) error {
	id := c.Param("id")
	pr := c.QueryParam("pr")
	k1 := c.QueryParam("k1")

	if _, err := h.lnurlService.Withdraw(c.Request().Context(), id, pr, k1); err != nil {
		return h.lnurlServiceError(c, err, "withdraw")
	}

	return c.JSON(http.StatusOK, LnurlStatusResponse{Status: "OK"})
}

// lnurlServiceError maps service errors into the LNURL protocol envelope
func (h *LnurlHandler) lnurlServiceError(c echo.Context, err error, op string) error {
	var engineErr *domain.EngineError
	switch {
	case errors.Is(err, domain.ErrDashboardNotFound):
		return lnurlError(c, "No dashboard found")
	case errors.Is(err, domain.ErrAmountOutOfBounds):
		return lnurlError(c, "Amount does not match the advertised sendable range")
	case errors.Is(err, domain.ErrMissingK1):
		return lnurlError(c, "k1 is required")
	case errors.Is(err, domain.ErrMissingInvoice):
		return lnurlError(c, "pr is required")
	case errors.Is(err, domain.ErrWrongK1):
		return lnurlError(c, "Wrong k1 check provided")
	case errors.As(err, &engineErr):
		log.Error().Err(err).Str("op", op).Str("path", c.Request().URL.Path).Msg("Payment engine failure")
		return lnurlError(c, engineErr.Error())
	default:
		log.Error().Err(err).Str("op", op).Str("path", c.Request().URL.Path).Msg("LNURL request failed")
		return lnurlError(c, "Internal error")
	}
}
