package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/satboard/satboard-backend/internal/domain"
	"github.com/satboard/satboard-backend/internal/testutil"
	"github.com/satboard/satboard-backend/internal/websocket"
)

func TestWebSocketHandler_UnknownDashboard(t *testing.T) {
	repo := testutil.NewMockDashboardRepository()
	handler := NewWebSocketHandler(websocket.NewHub(), repo, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := handler.HandleWS(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
}

func TestWebSocketHandler_NonUpgradeRequest(t *testing.T) {
	repo := testutil.NewMockDashboardRepository()
	repo.AddDashboard(&domain.Dashboard{ID: "dash-1", Name: "Jar", Wallet: "w1", PayAmount: 1, WithdrawAmount: 1})
	handler := NewWebSocketHandler(websocket.NewHub(), repo, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws/dash-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("dash-1")

	// A plain GET without upgrade headers must fail the upgrade, not panic
	if err := handler.HandleWS(c); err == nil {
		t.Error("expected upgrade failure for non websocket request")
	}
}

func TestWebSocketHandler_OriginCheck(t *testing.T) {
	repo := testutil.NewMockDashboardRepository()
	handler := NewWebSocketHandler(websocket.NewHub(), repo, []string{"https://app.example.com"})

	makeReq := func(origin string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ws/dash-1", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		return req
	}

	if !handler.checkOrigin(makeReq("")) {
		t.Error("requests without Origin must be allowed")
	}
	if !handler.checkOrigin(makeReq("https://app.example.com")) {
		t.Error("allowed origin rejected")
	}
	if handler.checkOrigin(makeReq("https://evil.example.com")) {
		t.Error("unknown origin must be rejected")
	}
}
