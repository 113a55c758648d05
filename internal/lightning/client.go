package lightning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/satboard/satboard-backend/internal/domain"
)

// Client talks to an lnbits-compatible funding node. It implements both
// domain.InvoiceEngine (REST) and domain.SettlementSource (websocket).
type Client struct {
	apiURL string
	wsURL  string
	apiKey string
	http   *http.Client
	logger zerolog.Logger
}

// NewClient creates a funding node client
func NewClient(apiURL, wsURL, apiKey string, logger zerolog.Logger) *Client {
	return &Client{
		apiURL: apiURL,
		wsURL:  wsURL,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger.With().Str("component", "lightning_client").Logger(),
	}
}

var _ domain.InvoiceEngine = (*Client)(nil)
var _ domain.SettlementSource = (*Client)(nil)

type paymentRequest struct {
	Out      bool               `json:"out"`
	WalletID string             `json:"wallet_id"`
	Amount   int64              `json:"amount,omitempty"` // sats
	Memo     string             `json:"memo,omitempty"`
	Bolt11   string             `json:"bolt11,omitempty"`
	MaxSat   int64              `json:"max_sat,omitempty"`
	Extra    domain.InvoiceMeta `json:"extra"`
}

type paymentResponse struct {
	PaymentRequest string `json:"payment_request"`
	PaymentHash    string `json:"payment_hash"`
	CheckingID     string `json:"checking_id"`
	FeeMsat        int64  `json:"fee"`
	Detail         string `json:"detail"` // error detail on non-2xx
}

// CreateInvoice asks the funding node for a bolt11 invoice on the given wallet
func (c *Client) CreateInvoice(ctx context.Context, wallet string, amountSats int64, memo string, meta domain.InvoiceMeta) (*domain.Invoice, error) {
	body := paymentRequest{
		Out:      false,
		WalletID: wallet,
		Amount:   amountSats,
		Memo:     memo,
		Extra:    meta,
	}

	var resp paymentResponse
	if err := c.post(ctx, "/api/v1/payments", c.apiKey, body, &resp); err != nil {
		return nil, &domain.EngineError{Op: "create_invoice", Message: engineMessage(err, resp.Detail), Err: err}
	}

	return &domain.Invoice{
		Bolt11:      resp.PaymentRequest,
		PaymentHash: resp.PaymentHash,
		CheckingID:  resp.CheckingID,
	}, nil
}

// PayInvoice pays a bolt11 invoice from the given wallet, bounded by maxSats
func (c *Client) PayInvoice(ctx context.Context, wallet string, bolt11 string, maxSats int64, meta domain.InvoiceMeta) (*domain.Payout, error) {
	body := paymentRequest{
		Out:      true,
		WalletID: wallet,
		Bolt11:   bolt11,
		MaxSat:   maxSats,
		Extra:    meta,
	}

	var resp paymentResponse
	if err := c.post(ctx, "/api/v1/payments", c.apiKey, body, &resp); err != nil {
		return nil, &domain.EngineError{Op: "pay_invoice", Message: engineMessage(err, resp.Detail), Err: err}
	}

	return &domain.Payout{
		PaymentHash: resp.PaymentHash,
		FeeMsat:     resp.FeeMsat,
		CheckingID:  resp.CheckingID,
	}, nil
}

type walletResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BalanceMsat int64  `json:"balance"`
	Detail      string `json:"detail"`
}

// WalletInfo resolves an API key to the wallet it belongs to. Used by the
// auth middleware; an unknown key maps to ErrWalletNotFound.
func (c *Client) WalletInfo(ctx context.Context, apiKey string) (*domain.Wallet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/api/v1/wallet", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.EngineError{Op: "wallet_info", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrWalletNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &domain.EngineError{Op: "wallet_info", Message: fmt.Sprintf("unexpected status %d", res.StatusCode)}
	}

	var w walletResponse
	if err := json.NewDecoder(res.Body).Decode(&w); err != nil {
		return nil, &domain.EngineError{Op: "wallet_info", Message: "malformed response", Err: err}
	}

	return &domain.Wallet{ID: w.ID, Name: w.Name, BalanceMsat: w.BalanceMsat}, nil
}

// post issues an authenticated JSON request and decodes the response into out.
// A non-2xx status is returned as an error after decoding the body, so the
// caller can surface the node's detail message.
func (c *Client) post(ctx context.Context, path, apiKey string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	// Decode even on error statuses; the node puts its reason in the body
	if len(data) > 0 {
		_ = json.Unmarshal(data, out)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("funding node returned status %d", res.StatusCode)
	}
	return nil
}

// engineMessage prefers the node's own detail message over the transport error
func engineMessage(err error, detail string) string {
	if detail != "" {
		return detail
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
