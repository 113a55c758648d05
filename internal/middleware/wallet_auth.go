package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/satboard/satboard-backend/internal/domain"
)

type contextKey string

const (
	// WalletIDKey is the context key for the authenticated wallet ID
	WalletIDKey contextKey = "wallet_id"
)

// WalletResolver resolves an API key to the wallet it belongs to
type WalletResolver interface {
	WalletInfo(ctx context.Context, apiKey string) (*domain.Wallet, error)
}

// WalletAuthMiddleware authenticates API requests with a wallet API key.
// The key is resolved against the funding node, following the upstream
// protocol: there are no user accounts here, a wallet key is the identity.
type WalletAuthMiddleware struct {
	resolver WalletResolver
}

// NewWalletAuthMiddleware creates a new WalletAuthMiddleware
func NewWalletAuthMiddleware(resolver WalletResolver) *WalletAuthMiddleware {
	return &WalletAuthMiddleware{resolver: resolver}
}

// Authenticate returns an Echo middleware that validates the X-Api-Key
// header and stores the resolved wallet ID in the request context
func (m *WalletAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get("X-Api-Key")
			if apiKey == "" {
				return unauthorizedError(c, "Missing X-Api-Key header")
			}

			wallet, err := m.resolver.WalletInfo(c.Request().Context(), apiKey)
			if err != nil {
				if errors.Is(err, domain.ErrWalletNotFound) {
					log.Debug().Msg("API key did not resolve to a wallet")
					return unauthorizedError(c, "Invalid API key")
				}
				log.Error().Err(err).Msg("Wallet key validation failed")
				return unauthorizedError(c, "Key validation failed")
			}

			ctx := context.WithValue(c.Request().Context(), WalletIDKey, wallet.ID)
			c.SetRequest(c.Request().WithContext(ctx))

			log.Debug().
				Str("wallet_id", wallet.ID).
				Msg("Wallet key authentication successful")

			return next(c)
		}
	}
}

// GetWalletID extracts the authenticated wallet ID from the context
func GetWalletID(c echo.Context) string {
	if id, ok := c.Request().Context().Value(WalletIDKey).(string); ok {
		return id
	}
	return ""
}
