package lightning

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/satboard/satboard-backend/internal/domain"
)

const (
	// reconnectBaseDelay is the initial backoff after a dropped connection
	reconnectBaseDelay = 1 * time.Second
	// reconnectMaxDelay caps the backoff
	reconnectMaxDelay = 30 * time.Second
	// readTimeout bounds a single frame read so a dead connection is noticed
	readTimeout = 90 * time.Second
)

// wirePayment is a settled payment as the funding node reports it on the
// websocket feed. Amount is signed millisats: negative for outgoing payments.
type wirePayment struct {
	Amount     int64  `json:"amount"`
	FeeMsat    int64  `json:"fee"`
	CheckingID string `json:"checking_id"`
	Extra      struct {
		Tag          string `json:"tag"`
		DashboardID  string `json:"dashboardId"`
		IsWithdrawal bool   `json:"isWithdrawal"`
	} `json:"extra"`
}

func (p *wirePayment) toEvent() domain.SettlementEvent {
	amount := p.Amount
	if amount < 0 {
		amount = -amount
	}
	return domain.SettlementEvent{
		Tag:          p.Extra.Tag,
		DashboardID:  p.Extra.DashboardID,
		AmountSats:   amount / 1000,
		FeeMsat:      p.FeeMsat,
		CheckingID:   p.CheckingID,
		IsWithdrawal: p.Extra.IsWithdrawal,
	}
}

// Subscribe opens the settled-payments feed filtered by tag. The returned
// channel stays open across reconnects and closes only when ctx is
// cancelled. A new subscription starts from "now"; events settled while
// disconnected are not replayed by the node.
func (c *Client) Subscribe(ctx context.Context, tag string) (<-chan domain.SettlementEvent, error) {
	events := make(chan domain.SettlementEvent)

	go func() {
		defer close(events)
		delay := reconnectBaseDelay

		for {
			if ctx.Err() != nil {
				return
			}

			err := c.consume(ctx, tag, events, func() { delay = reconnectBaseDelay })
			if ctx.Err() != nil {
				return
			}

			c.logger.Warn().Err(err).Dur("retry_in", delay).Msg("Settlement feed disconnected")

			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay *= 2
			if delay > reconnectMaxDelay {
				delay = reconnectMaxDelay
			}
		}
	}()

	return events, nil
}

// consume runs one websocket connection until it fails or ctx is cancelled.
// onConnected is called after a successful dial so the caller can reset its
// backoff.
func (c *Client) consume(ctx context.Context, tag string, events chan<- domain.SettlementEvent, onConnected func()) error {
	header := http.Header{}
	header.Set("X-Api-Key", c.apiKey)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.wsURL+"/api/v1/ws/payments?tag="+tag, header)
	if err != nil {
		return err
	}
	defer conn.Close()

	onConnected()
	c.logger.Info().Str("tag", tag).Msg("Settlement feed connected")

	// Unblock the read loop when ctx is cancelled
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var payment wirePayment
		if err := json.Unmarshal(data, &payment); err != nil {
			c.logger.Warn().Err(err).Msg("Unparseable settlement frame dropped")
			continue
		}

		select {
		case events <- payment.toEvent():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
