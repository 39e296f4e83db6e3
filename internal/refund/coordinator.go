package refund

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"storefront-payments/internal/credential"
	"storefront-payments/internal/gateway"
	"storefront-payments/internal/logger"
	"storefront-payments/internal/metrics"
	"storefront-payments/internal/signature"
	"storefront-payments/internal/transaction"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Caller is the outbound call surface of gateway.Client.
type Caller interface {
	Call(ctx context.Context, rawURL, method string, query url.Values, data url.Values, bearerToken string) (json.RawMessage, error)
}

// Scheduler triggers the host's post-processing of a finished refund
// (invoice reconciliation cron in the host platform).
type Scheduler interface {
	SchedulePostProcessing(ctx context.Context, reference string)
}

// Coordinator issues refund commands and settles the refund
// transaction's terminal state from the gateway's answer.
type Coordinator struct {
	repo      transaction.Repository
	creds     credential.Service
	engine    *signature.Engine
	client    Caller
	scheduler Scheduler
}

func NewCoordinator(
	repo transaction.Repository,
	creds credential.Service,
	engine *signature.Engine,
	client Caller,
	scheduler Scheduler,
) *Coordinator {
	return &Coordinator{repo: repo, creds: creds, engine: engine, client: client, scheduler: scheduler}
}

// Refund creates the refund-direction transaction and sends the
// cancel_refund_transaction command. The returned transaction is in a
// terminal state either way; the gateway id is recorded on success and
// failure alike.
func (c *Coordinator) Refund(ctx context.Context, original *transaction.Transaction, amount float64, provider *credential.Provider) (*transaction.Transaction, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("reference", original.Reference),
		zap.Float64("amount", amount),
	)

	if original.ProviderReference == "" {
		return nil, ErrNoProviderReference
	}

	cred, err := c.creds.Resolve(ctx, original.ProviderID, original.Currency)
	if err != nil {
		return nil, err
	}

	refundTx := &transaction.Transaction{
		Reference:  fmt.Sprintf("%s-refund-%s", original.Reference, uuid.New().String()[:8]),
		ProviderID: original.ProviderID,
		Amount:     -amount,
		Currency:   original.Currency,
		State:      transaction.StatePending,
	}
	if err := c.repo.Create(ctx, refundTx); err != nil {
		return nil, err
	}

	values := map[string]any{
		"key":     cred.MerchantKey,
		"command": gateway.CommandRefund,
		"var1":    original.ProviderReference,
		"var2":    refundTx.Reference,
		"var3":    fmt.Sprintf("%.2f", amount),
	}

	hash, err := c.engine.Sign(signature.SpecRefund, values, cred.MerchantSalt)
	if err != nil {
		return nil, err
	}

	data := url.Values{}
	for k, v := range values {
		data.Set(k, fmt.Sprintf("%v", v))
	}
	data.Set("hash", hash)

	query := url.Values{}
	query.Set("form", "2")

	raw, err := c.client.Call(ctx, gateway.ServiceURL(provider.IsTest()), http.MethodPost, query, data, "")
	if err != nil {
		return nil, err
	}

	var res gateway.RefundResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, gateway.ErrGatewayInvalidResponse
	}

	if res.MihPayID != "" {
		if err := c.repo.SetProviderReference(ctx, refundTx.Reference, res.MihPayID); err != nil {
			return nil, err
		}
		refundTx.ProviderReference = res.MihPayID
	}

	if res.Accepted() {
		if err := c.setState(ctx, refundTx, transaction.StateDone, ""); err != nil {
			return nil, err
		}
		metrics.RefundsIssued.Inc()
		if c.scheduler != nil {
			c.scheduler.SchedulePostProcessing(ctx, refundTx.Reference)
		}
		log.Info("refund accepted", zap.String("mihpayid", res.MihPayID))
		return refundTx, nil
	}

	metrics.RefundsFailed.Inc()
	log.Warn("refund rejected",
		zap.Int("status", res.Status),
		zap.Int("error_code", res.ErrorCode),
		zap.String("msg", res.Msg),
	)
	msg := fmt.Sprintf("Your refund failed. Reason: %s", res.Msg)
	if err := c.setState(ctx, refundTx, transaction.StateError, msg); err != nil {
		return nil, err
	}
	return refundTx, nil
}

func (c *Coordinator) setState(ctx context.Context, tx *transaction.Transaction, state transaction.State, message string) error {
	if err := c.repo.UpdateState(ctx, tx.Reference, state, message); err != nil {
		return err
	}
	tx.State = state
	tx.StateMessage = message
	return nil
}

// Capture is not supported by the gateway and never reaches the
// network.
func (c *Coordinator) Capture(ctx context.Context, tx *transaction.Transaction, amount float64) error {
	return fmt.Errorf("capture: %w", ErrNotSupported)
}

// Void is not supported by the gateway and never reaches the network.
func (c *Coordinator) Void(ctx context.Context, tx *transaction.Transaction, amount float64) error {
	return fmt.Errorf("void: %w", ErrNotSupported)
}
