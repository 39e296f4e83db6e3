package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"storefront-payments/internal/credential"
	"storefront-payments/internal/gateway"
	"storefront-payments/internal/logger"
	"storefront-payments/internal/metrics"
	"storefront-payments/internal/signature"
	"storefront-payments/internal/transaction"

	"go.uber.org/zap"
)

// Caller is the outbound call surface of gateway.Client.
type Caller interface {
	Call(ctx context.Context, rawURL, method string, query url.Values, data url.Values, bearerToken string) (json.RawMessage, error)
}

// DateRange bounds one settlement query, inclusive.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Reconciler pulls settled amounts and fees from the gateway and
// writes them back onto the matching transactions.
type Reconciler struct {
	repo   transaction.Repository
	engine *signature.Engine
	client Caller
}

func NewReconciler(repo transaction.Repository, engine *signature.Engine, client Caller) *Reconciler {
	return &Reconciler{repo: repo, engine: engine, client: client}
}

// QuerySettlement fetches the settlement details for the range and
// reconciles them by provider reference. Transactions the gateway
// reports but we do not know are skipped. A malformed response body
// degrades to an empty result instead of failing the poll.
func (r *Reconciler) QuerySettlement(ctx context.Context, rng DateRange, cred *credential.Credential, provider *credential.Provider) (int, error) {
	log := logger.FromCtx(ctx).With(
		zap.Time("from", rng.From),
		zap.Time("to", rng.To),
	)
	timer := metrics.StartTimer()

	values := map[string]any{
		"key":     cred.MerchantKey,
		"command": gateway.CommandSettlement,
		"var1":    rng.From.Format("2006-01-02"),
	}

	hash, err := r.engine.Sign(signature.SpecSettlement, values, cred.MerchantSalt)
	if err != nil {
		return 0, err
	}

	data := url.Values{}
	data.Set("key", cred.MerchantKey)
	data.Set("command", gateway.CommandSettlement)
	data.Set("var1", rng.From.Format("2006-01-02"))
	data.Set("var2", rng.To.Format("2006-01-02"))
	data.Set("hash", hash)

	query := url.Values{}
	query.Set("form", "2")

	raw, err := r.client.Call(ctx, gateway.ServiceURL(provider.IsTest()), http.MethodPost, query, data, "")
	if errors.Is(err, gateway.ErrGatewayInvalidResponse) {
		log.Warn("settlement response unparseable, treating as empty")
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var res gateway.SettlementResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		log.Warn("settlement response unparseable, treating as empty")
		return 0, nil
	}

	if len(res.Details) == 0 {
		return 0, nil
	}

	reconciled := 0
	for _, detail := range res.Details {
		if err := r.applyDetail(ctx, detail); err != nil {
			log.Warn("skipping settlement record",
				zap.String("mihpayid", detail.MihPayID),
				zap.Error(err),
			)
			continue
		}
		reconciled++
	}

	metrics.SettlementsReconciled.Add(uint64(reconciled))
	log.Info("settlement reconciled",
		zap.Int("records", len(res.Details)),
		zap.Int("matched", reconciled),
		zap.Duration("took", timer.Duration()),
	)
	return reconciled, nil
}

var errNoMatch = errors.New("no transaction with this provider reference")

func (r *Reconciler) applyDetail(ctx context.Context, detail gateway.SettlementDetail) error {
	if detail.MihPayID == "" {
		return errNoMatch
	}

	net, err := detail.NetAmount()
	if err != nil {
		return fmt.Errorf("bad settlement amount: %w", err)
	}
	fee, err := detail.TotalServiceFee()
	if err != nil {
		return fmt.Errorf("bad service fee: %w", err)
	}

	matched, err := r.repo.UpdateSettlement(ctx, detail.MihPayID, transaction.Settlement{
		NetAmount:       net,
		TotalServiceFee: fee,
		Currency:        detail.SettlementCurrency,
		UTRNumber:       detail.UTRNumber,
	})
	if err != nil {
		return err
	}
	if !matched {
		return errNoMatch
	}
	return nil
}
