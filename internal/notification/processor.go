package notification

import (
	"context"
	"fmt"
	"strconv"

	"storefront-payments/internal/checkout"
	"storefront-payments/internal/credential"
	"storefront-payments/internal/logger"
	"storefront-payments/internal/metrics"
	"storefront-payments/internal/signature"
	"storefront-payments/internal/transaction"

	"go.uber.org/zap"
)

// Payload is the form-encoded webhook/redirect body PayU sends.
type Payload map[string]string

// OrderAmender applies a gateway-side discount back onto the host
// document. Implemented by the host platform, not here.
type OrderAmender interface {
	ApplyOrderDiscount(ctx context.Context, orderRef string, amount float64) error
	ApplyInvoiceDiscount(ctx context.Context, invoiceRef string, amount float64) error
}

// Processor verifies inbound notifications and drives the transaction
// state machine. It assumes the host serializes concurrent mutation of
// one transaction; idempotency guards duplicates, not locks.
type Processor struct {
	repo    transaction.Repository
	creds   credential.Service
	engine  *signature.Engine
	amender OrderAmender
}

func NewProcessor(
	repo transaction.Repository,
	creds credential.Service,
	engine *signature.Engine,
	amender OrderAmender,
) *Processor {
	return &Processor{repo: repo, creds: creds, engine: engine, amender: amender}
}

// ResolveTransaction locates the transaction a payload belongs to.
// udf2 carries our reference through the gateway and back; when it is
// absent the gateway id is tried before giving up.
func (p *Processor) ResolveTransaction(ctx context.Context, data Payload) (*transaction.Transaction, error) {
	if reference := data["udf2"]; reference != "" {
		return p.repo.GetByReference(ctx, reference)
	}
	if mihpayid := data["mihpayid"]; mihpayid != "" {
		return p.repo.GetByProviderReference(ctx, mihpayid)
	}
	return nil, transaction.ErrMissingReference
}

// Process applies one notification to the transaction. A nil payload
// cancels; a tampered payload changes nothing and surfaces
// ErrSignatureMismatch; otherwise the gateway status decides the
// transition.
func (p *Processor) Process(ctx context.Context, tx *transaction.Transaction, data Payload) error {
	log := logger.FromCtx(ctx).With(zap.String("reference", tx.Reference))

	if data == nil {
		return p.setState(ctx, tx, transaction.StateCanceled, "")
	}

	if err := p.verify(ctx, tx, data); err != nil {
		return err
	}

	if mihpayid := data["mihpayid"]; mihpayid != "" {
		if err := p.repo.SetProviderReference(ctx, tx.Reference, mihpayid); err != nil {
			return err
		}
		tx.ProviderReference = mihpayid
	}

	defer metrics.WebhooksProcessed.Inc()

	switch data["status"] {
	case "success":
		return p.handleSuccess(ctx, tx, data)
	case "failure":
		msg := data["error_Message"]
		if msg == "" {
			msg = GenericDeclineMessage
		}
		return p.setState(ctx, tx, transaction.StateError,
			fmt.Sprintf("Your payment failed. Reason: %s", msg))
	default:
		log.Info("notification with unknown status, canceling",
			zap.String("status", data["status"]))
		return p.setState(ctx, tx, transaction.StateCanceled, "")
	}
}

func (p *Processor) verify(ctx context.Context, tx *transaction.Transaction, data Payload) error {
	cred, err := p.creds.Resolve(ctx, tx.ProviderID, tx.Currency)
	if err != nil {
		return err
	}

	values := make(map[string]any, len(data)+1)
	for k, v := range data {
		values[k] = v
	}
	values["key"] = cred.MerchantKey

	err = p.engine.Verify(signature.SpecPaymentReverse, values, cred.MerchantSalt, data["hash"])
	if err != nil {
		metrics.SignatureMismatches.Inc()
		logger.FromCtx(ctx).Warn("tampered payment notification",
			zap.String("reference", tx.Reference),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (p *Processor) handleSuccess(ctx context.Context, tx *transaction.Transaction, data Payload) error {
	// Duplicate delivery of an already-applied success must not re-run
	// side effects.
	if tx.State == transaction.StateDone {
		return nil
	}

	p.applyDiscount(ctx, data)

	if amount, ok := adjustedAmount(data); ok {
		if err := p.repo.UpdateAmount(ctx, tx.Reference, amount); err != nil {
			return err
		}
		tx.Amount = amount
	}

	return p.setState(ctx, tx, transaction.StateDone, "")
}

// applyDiscount hands a positive gateway discount to the host
// collaborator. udf3 picks the website-cart vs invoice path, udf1 the
// document. A missing document reference is logged and skipped.
func (p *Processor) applyDiscount(ctx context.Context, data Payload) {
	discount := parseFloat(data["discount"])
	if discount <= 0 || p.amender == nil {
		return
	}

	log := logger.FromCtx(ctx)

	docRef := data["udf1"]
	if docRef == "" {
		log.Warn("discount present but document reference missing")
		return
	}

	var err error
	if data["udf3"] == checkout.SourceInvoice {
		err = p.amender.ApplyInvoiceDiscount(ctx, docRef, discount)
	} else {
		err = p.amender.ApplyOrderDiscount(ctx, docRef, discount)
	}
	if err != nil {
		log.Warn("failed to apply gateway discount",
			zap.String("document", docRef),
			zap.Float64("discount", discount),
			zap.Error(err),
		)
	}
}

// adjustedAmount is net_amount_debit minus additionalCharges; absent
// charges count as zero.
func adjustedAmount(data Payload) (float64, bool) {
	net := data["net_amount_debit"]
	if net == "" {
		return 0, false
	}
	return parseFloat(net) - parseFloat(data["additionalCharges"]), true
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func (p *Processor) setState(ctx context.Context, tx *transaction.Transaction, state transaction.State, message string) error {
	if err := p.repo.UpdateState(ctx, tx.Reference, state, message); err != nil {
		return err
	}
	tx.State = state
	tx.StateMessage = message

	logger.FromCtx(ctx).Info("transaction state changed",
		zap.String("reference", tx.Reference),
		zap.String("state", string(state)),
	)
	return nil
}

// CancelOnRequest cancels a non-terminal, non-authorized transaction
// by reference. Everything else, including a missing reference or
// transaction, is a logged no-op.
func (p *Processor) CancelOnRequest(ctx context.Context, reference string) error {
	log := logger.FromCtx(ctx)

	if reference == "" {
		log.Warn("cancel requested without a transaction reference")
		return nil
	}

	tx, err := p.repo.GetByReference(ctx, reference)
	if err != nil {
		log.Warn("cancel requested for unknown transaction",
			zap.String("reference", reference), zap.Error(err))
		return nil
	}

	if tx.State.CancelBlocked() {
		return nil
	}

	return p.setState(ctx, tx, transaction.StateCanceled, "")
}
