package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"storefront-payments/internal/logger"
	"storefront-payments/internal/metrics"
	"storefront-payments/internal/notification"
	"storefront-payments/internal/signature"
	"storefront-payments/internal/transaction"

	"go.uber.org/zap"
)

const (
	WebhookPath = "/payment/payu/webhook"
	ProcessPath = "/payment/payu/process"
	CancelPath  = "/payment/payu/cancel"
	HealthPath  = "/healthz"
)

// Processor is the notification surface the handler drives.
type Processor interface {
	ResolveTransaction(ctx context.Context, data notification.Payload) (*transaction.Transaction, error)
	Process(ctx context.Context, tx *transaction.Transaction, data notification.Payload) error
	CancelOnRequest(ctx context.Context, reference string) error
}

// Handler exposes the gateway-facing endpoints: the server-to-server
// webhook, the browser return URL and the cancel URL.
type Handler struct {
	processor Processor
	statusURL string
}

func NewHandler(processor Processor, statusURL string) *Handler {
	return &Handler{processor: processor, statusURL: statusURL}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle(WebhookPath, http.HandlerFunc(h.Webhook))
	mux.Handle(ProcessPath, http.HandlerFunc(h.ProcessReturn))
	mux.Handle(CancelPath, http.HandlerFunc(h.Cancel))
	mux.Handle(HealthPath, http.HandlerFunc(h.Health))
}

// Health reports liveness plus the processing counters.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":                 "ok",
		"webhooks_processed":     metrics.WebhooksProcessed.Load(),
		"signature_mismatches":   metrics.SignatureMismatches.Load(),
		"refunds_issued":         metrics.RefundsIssued.Load(),
		"refunds_failed":         metrics.RefundsFailed.Load(),
		"settlements_reconciled": metrics.SettlementsReconciled.Load(),
	})
}

func payloadFromForm(r *http.Request) notification.Payload {
	_ = r.ParseForm()

	data := notification.Payload{}
	for key := range r.Form {
		data[key] = r.Form.Get(key)
	}
	return data
}

// Webhook handles PayU's server-to-server notification.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	data := payloadFromForm(r)

	tx, err := h.processor.ResolveTransaction(ctx, data)
	if err != nil {
		h.writeResolveError(w, r, err)
		return
	}

	if err := h.processor.Process(ctx, tx, data); err != nil {
		if errors.Is(err, signature.ErrSignatureMismatch) || errors.Is(err, signature.ErrMissingHash) {
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return
		}
		logger.FromCtx(ctx).Error("webhook processing failed",
			zap.String("reference", tx.Reference), zap.Error(err))
		http.Error(w, "failed to process notification", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "Webhook processed")
}

// ProcessReturn handles the browser redirect back from the payment
// page. Failures are logged; the customer always lands on the status
// page, which reflects the transaction's actual state.
func (h *Handler) ProcessReturn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := payloadFromForm(r)

	tx, err := h.processor.ResolveTransaction(ctx, data)
	if err != nil {
		logger.FromCtx(ctx).Warn("return redirect with unresolvable transaction", zap.Error(err))
		http.Redirect(w, r, h.statusURL, http.StatusSeeOther)
		return
	}

	if err := h.processor.Process(ctx, tx, data); err != nil {
		logger.FromCtx(ctx).Warn("return redirect processing failed",
			zap.String("reference", tx.Reference), zap.Error(err))
	}

	http.Redirect(w, r, h.statusURL, http.StatusSeeOther)
}

// Cancel handles the customer-initiated cancel URL. Idempotent; always
// redirects to the status page regardless of outcome.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_ = r.ParseForm()

	if err := h.processor.CancelOnRequest(ctx, r.Form.Get("txn_ref")); err != nil {
		logger.FromCtx(ctx).Warn("cancel request failed", zap.Error(err))
	}

	http.Redirect(w, r, h.statusURL, http.StatusSeeOther)
}

func (h *Handler) writeResolveError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, transaction.ErrMissingReference):
		http.Error(w, "missing transaction reference", http.StatusBadRequest)
	case errors.Is(err, transaction.ErrTransactionNotFound):
		http.Error(w, "unknown transaction", http.StatusNotFound)
	default:
		logger.FromCtx(r.Context()).Error("failed to resolve transaction", zap.Error(err))
		http.Error(w, "failed to process notification", http.StatusInternalServerError)
	}
}
