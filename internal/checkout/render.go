package checkout

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"storefront-payments/internal/credential"
	"storefront-payments/internal/gateway"
	"storefront-payments/internal/logger"
	"storefront-payments/internal/signature"
	"storefront-payments/internal/transaction"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const apiVersion = 14

// udf5 marks payments originating from this platform; PayU echoes it
// back unchanged.
const originMarker = "storefront"

// Renderer builds the signed redirect form for an outbound payment.
type Renderer struct {
	engine  *signature.Engine
	creds   credential.Service
	baseURL string
}

func NewRenderer(engine *signature.Engine, creds credential.Service, baseURL string) *Renderer {
	return &Renderer{engine: engine, creds: creds, baseURL: baseURL}
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

func validateCustomer(c *Customer) error {
	if c == nil {
		return ErrMissingCustomer
	}

	var missing []string
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}
	if c.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCustomerFields, strings.Join(missing, ", "))
	}
	return nil
}

// RenderValues returns the redirect form fields, signed with the
// payment hash spec, plus the form's action URL under "action_url".
func (r *Renderer) RenderValues(
	ctx context.Context,
	tx *transaction.Transaction,
	provider *credential.Provider,
	customer *Customer,
	src CartSource,
) (map[string]any, error) {

	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	cred, err := r.creds.Resolve(ctx, tx.ProviderID, tx.Currency)
	if err != nil {
		return nil, err
	}

	details, err := CartDetailsJSON(src)
	if err != nil {
		return nil, err
	}

	curl := fmt.Sprintf("%s/payment/payu/cancel?txn_ref=%s", r.baseURL, url.QueryEscape(tx.Reference))

	values := map[string]any{
		"api_version":  apiVersion,
		"key":          cred.MerchantKey,
		"txnid":        uuid.New().String(),
		"amount":       fmt.Sprintf("%.2f", tx.Amount),
		"productinfo":  ProductInfo(src),
		"cart_details": details,
		"firstname":    firstName(customer.Name),
		"email":        customer.Email,
		"user_token":   customer.Email,
		"phone":        customer.Phone,
		"surl":         r.baseURL + "/payment/payu/process",
		"furl":         r.baseURL + "/payment/payu/process",
		"curl":         curl,
		"udf1":         src.Ref(),
		"udf2":         tx.Reference,
		"udf3":         src.Kind(),
		"udf4":         "",
		"udf5":         originMarker,
	}

	hash, err := r.engine.Sign(signature.SpecPayment, values, cred.MerchantSalt)
	if err != nil {
		return nil, err
	}
	values["hash"] = hash
	values["action_url"] = gateway.FormURL(provider.IsTest())

	logger.FromCtx(ctx).Info("rendered payment form",
		zap.String("reference", tx.Reference),
		zap.String("currency", tx.Currency),
		zap.String("source", src.Kind()),
	)

	return values, nil
}
