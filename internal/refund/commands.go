package refund

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"storefront-payments/internal/credential"
	"storefront-payments/internal/gateway"
	"storefront-payments/internal/signature"
	"storefront-payments/internal/transaction"
)

// sendCommand signs and posts one merchant-service command, returning
// the gateway's acknowledgement.
func (c *Coordinator) sendCommand(
	ctx context.Context,
	provider *credential.Provider,
	cred *credential.Credential,
	spec signature.SpecName,
	command string,
	vars url.Values,
) (*gateway.CommandResponse, error) {

	values := map[string]any{
		"key":     cred.MerchantKey,
		"command": command,
		"var1":    vars.Get("var1"),
	}

	hash, err := c.engine.Sign(spec, values, cred.MerchantSalt)
	if err != nil {
		return nil, err
	}

	data := url.Values{}
	data.Set("key", cred.MerchantKey)
	data.Set("command", command)
	for k := range vars {
		data.Set(k, vars.Get(k))
	}
	data.Set("hash", hash)

	query := url.Values{}
	query.Set("form", "2")

	raw, err := c.client.Call(ctx, gateway.ServiceURL(provider.IsTest()), http.MethodPost, query, data, "")
	if err != nil {
		return nil, err
	}

	var res gateway.CommandResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, gateway.ErrGatewayInvalidResponse
	}
	return &res, nil
}

// UpdateInvoiceID attaches the host invoice number to the gateway
// transaction through the udf_update command.
func (c *Coordinator) UpdateInvoiceID(ctx context.Context, tx *transaction.Transaction, provider *credential.Provider, invoiceID string) error {
	if tx.ProviderReference == "" {
		return ErrNoProviderReference
	}

	cred, err := c.creds.Resolve(ctx, tx.ProviderID, tx.Currency)
	if err != nil {
		return err
	}

	vars := url.Values{}
	vars.Set("var1", tx.ProviderReference)
	vars.Set("var2", invoiceID)

	res, err := c.sendCommand(ctx, provider, cred, signature.SpecUDFUpdate, gateway.CommandUDFUpdate, vars)
	if err != nil {
		return err
	}
	if res.Status != 1 {
		return fmt.Errorf("udf update rejected: %s", res.Msg)
	}
	return nil
}

// UploadInvoice pushes the rendered invoice document to the gateway so
// it appears in the merchant dashboard next to the transaction.
func (c *Coordinator) UploadInvoice(ctx context.Context, tx *transaction.Transaction, provider *credential.Provider, fileName string, contents []byte) error {
	if tx.ProviderReference == "" {
		return ErrNoProviderReference
	}

	cred, err := c.creds.Resolve(ctx, tx.ProviderID, tx.Currency)
	if err != nil {
		return err
	}

	vars := url.Values{}
	vars.Set("var1", tx.ProviderReference)
	vars.Set("var2", fileName)
	vars.Set("var3", base64.StdEncoding.EncodeToString(contents))

	res, err := c.sendCommand(ctx, provider, cred, signature.SpecInvoiceUpload, gateway.CommandInvoiceUpload, vars)
	if err != nil {
		return err
	}
	if res.Status != 1 {
		return fmt.Errorf("invoice upload rejected: %s", res.Msg)
	}
	return nil
}
