package refund

import "errors"

var (
	// PayU exposes no capture or void operation.
	ErrNotSupported = errors.New("operation not supported by the gateway")

	ErrNoProviderReference = errors.New("transaction has no gateway reference to refund against")
)
