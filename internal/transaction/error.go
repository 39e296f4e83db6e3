package transaction

import "errors"

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrMissingReference    = errors.New("notification carries no transaction reference")
)
