package checkout

import "errors"

var (
	ErrMissingCustomer       = errors.New("a customer is required to proceed with the payment")
	ErrMissingCustomerFields = errors.New("required customer details are missing")
)
