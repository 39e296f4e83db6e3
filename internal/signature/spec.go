package signature

// SpecName identifies a named hash parameter spec: the ordered list of
// field keys joined into the string PayU hashes.
type SpecName string

const (
	// Outbound payment form hash.
	SpecPayment SpecName = "payment"
	// Inbound webhook/redirect hash (reverse field order, salt first).
	SpecPaymentReverse SpecName = "payment_reverse"
	// Merchant service commands.
	SpecRefund        SpecName = "refund"
	SpecUDFUpdate     SpecName = "udf_update"
	SpecInvoiceUpload SpecName = "invoice_upload"
	SpecSettlement    SpecName = "settlement"
)

// SaltSentinel marks the position where the merchant salt is inserted.
const SaltSentinel = "_SALT_"

// Registry maps spec names to their ordered field lists. The defaults
// follow the PayU hash contract; deployments can override them without
// a code change.
type Registry map[SpecName][]string

// DefaultRegistry returns the documented PayU field orders. udf6..udf10
// are reserved and always empty, which yields the run of empty segments
// PayU expects before the salt.
func DefaultRegistry() Registry {
	return Registry{
		SpecPayment: {
			"key", "txnid", "amount", "productinfo", "firstname", "email",
			"udf1", "udf2", "udf3", "udf4", "udf5",
			"udf6", "udf7", "udf8", "udf9", "udf10",
			SaltSentinel,
		},
		SpecPaymentReverse: {
			SaltSentinel, "status",
			"udf10", "udf9", "udf8", "udf7", "udf6",
			"udf5", "udf4", "udf3", "udf2", "udf1",
			"email", "firstname", "productinfo", "amount", "txnid", "key",
		},
		SpecRefund:        {"key", "command", "var1", SaltSentinel},
		SpecUDFUpdate:     {"key", "command", "var1", SaltSentinel},
		SpecInvoiceUpload: {"key", "command", "var1", SaltSentinel},
		SpecSettlement:    {"key", "command", "var1", SaltSentinel},
	}
}
