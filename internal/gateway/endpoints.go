package gateway

// PayU hosts differ between the sandbox and the live environment.
// Which one applies is decided by the provider record, never by an
// environment variable.
const (
	testPaymentHost = "test.payu.in"
	livePaymentHost = "secure.payu.in"
	liveServiceHost = "info.payu.in"
)

// PaymentHost returns the host serving the redirect payment form.
func PaymentHost(test bool) string {
	if test {
		return testPaymentHost
	}
	return livePaymentHost
}

// FormURL returns the action URL of the redirect payment form.
func FormURL(test bool) string {
	return "https://" + PaymentHost(test) + "/_payment"
}

// ServiceURL returns the merchant web-service endpoint used for
// refund, UDF-update, invoice-upload and settlement commands.
func ServiceURL(test bool) string {
	if test {
		return "https://" + testPaymentHost + "/merchant/postservice.php"
	}
	return "https://" + liveServiceHost + "/merchant/postservice.php"
}
