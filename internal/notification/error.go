package notification

// GenericDeclineMessage is shown when the gateway sends no failure
// reason of its own.
const GenericDeclineMessage = "The payment was declined or failed."
