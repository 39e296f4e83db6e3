package gateway

import "strconv"

// Merchant service command names.
const (
	CommandRefund        = "cancel_refund_transaction"
	CommandUDFUpdate     = "udf_update"
	CommandInvoiceUpload = "upload_invoice_file"
	CommandSettlement    = "get_settlement_details"
)

// Refund success as PayU reports it.
const RefundAcceptedErrorCode = 102

// RefundResponse is the merchant service's answer to a
// cancel_refund_transaction command. Field names are the gateway's
// wire contract, not ours.
type RefundResponse struct {
	Status    int    `json:"status"`
	ErrorCode int    `json:"error_code"`
	MihPayID  string `json:"mihpayid"`
	Msg       string `json:"msg"`
}

// Accepted reports whether the gateway queued the refund.
func (r RefundResponse) Accepted() bool {
	return r.Status == 1 && r.ErrorCode == RefundAcceptedErrorCode
}

// CommandResponse covers udf_update and invoice upload answers.
type CommandResponse struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
}

// SettlementDetail is one settled transaction in a settlement range
// query. Amounts arrive as strings.
type SettlementDetail struct {
	MihPayID           string `json:"mihpayid"`
	SettlementAmount   string `json:"settlement_amount"`
	MerchantServiceFee string `json:"merchant_service_fee"`
	MerchantServiceTax string `json:"merchant_service_tax"`
	SettlementCurrency string `json:"settlement_currency"`
	UTRNumber          string `json:"utr_no"`
	SettlementDate     string `json:"settlement_date"`
}

// NetAmount parses the settled amount; empty is zero.
func (d SettlementDetail) NetAmount() (float64, error) {
	return parseAmount(d.SettlementAmount)
}

// TotalServiceFee is the service fee plus its tax component.
func (d SettlementDetail) TotalServiceFee() (float64, error) {
	fee, err := parseAmount(d.MerchantServiceFee)
	if err != nil {
		return 0, err
	}
	tax, err := parseAmount(d.MerchantServiceTax)
	if err != nil {
		return 0, err
	}
	return fee + tax, nil
}

// SettlementResponse wraps a settlement range query result.
type SettlementResponse struct {
	Status  int                `json:"status"`
	Msg     string             `json:"msg"`
	Details []SettlementDetail `json:"txn_details"`
}

func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
