package checkout

import (
	"encoding/json"
	"fmt"
	"strings"
)

type skuDetail struct {
	SKUID          string   `json:"sku_id"`
	SKUName        string   `json:"sku_name"`
	AmountPerSKU   string   `json:"amount_per_sku"`
	Quantity       int      `json:"quantity"`
	OfferKey       []string `json:"offer_key"`
	OfferAutoApply bool     `json:"offer_auto_apply"`
}

type cartDetails struct {
	Amount      float64     `json:"amount"`
	Items       int         `json:"items"`
	Surcharges  float64     `json:"surcharges"`
	PreDiscount float64     `json:"pre_discount"`
	SKUDetails  []skuDetail `json:"sku_details"`
}

// CartDetailsJSON renders the cart_details form field PayU uses for
// offer auto-application.
func CartDetailsJSON(src CartSource) (string, error) {
	lines := src.Lines()

	skus := make([]skuDetail, 0, len(lines))
	items := 0
	for _, line := range lines {
		skus = append(skus, skuDetail{
			SKUID:          line.SKU,
			SKUName:        line.Name,
			AmountPerSKU:   fmt.Sprintf("%.2f", line.LineTotal),
			Quantity:       line.Quantity,
			OfferKey:       []string{},
			OfferAutoApply: true,
		})
		items += line.Quantity
	}

	out, err := json.Marshal(cartDetails{
		Amount:      src.AmountTotal(),
		Items:       items,
		Surcharges:  0,
		PreDiscount: src.PreDiscountAmount(),
		SKUDetails:  skus,
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ProductInfo joins the line names into PayU's productinfo field.
func ProductInfo(src CartSource) string {
	names := make([]string, 0, len(src.Lines()))
	for _, line := range src.Lines() {
		names = append(names, line.Name)
	}
	return strings.Join(names, " ")
}
