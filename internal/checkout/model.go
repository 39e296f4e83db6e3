package checkout

// Customer carries the billing contact fields PayU requires. Resolved
// by the caller; the core never reaches into a session to find it.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// OrderLine is one sellable line of an order or invoice.
type OrderLine struct {
	SKU       string
	Name      string
	LineTotal float64
	Quantity  int
}

// CartSource is what the redirect form is rendered from: a website
// cart order or a backend invoice.
type CartSource interface {
	// Ref is the host document reference carried in udf1.
	Ref() string
	// Kind discriminates the post-payment side-effect path.
	Kind() string
	Lines() []OrderLine
	AmountTotal() float64
	// PreDiscountAmount is the amount before gateway-side offers.
	PreDiscountAmount() float64
}

const (
	SourceOrder   = "order"
	SourceInvoice = "invoice"
)

// Order is a website-cart checkout source.
type Order struct {
	Reference          string
	OrderLines         []OrderLine
	Total              float64
	AmountUndiscounted float64
}

func (o *Order) Ref() string                { return o.Reference }
func (o *Order) Kind() string               { return SourceOrder }
func (o *Order) Lines() []OrderLine         { return o.OrderLines }
func (o *Order) AmountTotal() float64       { return o.Total }
func (o *Order) PreDiscountAmount() float64 { return o.AmountUndiscounted }

// Invoice is a backend-invoice checkout source.
type Invoice struct {
	Name          string
	InvoiceLines  []OrderLine
	Total         float64
	AmountUntaxed float64
}

func (i *Invoice) Ref() string                { return i.Name }
func (i *Invoice) Kind() string               { return SourceInvoice }
func (i *Invoice) Lines() []OrderLine         { return i.InvoiceLines }
func (i *Invoice) AmountTotal() float64       { return i.Total }
func (i *Invoice) PreDiscountAmount() float64 { return i.AmountUntaxed }
