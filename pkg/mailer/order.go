package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"text/template"
	"time"

	"storefront/internal/data/entity"
)

const orderText = `New order {{.Number}}
Placed: {{.PlacedAt.Format "2006-01-02 15:04 MST"}}

Customer: {{.Customer.FullName}} <{{.Customer.Email}}>

Items:
{{range .Items}}- {{.Name}} {{.Size}} x {{.Quantity}} @ {{.Price}} zł = {{.LineTotal}} zł
{{end}}
Total: {{.Total}} zł
`

const orderHTML = `<h2>New order {{.Number}}</h2>
<p>Placed: {{.PlacedAt.Format "2006-01-02 15:04 MST"}}</p>
<p>Customer: {{.Customer.FullName}} &lt;{{.Customer.Email}}&gt;</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Product</th><th>Size</th><th>Qty</th><th>Price</th><th>Subtotal</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Size}}</td><td>{{.Quantity}}</td><td>{{.Price}} zł</td><td>{{.LineTotal}} zł</td></tr>
{{end}}</table>
<p><strong>Total: {{.Total}} zł</strong></p>
`

var (
	orderTextTmpl = template.Must(template.New("order_text").Parse(orderText))
	orderHTMLTmpl = htmltemplate.Must(htmltemplate.New("order_html").Parse(orderHTML))
)

// OrderOptions controls who receives an order notification.
type OrderOptions struct {
	To             string
	CopyToCustomer bool
}

// NewOrderMessage renders the shop notification for order. Replies go to the customer.
func NewOrderMessage(order *entity.Order, opts OrderOptions) (*Message, error) {
	if order.Customer == nil {
		return nil, fmt.Errorf("order %s has no customer", order.Number)
	}

	var text bytes.Buffer
	if err := orderTextTmpl.Execute(&text, order); err != nil {
		return nil, fmt.Errorf("render order text: %w", err)
	}

	var html bytes.Buffer
	if err := orderHTMLTmpl.Execute(&html, order); err != nil {
		return nil, fmt.Errorf("render order html: %w", err)
	}

	msg := &Message{
		To:       []string{opts.To},
		ReplyTo:  order.Customer.Email,
		Subject:  fmt.Sprintf("New order %s (%d zł)", order.Number, order.Total),
		TextBody: text.String(),
		HTMLBody: html.String(),
		Headers: map[string]string{
			"X-Order-Number": order.Number,
			"X-Order-Placed": order.PlacedAt.UTC().Format(time.RFC3339),
		},
	}
	if opts.CopyToCustomer {
		msg.Cc = []string{order.Customer.Email}
	}
	return msg, nil
}
