package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/chowstack/chowstack/internal/notification/domain"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSink delivers receipts as HTML email over plain SMTP.
type SMTPSink struct {
	cfg  Config
	tmpl *template.Template
}

func NewSMTP(cfg Config) (*SMTPSink, error) {
	tmpl, err := template.New("receipt").Funcs(template.FuncMap{
		"money": formatCents,
	}).Parse(receiptTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse receipt template: %w", err)
	}
	return &SMTPSink{cfg: cfg, tmpl: tmpl}, nil
}

func (s *SMTPSink) Send(ctx context.Context, receipt domain.Receipt) error {
	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, receipt); err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}

	subject := fmt.Sprintf("Your order %s from %s", receipt.OrderNumber, receipt.TenantName)
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\n%s\r\n%s",
		receipt.CustomerEmail, subject, mime, body.String()))

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{receipt.CustomerEmail}, msg)
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

const receiptTemplate = `<html>
<body style="font-family: sans-serif; color: #222;">
	<h2 style="color: {{if .BrandColor}}{{.BrandColor}}{{else}}#333{{end}};">{{.TenantName}}</h2>
	<p>Hi {{.CustomerName}}, thanks for your {{.OrderType}} order <strong>{{.OrderNumber}}</strong>.</p>
	<table cellpadding="6" cellspacing="0" border="0">
		{{range .Lines}}
		<tr>
			<td>{{.Quantity}}&times; {{.Name}}{{if .Details}}<br/><small>{{range .Details}}{{.}} {{end}}</small>{{end}}</td>
			<td align="right">{{money .TotalCents}}</td>
		</tr>
		{{end}}
		<tr><td>Subtotal</td><td align="right">{{money .SubtotalCents}}</td></tr>
		<tr><td>Tax</td><td align="right">{{money .TaxCents}}</td></tr>
		{{if .DeliveryFeeCents}}<tr><td>Delivery</td><td align="right">{{money .DeliveryFeeCents}}</td></tr>{{end}}
		<tr><td><strong>Total</strong></td><td align="right"><strong>{{money .TotalCents}}</strong></td></tr>
	</table>
	{{if .SupportEmail}}<p><small>Questions? Contact {{.SupportEmail}}{{if .TenantPhone}} or call {{.TenantPhone}}{{end}}.</small></p>{{end}}
</body>
</html>`
