package services

import (
	"fmt"
	"net/smtp"

	"github.com/shopspring/decimal"

	"github.com/fnbapp/backend/app/utils/format"
)

// MailSender is the outbound notification boundary. Delivery failures are
// logged by callers and never fail the enclosing request.
type MailSender interface {
	SendVerificationCode(to, code string) error
	SendPasswordResetCode(to, code string, expiryMinutes int) error
	SendOrderConfirmation(to, orderID string, total decimal.Decimal) error
}

type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Mailer struct {
	config MailConfig
}

func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{config: cfg}
}

func (m *Mailer) sendHTML(to, subject, htmlBody string) error {
	headers := map[string]string{
		"From":         m.config.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	var msg string
	for k, v := range headers {
		msg += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	msg += "\r\n" + htmlBody

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (m *Mailer) SendVerificationCode(to, code string) error {
	return m.sendHTML(to, "Account Activation", BuildVerificationEmailBody(code))
}

func (m *Mailer) SendPasswordResetCode(to, code string, expiryMinutes int) error {
	return m.sendHTML(to, "Password Reset Request", BuildPasswordResetEmailBody(code, expiryMinutes))
}

func (m *Mailer) SendOrderConfirmation(to, orderID string, total decimal.Decimal) error {
	return m.sendHTML(to, "Order Confirmation", BuildOrderConfirmationEmailBody(orderID, total))
}

func BuildVerificationEmailBody(code string) string {
	return fmt.Sprintf(`
        <html>
          <body>
            <p>Hello,</p>
            <p>To activate your account, please use the following activation code: <strong>%s</strong></p>
            <p>Best regards,<br>The Food and Beverage App Team</p>
          </body>
        </html>
    `, code)
}

func BuildPasswordResetEmailBody(code string, expiryMinutes int) string {
	return fmt.Sprintf(`
        <html>
          <body>
            <p>Hello,</p>
            <p>To reset your password, please use the following reset code: <strong>%s</strong></p>
            <p>This code will expire in %d minutes.</p>
            <p>If you didn't request this, please ignore this email.</p>
            <p>Best regards,<br>The Food and Beverage App Team</p>
          </body>
        </html>
    `, code, expiryMinutes)
}

func BuildOrderConfirmationEmailBody(orderID string, total decimal.Decimal) string {
	return fmt.Sprintf(`
        <html>
          <body>
            <p>Hello,</p>
            <p>Thank you for your order <strong>%s</strong>.</p>
            <p>Order total: <strong>%s</strong></p>
            <p>Best regards,<br>The Food and Beverage App Team</p>
          </body>
        </html>
    `, orderID, format.Money(total))
}
